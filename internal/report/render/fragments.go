package render

import (
	"fmt"
	"strings"
)

// noDataMessage is rendered whenever a breakdown array arrives empty.
const noDataMessage = "No data available"

// writeStatBox appends one summary stat box.
func writeStatBox(b *strings.Builder, label, value string) {
	b.WriteString(`<div class="stat-box"><div class="stat-value">`)
	b.WriteString(value)
	b.WriteString(`</div><div class="stat-label">`)
	b.WriteString(escape(label))
	b.WriteString(`</div></div>`)
}

// writeStatRow wraps stat boxes in a flex row.
func writeStatRow(b *strings.Builder, write func(*strings.Builder)) {
	b.WriteString(`<div class="stat-row">`)
	write(b)
	b.WriteString(`</div>`)
}

// writeSectionHeading appends an h2 section heading.
func writeSectionHeading(b *strings.Builder, title string) {
	b.WriteString(`<h2 class="section-title">`)
	b.WriteString(escape(title))
	b.WriteString(`</h2>`)
}

// writeTableOpen starts a table with the given column headers.
func writeTableOpen(b *strings.Builder, headers ...string) {
	b.WriteString(`<table class="report-table"><thead><tr>`)
	for _, h := range headers {
		b.WriteString(`<th>`)
		b.WriteString(escape(h))
		b.WriteString(`</th>`)
	}
	b.WriteString(`</tr></thead><tbody>`)
}

// writeTableClose ends an open table.
func writeTableClose(b *strings.Builder) {
	b.WriteString(`</tbody></table>`)
}

// writeNoDataRow appends the explicit empty-table marker row.
func writeNoDataRow(b *strings.Builder, colspan int) {
	fmt.Fprintf(b, `<tr><td class="no-data" colspan="%d">%s</td></tr>`, colspan, noDataMessage)
}

// writePlaceholderSection appends the marker block used when an optional
// nested structure is absent from the payload.
func writePlaceholderSection(b *strings.Builder, title string) {
	writeSectionHeading(b, title)
	b.WriteString(`<p class="no-data">`)
	b.WriteString(noDataMessage)
	b.WriteString(`</p>`)
}

// writeColorDot appends a colored legend dot followed by the escaped label.
func writeColorDot(b *strings.Builder, label string) {
	b.WriteString(`<span class="dot" style="background:`)
	b.WriteString(colorFor(label))
	b.WriteString(`"></span>`)
	b.WriteString(textOr(label))
}

// writeStatusBadge appends a status chip colored by the status keyword map.
func writeStatusBadge(b *strings.Builder, status string) {
	b.WriteString(`<span class="badge" style="background:`)
	b.WriteString(colorFor(status))
	b.WriteString(`">`)
	b.WriteString(textOr(status))
	b.WriteString(`</span>`)
}

// writeDateRangeNote appends the optional filter range line.
func writeDateRangeNote(b *strings.Builder, label string) {
	if label == "" {
		return
	}
	b.WriteString(`<p class="range-note">Period: `)
	b.WriteString(escape(label))
	b.WriteString(`</p>`)
}
