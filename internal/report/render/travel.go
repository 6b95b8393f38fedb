package render

import (
	"strings"

	"github.com/atlas-hrm/atlas-reports/internal/report"
)

// Travel renders the travel analytics fragment.
func Travel(p report.TravelAnalytics, opts report.Options) string {
	var b strings.Builder

	writeDateRangeNote(&b, p.DateRange.Label())

	writeStatRow(&b, func(b *strings.Builder) {
		writeStatBox(b, "Total Trips", formatCount(p.Summary.TotalTrips))
		writeStatBox(b, "Total Distance", formatDistance(p.Summary.TotalDistance))
		writeStatBox(b, "Total Allowance", formatCurrency(p.Summary.TotalAllowance))
		writeStatBox(b, "Pending Claims", formatCount(p.Summary.PendingClaims))
	})

	writeSectionHeading(&b, "Trips by Purpose")
	writeTableOpen(&b, "Purpose", "Allowance", "Trips")
	if len(p.ByPurpose) == 0 {
		writeNoDataRow(&b, 3)
	} else {
		for _, row := range p.ByPurpose {
			b.WriteString(`<tr><td>`)
			writeColorDot(&b, row.Category)
			b.WriteString(`</td><td>`)
			b.WriteString(formatCurrency(row.Amount))
			b.WriteString(`</td><td>`)
			b.WriteString(formatCount(row.Count))
			b.WriteString(`</td></tr>`)
		}
	}
	writeTableClose(&b)

	writeSectionHeading(&b, "Recent Trips")
	writeTableOpen(&b, "Employee", "Destination", "Purpose", "Distance", "Allowance", "Status", "Date")
	if len(p.RecentTrips) == 0 {
		writeNoDataRow(&b, 7)
	} else {
		for _, row := range p.RecentTrips {
			b.WriteString(`<tr><td>`)
			b.WriteString(textOr(row.Employee))
			b.WriteString(`</td><td>`)
			b.WriteString(textOr(row.Destination))
			b.WriteString(`</td><td>`)
			b.WriteString(textOr(row.Purpose))
			b.WriteString(`</td><td>`)
			b.WriteString(formatDistance(row.Distance))
			b.WriteString(`</td><td>`)
			b.WriteString(formatCurrency(row.Allowance))
			b.WriteString(`</td><td>`)
			writeStatusBadge(&b, row.Status)
			b.WriteString(`</td><td>`)
			b.WriteString(textOr(row.Date))
			b.WriteString(`</td></tr>`)
		}
	}
	writeTableClose(&b)

	return b.String()
}
