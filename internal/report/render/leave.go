package render

import (
	"strings"

	"github.com/atlas-hrm/atlas-reports/internal/report"
)

// Leave renders the leave analytics fragment. The leaveTypes structure is
// optional upstream; its absence renders a placeholder section.
func Leave(p report.LeaveAnalytics, opts report.Options) string {
	var b strings.Builder

	writeDateRangeNote(&b, p.DateRange.Label())

	writeStatRow(&b, func(b *strings.Builder) {
		writeStatBox(b, "Total Requests", formatCount(p.Summary.TotalRequests))
		writeStatBox(b, "Approved", formatCount(p.Summary.Approved))
		writeStatBox(b, "Pending", formatCount(p.Summary.Pending))
		writeStatBox(b, "Rejected", formatCount(p.Summary.Rejected))
		writeStatBox(b, "Approval Rate", formatPercent(p.Summary.ApprovalRate))
	})

	if p.LeaveTypes == nil {
		writePlaceholderSection(&b, "Leave Types")
	} else {
		writeSectionHeading(&b, "Leave Types")
		writeTableOpen(&b, "Type", "Requests", "Days")
		if len(p.LeaveTypes) == 0 {
			writeNoDataRow(&b, 3)
		} else {
			for _, row := range p.LeaveTypes {
				b.WriteString(`<tr><td>`)
				writeColorDot(&b, row.Type)
				b.WriteString(`</td><td>`)
				b.WriteString(formatCount(row.Count))
				b.WriteString(`</td><td>`)
				b.WriteString(formatHours(row.Days))
				b.WriteString(`</td></tr>`)
			}
		}
		writeTableClose(&b)
	}

	writeSectionHeading(&b, "Employee Leave Balance")
	writeTableOpen(&b, "Employee", "Total Days", "Requests")
	if len(p.EmployeeStats) == 0 {
		writeNoDataRow(&b, 3)
	} else {
		for _, row := range p.EmployeeStats {
			b.WriteString(`<tr><td>`)
			b.WriteString(textOr(row.Name))
			b.WriteString(`</td><td>`)
			b.WriteString(formatHours(row.TotalDays))
			b.WriteString(`</td><td>`)
			b.WriteString(formatCount(row.Requests))
			b.WriteString(`</td></tr>`)
		}
	}
	writeTableClose(&b)

	return b.String()
}
