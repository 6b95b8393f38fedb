package render

import (
	"strings"

	"github.com/atlas-hrm/atlas-reports/internal/report"
)

// Attendance renders the attendance analytics fragment.
func Attendance(p report.AttendanceAnalytics, opts report.Options) string {
	var b strings.Builder

	writeDateRangeNote(&b, p.DateRange.Label())

	writeStatRow(&b, func(b *strings.Builder) {
		writeStatBox(b, "Employees", formatCount(p.Summary.TotalEmployees))
		writeStatBox(b, "Attendance Rate", formatPercent(p.Summary.AttendanceRate))
		writeStatBox(b, "Total Hours", formatHours(p.Summary.TotalHours))
		writeStatBox(b, "Avg Hours / Day", formatHours(p.Summary.AvgHoursPerDay))
		writeStatBox(b, "Late Arrivals", formatCount(p.Summary.LateArrivals))
	})

	writeSectionHeading(&b, "Status Breakdown")
	writeTableOpen(&b, "Status", "Count")
	if len(p.StatusBreakdown) == 0 {
		writeNoDataRow(&b, 2)
	} else {
		for _, row := range p.StatusBreakdown {
			b.WriteString(`<tr><td>`)
			writeStatusBadge(&b, row.Status)
			b.WriteString(`</td><td>`)
			b.WriteString(formatCount(row.Count))
			b.WriteString(`</td></tr>`)
		}
	}
	writeTableClose(&b)

	writeSectionHeading(&b, "Top Employees")
	writeTableOpen(&b, "Employee", "Days Present", "Total Hours", "Attendance Rate")
	if len(p.TopEmployees) == 0 {
		writeNoDataRow(&b, 4)
	} else {
		for _, row := range p.TopEmployees {
			b.WriteString(`<tr><td>`)
			b.WriteString(textOr(row.Name))
			b.WriteString(`</td><td>`)
			b.WriteString(formatCount(row.DaysPresent))
			b.WriteString(`</td><td>`)
			b.WriteString(formatHours(row.TotalHours))
			b.WriteString(`</td><td>`)
			b.WriteString(formatPercent(row.AttendanceRate))
			b.WriteString(`</td></tr>`)
		}
	}
	writeTableClose(&b)

	return b.String()
}
