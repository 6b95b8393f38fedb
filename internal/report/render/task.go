package render

import (
	"strings"

	"github.com/atlas-hrm/atlas-reports/internal/report"
)

// Task renders the task analytics fragment.
func Task(p report.TaskAnalytics, opts report.Options) string {
	var b strings.Builder

	writeDateRangeNote(&b, p.DateRange.Label())

	writeStatRow(&b, func(b *strings.Builder) {
		writeStatBox(b, "Total Tasks", formatCount(p.Summary.TotalTasks))
		writeStatBox(b, "Completed", formatCount(p.Summary.Completed))
		writeStatBox(b, "In Progress", formatCount(p.Summary.InProgress))
		writeStatBox(b, "Overdue", formatCount(p.Summary.Overdue))
		writeStatBox(b, "Completion Rate", formatPercent(p.Summary.CompletionRate))
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

	writeSectionHeading(&b, "Priority Breakdown")
	writeTableOpen(&b, "Priority", "Count")
	if len(p.PriorityBreakdown) == 0 {
		writeNoDataRow(&b, 2)
	} else {
		for _, row := range p.PriorityBreakdown {
			b.WriteString(`<tr><td>`)
			writeColorDot(&b, row.Status)
			b.WriteString(`</td><td>`)
			b.WriteString(formatCount(row.Count))
			b.WriteString(`</td></tr>`)
		}
	}
	writeTableClose(&b)

	writeSectionHeading(&b, "Employee Performance")
	writeTableOpen(&b, "Employee", "Assigned", "Completed", "Completion Rate")
	if len(p.EmployeePerformance) == 0 {
		writeNoDataRow(&b, 4)
	} else {
		for _, row := range p.EmployeePerformance {
			b.WriteString(`<tr><td>`)
			b.WriteString(textOr(row.Name))
			b.WriteString(`</td><td>`)
			b.WriteString(formatCount(row.Assigned))
			b.WriteString(`</td><td>`)
			b.WriteString(formatCount(row.Completed))
			b.WriteString(`</td><td>`)
			b.WriteString(formatPercent(row.CompletionRate))
			b.WriteString(`</td></tr>`)
		}
	}
	writeTableClose(&b)

	return b.String()
}
