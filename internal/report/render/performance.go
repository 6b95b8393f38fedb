package render

import (
	"strings"

	"github.com/atlas-hrm/atlas-reports/internal/report"
)

// Performance renders the performance analytics fragment.
func Performance(p report.PerformanceAnalytics, opts report.Options) string {
	var b strings.Builder

	writeDateRangeNote(&b, p.DateRange.Label())

	writeStatRow(&b, func(b *strings.Builder) {
		writeStatBox(b, "Average Score", formatScore(p.Summary.AverageScore))
		writeStatBox(b, "Top Performers", formatCount(p.Summary.TopPerformers))
		writeStatBox(b, "Reviews Completed", formatCount(p.Summary.ReviewsCompleted))
		writeStatBox(b, "Pending Reviews", formatCount(p.Summary.PendingReviews))
	})

	writeSectionHeading(&b, "Rating Distribution")
	writeTableOpen(&b, "Rating", "Employees")
	if len(p.RatingBands) == 0 {
		writeNoDataRow(&b, 2)
	} else {
		for _, row := range p.RatingBands {
			b.WriteString(`<tr><td>`)
			writeColorDot(&b, row.Status)
			b.WriteString(`</td><td>`)
			b.WriteString(formatCount(row.Count))
			b.WriteString(`</td></tr>`)
		}
	}
	writeTableClose(&b)

	writeSectionHeading(&b, "Employee Scores")
	writeTableOpen(&b, "Employee", "Department", "Score", "Tasks Completed", "Attendance Rate")
	if len(p.Employees) == 0 {
		writeNoDataRow(&b, 5)
	} else {
		for _, row := range p.Employees {
			b.WriteString(`<tr><td>`)
			b.WriteString(textOr(row.Name))
			b.WriteString(`</td><td>`)
			b.WriteString(textOr(row.Department))
			b.WriteString(`</td><td>`)
			b.WriteString(formatScore(row.Score))
			b.WriteString(`</td><td>`)
			b.WriteString(formatCount(row.TasksCompleted))
			b.WriteString(`</td><td>`)
			b.WriteString(formatPercent(row.AttendanceRate))
			b.WriteString(`</td></tr>`)
		}
	}
	writeTableClose(&b)

	return b.String()
}
