package render

import (
	"strings"

	"github.com/atlas-hrm/atlas-reports/internal/report"
)

// Expense renders the expense analytics fragment.
func Expense(p report.ExpenseAnalytics, opts report.Options) string {
	var b strings.Builder

	writeDateRangeNote(&b, p.DateRange.Label())

	writeStatRow(&b, func(b *strings.Builder) {
		writeStatBox(b, "Total Expenses", formatCurrency(p.Summary.TotalExpenses))
		writeStatBox(b, "Average Expense", formatCurrency(p.Summary.AverageExpense))
		writeStatBox(b, "Approval Rate", formatPercent(p.Summary.ApprovalRate))
		writeStatBox(b, "Pending", formatCount(p.Summary.PendingCount))
	})

	writeSectionHeading(&b, "Category Breakdown")
	writeTableOpen(&b, "Category", "Amount", "Count")
	if len(p.CategoryBreakdown) == 0 {
		writeNoDataRow(&b, 3)
	} else {
		for _, row := range p.CategoryBreakdown {
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

	writeSectionHeading(&b, "Recent Expenses")
	writeTableOpen(&b, "Employee", "Category", "Amount", "Status", "Date")
	if len(p.RecentExpenses) == 0 {
		writeNoDataRow(&b, 5)
	} else {
		for _, row := range p.RecentExpenses {
			b.WriteString(`<tr><td>`)
			b.WriteString(textOr(row.Employee))
			b.WriteString(`</td><td>`)
			b.WriteString(textOr(row.Category))
			b.WriteString(`</td><td>`)
			b.WriteString(formatCurrency(row.Amount))
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
