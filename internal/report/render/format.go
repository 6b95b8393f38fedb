// Package render turns typed analytics payloads into HTML report fragments
// and composes fragments into complete printable documents.
package render

import (
	"fmt"
	"html"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/atlas-hrm/atlas-reports/internal/report"
)

// placeholder stands in for values with no meaningful display form.
const placeholder = "&mdash;"

var currencyPrinter = message.NewPrinter(language.English)

func escape(s string) string {
	return html.EscapeString(s)
}

// textOr escapes s, substituting the placeholder for blank input.
func textOr(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return escape(s)
}

// formatCount renders a whole-number metric.
func formatCount(m report.Metric) string {
	return fmt.Sprintf("%d", m.Int())
}

// formatHours renders hour totals with one decimal.
func formatHours(m report.Metric) string {
	return fmt.Sprintf("%.1f", m.Float())
}

// formatPercent renders rates with one decimal and a percent sign.
func formatPercent(m report.Metric) string {
	return fmt.Sprintf("%.1f%%", m.Float())
}

// formatScore renders review scores with one decimal.
func formatScore(m report.Metric) string {
	return fmt.Sprintf("%.1f", m.Float())
}

// formatCurrency renders currency-like amounts with two decimals and
// locale-style thousands separators.
func formatCurrency(m report.Metric) string {
	f := m.Float()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		f = 0
	}
	return currencyPrinter.Sprintf("%.2f", f)
}

// formatDistance renders distances with one decimal and a unit suffix.
func formatDistance(m report.Metric) string {
	return fmt.Sprintf("%.1f km", m.Float())
}
