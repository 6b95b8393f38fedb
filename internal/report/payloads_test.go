package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want float64
	}{
		{"number", `42.5`, 42.5},
		{"integer", `7`, 7},
		{"numeric string", `"1234.56"`, 1234.56},
		{"padded numeric string", `" 99 "`, 99},
		{"null", `null`, 0},
		{"empty string", `""`, 0},
		{"garbage string", `"n/a"`, 0},
		{"boolean", `true`, 0},
		{"object", `{"v":1}`, 0},
		{"array", `[1,2]`, 0},
		{"infinity string", `"Inf"`, 0},
		{"nan string", `"NaN"`, 0},
		{"negative", `-12.5`, -12.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var m Metric
			err := json.Unmarshal([]byte(tc.in), &m)
			require.NoError(t, err)
			assert.Equal(t, tc.want, m.Float())
		})
	}
}

func TestMetricInsidePayload(t *testing.T) {
	raw := `{
		"summary": {
			"totalExpenses": "15000.75",
			"averageExpense": null,
			"approvalRate": 87.5,
			"pendingCount": "oops"
		},
		"categoryBreakdown": [
			{"category": "Travel", "amount": "2500", "count": 3}
		]
	}`

	var p ExpenseAnalytics
	require.NoError(t, json.Unmarshal([]byte(raw), &p))

	assert.Equal(t, 15000.75, p.Summary.TotalExpenses.Float())
	assert.Equal(t, 0.0, p.Summary.AverageExpense.Float())
	assert.Equal(t, 87.5, p.Summary.ApprovalRate.Float())
	assert.Equal(t, 0, p.Summary.PendingCount.Int())
	require.Len(t, p.CategoryBreakdown, 1)
	assert.Equal(t, 2500.0, p.CategoryBreakdown[0].Amount.Float())
	assert.Equal(t, 3, p.CategoryBreakdown[0].Count.Int())
}

func TestDateRangeLabel(t *testing.T) {
	var nilRange *DateRange
	assert.Equal(t, "", nilRange.Label())
	assert.Equal(t, "", (&DateRange{}).Label())
	assert.Equal(t, "2026-01-01 - 2026-01-31", (&DateRange{From: "2026-01-01", To: "2026-01-31"}).Label())
	assert.Equal(t, "2026-01-01 -", (&DateRange{From: "2026-01-01"}).Label())
}

func TestParseType(t *testing.T) {
	for _, rt := range Types {
		got, err := ParseType(string(rt))
		require.NoError(t, err)
		assert.Equal(t, rt, got)
	}

	_, err := ParseType("payroll")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)

	_, err = ParseType("")
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestOptionsDefaults(t *testing.T) {
	var opts Options
	assert.False(t, opts.Dark())
	assert.Equal(t, DefaultAdminName, opts.AdminOrDefault())
	assert.Equal(t, DefaultCompanyInfo().Name, opts.CompanyOrDefault().Name)

	opts = Options{Theme: ThemeDark, AdminName: "Dana", Company: &CompanyInfo{Name: "Acme"}}
	assert.True(t, opts.Dark())
	assert.Equal(t, "Dana", opts.AdminOrDefault())
	assert.Equal(t, "Acme", opts.CompanyOrDefault().Name)
}
