package render

import (
	"fmt"

	"github.com/atlas-hrm/atlas-reports/internal/report"
)

// Renderer converts an already-decoded analytics payload into an HTML
// fragment. Implementations reject payloads of the wrong concrete type.
type Renderer func(payload any, opts report.Options) (string, error)

// renderers is the enum-keyed dispatch table. Unknown tags are rejected
// explicitly rather than falling through.
var renderers = map[report.Type]Renderer{
	report.TypeExpense: func(payload any, opts report.Options) (string, error) {
		p, err := payloadAs[report.ExpenseAnalytics](report.TypeExpense, payload)
		if err != nil {
			return "", err
		}
		return Expense(p, opts), nil
	},
	report.TypeAttendance: func(payload any, opts report.Options) (string, error) {
		p, err := payloadAs[report.AttendanceAnalytics](report.TypeAttendance, payload)
		if err != nil {
			return "", err
		}
		return Attendance(p, opts), nil
	},
	report.TypeTask: func(payload any, opts report.Options) (string, error) {
		p, err := payloadAs[report.TaskAnalytics](report.TypeTask, payload)
		if err != nil {
			return "", err
		}
		return Task(p, opts), nil
	},
	report.TypeTravel: func(payload any, opts report.Options) (string, error) {
		p, err := payloadAs[report.TravelAnalytics](report.TypeTravel, payload)
		if err != nil {
			return "", err
		}
		return Travel(p, opts), nil
	},
	report.TypePerformance: func(payload any, opts report.Options) (string, error) {
		p, err := payloadAs[report.PerformanceAnalytics](report.TypePerformance, payload)
		if err != nil {
			return "", err
		}
		return Performance(p, opts), nil
	},
	report.TypeLeave: func(payload any, opts report.Options) (string, error) {
		p, err := payloadAs[report.LeaveAnalytics](report.TypeLeave, payload)
		if err != nil {
			return "", err
		}
		return Leave(p, opts), nil
	},
}

// payloadAs unwraps a typed payload supplied by value or pointer.
func payloadAs[T any](t report.Type, payload any) (T, error) {
	switch v := payload.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("render: %s payload has type %T", t, payload)
}

// Fragment dispatches to the renderer registered for the report type.
func Fragment(t report.Type, payload any, opts report.Options) (string, error) {
	r, ok := renderers[t]
	if !ok {
		return "", fmt.Errorf("%w: %q", report.ErrUnsupportedType, t)
	}
	return r(payload, opts)
}
