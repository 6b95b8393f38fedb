package report

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Metric is a defensively-decoded numeric field. Upstream analytics payloads
// deliver numbers as JSON numbers, numeric strings, or null depending on the
// aggregation path; anything unusable decodes to zero instead of surfacing
// NaN in rendered markup.
type Metric float64

// UnmarshalJSON accepts numbers, numeric strings and null.
func (m *Metric) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*m = 0
			return nil
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			*m = 0
			return nil
		}
		*m = Metric(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*m = 0
		return nil
	}
	*m = Metric(f)
	return nil
}

// Float returns the metric as a float64.
func (m Metric) Float() float64 { return float64(m) }

// Int returns the metric truncated to an integer count.
func (m Metric) Int() int { return int(m) }

// DateRange carries optional filter metadata echoed into the report header.
type DateRange struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// Label returns a printable range or the empty string.
func (d *DateRange) Label() string {
	if d == nil || (d.From == "" && d.To == "") {
		return ""
	}
	return strings.TrimSpace(d.From + " - " + d.To)
}

// CategoryAmount is a generic category breakdown row.
type CategoryAmount struct {
	Category string `json:"category"`
	Amount   Metric `json:"amount"`
	Count    Metric `json:"count"`
}

// StatusCount is a generic status breakdown row.
type StatusCount struct {
	Status string `json:"status"`
	Count  Metric `json:"count"`
}

// ExpenseAnalytics is the upstream payload for expense reports.
type ExpenseAnalytics struct {
	Summary struct {
		TotalExpenses  Metric `json:"totalExpenses"`
		AverageExpense Metric `json:"averageExpense"`
		ApprovalRate   Metric `json:"approvalRate"`
		PendingCount   Metric `json:"pendingCount"`
	} `json:"summary"`
	CategoryBreakdown []CategoryAmount `json:"categoryBreakdown"`
	RecentExpenses    []ExpenseEntry   `json:"recentExpenses"`
	DateRange         *DateRange       `json:"dateRange,omitempty"`
}

// ExpenseEntry is a single recent expense row.
type ExpenseEntry struct {
	Employee string `json:"employee"`
	Category string `json:"category"`
	Amount   Metric `json:"amount"`
	Status   string `json:"status"`
	Date     string `json:"date"`
}

// AttendanceAnalytics is the upstream payload for attendance reports.
type AttendanceAnalytics struct {
	Summary struct {
		TotalEmployees Metric `json:"totalEmployees"`
		AttendanceRate Metric `json:"attendanceRate"`
		TotalHours     Metric `json:"totalHours"`
		AvgHoursPerDay Metric `json:"avgHoursPerDay"`
		LateArrivals   Metric `json:"lateArrivals"`
	} `json:"summary"`
	StatusBreakdown []StatusCount        `json:"statusBreakdown"`
	TopEmployees    []EmployeeAttendance `json:"topEmployees"`
	DateRange       *DateRange           `json:"dateRange,omitempty"`
}

// EmployeeAttendance is a per-employee attendance row.
type EmployeeAttendance struct {
	Name           string `json:"name"`
	DaysPresent    Metric `json:"daysPresent"`
	TotalHours     Metric `json:"totalHours"`
	AttendanceRate Metric `json:"attendanceRate"`
}

// TaskAnalytics is the upstream payload for task reports.
type TaskAnalytics struct {
	Summary struct {
		TotalTasks     Metric `json:"totalTasks"`
		Completed      Metric `json:"completed"`
		InProgress     Metric `json:"inProgress"`
		Overdue        Metric `json:"overdue"`
		CompletionRate Metric `json:"completionRate"`
	} `json:"summary"`
	StatusBreakdown     []StatusCount       `json:"statusBreakdown"`
	PriorityBreakdown   []StatusCount       `json:"priorityBreakdown"`
	EmployeePerformance []EmployeeTaskStats `json:"employeePerformance"`
	DateRange           *DateRange          `json:"dateRange,omitempty"`
}

// EmployeeTaskStats is a per-employee task completion row.
type EmployeeTaskStats struct {
	Name           string `json:"name"`
	Assigned       Metric `json:"assigned"`
	Completed      Metric `json:"completed"`
	CompletionRate Metric `json:"completionRate"`
}

// TravelAnalytics is the upstream payload for travel reports.
type TravelAnalytics struct {
	Summary struct {
		TotalTrips     Metric `json:"totalTrips"`
		TotalDistance  Metric `json:"totalDistance"`
		TotalAllowance Metric `json:"totalAllowance"`
		PendingClaims  Metric `json:"pendingClaims"`
	} `json:"summary"`
	ByPurpose   []CategoryAmount `json:"byPurpose"`
	RecentTrips []TravelEntry    `json:"recentTrips"`
	DateRange   *DateRange       `json:"dateRange,omitempty"`
}

// TravelEntry is a single trip row.
type TravelEntry struct {
	Employee    string `json:"employee"`
	Destination string `json:"destination"`
	Purpose     string `json:"purpose"`
	Distance    Metric `json:"distance"`
	Allowance   Metric `json:"allowance"`
	Status      string `json:"status"`
	Date        string `json:"date"`
}

// PerformanceAnalytics is the upstream payload for performance reports.
type PerformanceAnalytics struct {
	Summary struct {
		AverageScore     Metric `json:"averageScore"`
		TopPerformers    Metric `json:"topPerformers"`
		ReviewsCompleted Metric `json:"reviewsCompleted"`
		PendingReviews   Metric `json:"pendingReviews"`
	} `json:"summary"`
	RatingBands []StatusCount   `json:"ratingBands"`
	Employees   []EmployeeScore `json:"employees"`
	DateRange   *DateRange      `json:"dateRange,omitempty"`
}

// EmployeeScore is a per-employee performance row.
type EmployeeScore struct {
	Name           string `json:"name"`
	Department     string `json:"department"`
	Score          Metric `json:"score"`
	TasksCompleted Metric `json:"tasksCompleted"`
	AttendanceRate Metric `json:"attendanceRate"`
}

// LeaveAnalytics is the upstream payload for leave reports. LeaveTypes may be
// absent entirely; renderers substitute a placeholder section.
type LeaveAnalytics struct {
	Summary struct {
		TotalRequests Metric `json:"totalRequests"`
		Approved      Metric `json:"approved"`
		Pending       Metric `json:"pending"`
		Rejected      Metric `json:"rejected"`
		ApprovalRate  Metric `json:"approvalRate"`
	} `json:"summary"`
	LeaveTypes    []LeaveTypeStat `json:"leaveTypes,omitempty"`
	EmployeeStats []EmployeeLeave `json:"employeeStats"`
	DateRange     *DateRange      `json:"dateRange,omitempty"`
}

// LeaveTypeStat aggregates requests per leave type.
type LeaveTypeStat struct {
	Type  string `json:"type"`
	Count Metric `json:"count"`
	Days  Metric `json:"days"`
}

// EmployeeLeave is a per-employee leave row.
type EmployeeLeave struct {
	Name      string `json:"name"`
	TotalDays Metric `json:"totalDays"`
	Requests  Metric `json:"requests"`
}
