// Package jobs wires background tasks for report notifications and storage
// retention through Asynq.
package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportSaved is the task type for saved-report notifications.
	TaskReportSaved = "report:saved"
	// TaskReportsCleanup is the task type for reports-directory retention.
	TaskReportsCleanup = "reports:cleanup"
)

// ReportSavedPayload references a stored PDF the user asked to keep.
type ReportSavedPayload struct {
	FileName    string `json:"fileName"`
	FilePath    string `json:"filePath"`
	RequestedBy string `json:"requestedBy,omitempty"`
}

// NewReportSavedTask constructs the saved-report notification task.
func NewReportSavedTask(payload ReportSavedPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportSaved, data), nil
}

// ReportsCleanupPayload parameterises one retention sweep.
type ReportsCleanupPayload struct {
	Dir         string `json:"dir"`
	RetainHours int    `json:"retainHours"`
}

// NewReportsCleanupTask constructs the retention sweep task.
func NewReportsCleanupTask(payload ReportsCleanupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportsCleanup, data), nil
}
