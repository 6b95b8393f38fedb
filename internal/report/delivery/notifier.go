package delivery

import (
	"context"

	"github.com/atlas-hrm/atlas-reports/internal/report"
	"github.com/atlas-hrm/atlas-reports/jobs"
)

// QueueNotifier enqueues saved-report notifications onto the background
// queue; the worker delivers them out of band.
type QueueNotifier struct {
	client      *jobs.Client
	requestedBy string
}

// NewQueueNotifier constructs a notifier backed by the jobs client.
func NewQueueNotifier(client *jobs.Client, requestedBy string) *QueueNotifier {
	return &QueueNotifier{client: client, requestedBy: requestedBy}
}

// NotifySaved hands the notification to the queue.
func (n *QueueNotifier) NotifySaved(ctx context.Context, sn report.SavedNotification) error {
	_, err := n.client.EnqueueReportSaved(ctx, jobs.ReportSavedPayload{
		FileName:    sn.FileName,
		FilePath:    sn.FilePath,
		RequestedBy: n.requestedBy,
	})
	return err
}
