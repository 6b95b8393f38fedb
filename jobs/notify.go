package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/hibiken/asynq"
)

// NotifyConfig configures the saved-report notification job. SMTP fields are
// optional; without them the job only logs the hand-off.
type NotifyConfig struct {
	SMTPHost string
	SMTPPort int
	SMTPFrom string
	SMTPTo   string
}

// NotifyJob processes TaskReportSaved tasks.
type NotifyJob struct {
	cfg    NotifyConfig
	logger *slog.Logger
	send   func(addr, from string, to []string, msg []byte) error
}

// NewNotifyJob constructs the notification job.
func NewNotifyJob(cfg NotifyConfig, logger *slog.Logger) *NotifyJob {
	return &NotifyJob{
		cfg:    cfg,
		logger: logger,
		send: func(addr, from string, to []string, msg []byte) error {
			return smtp.SendMail(addr, nil, from, to, msg)
		},
	}
}

// Handle delivers the fire-and-forget notification for a saved report.
func (j *NotifyJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload ReportSavedPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	j.logger.Info("report saved",
		slog.String("file", payload.FileName),
		slog.String("path", payload.FilePath),
		slog.String("requestedBy", payload.RequestedBy))

	if j.cfg.SMTPHost == "" || j.cfg.SMTPTo == "" {
		return nil
	}
	addr := fmt.Sprintf("%s:%d", j.cfg.SMTPHost, j.cfg.SMTPPort)
	msg := []byte("Subject: Report saved: " + payload.FileName + "\r\n\r\n" +
		"Your report is available at " + payload.FilePath + "\r\n")
	if err := j.send(addr, j.cfg.SMTPFrom, []string{j.cfg.SMTPTo}, msg); err != nil {
		j.logger.Warn("send saved-report mail", slog.Any("error", err))
	}
	return nil
}
