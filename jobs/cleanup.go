package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hibiken/asynq"
)

// CleanupJob sweeps expired PDFs out of the reports directory. Accumulation
// is otherwise unbounded since exports never overwrite existing files.
type CleanupJob struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewCleanupJob constructs the retention job.
func NewCleanupJob(logger *slog.Logger) *CleanupJob {
	return &CleanupJob{logger: logger, now: time.Now}
}

// Handle processes TaskReportsCleanup tasks.
func (j *CleanupJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload ReportsCleanupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.Dir == "" || payload.RetainHours <= 0 {
		return asynq.SkipRetry
	}
	removed, err := j.Sweep(payload.Dir, time.Duration(payload.RetainHours)*time.Hour)
	if err != nil {
		return err
	}
	j.logger.Info("reports cleanup finished",
		slog.String("dir", payload.Dir),
		slog.Int("removed", removed))
	return nil
}

// Sweep removes generated PDFs older than the retention window and returns
// how many files were deleted.
func (j *CleanupJob) Sweep(dir string, retain time.Duration) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	cutoff := j.now().Add(-retain)
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".pdf") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			j.logger.Warn("remove expired report", slog.String("file", entry.Name()), slog.Any("error", err))
			continue
		}
		removed++
	}
	return removed, nil
}
