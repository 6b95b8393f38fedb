package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// defaultOpenCooldown is the debounce window applied to OpenPDF. A second
// invocation inside the window is dropped silently; the guard clears on its
// own once the window elapses, whether or not the viewer finished.
const defaultOpenCooldown = 3 * time.Second

// RenderClient converts a composed HTML document into PDF bytes.
type RenderClient interface {
	RenderHTML(ctx context.Context, html string) ([]byte, error)
}

// ComposeFunc wraps a fragment into a complete HTML document.
type ComposeFunc func(title, dateLabel, fragment string, opts Options) string

// Viewer opens a stored PDF in the platform file viewer.
type Viewer interface {
	Open(ctx context.Context, path string) error
}

// Sharer hands a stored PDF to an external sharing mechanism.
type Sharer interface {
	Available() bool
	Share(ctx context.Context, path string) error
}

// SavedNotification references a stored PDF the user asked to keep.
type SavedNotification struct {
	FileName string `json:"fileName"`
	FilePath string `json:"filePath"`
}

// Notifier delivers a fire-and-forget saved-report notification.
type Notifier interface {
	NotifySaved(ctx context.Context, n SavedNotification) error
}

// ExportRecord describes one completed generation for the history log.
type ExportRecord struct {
	Type      Type
	Title     string
	FileName  string
	FilePath  string
	Theme     Theme
	SizeBytes int64
}

// Recorder persists export records.
type Recorder interface {
	RecordExport(ctx context.Context, rec ExportRecord) error
}

// Clock abstracts time for the debounce window and filename stamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// ServiceConfig collects the collaborators of the export service. Renderer,
// Compose and ReportsDir are required; delivery collaborators and the
// recorder are optional.
type ServiceConfig struct {
	Renderer     RenderClient
	Compose      ComposeFunc
	ReportsDir   string
	Viewer       Viewer
	Sharer       Sharer
	Notifier     Notifier
	Recorder     Recorder
	Logger       *slog.Logger
	Clock        Clock
	OpenCooldown time.Duration
}

// Service orchestrates document composition, PDF rendering, persistence and
// the user-facing delivery actions. Within one GeneratePDF call the steps
// run strictly sequentially; across calls, timestamp-unique filenames keep
// concurrent exports from touching each other's files.
type Service struct {
	renderer   RenderClient
	compose    ComposeFunc
	reportsDir string
	viewer     Viewer
	sharer     Sharer
	notifier   Notifier
	recorder   Recorder
	logger     *slog.Logger
	clock      Clock
	cooldown   time.Duration

	mu            sync.Mutex
	openBusyUntil time.Time
	lastStamp     int64
}

// NewService validates the configuration and constructs the service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if cfg.Renderer == nil {
		return nil, fmt.Errorf("report: render client required")
	}
	if cfg.Compose == nil {
		return nil, fmt.Errorf("report: compose func required")
	}
	if cfg.ReportsDir == "" {
		return nil, fmt.Errorf("report: reports directory required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clock := cfg.Clock
	if clock == nil {
		clock = systemClock{}
	}
	cooldown := cfg.OpenCooldown
	if cooldown <= 0 {
		cooldown = defaultOpenCooldown
	}
	return &Service{
		renderer:   cfg.Renderer,
		compose:    cfg.Compose,
		reportsDir: cfg.ReportsDir,
		viewer:     cfg.Viewer,
		sharer:     cfg.Sharer,
		notifier:   cfg.Notifier,
		recorder:   cfg.Recorder,
		logger:     logger,
		clock:      clock,
		cooldown:   cooldown,
	}, nil
}

// GeneratePDF composes, renders and persists a PDF using default options
// for the given theme.
func (s *Service) GeneratePDF(ctx context.Context, title, content string, t Type, theme Theme) (GeneratedReport, error) {
	return s.Generate(ctx, title, content, t, Options{Theme: theme})
}

// Generate composes the fragment into a full document, renders it through
// the PDF client, writes a temporary artifact and moves it into the durable
// reports directory. The temporary file is removed whenever its location
// differs from the final one.
func (s *Service) Generate(ctx context.Context, title, fragment string, t Type, opts Options) (GeneratedReport, error) {
	if _, err := ParseType(string(t)); err != nil {
		return GeneratedReport{}, err
	}

	now := s.clock.Now()
	doc := s.compose(title, now.Format("January 2, 2006"), fragment, opts)

	pdf, err := s.renderer.RenderHTML(ctx, doc)
	if err != nil {
		return GeneratedReport{}, fmt.Errorf("report: render %s: %w", t, err)
	}

	if err := s.ensureReportsDir(); err != nil {
		return GeneratedReport{}, err
	}

	fileName := fmt.Sprintf("%s_report_%d.pdf", t, s.nextStamp(now))
	finalPath := filepath.Join(s.reportsDir, fileName)

	tmp, err := os.CreateTemp("", "atlas-report-*.pdf")
	if err != nil {
		return GeneratedReport{}, fmt.Errorf("report: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(pdf); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return GeneratedReport{}, fmt.Errorf("report: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return GeneratedReport{}, fmt.Errorf("report: close temp file: %w", err)
	}

	if err := moveFile(tmpPath, finalPath); err != nil {
		_ = os.Remove(tmpPath)
		return GeneratedReport{}, fmt.Errorf("report: persist %s: %w", fileName, err)
	}

	gen := GeneratedReport{FilePath: finalPath, FileName: fileName}
	s.recordExport(ctx, ExportRecord{
		Type:      t,
		Title:     title,
		FileName:  fileName,
		FilePath:  finalPath,
		Theme:     opts.Theme,
		SizeBytes: int64(len(pdf)),
	})
	s.logger.Info("report generated",
		slog.String("type", string(t)),
		slog.String("file", fileName),
		slog.Int("bytes", len(pdf)))
	return gen, nil
}

// OpenPDF hands the file to the platform viewer. Rapid repeated calls are
// debounced: a call landing inside the cooldown window is dropped silently.
func (s *Service) OpenPDF(ctx context.Context, path string) error {
	if err := s.statFile(path); err != nil {
		return err
	}
	if s.viewer == nil {
		return fmt.Errorf("report: no viewer configured")
	}

	s.mu.Lock()
	now := s.clock.Now()
	if now.Before(s.openBusyUntil) {
		s.mu.Unlock()
		s.logger.Debug("open request dropped inside cooldown", slog.String("path", path))
		return nil
	}
	s.openBusyUntil = now.Add(s.cooldown)
	s.mu.Unlock()

	if err := s.viewer.Open(ctx, path); err != nil {
		return fmt.Errorf("report: open pdf: %w", err)
	}
	return nil
}

// SharePDF verifies the sharing mechanism is available before invoking it.
func (s *Service) SharePDF(ctx context.Context, path string) error {
	if err := s.statFile(path); err != nil {
		return err
	}
	if s.sharer == nil || !s.sharer.Available() {
		return ErrShareUnavailable
	}
	if err := s.sharer.Share(ctx, path); err != nil {
		return fmt.Errorf("report: share pdf: %w", err)
	}
	return nil
}

// SavePDF fires a notification referencing the stored file so the user can
// find it later. Delivery is not guaranteed.
func (s *Service) SavePDF(ctx context.Context, path, fileName string) error {
	if err := s.statFile(path); err != nil {
		return err
	}
	if s.notifier == nil {
		return fmt.Errorf("report: no notifier configured")
	}
	if err := s.notifier.NotifySaved(ctx, SavedNotification{FileName: fileName, FilePath: path}); err != nil {
		return fmt.Errorf("report: save notification: %w", err)
	}
	return nil
}

// ReportsDir returns the durable reports directory.
func (s *Service) ReportsDir() string { return s.reportsDir }

// ensureReportsDir creates the reports directory tree. Safe to call before
// every generation.
func (s *Service) ensureReportsDir() error {
	if err := os.MkdirAll(s.reportsDir, 0o755); err != nil {
		return fmt.Errorf("report: ensure reports dir: %w", err)
	}
	return nil
}

// nextStamp returns a strictly increasing millisecond stamp, bumping past
// the previous one when two generations land in the same millisecond.
func (s *Service) nextStamp(now time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	stamp := now.UnixMilli()
	if stamp <= s.lastStamp {
		stamp = s.lastStamp + 1
	}
	s.lastStamp = stamp
	return stamp
}

func (s *Service) statFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return fmt.Errorf("report: stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrFileNotFound, path)
	}
	return nil
}

func (s *Service) recordExport(ctx context.Context, rec ExportRecord) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordExport(ctx, rec); err != nil {
		s.logger.Warn("record export history", slog.Any("error", err))
	}
}

// moveFile renames src to dst, falling back to copy-and-delete across
// filesystems. The source never survives a successful move.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		_ = in.Close()
		return err
	}
	_, copyErr := io.Copy(out, in)
	_ = in.Close()
	if err := out.Close(); copyErr == nil {
		copyErr = err
	}
	if copyErr != nil {
		_ = os.Remove(dst)
		return copyErr
	}
	return os.Remove(src)
}
