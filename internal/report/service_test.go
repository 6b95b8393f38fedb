package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderClient struct {
	calls int
	err   error
	pdf   []byte
}

func (f *fakeRenderClient) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.pdf != nil {
		return f.pdf, nil
	}
	return []byte("%PDF-1.4 MOCK-CONTENT"), nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type fakeViewer struct {
	calls int
	err   error
}

func (v *fakeViewer) Open(ctx context.Context, path string) error {
	v.calls++
	return v.err
}

type fakeSharer struct {
	available bool
	calls     int
}

func (s *fakeSharer) Available() bool { return s.available }

func (s *fakeSharer) Share(ctx context.Context, path string) error {
	s.calls++
	return nil
}

type fakeNotifier struct {
	calls []SavedNotification
	err   error
}

func (n *fakeNotifier) NotifySaved(ctx context.Context, sn SavedNotification) error {
	n.calls = append(n.calls, sn)
	return n.err
}

type fakeRecorder struct {
	records []ExportRecord
}

func (r *fakeRecorder) RecordExport(ctx context.Context, rec ExportRecord) error {
	r.records = append(r.records, rec)
	return nil
}

func passthroughCompose(title, dateLabel, fragment string, opts Options) string {
	return "<!DOCTYPE html><html><body>" + fragment + "</body></html>"
}

func newTestService(t *testing.T, mutate func(*ServiceConfig)) (*Service, *fakeClock, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "reports")
	clock := &fakeClock{now: time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)}
	cfg := ServiceConfig{
		Renderer:     &fakeRenderClient{},
		Compose:      passthroughCompose,
		ReportsDir:   dir,
		Viewer:       &fakeViewer{},
		Sharer:       &fakeSharer{available: true},
		Notifier:     &fakeNotifier{},
		Clock:        clock,
		OpenCooldown: 3 * time.Second,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	svc, err := NewService(cfg)
	require.NoError(t, err)
	return svc, clock, dir
}

func TestGeneratePDF_StoresFileInReportsDir(t *testing.T) {
	svc, _, dir := newTestService(t, nil)

	gen, err := svc.GeneratePDF(context.Background(), "Expense Report", "<div>stats</div>", TypeExpense, ThemeDark)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^expense_report_\d+\.pdf$`), gen.FileName)
	assert.Equal(t, filepath.Join(dir, gen.FileName), gen.FilePath)

	data, err := os.ReadFile(gen.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 MOCK-CONTENT", string(data))
}

func TestGeneratePDF_AllSupportedTypes(t *testing.T) {
	svc, _, dir := newTestService(t, nil)

	for _, reportType := range Types {
		t.Run(string(reportType), func(t *testing.T) {
			gen, err := svc.GeneratePDF(context.Background(), "Report", "<div></div>", reportType, ThemeLight)
			require.NoError(t, err)
			assert.Regexp(t, fmt.Sprintf(`^%s_report_\d+\.pdf$`, reportType), gen.FileName)
			assert.Equal(t, dir, filepath.Dir(gen.FilePath))
			_, err = os.Stat(gen.FilePath)
			require.NoError(t, err)
		})
	}
}

func TestGeneratePDF_UnsupportedType(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	_, err := svc.GeneratePDF(context.Background(), "Report", "<div></div>", Type("payroll"), ThemeLight)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)
}

func TestGeneratePDF_NoTempArtifactsLeftBehind(t *testing.T) {
	svc, _, dir := newTestService(t, nil)

	_, err := svc.GeneratePDF(context.Background(), "Task Report", "<div></div>", TypeTask, ThemeLight)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Regexp(t, `^task_report_\d+\.pdf$`, entries[0].Name())
}

func TestGeneratePDF_SameMillisecondGetsDistinctNames(t *testing.T) {
	// The clock never advances, so both calls land in the same millisecond.
	svc, _, _ := newTestService(t, nil)

	first, err := svc.GeneratePDF(context.Background(), "Leave Report", "<div></div>", TypeLeave, ThemeLight)
	require.NoError(t, err)
	second, err := svc.GeneratePDF(context.Background(), "Leave Report", "<div></div>", TypeLeave, ThemeLight)
	require.NoError(t, err)

	assert.NotEqual(t, first.FileName, second.FileName)
	_, err = os.Stat(first.FilePath)
	require.NoError(t, err)
	_, err = os.Stat(second.FilePath)
	require.NoError(t, err)
}

func TestGeneratePDF_RenderFailure(t *testing.T) {
	renderErr := errors.New("gotenberg down")
	svc, _, dir := newTestService(t, func(cfg *ServiceConfig) {
		cfg.Renderer = &fakeRenderClient{err: renderErr}
	})

	_, err := svc.GeneratePDF(context.Background(), "Expense Report", "<div></div>", TypeExpense, ThemeLight)
	require.Error(t, err)
	assert.ErrorIs(t, err, renderErr)

	// Nothing persisted on failure.
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGeneratePDF_RecordsHistory(t *testing.T) {
	recorder := &fakeRecorder{}
	svc, _, _ := newTestService(t, func(cfg *ServiceConfig) {
		cfg.Recorder = recorder
	})

	gen, err := svc.Generate(context.Background(), "Travel Report", "<div></div>", TypeTravel, Options{Theme: ThemeDark})
	require.NoError(t, err)

	require.Len(t, recorder.records, 1)
	rec := recorder.records[0]
	assert.Equal(t, TypeTravel, rec.Type)
	assert.Equal(t, "Travel Report", rec.Title)
	assert.Equal(t, gen.FileName, rec.FileName)
	assert.Equal(t, ThemeDark, rec.Theme)
	assert.Greater(t, rec.SizeBytes, int64(0))
}

func TestOpenPDF_DebouncesWithinCooldown(t *testing.T) {
	viewer := &fakeViewer{}
	svc, clock, _ := newTestService(t, func(cfg *ServiceConfig) {
		cfg.Viewer = viewer
	})
	gen, err := svc.GeneratePDF(context.Background(), "Expense Report", "<div></div>", TypeExpense, ThemeLight)
	require.NoError(t, err)

	require.NoError(t, svc.OpenPDF(context.Background(), gen.FilePath))
	// Second call inside the window is dropped silently.
	require.NoError(t, svc.OpenPDF(context.Background(), gen.FilePath))
	assert.Equal(t, 1, viewer.calls)

	clock.Advance(3*time.Second + time.Millisecond)
	require.NoError(t, svc.OpenPDF(context.Background(), gen.FilePath))
	assert.Equal(t, 2, viewer.calls)
}

func TestOpenPDF_FileNotFound(t *testing.T) {
	viewer := &fakeViewer{}
	svc, _, dir := newTestService(t, func(cfg *ServiceConfig) {
		cfg.Viewer = viewer
	})

	err := svc.OpenPDF(context.Background(), filepath.Join(dir, "missing.pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.Zero(t, viewer.calls)
}

func TestSharePDF_UnavailableSharer(t *testing.T) {
	sharer := &fakeSharer{available: false}
	svc, _, _ := newTestService(t, func(cfg *ServiceConfig) {
		cfg.Sharer = sharer
	})
	gen, err := svc.GeneratePDF(context.Background(), "Expense Report", "<div></div>", TypeExpense, ThemeLight)
	require.NoError(t, err)

	err = svc.SharePDF(context.Background(), gen.FilePath)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShareUnavailable)
	assert.Zero(t, sharer.calls)
}

func TestSharePDF_FileNotFound(t *testing.T) {
	sharer := &fakeSharer{available: true}
	svc, _, dir := newTestService(t, func(cfg *ServiceConfig) {
		cfg.Sharer = sharer
	})

	err := svc.SharePDF(context.Background(), filepath.Join(dir, "missing.pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.Zero(t, sharer.calls)
}

func TestSharePDF_CopiesThroughSharer(t *testing.T) {
	sharer := &fakeSharer{available: true}
	svc, _, _ := newTestService(t, func(cfg *ServiceConfig) {
		cfg.Sharer = sharer
	})
	gen, err := svc.GeneratePDF(context.Background(), "Expense Report", "<div></div>", TypeExpense, ThemeLight)
	require.NoError(t, err)

	require.NoError(t, svc.SharePDF(context.Background(), gen.FilePath))
	assert.Equal(t, 1, sharer.calls)
}

func TestSavePDF_NotifiesWithFileReference(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, _, _ := newTestService(t, func(cfg *ServiceConfig) {
		cfg.Notifier = notifier
	})
	gen, err := svc.GeneratePDF(context.Background(), "Leave Report", "<div></div>", TypeLeave, ThemeLight)
	require.NoError(t, err)

	require.NoError(t, svc.SavePDF(context.Background(), gen.FilePath, gen.FileName))
	require.Len(t, notifier.calls, 1)
	assert.Equal(t, gen.FileName, notifier.calls[0].FileName)
	assert.Equal(t, gen.FilePath, notifier.calls[0].FilePath)
}

func TestSavePDF_FileNotFound(t *testing.T) {
	notifier := &fakeNotifier{}
	svc, _, dir := newTestService(t, func(cfg *ServiceConfig) {
		cfg.Notifier = notifier
	})

	err := svc.SavePDF(context.Background(), filepath.Join(dir, "missing.pdf"), "missing.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileNotFound)
	assert.Empty(t, notifier.calls)
}

func TestNewService_RequiresCollaborators(t *testing.T) {
	_, err := NewService(ServiceConfig{Compose: passthroughCompose, ReportsDir: "x"})
	require.Error(t, err)

	_, err = NewService(ServiceConfig{Renderer: &fakeRenderClient{}, ReportsDir: "x"})
	require.Error(t, err)

	_, err = NewService(ServiceConfig{Renderer: &fakeRenderClient{}, Compose: passthroughCompose})
	require.Error(t, err)
}
