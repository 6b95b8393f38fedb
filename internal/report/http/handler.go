// Package reporthttp exposes the report export and delivery endpoints.
package reporthttp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/atlas-hrm/atlas-reports/internal/analytics"
	"github.com/atlas-hrm/atlas-reports/internal/observability"
	"github.com/atlas-hrm/atlas-reports/internal/platform/httpx"
	"github.com/atlas-hrm/atlas-reports/internal/report"
	"github.com/atlas-hrm/atlas-reports/internal/report/history"
	"github.com/atlas-hrm/atlas-reports/internal/report/render"
	"github.com/atlas-hrm/atlas-reports/internal/shared"
)

// ExportService is the slice of the report service the handler depends on.
type ExportService interface {
	Generate(ctx context.Context, title, fragment string, t report.Type, opts report.Options) (report.GeneratedReport, error)
	OpenPDF(ctx context.Context, path string) error
	SharePDF(ctx context.Context, path string) error
	SavePDF(ctx context.Context, path, fileName string) error
	ReportsDir() string
}

// PayloadFetcher returns the typed analytics payload for a report type.
type PayloadFetcher interface {
	Fetch(ctx context.Context, t report.Type) (any, error)
}

// HistoryLister lists persisted export records.
type HistoryLister interface {
	List(ctx context.Context, page, perPage int) ([]history.Entry, shared.Pagination, error)
}

// sections are the report cards offered to clients. Titles follow the
// dashboard naming; the card is immutable for its lifetime.
var sections = []report.Section{
	{Type: report.TypeExpense, Title: "Expense Report", Description: "Spending totals, approvals and category breakdown"},
	{Type: report.TypeAttendance, Title: "Attendance Report", Description: "Daily presence, working hours and late arrivals"},
	{Type: report.TypeTask, Title: "Task Report", Description: "Task status, priority and per-employee completion"},
	{Type: report.TypeTravel, Title: "Travel Report", Description: "Trips, distance and allowance claims"},
	{Type: report.TypePerformance, Title: "Performance Report", Description: "Review scores and rating distribution"},
	{Type: report.TypeLeave, Title: "Leave Report", Description: "Leave requests, balances and type breakdown"},
}

// Handler serves report endpoints.
type Handler struct {
	logger   *slog.Logger
	service  ExportService
	fetcher  PayloadFetcher
	history  HistoryLister
	metrics  *observability.Metrics
	validate *validator.Validate
}

// NewHandler constructs the report handler. History and metrics are optional.
func NewHandler(logger *slog.Logger, service ExportService, fetcher PayloadFetcher, hist HistoryLister, metrics *observability.Metrics) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		fetcher:  fetcher,
		history:  hist,
		metrics:  metrics,
		validate: validator.New(),
	}
}

// MountRoutes registers report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/sections", h.sections)
	r.Get("/", h.list)
	r.Post("/{type}/export", h.export)
	r.Get("/files/{name}", h.download)
	r.Post("/files/{name}/open", h.open)
	r.Post("/files/{name}/share", h.share)
	r.Post("/files/{name}/save", h.save)
}

func (h *Handler) sections(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, sections)
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	reportType, err := report.ParseType(chi.URLParam(r, "type"))
	if err != nil {
		h.respondError(w, err)
		return
	}

	var req ExportRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Invalid Body", "request body must be valid JSON")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	start := time.Now()
	gen, err := h.runExport(r.Context(), reportType, req)
	h.metrics.ObserveExport(string(reportType), err, time.Since(start))
	if err != nil {
		h.logger.Error("export report",
			slog.String("type", string(reportType)),
			slog.Any("error", err))
		h.respondError(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, ExportResponse{FilePath: gen.FilePath, FileName: gen.FileName})
}

// runExport is the full export pipeline: fetch the typed payload, render the
// fragment, then generate and persist the PDF. The fetched payload is passed
// to the renderer already decoded, never as raw JSON.
func (h *Handler) runExport(ctx context.Context, t report.Type, req ExportRequest) (report.GeneratedReport, error) {
	payload, err := h.fetcher.Fetch(ctx, t)
	if err != nil {
		return report.GeneratedReport{}, err
	}

	opts := req.options()
	fragment, err := render.Fragment(t, payload, opts)
	if err != nil {
		return report.GeneratedReport{}, err
	}

	title := req.Title
	if title == "" {
		title = sectionTitle(t)
	}
	return h.service.Generate(ctx, title, fragment, t, opts)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		httpx.Problem(w, http.StatusNotImplemented, "History Disabled", "export history is not configured")
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	entries, pagination, err := h.history.List(r.Context(), page, perPage)
	if err != nil {
		h.logger.Error("list report history", slog.Any("error", err))
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"entries":    entries,
		"pagination": pagination,
	})
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	path, ok := h.storedFilePath(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename="+filepath.Base(path))
	http.ServeFile(w, r, path)
}

func (h *Handler) open(w http.ResponseWriter, r *http.Request) {
	path, ok := h.storedFilePath(w, r)
	if !ok {
		return
	}
	if err := h.service.OpenPDF(r.Context(), path); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]string{"status": "opening"})
}

func (h *Handler) share(w http.ResponseWriter, r *http.Request) {
	path, ok := h.storedFilePath(w, r)
	if !ok {
		return
	}
	if err := h.service.SharePDF(r.Context(), path); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "shared"})
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	path, ok := h.storedFilePath(w, r)
	if !ok {
		return
	}
	if err := h.service.SavePDF(r.Context(), path, filepath.Base(path)); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]string{"status": "saved"})
}

// storedFilePath resolves the {name} URL parameter against the reports
// directory, rejecting traversal attempts.
func (h *Handler) storedFilePath(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := chi.URLParam(r, "name")
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		httpx.Problem(w, http.StatusBadRequest, "Invalid File Name", "file name must not contain path separators")
		return "", false
	}
	if !strings.HasSuffix(name, ".pdf") {
		httpx.Problem(w, http.StatusBadRequest, "Invalid File Name", "only pdf files are served")
		return "", false
	}
	return filepath.Join(h.service.ReportsDir(), name), true
}

// respondError maps pipeline errors onto problem responses. The handler is
// the single point converting errors into user-facing failures; no retry
// happens here.
func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, report.ErrUnsupportedType):
		httpx.Problem(w, http.StatusBadRequest, "Unsupported Report Type", err.Error())
	case errors.Is(err, report.ErrFileNotFound):
		httpx.Problem(w, http.StatusNotFound, "File Not Found", err.Error())
	case errors.Is(err, report.ErrShareUnavailable):
		httpx.Problem(w, http.StatusServiceUnavailable, "Sharing Unavailable", err.Error())
	case errors.Is(err, analytics.ErrUpstreamStatus):
		httpx.Problem(w, http.StatusBadGateway, "Upstream Fetch Failed", err.Error())
	default:
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func sectionTitle(t report.Type) string {
	for _, s := range sections {
		if s.Type == t {
			return s.Title
		}
	}
	return "Report"
}
