// Package history persists a log of generated reports.
package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atlas-hrm/atlas-reports/internal/report"
	"github.com/atlas-hrm/atlas-reports/internal/shared"
)

// uniqueViolation is the PostgreSQL error code for duplicate keys.
const uniqueViolation = "23505"

// Entry is one persisted export record.
type Entry struct {
	ID          uuid.UUID `json:"id"`
	ReportType  string    `json:"reportType"`
	Title       string    `json:"title"`
	FileName    string    `json:"fileName"`
	FilePath    string    `json:"filePath"`
	Theme       string    `json:"theme"`
	RequestedBy string    `json:"requestedBy"`
	SizeBytes   int64     `json:"sizeBytes"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Repository provides PostgreSQL backed persistence for export history.
type Repository struct {
	pool        *pgxpool.Pool
	requestedBy string
}

// NewRepository constructs a repository. requestedBy labels records created
// by this instance.
func NewRepository(pool *pgxpool.Pool, requestedBy string) *Repository {
	return &Repository{pool: pool, requestedBy: requestedBy}
}

// RecordExport stores a completed generation. Implements report.Recorder.
func (r *Repository) RecordExport(ctx context.Context, rec report.ExportRecord) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO reports_history (id, report_type, title, file_name, file_path, theme, requested_by, size_bytes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`,
		uuid.New(), string(rec.Type), rec.Title, rec.FileName, rec.FilePath, string(rec.Theme), r.requestedBy, rec.SizeBytes,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("history: duplicate export record %s: %w", rec.FileName, err)
		}
		return fmt.Errorf("history: insert export record: %w", err)
	}
	return nil
}

// List returns export history newest first with pagination metadata.
func (r *Repository) List(ctx context.Context, page, perPage int) ([]Entry, shared.Pagination, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM reports_history`).Scan(&total); err != nil {
		return nil, shared.Pagination{}, fmt.Errorf("history: count: %w", err)
	}
	pagination := shared.NewPagination(page, perPage, total)

	rows, err := r.pool.Query(ctx, `
		SELECT id, report_type, title, file_name, file_path, theme, requested_by, size_bytes, created_at
		FROM reports_history
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		pagination.PerPage, pagination.Offset(),
	)
	if err != nil {
		return nil, shared.Pagination{}, fmt.Errorf("history: list: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.ReportType, &e.Title, &e.FileName, &e.FilePath, &e.Theme, &e.RequestedBy, &e.SizeBytes, &e.CreatedAt); err != nil {
			return nil, shared.Pagination{}, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, shared.Pagination{}, err
	}
	return entries, pagination, nil
}
