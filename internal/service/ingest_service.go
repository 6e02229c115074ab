package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"

	"codeswitch-review/internal/models"
	"codeswitch-review/internal/store"
)

// OriginalTextSentinel marks ingested rows whose first-stage original
// text is not available at ingestion time.
const OriginalTextSentinel = "unknown"

// ErrValidationFailed blocks a commit when the uploaded table failed
// validation. No item is written until every error is resolved.
var ErrValidationFailed = errors.New("ingest validation failed")

// ValidationError describes one problem in an uploaded table.
type ValidationError struct {
	Row     int    `json:"row"` // 0-based, -1 for table-level errors
	Column  int    `json:"column"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Row < 0 {
		return e.Message
	}
	return fmt.Sprintf("row %d, column %d: %s", e.Row, e.Column, e.Message)
}

// IngestService validates and loads new pending items from uploaded
// tabular files into a pool.
type IngestService struct {
	store store.Store
	now   func() time.Time
}

// NewIngestService creates a new ingest service
func NewIngestService(st store.Store) *IngestService {
	return &IngestService{store: st, now: time.Now}
}

// ParseCSV reads an uploaded file: one unlabeled column of candidate
// texts, one row per item, no header row.
func (s *IngestService) ParseCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	return rows, nil
}

// Validate checks the uploaded table. Any returned error blocks the
// whole ingestion: the gate is all-or-nothing.
func (s *IngestService) Validate(rows [][]string) []ValidationError {
	var errs []ValidationError

	if len(rows) == 0 {
		return append(errs, ValidationError{Row: -1, Column: -1, Message: "table has no rows"})
	}

	for i, row := range rows {
		if len(row) == 0 {
			errs = append(errs, ValidationError{Row: i, Column: -1, Message: "row has no columns"})
			continue
		}
		for j, cell := range row {
			if cell == "" {
				errs = append(errs, ValidationError{Row: i, Column: j, Message: "cell is empty"})
			}
		}
	}

	return errs
}

// BuildItems turns validated rows into pending review items. Each row
// gets an id of the form {idPrefix}_{rowIndex}; the first column is the
// candidate text. The original text is not available at this point, so
// it is set to a sentinel.
func (s *IngestService) BuildItems(rows [][]string, creatorName, domain, idPrefix string) []models.ReviewItem {
	items := make([]models.ReviewItem, 0, len(rows))
	now := s.now().UTC()

	for i, row := range rows {
		items = append(items, models.ReviewItem{
			ID:            fmt.Sprintf("%s_%d", idPrefix, i),
			OriginalText:  OriginalTextSentinel,
			CandidateText: row[0],
			CreatorName:   creatorName,
			Domain:        domain,
			Status:        models.StatusPending,
			Pulled:        false,
			CreatedAt:     now,
		})
	}

	return items
}

// Snapshot writes an audit CSV of the prepared rows. It is written
// before the insert step so a failed commit can be retried from it.
func (s *IngestService) Snapshot(w io.Writer, items []models.ReviewItem) error {
	writer := csv.NewWriter(w)

	for _, item := range items {
		record := []string{
			item.CandidateText,
			item.ID,
			item.OriginalText,
			item.CreatorName,
			item.Domain,
			string(item.Status),
			strconv.FormatBool(item.Pulled),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write snapshot row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// Commit inserts the prepared items one by one. It is not atomic: a
// failure partway leaves the earlier inserts in the store, and re-running
// with the same id scheme overwrites them. The progress callback receives
// (done, total) after every insert.
func (s *IngestService) Commit(pool models.Pool, items []models.ReviewItem, progress func(done, total int)) (*models.IngestReport, error) {
	report := &models.IngestReport{
		RunID: uuid.NewString(),
		Pool:  pool,
		Total: len(items),
	}

	for i, item := range items {
		if err := s.store.Insert(pool, item); err != nil {
			slog.Error("Ingest commit failed partway",
				"run_id", report.RunID, "pool", pool, "inserted", report.Inserted, "total", report.Total, "error", err)
			return report, fmt.Errorf("commit item %s: %w", item.ID, err)
		}
		report.Inserted = i + 1
		if progress != nil {
			progress(report.Inserted, report.Total)
		}
	}

	return report, nil
}

// Run performs the full ingestion: validate, build, snapshot, commit.
// Validation errors block the commit entirely.
func (s *IngestService) Run(pool models.Pool, rows [][]string, creatorName, domain, idPrefix string, snapshot io.Writer, progress func(done, total int)) (*models.IngestReport, []ValidationError, error) {
	if errs := s.Validate(rows); len(errs) > 0 {
		return nil, errs, ErrValidationFailed
	}

	items := s.BuildItems(rows, creatorName, domain, idPrefix)

	if snapshot != nil {
		if err := s.Snapshot(snapshot, items); err != nil {
			return nil, nil, fmt.Errorf("write snapshot: %w", err)
		}
	}

	report, err := s.Commit(pool, items, progress)
	if report != nil {
		report.IDPrefix = idPrefix
	}
	if err != nil {
		return report, nil, err
	}

	return report, nil, nil
}
