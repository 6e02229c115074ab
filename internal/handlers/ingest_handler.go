package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeswitch-review/internal/config"
	"codeswitch-review/internal/service"
)

// IngestHandler loads new pending items from uploaded CSV files
type IngestHandler struct {
	ingest *service.IngestService
	cfg    *config.IngestConfig
}

// NewIngestHandler creates a new ingest handler
func NewIngestHandler(ingest *service.IngestService, cfg *config.IngestConfig) *IngestHandler {
	return &IngestHandler{ingest: ingest, cfg: cfg}
}

// ValidateUpload validates an uploaded CSV without writing anything
// @Summary Validate an upload
// @Description Parses the uploaded CSV and returns its validation errors. Nothing is written to the store.
// @Tags Ingest
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param pool path string true "Pool" Enums(first_stage, second_stage)
// @Param file formData file true "CSV file, one unlabeled column of candidate texts"
// @Success 200 {object} map[string]interface{} "Validation result"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /pools/{pool}/ingest/validate [post]
func (h *IngestHandler) ValidateUpload(w http.ResponseWriter, r *http.Request) {
	if _, err := poolFromRequest(r); err != nil {
		respondError(w, http.StatusBadRequest, "Unknown pool")
		return
	}

	rows, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	errs := h.ingest.Validate(rows)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"rows":   len(rows),
		"valid":  len(errs) == 0,
		"errors": errs,
	})
}

// IngestResponse is the body returned for a completed ingestion
type IngestResponse struct {
	RunID    string `json:"run_id"`
	Pool     string `json:"pool"`
	IDPrefix string `json:"id_prefix"`
	Total    int    `json:"total"`
	Inserted int    `json:"inserted"`
	Snapshot string `json:"snapshot"`
}

// Ingest validates, snapshots and commits an uploaded CSV
// @Summary Ingest new review items
// @Description Validates the uploaded CSV, writes an audit snapshot, then inserts one pending item per row. Any validation error blocks the whole run.
// @Tags Ingest
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param pool path string true "Pool" Enums(first_stage, second_stage)
// @Param file formData file true "CSV file, one unlabeled column of candidate texts"
// @Param creator_name formData string true "Creator to record on each item"
// @Param domain formData string true "Domain to record on each item"
// @Param id_prefix formData string true "Prefix for generated item ids"
// @Success 200 {object} IngestResponse "Ingestion report"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 422 {object} map[string]interface{} "Validation errors"
// @Router /pools/{pool}/ingest [post]
func (h *IngestHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	pool, err := poolFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Unknown pool")
		return
	}

	rows, ok := h.readUpload(w, r)
	if !ok {
		return
	}

	creatorName := r.FormValue("creator_name")
	domain := r.FormValue("domain")
	idPrefix := r.FormValue("id_prefix")
	if creatorName == "" || domain == "" || idPrefix == "" {
		respondError(w, http.StatusBadRequest, "creator_name, domain and id_prefix are required")
		return
	}
	// The prefix names item ids and the snapshot file, so it must not
	// carry path elements.
	if strings.ContainsAny(idPrefix, `/\`) || strings.Contains(idPrefix, "..") {
		respondError(w, http.StatusBadRequest, "id_prefix must not contain path separators")
		return
	}

	// Snapshot written before the insert step, usable for audit/retry
	snapshotPath := filepath.Join(h.cfg.SnapshotDir,
		fmt.Sprintf("ingest_%s_%s_%d.csv", pool, idPrefix, time.Now().Unix()))
	snapshot, err := os.Create(snapshotPath)
	if err != nil {
		slog.Error("Failed to create snapshot file", "path", snapshotPath, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create snapshot")
		return
	}
	defer snapshot.Close()

	progress := func(done, total int) {
		slog.Debug("Ingest progress", "pool", pool, "done", done, "total", total)
	}

	report, valErrs, err := h.ingest.Run(pool, rows, creatorName, domain, idPrefix, snapshot, progress)
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		respondJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  "Validation failed, nothing was ingested",
			"errors": valErrs,
		})
		return
	case err != nil:
		// Items inserted before the failure remain; re-running with the
		// same id prefix overwrites them.
		inserted := 0
		if report != nil {
			inserted = report.Inserted
		}
		slog.Error("Ingestion failed", "pool", pool, "inserted", inserted, "error", err)
		respondError(w, http.StatusInternalServerError, "Ingestion failed partway; re-run with the same id prefix to retry")
		return
	}

	respondJSON(w, http.StatusOK, IngestResponse{
		RunID:    report.RunID,
		Pool:     string(report.Pool),
		IDPrefix: report.IDPrefix,
		Total:    report.Total,
		Inserted: report.Inserted,
		Snapshot: snapshotPath,
	})
}

// readUpload parses the multipart "file" field into CSV rows
func (h *IngestHandler) readUpload(w http.ResponseWriter, r *http.Request) ([][]string, bool) {
	if err := r.ParseMultipartForm(h.cfg.MaxUploadBytes); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart form")
		return nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		respondError(w, http.StatusBadRequest, "A CSV file upload is required")
		return nil, false
	}
	defer file.Close()

	rows, err := h.ingest.ParseCSV(file)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Could not parse the uploaded file as CSV")
		return nil, false
	}

	return rows, true
}
