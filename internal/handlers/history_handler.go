package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"codeswitch-review/internal/middleware"
	"codeswitch-review/internal/service"
	"codeswitch-review/internal/store"
)

// HistoryHandler serves a reviewer's past decisions
type HistoryHandler struct {
	history *service.HistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(history *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{history: history}
}

// GetHistory returns the session reviewer's decision history
// @Summary Get review history
// @Description Returns the reviewer's past decisions, newest first. Pulled items are excluded.
// @Tags History
// @Produce json
// @Security BearerAuth
// @Param pool path string true "Pool" Enums(first_stage, second_stage)
// @Param limit query int false "Maximum number of entries (default 20)"
// @Success 200 {array} models.ReviewItem "History entries"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /pools/{pool}/history [get]
func (h *HistoryHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	pool, err := poolFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Unknown pool")
		return
	}

	reviewer, ok := middleware.GetReviewer(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing session")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			respondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
	}

	items, err := h.history.History(pool, reviewer, limit)
	if err != nil {
		slog.Error("Failed to get history", "pool", pool, "reviewer", reviewer, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to get history")
		return
	}

	respondJSON(w, http.StatusOK, items)
}

// ReviseRequest is the body of a history revision
type ReviseRequest struct {
	NewText string `json:"new_text"`
}

// ReviseEntry rewrites the reviewed text of a past decision
// @Summary Revise a past decision
// @Description Overwrites the reviewed text of an already-decided item, forcing it to edit status with a fresh timestamp
// @Tags History
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pool path string true "Pool" Enums(first_stage, second_stage)
// @Param id path string true "Item ID"
// @Param revision body ReviseRequest true "Revision data"
// @Success 200 {object} map[string]string "Entry revised"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 409 {object} map[string]string "Item not decided yet"
// @Router /pools/{pool}/history/{id} [put]
func (h *HistoryHandler) ReviseEntry(w http.ResponseWriter, r *http.Request) {
	pool, err := poolFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Unknown pool")
		return
	}
	id := r.PathValue("id")

	var req ReviseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = h.history.ReviseEntry(pool, id, req.NewText)
	switch {
	case errors.Is(err, service.ErrEmptyEditedText):
		respondError(w, http.StatusBadRequest, "New text is required")
		return
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "Item not found")
		return
	case errors.Is(err, service.ErrNotDecided):
		respondError(w, http.StatusConflict, "Item has not been decided yet")
		return
	case err != nil:
		slog.Error("Failed to revise entry", "pool", pool, "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to revise entry")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Entry revised"})
}
