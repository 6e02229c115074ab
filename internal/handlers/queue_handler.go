package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"codeswitch-review/internal/middleware"
	"codeswitch-review/internal/models"
	"codeswitch-review/internal/service"
	"codeswitch-review/internal/store"
)

// QueueHandler serves the review queue
type QueueHandler struct {
	queue *service.QueueService
}

// NewQueueHandler creates a new queue handler
func NewQueueHandler(queue *service.QueueService) *QueueHandler {
	return &QueueHandler{queue: queue}
}

// NextPending returns the next pending item of a pool
// @Summary Get the next pending item
// @Description Returns one pending item from the pool, or 204 when the pool has no pending items. The item is not reserved for the caller.
// @Tags Queue
// @Produce json
// @Security BearerAuth
// @Param pool path string true "Pool" Enums(first_stage, second_stage)
// @Success 200 {object} models.ReviewItem "Next pending item"
// @Success 204 "No more items to review"
// @Failure 400 {object} map[string]string "Unknown pool"
// @Router /pools/{pool}/queue/next [get]
func (h *QueueHandler) NextPending(w http.ResponseWriter, r *http.Request) {
	pool, err := poolFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Unknown pool")
		return
	}

	item, err := h.queue.NextPending(pool)
	if err != nil {
		slog.Error("Failed to load next pending item", "pool", pool, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to load next item")
		return
	}
	if item == nil {
		// Empty queue is the normal terminal state, not an error
		w.WriteHeader(http.StatusNoContent)
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// DecisionRequest is the body of a decision submission
type DecisionRequest struct {
	Decision   string `json:"decision"`              // approve, edit or reject
	EditedText string `json:"edited_text,omitempty"` // required for edit unless edit_from is given
	EditFrom   string `json:"edit_from,omitempty"`   // "original" or "candidate": prefill source when edited_text is empty
}

// SubmitDecision records a reviewer decision for one item
// @Summary Submit a review decision
// @Description Records approve, edit or reject for a pending item. An edit needs the edited text, or an edit_from source to take the text from unchanged.
// @Tags Queue
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param pool path string true "Pool" Enums(first_stage, second_stage)
// @Param id path string true "Item ID"
// @Param decision body DecisionRequest true "Decision data"
// @Success 200 {object} map[string]string "Decision recorded"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 404 {object} map[string]string "Item not found"
// @Router /pools/{pool}/queue/{id}/decision [post]
func (h *QueueHandler) SubmitDecision(w http.ResponseWriter, r *http.Request) {
	pool, err := poolFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Unknown pool")
		return
	}
	id := r.PathValue("id")

	reviewer, ok := middleware.GetReviewer(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Missing session")
		return
	}

	var req DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	decision, err := models.ParseDecision(req.Decision)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Decision must be approve, edit or reject")
		return
	}

	editedText := req.EditedText
	if decision == models.DecisionEdit && editedText == "" && req.EditFrom != "" {
		editedText, err = h.editSource(pool, id, req.EditFrom)
		if err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	err = h.queue.SubmitDecision(pool, id, decision, reviewer, editedText)
	switch {
	case errors.Is(err, store.ErrNotFound):
		respondError(w, http.StatusNotFound, "Item not found")
		return
	case errors.Is(err, service.ErrEmptyEditedText):
		respondError(w, http.StatusBadRequest, "Edited text is required for an edit decision")
		return
	case err != nil:
		slog.Error("Failed to submit decision", "pool", pool, "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to submit decision")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Review submitted"})
}

// GetItem returns one item by id
// @Summary Get one review item
// @Tags Queue
// @Produce json
// @Security BearerAuth
// @Param pool path string true "Pool" Enums(first_stage, second_stage)
// @Param id path string true "Item ID"
// @Success 200 {object} models.ReviewItem "Item"
// @Failure 404 {object} map[string]string "Item not found"
// @Router /pools/{pool}/items/{id} [get]
func (h *QueueHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	pool, err := poolFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Unknown pool")
		return
	}

	item, err := h.queue.ItemByID(pool, r.PathValue("id"))
	if err != nil {
		slog.Error("Failed to get item", "pool", pool, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to get item")
		return
	}
	if item == nil {
		respondError(w, http.StatusNotFound, "Item not found")
		return
	}

	respondJSON(w, http.StatusOK, item)
}

// editSource resolves the prefill text for an edit decision submitted
// without explicit edited text.
func (h *QueueHandler) editSource(pool models.Pool, id, source string) (string, error) {
	item, err := h.queue.ItemByID(pool, id)
	if err != nil || item == nil {
		return "", errors.New("item not found")
	}

	switch source {
	case "original":
		return item.OriginalText, nil
	case "candidate":
		return item.CandidateText, nil
	}
	return "", errors.New("edit_from must be original or candidate")
}
