package handlers

import (
	"log/slog"
	"net/http"

	"codeswitch-review/internal/middleware"
	"codeswitch-review/internal/service"
)

// AnalyticsHandler serves aggregate reviewer statistics
type AnalyticsHandler struct {
	analytics *service.AnalyticsService
	progress  *service.ProgressService
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analytics *service.AnalyticsService, progress *service.ProgressService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analytics,
		progress:  progress,
	}
}

// Aggregate returns the pool-wide reviewer report
// @Summary Get pool analytics
// @Description Groups all items by reviewer and status, excluding pulled and rejected items. Reviewers are ranked ascending by approved+edited total.
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param pool path string true "Pool" Enums(first_stage, second_stage)
// @Success 200 {object} models.AnalyticsReport "Aggregate report"
// @Failure 400 {object} map[string]string "Unknown pool"
// @Router /pools/{pool}/analytics [get]
func (h *AnalyticsHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	pool, err := poolFromRequest(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Unknown pool")
		return
	}

	report, err := h.analytics.Aggregate(pool)
	if err != nil {
		slog.Error("Failed to aggregate pool", "pool", pool, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to compute analytics")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// GetProgress returns the session reviewer's completion counts
// @Summary Get reviewer progress
// @Description Returns the completed (all decisions) and accepted (approve+edit) counts for the session reviewer
// @Tags Analytics
// @Produce json
// @Security BearerAuth
// @Param pool path string true "Pool" Enums(first_stage, second_stage)
// @Success 200 {object} models.Progress "Progress counts"
// @Failure 400 {object} map[string]string "Unknown pool"
// @Router /pools/{pool}/progress [get]
func (h *AnalyticsHandler) GetProgress(w http.ResponseWriter, r *http.Request) {
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

	progress, err := h.progress.Progress(pool, reviewer)
	if err != nil {
		slog.Error("Failed to get progress", "pool", pool, "reviewer", reviewer, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to get progress")
		return
	}

	respondJSON(w, http.StatusOK, progress)
}
