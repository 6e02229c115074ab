package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"codeswitch-review/internal/greeting"
	"codeswitch-review/internal/models"
	"codeswitch-review/internal/service"
	"codeswitch-review/internal/session"
)

// SessionHandler starts reviewer sessions
type SessionHandler struct {
	sessions *session.Service
	progress *service.ProgressService
	greeter  greeting.Greeter // nil when the speech greeting is disabled
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *session.Service, progress *service.ProgressService, greeter greeting.Greeter) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		progress: progress,
		greeter:  greeter,
	}
}

// StartSessionRequest is the body of POST /session
type StartSessionRequest struct {
	Username string `json:"username"`
	Pool     string `json:"pool,omitempty"`
}

// StartSessionResponse is the body returned for a started session
type StartSessionResponse struct {
	Reviewer      string `json:"reviewer"`
	Token         string `json:"token"`
	Completed     int    `json:"completed"`
	GreetingAudio string `json:"greeting_audio,omitempty"`
}

// StartSession starts a review session for a free-text username
// @Summary Start a reviewer session
// @Description Accepts a free-text username (no authentication), normalizes it and returns a session token plus the reviewer's completed count and an optional spoken greeting
// @Tags Session
// @Accept json
// @Produce json
// @Param session body StartSessionRequest true "Session data"
// @Success 200 {object} StartSessionResponse "Session started"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /session [post]
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	var req StartSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	reviewer, token, err := h.sessions.Start(req.Username)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Username is required")
		return
	}

	pool := models.PoolFirstStage
	if req.Pool != "" {
		pool, err = models.ParsePool(req.Pool)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Unknown pool")
			return
		}
	}

	completed, err := h.progress.CompletedCount(pool, reviewer)
	if err != nil {
		slog.Error("Failed to get completed count", "reviewer", reviewer, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to get review count")
		return
	}

	resp := StartSessionResponse{
		Reviewer:  reviewer,
		Token:     token,
		Completed: completed,
	}

	if h.greeter != nil {
		resp.GreetingAudio = h.greet(r.Context(), reviewer, completed)
	}

	respondJSON(w, http.StatusOK, resp)
}

// greet synthesizes the spoken welcome. Failures only cost the audio,
// never the session.
func (h *SessionHandler) greet(ctx context.Context, reviewer string, completed int) string {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	text := greeting.WelcomeText(reviewer, completed)
	rephrased, err := h.greeter.Rephrase(ctx, text)
	if err != nil {
		slog.Warn("Greeting rephrase failed", "reviewer", reviewer, "error", err)
		rephrased = text
	}

	filename := fmt.Sprintf("greeting_%s_%d.mp3", greeting.SanitizeName(reviewer), time.Now().Unix())
	path, err := h.greeter.Synthesize(ctx, rephrased, filename)
	if err != nil {
		slog.Warn("Greeting synthesis failed", "reviewer", reviewer, "error", err)
		return ""
	}

	return path
}
