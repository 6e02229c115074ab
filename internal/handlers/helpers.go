package handlers

import (
	"encoding/json"
	"net/http"

	"codeswitch-review/internal/models"
)

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// respondError writes a JSON error body
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

// poolFromRequest parses the {pool} path value
func poolFromRequest(r *http.Request) (models.Pool, error) {
	return models.ParsePool(r.PathValue("pool"))
}
