package handlers

import (
	"net/http"

	"medtrack/internal/database"
)

// HealthHandler reports service readiness
type HealthHandler struct {
	db *database.DB
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health pings the database and reports status
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(); err != nil {
		respondWithError(w, http.StatusServiceUnavailable, "database unavailable", "health check failed", err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Status string `json:"status"`
	}{"ok"})
}
