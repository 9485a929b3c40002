package handler

import (
	"net/http"

	"github.com/mcoot/turkeybot/internal/api/response"
	"github.com/mcoot/turkeybot/internal/report"
)

// StatusSource provides the current session snapshot
type StatusSource interface {
	Snapshot() report.Status
}

// StatusHandler serves the bot's session status
type StatusHandler struct {
	source StatusSource
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(source StatusSource) *StatusHandler {
	return &StatusHandler{
		source: source,
	}
}

// Health handles GET /api/v1/health
func (h *StatusHandler) Health(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.Health{Status: "ok"})
}

// Get handles GET /api/v1/status
func (h *StatusHandler) Get(w http.ResponseWriter, _ *http.Request) {
	response.JSON(w, http.StatusOK, response.StatusFromReport(h.source.Snapshot()))
}
