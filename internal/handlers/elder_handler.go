package handlers

import (
	"net/http"
	"time"

	"medtrack/internal/models"
	"medtrack/internal/service"
)

// ElderHandler serves the elder-facing surface: the daily home screen and
// dose marking.
type ElderHandler struct {
	elderService  *service.ElderService
	logService    *service.LogService
	reportService *service.ReportService
}

// NewElderHandler creates a new elder handler
func NewElderHandler(elderService *service.ElderService, logService *service.LogService,
	reportService *service.ReportService) *ElderHandler {
	return &ElderHandler{
		elderService:  elderService,
		logService:    logService,
		reportService: reportService,
	}
}

// Home materializes today's logs and returns the bucket-grouped daily view
// together with the elder's pairing code.
func (h *ElderHandler) Home(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	now := time.Now()

	if err := h.logService.EnsureTodayLogs(user.ID, now); err != nil {
		respondServiceError(w, err)
		return
	}

	elder, err := h.elderService.GetElder(user.ID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	status, err := h.reportService.TodayStatus(user.ID, now)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Elder elderView     `json:"elder"`
		Today dayStatusView `json:"today"`
	}{
		elderView{ID: elder.ID, Name: elder.Name, PairingCode: elder.PairingCode},
		newDayStatusView(status),
	})
}

// MarkTaken records a dose as taken
func (h *ElderHandler) MarkTaken(w http.ResponseWriter, r *http.Request) {
	h.markLog(w, r, models.StatusTaken)
}

// MarkSkipped records a dose as skipped
func (h *ElderHandler) MarkSkipped(w http.ResponseWriter, r *http.Request) {
	h.markLog(w, r, models.StatusSkipped)
}

func (h *ElderHandler) markLog(w http.ResponseWriter, r *http.Request, status models.LogStatus) {
	user := GetUserFromContext(r.Context())
	logID := r.PathValue("id")

	entry, err := h.logService.MarkLog(user.ID, logID, status, time.Now())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Log logView `json:"log"`
	}{newLogView(entry)})
}
