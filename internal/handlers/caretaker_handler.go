package handlers

import (
	"net/http"
	"time"

	"medtrack/internal/service"
)

// CaretakerHandler serves the caretaker surface: pairing, the dashboard,
// and per-elder detail views.
type CaretakerHandler struct {
	elderService  *service.ElderService
	reportService *service.ReportService
}

// NewCaretakerHandler creates a new caretaker handler
func NewCaretakerHandler(elderService *service.ElderService, reportService *service.ReportService) *CaretakerHandler {
	return &CaretakerHandler{
		elderService:  elderService,
		reportService: reportService,
	}
}

// Pair links the caller to the elder matching the submitted pairing code
func (h *CaretakerHandler) Pair(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	var req struct {
		Code string `json:"code"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", nil)
		return
	}

	elder, err := h.elderService.PairCaretaker(r.Context(), user, req.Code)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Elder elderView `json:"elder"`
	}{elderView{ID: elder.ID, Name: elder.Name}})
}

// ListElders returns the dashboard summaries for all linked elders
func (h *CaretakerHandler) ListElders(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	summaries, err := h.elderService.DashboardSummaries(user.ID, time.Now())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Elders []elderSummaryView `json:"elders"`
	}{newElderSummaryViews(summaries)})
}

// ElderDetail returns one elder's bucket-grouped status for today
func (h *CaretakerHandler) ElderDetail(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	elderID := r.PathValue("elderID")

	if err := h.elderService.VerifyCaretakerAccess(user.ID, elderID); err != nil {
		respondServiceError(w, err)
		return
	}

	elder, err := h.elderService.GetElder(elderID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	status, err := h.reportService.TodayStatus(elderID, time.Now())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Elder elderView     `json:"elder"`
		Today dayStatusView `json:"today"`
	}{
		elderView{ID: elder.ID, Name: elder.Name},
		newDayStatusView(status),
	})
}

// History returns the elder's last seven days of adherence, today first
func (h *CaretakerHandler) History(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	elderID := r.PathValue("elderID")

	if err := h.elderService.VerifyCaretakerAccess(user.ID, elderID); err != nil {
		respondServiceError(w, err)
		return
	}

	days, err := h.reportService.History(elderID, time.Now())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Days []historyDayView `json:"days"`
	}{newHistoryView(days)})
}
