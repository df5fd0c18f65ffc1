package handlers

import (
	"net/http"

	"medtrack/internal/models"
	"medtrack/internal/service"
)

// MedicationHandler serves medication CRUD for linked caretakers
type MedicationHandler struct {
	medicationService *service.MedicationService
}

// NewMedicationHandler creates a new medication handler
func NewMedicationHandler(medicationService *service.MedicationService) *MedicationHandler {
	return &MedicationHandler{medicationService: medicationService}
}

type medicationRequest struct {
	Name   string   `json:"name"`
	Dosage string   `json:"dosage"`
	Notes  string   `json:"notes"`
	Times  []string `json:"times"`
	Pill   pillView `json:"pill"`
}

func (req *medicationRequest) toInput() service.MedicationInput {
	return service.MedicationInput{
		Name:   req.Name,
		Dosage: req.Dosage,
		Notes:  req.Notes,
		Times:  req.Times,
		Pill: models.Pill{
			Shape: models.PillShape(req.Pill.Shape),
			Color: models.PillColor(req.Pill.Color),
			Size:  models.PillSize(req.Pill.Size),
		},
	}
}

// List returns all of the elder's medications, inactive ones included
func (h *MedicationHandler) List(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	elderID := r.PathValue("elderID")

	meds, err := h.medicationService.GetMedications(user.ID, elderID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	views := make([]medicationView, 0, len(meds))
	for i := range meds {
		views = append(views, newMedicationView(&meds[i]))
	}

	respondJSON(w, http.StatusOK, struct {
		Medications []medicationView `json:"medications"`
	}{views})
}

// Create adds a medication to the elder's schedule
func (h *MedicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	elderID := r.PathValue("elderID")

	var req medicationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", nil)
		return
	}

	med, err := h.medicationService.CreateMedication(user.ID, elderID, req.toInput())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, struct {
		Medication medicationView `json:"medication"`
	}{newMedicationView(med)})
}

// Update replaces the editable fields of a medication
func (h *MedicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	medicationID := r.PathValue("id")

	var req medicationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidRequestBody, "", nil)
		return
	}

	med, err := h.medicationService.UpdateMedication(user.ID, medicationID, req.toInput())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Medication medicationView `json:"medication"`
	}{newMedicationView(med)})
}

// Toggle flips the medication's active flag
func (h *MedicationHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	medicationID := r.PathValue("id")

	med, err := h.medicationService.ToggleActive(user.ID, medicationID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		Medication medicationView `json:"medication"`
	}{newMedicationView(med)})
}

// Delete removes the medication while past logs stay in place
func (h *MedicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	medicationID := r.PathValue("id")

	if err := h.medicationService.DeleteMedication(user.ID, medicationID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusNoContent, nil)
}
