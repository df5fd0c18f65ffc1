package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"medtrack/internal/security"
	"medtrack/internal/service"
	"medtrack/internal/validation"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, errorResponse{Error: userMsg})
}

// respondServiceError maps domain errors to HTTP statuses. Unknown errors
// come back as a generic 500 so internals never leak to clients.
func respondServiceError(w http.ResponseWriter, err error) {
	var ve validation.ValidationError
	if errors.As(err, &ve) {
		respondWithError(w, http.StatusBadRequest, ve.Error(), "", nil)
		return
	}

	switch {
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrAlreadyLinked),
		errors.Is(err, service.ErrLogNotPending):
		respondWithError(w, http.StatusConflict, err.Error(), "", nil)
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, security.ErrBadToken):
		respondWithError(w, http.StatusUnauthorized, err.Error(), "", nil)
	case errors.Is(err, service.ErrNotLinked):
		respondWithError(w, http.StatusForbidden, err.Error(), "", nil)
	case errors.Is(err, service.ErrElderNotFound),
		errors.Is(err, service.ErrPairingCodeNotFound),
		errors.Is(err, service.ErrMedicationNotFound),
		errors.Is(err, service.ErrLogNotFound):
		respondWithError(w, http.StatusNotFound, err.Error(), "", nil)
	case errors.Is(err, service.ErrLogUpcoming),
		errors.Is(err, service.ErrBadLogStatus):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error(), "", nil)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "request failed", err)
	}
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// decodeJSON reads a request body into dst, rejecting unknown fields
func decodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}
