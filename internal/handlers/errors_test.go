package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http/httptest"
	"strings"
	"testing"

	"medtrack/internal/service"
	"medtrack/internal/validation"
)

func TestRespondWithErrorWritesStatusAndBody(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondWithError(recorder, 418, "Teapot", "", nil)

	if recorder.Code != 418 {
		t.Fatalf("expected status 418, got %d", recorder.Code)
	}

	var body errorResponse
	if err := json.NewDecoder(recorder.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Error != "Teapot" {
		t.Fatalf("expected error 'Teapot', got %q", body.Error)
	}
}

func TestRespondWithErrorLogsMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := log.Default()
	originalOutput := logger.Writer()
	logger.SetOutput(&buf)
	defer logger.SetOutput(originalOutput)

	recorder := httptest.NewRecorder()
	err := errors.New("boom")

	respondWithError(recorder, 500, "Internal server error", "", err)

	logOutput := buf.String()
	if !strings.Contains(logOutput, "Internal server error") {
		t.Fatalf("expected log to include user message, got %q", logOutput)
	}
	if !strings.Contains(logOutput, "boom") {
		t.Fatalf("expected log to include error, got %q", logOutput)
	}
}

func TestRespondServiceErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation error", validation.ValidationError{Field: "email", Message: "required"}, 400},
		{"email taken", service.ErrEmailTaken, 409},
		{"bad credentials", service.ErrInvalidCredentials, 401},
		{"bad refresh token", service.ErrInvalidToken, 401},
		{"not linked", service.ErrNotLinked, 403},
		{"elder not found", service.ErrElderNotFound, 404},
		{"pairing code not found", service.ErrPairingCodeNotFound, 404},
		{"medication not found", service.ErrMedicationNotFound, 404},
		{"log not found", service.ErrLogNotFound, 404},
		{"already linked", service.ErrAlreadyLinked, 409},
		{"log already marked", service.ErrLogNotPending, 409},
		{"log upcoming", service.ErrLogUpcoming, 422},
		{"unknown error", errors.New("surprise"), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			respondServiceError(recorder, tt.err)
			if recorder.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", recorder.Code, tt.wantStatus)
			}
		})
	}
}

func TestRespondServiceErrorHidesInternalDetail(t *testing.T) {
	var buf bytes.Buffer
	logger := log.Default()
	originalOutput := logger.Writer()
	logger.SetOutput(&buf)
	defer logger.SetOutput(originalOutput)

	recorder := httptest.NewRecorder()
	respondServiceError(recorder, errors.New("password hash column corrupt"))

	var body errorResponse
	if err := json.NewDecoder(recorder.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if strings.Contains(body.Error, "password hash") {
		t.Fatalf("internal detail leaked to client: %q", body.Error)
	}
	if !strings.Contains(buf.String(), "password hash column corrupt") {
		t.Fatal("expected internal detail in the log")
	}
}
