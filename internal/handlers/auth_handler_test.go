package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"medtrack/internal/config"
	"medtrack/internal/database"
	"medtrack/internal/repository"
	"medtrack/internal/service"
)

func newTestAuthHandler(t *testing.T) *AuthHandler {
	t.Helper()

	cfg := &config.Config{
		DatabaseType: "sqlite",
		DatabasePath: filepath.Join(t.TempDir(), "test.db"),
	}
	db, err := database.Initialize(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(filepath.Join("..", "..", "migrations")); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	elderRepo := repository.NewElderRepository(db)
	tokenRepo := repository.NewTokenRepository(db)

	emailService, err := service.NewEmailService("", "", "", "", false)
	if err != nil {
		t.Fatalf("Failed to create email service: %v", err)
	}

	authService := service.NewAuthService(userRepo, elderRepo, tokenRepo, emailService,
		"test-secret", 15*time.Minute, 30*24*time.Hour)

	return NewAuthHandler(authService, nil, "")
}

type elderSignInResponse struct {
	User struct {
		DisplayName string `json:"display_name"`
		Role        string `json:"role"`
	} `json:"user"`
	Elder struct {
		PairingCode string `json:"pairing_code"`
	} `json:"elder"`
	Tokens struct {
		AccessToken string `json:"access_token"`
	} `json:"tokens"`
}

// TestElderSignIn verifies the display name is optional: an empty body signs
// in with the default name, and a provided name is used as-is.
func TestElderSignIn(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	tests := []struct {
		name     string
		body     string
		wantName string
	}{
		{"empty body", "", "Elder"},
		{"custom name", `{"display_name":"Nana"}`, "Nana"},
	}

	pairingCode := regexp.MustCompile(`^[0-9]{6}$`)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestAuthHandler(t)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/elder", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.ElderSignIn(rec, req)

			if rec.Code != http.StatusCreated {
				t.Fatalf("Status = %d, want %d (body: %s)", rec.Code, http.StatusCreated, rec.Body.String())
			}

			var resp elderSignInResponse
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if resp.User.DisplayName != tt.wantName {
				t.Errorf("Display name = %q, want %q", resp.User.DisplayName, tt.wantName)
			}
			if resp.User.Role != "elder" {
				t.Errorf("Role = %q, want %q", resp.User.Role, "elder")
			}
			if !pairingCode.MatchString(resp.Elder.PairingCode) {
				t.Errorf("Pairing code = %q, want six digits", resp.Elder.PairingCode)
			}
			if resp.Tokens.AccessToken == "" {
				t.Error("Access token missing from response")
			}
		})
	}
}
