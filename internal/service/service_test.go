package service

import (
	"path/filepath"
	"testing"

	"medtrack/internal/config"
	"medtrack/internal/database"
)

func openTestDB(t *testing.T) *database.DB {
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

	return db
}

func disabledEmailService(t *testing.T) *EmailService {
	t.Helper()

	svc, err := NewEmailService("", "", "", "", false)
	if err != nil {
		t.Fatalf("Failed to create email service: %v", err)
	}
	return svc
}
