package database

import (
	"path/filepath"
	"testing"

	"medtrack/internal/config"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	cfg := &config.Config{
		DatabaseType: "sqlite",
		DatabasePath: filepath.Join(t.TempDir(), "test.db"),
	}

	db, err := Initialize(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(filepath.Join("..", "..", "migrations")); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return db
}

// TestDatabaseIntegration tests the complete database lifecycle
func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	// Migrations must have created every table
	tables := []string{"users", "elders", "elder_caretakers", "medications", "medication_logs", "refresh_tokens"}

	for _, table := range tables {
		query := "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
		var name string
		if err := db.QueryRow(query, table).Scan(&name); err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}
}

// TestInsertIgnoreDeduplicates verifies that duplicate log slots are
// silently skipped rather than erroring, which the daily materialization
// relies on.
func TestInsertIgnoreDeduplicates(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)

	seed := []string{
		"INSERT INTO users (id, role, display_name) VALUES ('u1', 'elder', 'Elder')",
		"INSERT INTO elders (id, name, pairing_code) VALUES ('u1', 'Elder', '123456')",
	}
	for _, q := range seed {
		if _, err := db.Exec(q); err != nil {
			t.Fatalf("Failed to seed: %v", err)
		}
	}

	insert := `INSERT INTO medication_logs (id, elder_id, medication_id, medication_name,
		scheduled_time, scheduled_date, status) VALUES (?, 'u1', 'm1', 'Aspirin', '08:00', '2026-03-10', 'pending')`

	affected, err := db.ExecInsertIgnore(insert, "log1")
	if err != nil {
		t.Fatalf("First insert failed: %v", err)
	}
	if affected != 1 {
		t.Fatalf("First insert affected %d rows, want 1", affected)
	}

	// Same slot under a different id must be ignored
	affected, err = db.ExecInsertIgnore(insert, "log2")
	if err != nil {
		t.Fatalf("Duplicate insert errored: %v", err)
	}
	if affected != 0 {
		t.Fatalf("Duplicate insert affected %d rows, want 0", affected)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM medication_logs").Scan(&count); err != nil {
		t.Fatalf("Failed to count logs: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected 1 log, got %d", count)
	}
}
