package service

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"medtrack/internal/database"
)

func backupSnapshot() *BackupData {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	return &BackupData{
		Version:      "1.0",
		ExportedAt:   now,
		DatabaseType: "universal",
		Users: []UserBackup{
			{ID: "elder-1", Role: "elder", DisplayName: "Rosa", CreatedAt: now, UpdatedAt: now},
			{ID: "care-1", Role: "caretaker", DisplayName: "Anna", Email: "anna@example.com",
				PasswordHash: "hash", CreatedAt: now, UpdatedAt: now},
		},
		Elders: []ElderBackup{
			{ID: "elder-1", Name: "Rosa", PairingCode: "123456", CreatedAt: now,
				Caretakers: []string{"care-1"}},
		},
		Medications: []MedicationBackup{
			{ID: "med-1", ElderID: "elder-1", Name: "Aspirin", Dosage: "100mg",
				Times: `["08:00"]`, PillShape: "round", PillColor: "white", PillSize: "small",
				Active: true, CreatedBy: "care-1", CreatedAt: now, UpdatedAt: now},
		},
		Logs: []LogBackup{
			{ID: "log-1", ElderID: "elder-1", MedicationID: "med-1", MedicationName: "Aspirin",
				ScheduledTime: "08:00", ScheduledDate: "2026-03-10", Status: "pending", CreatedAt: now},
		},
	}
}

func importSnapshot(t *testing.T, svc *BackupService, snapshot *BackupData) error {
	t.Helper()

	data, err := json.Marshal(snapshot)
	if err != nil {
		t.Fatalf("Failed to marshal snapshot: %v", err)
	}
	return svc.ImportFromReader(bytes.NewReader(data))
}

func countRows(t *testing.T, db *database.DB, table string) int {
	t.Helper()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		t.Fatalf("Failed to count rows in %s: %v", table, err)
	}
	return count
}

// TestImportRestoresSnapshot verifies a valid backup restores every table.
func TestImportRestoresSnapshot(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	svc := NewBackupService(db)

	if err := importSnapshot(t, svc, backupSnapshot()); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	counts := map[string]int{
		"users":            2,
		"elders":           1,
		"elder_caretakers": 1,
		"medications":      1,
		"medication_logs":  1,
	}
	for table, want := range counts {
		if got := countRows(t, db, table); got != want {
			t.Errorf("Rows in %s = %d, want %d", table, got, want)
		}
	}
}

// TestImportRollsBackOnFailure verifies a restore that fails partway leaves
// no partial state. The snapshot carries two log rows for the same dose slot,
// which violates the unique index after earlier tables were already written.
func TestImportRollsBackOnFailure(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	svc := NewBackupService(db)

	snapshot := backupSnapshot()
	snapshot.Logs = append(snapshot.Logs, LogBackup{
		ID: "log-2", ElderID: "elder-1", MedicationID: "med-1", MedicationName: "Aspirin",
		ScheduledTime: "08:00", ScheduledDate: "2026-03-10", Status: "pending",
		CreatedAt: snapshot.ExportedAt,
	})

	if err := importSnapshot(t, svc, snapshot); err == nil {
		t.Fatal("Import succeeded, want unique constraint failure")
	}

	for _, table := range []string{"users", "elders", "elder_caretakers", "medications", "medication_logs"} {
		if got := countRows(t, db, table); got != 0 {
			t.Errorf("Rows in %s after failed import = %d, want 0", table, got)
		}
	}
}
