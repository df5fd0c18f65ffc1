package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"medtrack/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string             `json:"version"`
	ExportedAt   time.Time          `json:"exported_at"`
	DatabaseType string             `json:"database_type"`
	Users        []UserBackup       `json:"users"`
	Elders       []ElderBackup      `json:"elders"`
	Medications  []MedicationBackup `json:"medications"`
	Logs         []LogBackup        `json:"logs"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID            string    `json:"id"`
	Role          string    `json:"role"`
	DisplayName   string    `json:"display_name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	OAuthProvider string    `json:"oauth_provider"`
	OAuthSubject  string    `json:"oauth_subject"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ElderBackup represents an elder profile with its caretaker links
type ElderBackup struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	PairingCode string    `json:"pairing_code"`
	CreatedAt   time.Time `json:"created_at"`
	Caretakers  []string  `json:"caretakers"`
}

// MedicationBackup represents a medication record for backup
type MedicationBackup struct {
	ID        string    `json:"id"`
	ElderID   string    `json:"elder_id"`
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage"`
	Notes     string    `json:"notes"`
	Times     string    `json:"times"`
	PillShape string    `json:"pill_shape"`
	PillColor string    `json:"pill_color"`
	PillSize  string    `json:"pill_size"`
	Active    bool      `json:"active"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LogBackup represents a medication log record for backup
type LogBackup struct {
	ID             string     `json:"id"`
	ElderID        string     `json:"elder_id"`
	MedicationID   string     `json:"medication_id"`
	MedicationName string     `json:"medication_name"`
	ScheduledTime  string     `json:"scheduled_time"`
	ScheduledDate  string     `json:"scheduled_date"`
	Status         string     `json:"status"`
	ActionTime     *time.Time `json:"action_time"`
	CreatedAt      time.Time  `json:"created_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export writes a full JSON snapshot of the database to outputPath
func (s *BackupService) Export(outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter exports the database as indented JSON
func (s *BackupService) ExportToWriter(w io.Writer) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:      "1.0",
		ExportedAt:   time.Now(),
		DatabaseType: "universal",
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportElders(backup); err != nil {
		return fmt.Errorf("failed to export elders: %w", err)
	}
	if err := s.exportMedications(backup); err != nil {
		return fmt.Errorf("failed to export medications: %w", err)
	}
	if err := s.exportLogs(backup); err != nil {
		return fmt.Errorf("failed to export logs: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Exported: %d users, %d elders, %d medications, %d logs",
		len(backup.Users), len(backup.Elders), len(backup.Medications), len(backup.Logs))
	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup stream. The whole
// restore runs in one transaction so a mid-import failure leaves no
// partial state behind.
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}

	if err := s.runImport(tx, &backup); err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) runImport(exec database.DBTX, backup *BackupData) error {
	// Import in order of dependencies
	if err := s.importUsers(exec, backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importElders(exec, backup.Elders); err != nil {
		return fmt.Errorf("failed to import elders: %w", err)
	}
	if err := s.importMedications(exec, backup.Medications); err != nil {
		return fmt.Errorf("failed to import medications: %w", err)
	}
	if err := s.importLogs(exec, backup.Logs); err != nil {
		return fmt.Errorf("failed to import logs: %w", err)
	}
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	query := `SELECT id, role, display_name, COALESCE(email, ''), COALESCE(password_hash, ''),
		COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), created_at, updated_at
		FROM users ORDER BY created_at, id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Role, &u.DisplayName, &u.Email, &u.PasswordHash,
			&u.OAuthProvider, &u.OAuthSubject, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportElders(backup *BackupData) error {
	query := "SELECT id, name, pairing_code, created_at FROM elders ORDER BY created_at, id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e ElderBackup
		if err := rows.Scan(&e.ID, &e.Name, &e.PairingCode, &e.CreatedAt); err != nil {
			return err
		}
		backup.Elders = append(backup.Elders, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for i := range backup.Elders {
		linkQuery := "SELECT caretaker_id FROM elder_caretakers WHERE elder_id = ? ORDER BY linked_at"
		linkRows, err := s.db.Query(linkQuery, backup.Elders[i].ID)
		if err != nil {
			return err
		}
		for linkRows.Next() {
			var caretakerID string
			if err := linkRows.Scan(&caretakerID); err != nil {
				linkRows.Close()
				return err
			}
			backup.Elders[i].Caretakers = append(backup.Elders[i].Caretakers, caretakerID)
		}
		if err := linkRows.Err(); err != nil {
			linkRows.Close()
			return err
		}
		linkRows.Close()
	}
	return nil
}

func (s *BackupService) exportMedications(backup *BackupData) error {
	query := `SELECT id, elder_id, name, dosage, notes, times, pill_shape, pill_color, pill_size,
		active, created_by, created_at, updated_at FROM medications ORDER BY created_at, id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var m MedicationBackup
		if err := rows.Scan(&m.ID, &m.ElderID, &m.Name, &m.Dosage, &m.Notes, &m.Times,
			&m.PillShape, &m.PillColor, &m.PillSize, &m.Active, &m.CreatedBy,
			&m.CreatedAt, &m.UpdatedAt); err != nil {
			return err
		}
		backup.Medications = append(backup.Medications, m)
	}
	return rows.Err()
}

func (s *BackupService) exportLogs(backup *BackupData) error {
	query := `SELECT id, elder_id, medication_id, medication_name, scheduled_time, scheduled_date,
		status, action_time, created_at FROM medication_logs ORDER BY scheduled_date, scheduled_time, id`
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var l LogBackup
		if err := rows.Scan(&l.ID, &l.ElderID, &l.MedicationID, &l.MedicationName,
			&l.ScheduledTime, &l.ScheduledDate, &l.Status, &l.ActionTime, &l.CreatedAt); err != nil {
			return err
		}
		backup.Logs = append(backup.Logs, l)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(exec database.DBTX, users []UserBackup) error {
	log.Printf("Importing %d users...", len(users))
	for _, u := range users {
		query := `INSERT INTO users (id, role, display_name, email, password_hash, oauth_provider,
			oauth_subject, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := exec.Exec(query, u.ID, u.Role, u.DisplayName, nullIfEmpty(u.Email),
			nullIfEmpty(u.PasswordHash), nullIfEmpty(u.OAuthProvider), nullIfEmpty(u.OAuthSubject),
			u.CreatedAt, u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import user %s: %w", u.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importElders(exec database.DBTX, elders []ElderBackup) error {
	log.Printf("Importing %d elders...", len(elders))
	for _, e := range elders {
		query := "INSERT INTO elders (id, name, pairing_code, created_at) VALUES (?, ?, ?, ?)"
		if _, err := exec.Exec(query, e.ID, e.Name, e.PairingCode, e.CreatedAt); err != nil {
			return fmt.Errorf("failed to import elder %s: %w", e.ID, err)
		}

		for _, caretakerID := range e.Caretakers {
			linkQuery := "INSERT INTO elder_caretakers (elder_id, caretaker_id) VALUES (?, ?)"
			if _, err := exec.Exec(linkQuery, e.ID, caretakerID); err != nil {
				return fmt.Errorf("failed to import link %s -> %s: %w", caretakerID, e.ID, err)
			}
		}
	}
	return nil
}

func (s *BackupService) importMedications(exec database.DBTX, meds []MedicationBackup) error {
	log.Printf("Importing %d medications...", len(meds))
	for _, m := range meds {
		query := `INSERT INTO medications (id, elder_id, name, dosage, notes, times, pill_shape,
			pill_color, pill_size, active, created_by, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := exec.Exec(query, m.ID, m.ElderID, m.Name, m.Dosage, m.Notes, m.Times,
			m.PillShape, m.PillColor, m.PillSize, m.Active, m.CreatedBy, m.CreatedAt, m.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import medication %s: %w", m.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importLogs(exec database.DBTX, logs []LogBackup) error {
	log.Printf("Importing %d logs...", len(logs))
	for _, l := range logs {
		var actionTime interface{}
		if l.ActionTime != nil {
			actionTime = *l.ActionTime
		}
		query := `INSERT INTO medication_logs (id, elder_id, medication_id, medication_name,
			scheduled_time, scheduled_date, status, action_time, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := exec.Exec(query, l.ID, l.ElderID, l.MedicationID, l.MedicationName,
			l.ScheduledTime, l.ScheduledDate, l.Status, actionTime, l.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to import log %s: %w", l.ID, err)
		}
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
