package repository

import (
	"database/sql"
	"fmt"
	"time"

	"medtrack/internal/database"
	"medtrack/internal/models"
)

// ElderRepository handles database operations for elder profiles and
// caretaker links
type ElderRepository struct {
	db *database.DB
}

// NewElderRepository creates a new elder repository
func NewElderRepository(db *database.DB) *ElderRepository {
	return &ElderRepository{db: db}
}

// CreateElder inserts a new elder profile with its pairing code
func (r *ElderRepository) CreateElder(id, name, pairingCode string) (*models.Elder, error) {
	query := `
		INSERT INTO elders (id, name, pairing_code, created_at)
		VALUES (?, ?, ?, ?)
	`
	createdAt := time.Now()
	if _, err := r.db.Exec(query, id, name, pairingCode, createdAt); err != nil {
		return nil, fmt.Errorf("failed to create elder: %w", err)
	}

	return &models.Elder{
		ID:          id,
		Name:        name,
		PairingCode: pairingCode,
		CreatedAt:   createdAt,
	}, nil
}

// GetElderByID retrieves an elder profile by id, including caretaker links
func (r *ElderRepository) GetElderByID(id string) (*models.Elder, error) {
	query := "SELECT id, name, pairing_code, created_at FROM elders WHERE id = ?"
	elder := &models.Elder{}
	err := r.db.QueryRow(query, id).Scan(&elder.ID, &elder.Name, &elder.PairingCode, &elder.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get elder: %w", err)
	}

	caretakers, err := r.getCaretakerIDs(elder.ID)
	if err != nil {
		return nil, err
	}
	elder.Caretakers = caretakers

	return elder, nil
}

// GetElderByPairingCode retrieves the elder whose stored pairing code
// exactly matches the submission
func (r *ElderRepository) GetElderByPairingCode(code string) (*models.Elder, error) {
	query := "SELECT id, name, pairing_code, created_at FROM elders WHERE pairing_code = ?"
	elder := &models.Elder{}
	err := r.db.QueryRow(query, code).Scan(&elder.ID, &elder.Name, &elder.PairingCode, &elder.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get elder by pairing code: %w", err)
	}
	return elder, nil
}

// AddCaretaker links a caretaker to an elder. Linking twice is a no-op.
func (r *ElderRepository) AddCaretaker(elderID, caretakerID string) error {
	query := `
		INSERT INTO elder_caretakers (elder_id, caretaker_id, linked_at)
		VALUES (?, ?, ?)
	`
	if _, err := r.db.ExecInsertIgnore(query, elderID, caretakerID, time.Now()); err != nil {
		return fmt.Errorf("failed to add caretaker link: %w", err)
	}
	return nil
}

// IsCaretakerLinked checks if a caretaker has access to an elder
func (r *ElderRepository) IsCaretakerLinked(caretakerID, elderID string) (bool, error) {
	query := "SELECT COUNT(*) FROM elder_caretakers WHERE caretaker_id = ? AND elder_id = ?"
	var count int
	if err := r.db.QueryRow(query, caretakerID, elderID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check caretaker link: %w", err)
	}
	return count > 0, nil
}

// getCaretakerIDs returns the caretakers linked to an elder
func (r *ElderRepository) getCaretakerIDs(elderID string) ([]string, error) {
	query := `
		SELECT caretaker_id FROM elder_caretakers
		WHERE elder_id = ?
		ORDER BY linked_at
	`
	rows, err := r.db.Query(query, elderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query caretakers: %w", err)
	}
	defer rows.Close()

	var caretakers []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan caretaker id: %w", err)
		}
		caretakers = append(caretakers, id)
	}

	return caretakers, rows.Err()
}
