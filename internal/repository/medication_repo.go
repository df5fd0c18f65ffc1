package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"medtrack/internal/database"
	"medtrack/internal/models"
)

// MedicationRepository handles database operations for medications
type MedicationRepository struct {
	db *database.DB
}

// NewMedicationRepository creates a new medication repository
func NewMedicationRepository(db *database.DB) *MedicationRepository {
	return &MedicationRepository{db: db}
}

const medicationColumns = `id, elder_id, name, dosage, notes, times,
	pill_shape, pill_color, pill_size, active, created_by, created_at, updated_at`

// CreateMedication inserts a new medication
func (r *MedicationRepository) CreateMedication(med *models.Medication) (*models.Medication, error) {
	med.ID = uuid.New().String()
	med.CreatedAt = time.Now()
	med.UpdatedAt = med.CreatedAt

	timesJSON, err := json.Marshal(med.Times)
	if err != nil {
		return nil, fmt.Errorf("failed to encode times: %w", err)
	}

	query := `
		INSERT INTO medications (id, elder_id, name, dosage, notes, times,
			pill_shape, pill_color, pill_size, active, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.Exec(query, med.ID, med.ElderID, med.Name, med.Dosage, med.Notes,
		string(timesJSON), med.Pill.Shape, med.Pill.Color, med.Pill.Size,
		med.Active, med.CreatedBy, med.CreatedAt, med.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create medication: %w", err)
	}

	return med, nil
}

// UpdateMedication updates the editable fields of a medication
func (r *MedicationRepository) UpdateMedication(med *models.Medication) error {
	timesJSON, err := json.Marshal(med.Times)
	if err != nil {
		return fmt.Errorf("failed to encode times: %w", err)
	}

	query := `
		UPDATE medications
		SET name = ?, dosage = ?, notes = ?, times = ?,
			pill_shape = ?, pill_color = ?, pill_size = ?, active = ?, updated_at = ?
		WHERE id = ?
	`
	_, err = r.db.Exec(query, med.Name, med.Dosage, med.Notes, string(timesJSON),
		med.Pill.Shape, med.Pill.Color, med.Pill.Size, med.Active, time.Now(), med.ID)
	if err != nil {
		return fmt.Errorf("failed to update medication: %w", err)
	}
	return nil
}

// SetActive flips the soft-disable flag on a medication
func (r *MedicationRepository) SetActive(id string, active bool) error {
	query := "UPDATE medications SET active = ?, updated_at = ? WHERE id = ?"
	if _, err := r.db.Exec(query, active, time.Now(), id); err != nil {
		return fmt.Errorf("failed to set medication active flag: %w", err)
	}
	return nil
}

// DeleteMedication removes a medication. Its logs are kept.
func (r *MedicationRepository) DeleteMedication(id string) error {
	query := "DELETE FROM medications WHERE id = ?"
	if _, err := r.db.Exec(query, id); err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}
	return nil
}

// GetMedicationByID retrieves a medication by id
func (r *MedicationRepository) GetMedicationByID(id string) (*models.Medication, error) {
	query := "SELECT " + medicationColumns + " FROM medications WHERE id = ?"
	med, err := scanMedicationRow(r.db.QueryRow(query, id))
	if err != nil {
		return nil, err
	}
	return med, nil
}

// GetMedicationsForElder retrieves an elder's medications, optionally
// restricted to active ones, newest first
func (r *MedicationRepository) GetMedicationsForElder(elderID string, activeOnly bool) ([]models.Medication, error) {
	query := "SELECT " + medicationColumns + " FROM medications WHERE elder_id = ?"
	if activeOnly {
		query += " AND active = ?"
	}
	query += " ORDER BY created_at DESC"

	var rows *sql.Rows
	var err error
	if activeOnly {
		rows, err = r.db.Query(query, elderID, true)
	} else {
		rows, err = r.db.Query(query, elderID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query medications: %w", err)
	}
	defer rows.Close()

	var medications []models.Medication
	for rows.Next() {
		med, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		medications = append(medications, *med)
	}

	return medications, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMedicationRow(row *sql.Row) (*models.Medication, error) {
	med, err := scanMedication(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return med, nil
}

func scanMedication(s rowScanner) (*models.Medication, error) {
	med := &models.Medication{}
	var timesJSON string
	err := s.Scan(
		&med.ID,
		&med.ElderID,
		&med.Name,
		&med.Dosage,
		&med.Notes,
		&timesJSON,
		&med.Pill.Shape,
		&med.Pill.Color,
		&med.Pill.Size,
		&med.Active,
		&med.CreatedBy,
		&med.CreatedAt,
		&med.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan medication: %w", err)
	}

	if err := json.Unmarshal([]byte(timesJSON), &med.Times); err != nil {
		return nil, fmt.Errorf("failed to decode times: %w", err)
	}

	return med, nil
}
