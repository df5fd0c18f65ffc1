package service

import (
	"errors"
	"fmt"

	"medtrack/internal/models"
	"medtrack/internal/repository"
)

var ErrMedicationNotFound = errors.New("medication not found")

// MedicationInput carries the caretaker-editable fields of a medication
type MedicationInput struct {
	Name   string
	Dosage string
	Notes  string
	Times  []string
	Pill   models.Pill
}

// MedicationService handles medication CRUD on behalf of linked caretakers
type MedicationService struct {
	medRepo   *repository.MedicationRepository
	elderRepo *repository.ElderRepository
}

// NewMedicationService creates a new medication service
func NewMedicationService(medRepo *repository.MedicationRepository, elderRepo *repository.ElderRepository) *MedicationService {
	return &MedicationService{
		medRepo:   medRepo,
		elderRepo: elderRepo,
	}
}

// CreateMedication adds a medication to the elder's schedule
func (s *MedicationService) CreateMedication(caretakerID, elderID string, input MedicationInput) (*models.Medication, error) {
	if err := s.verifyLink(caretakerID, elderID); err != nil {
		return nil, err
	}

	med := &models.Medication{
		ElderID:   elderID,
		Name:      input.Name,
		Dosage:    input.Dosage,
		Notes:     input.Notes,
		Times:     input.Times,
		Pill:      input.Pill,
		Active:    true,
		CreatedBy: caretakerID,
	}
	if err := med.Validate(); err != nil {
		return nil, err
	}

	created, err := s.medRepo.CreateMedication(med)
	if err != nil {
		return nil, fmt.Errorf("failed to create medication: %w", err)
	}
	return created, nil
}

// GetMedications lists the elder's medications, inactive ones included
func (s *MedicationService) GetMedications(caretakerID, elderID string) ([]models.Medication, error) {
	if err := s.verifyLink(caretakerID, elderID); err != nil {
		return nil, err
	}

	meds, err := s.medRepo.GetMedicationsForElder(elderID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get medications: %w", err)
	}
	return meds, nil
}

// UpdateMedication replaces the editable fields of a medication. Logs that
// were already created for today keep their old schedule.
func (s *MedicationService) UpdateMedication(caretakerID, medicationID string, input MedicationInput) (*models.Medication, error) {
	med, err := s.getForCaretaker(caretakerID, medicationID)
	if err != nil {
		return nil, err
	}

	med.Name = input.Name
	med.Dosage = input.Dosage
	med.Notes = input.Notes
	med.Times = input.Times
	med.Pill = input.Pill
	if err := med.Validate(); err != nil {
		return nil, err
	}

	if err := s.medRepo.UpdateMedication(med); err != nil {
		return nil, fmt.Errorf("failed to update medication: %w", err)
	}
	return med, nil
}

// ToggleActive flips the medication's active flag
func (s *MedicationService) ToggleActive(caretakerID, medicationID string) (*models.Medication, error) {
	med, err := s.getForCaretaker(caretakerID, medicationID)
	if err != nil {
		return nil, err
	}

	med.Active = !med.Active
	if err := s.medRepo.SetActive(med.ID, med.Active); err != nil {
		return nil, fmt.Errorf("failed to toggle medication: %w", err)
	}
	return med, nil
}

// DeleteMedication removes the medication. Existing logs keep the
// denormalized medication name and stay queryable for history.
func (s *MedicationService) DeleteMedication(caretakerID, medicationID string) error {
	med, err := s.getForCaretaker(caretakerID, medicationID)
	if err != nil {
		return err
	}

	if err := s.medRepo.DeleteMedication(med.ID); err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}
	return nil
}

func (s *MedicationService) getForCaretaker(caretakerID, medicationID string) (*models.Medication, error) {
	med, err := s.medRepo.GetMedicationByID(medicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get medication: %w", err)
	}
	if med == nil {
		return nil, ErrMedicationNotFound
	}
	if err := s.verifyLink(caretakerID, med.ElderID); err != nil {
		return nil, err
	}
	return med, nil
}

func (s *MedicationService) verifyLink(caretakerID, elderID string) error {
	linked, err := s.elderRepo.IsCaretakerLinked(caretakerID, elderID)
	if err != nil {
		return fmt.Errorf("failed to verify elder access: %w", err)
	}
	if !linked {
		return ErrNotLinked
	}
	return nil
}
