package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"medtrack/internal/models"
	"medtrack/internal/repository"
	"medtrack/internal/utils"
	"medtrack/internal/validation"
)

var (
	ErrElderNotFound       = errors.New("elder not found")
	ErrPairingCodeNotFound = errors.New("no elder found for this code")
	ErrAlreadyLinked       = errors.New("elder already linked to this account")
	ErrNotLinked           = errors.New("user is not linked to this elder")
)

// ElderService handles elder profiles, pairing, and the caretaker dashboard
type ElderService struct {
	elderRepo    *repository.ElderRepository
	userRepo     *repository.UserRepository
	logRepo      *repository.LogRepository
	emailService *EmailService
}

// NewElderService creates a new elder service
func NewElderService(elderRepo *repository.ElderRepository, userRepo *repository.UserRepository,
	logRepo *repository.LogRepository, emailService *EmailService) *ElderService {
	return &ElderService{
		elderRepo:    elderRepo,
		userRepo:     userRepo,
		logRepo:      logRepo,
		emailService: emailService,
	}
}

// GetElder retrieves an elder profile by ID
func (s *ElderService) GetElder(elderID string) (*models.Elder, error) {
	elder, err := s.elderRepo.GetElderByID(elderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get elder: %w", err)
	}
	if elder == nil {
		return nil, ErrElderNotFound
	}
	return elder, nil
}

// PairCaretaker links a caretaker to the elder whose pairing code matches.
// Codes never expire and stay valid for further caretakers.
func (s *ElderService) PairCaretaker(ctx context.Context, caretaker *models.User, code string) (*models.Elder, error) {
	if err := validation.ValidatePairingCode(code); err != nil {
		return nil, err
	}

	elder, err := s.elderRepo.GetElderByPairingCode(code)
	if err != nil {
		return nil, fmt.Errorf("failed to look up pairing code: %w", err)
	}
	if elder == nil {
		return nil, ErrPairingCodeNotFound
	}

	linked, err := s.elderRepo.IsCaretakerLinked(caretaker.ID, elder.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing link: %w", err)
	}
	if linked {
		return nil, ErrAlreadyLinked
	}

	if err := s.elderRepo.AddCaretaker(elder.ID, caretaker.ID); err != nil {
		return nil, fmt.Errorf("failed to link caretaker: %w", err)
	}

	// Notification failure must not fail the pairing
	if caretaker.Email != "" {
		if err := s.emailService.SendPairedEmail(ctx, caretaker.Email, caretaker.DisplayName, elder.Name); err != nil {
			log.Printf("Warning: failed to send pairing email to %s: %v", caretaker.Email, err)
		}
	}

	return elder, nil
}

// VerifyCaretakerAccess checks that the caretaker is linked to the elder
func (s *ElderService) VerifyCaretakerAccess(caretakerID, elderID string) error {
	linked, err := s.elderRepo.IsCaretakerLinked(caretakerID, elderID)
	if err != nil {
		return fmt.Errorf("failed to verify elder access: %w", err)
	}
	if !linked {
		return ErrNotLinked
	}
	return nil
}

// DashboardSummaries builds the caretaker dashboard: one row per linked
// elder with today's progress and the time of the elder's latest action.
func (s *ElderService) DashboardSummaries(caretakerID string, now time.Time) ([]models.ElderSummary, error) {
	elderIDs, err := s.userRepo.GetLinkedElderIDs(caretakerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get linked elders: %w", err)
	}

	today := utils.DateString(now)
	summaries := make([]models.ElderSummary, 0, len(elderIDs))
	for _, elderID := range elderIDs {
		elder, err := s.elderRepo.GetElderByID(elderID)
		if err != nil {
			return nil, fmt.Errorf("failed to get elder %s: %w", elderID, err)
		}
		if elder == nil {
			continue
		}

		logs, err := s.logRepo.GetLogsForElderDate(elderID, today)
		if err != nil {
			return nil, fmt.Errorf("failed to get logs for elder %s: %w", elderID, err)
		}

		taken, total, last := summarizeDashboardDay(logs)
		summaries = append(summaries, models.ElderSummary{
			ID:           elder.ID,
			Name:         elder.Name,
			TakenCount:   taken,
			TotalCount:   total,
			LastActivity: last,
		})
	}

	return summaries, nil
}

// summarizeDashboardDay counts taken doses against all scheduled doses and
// finds the clock time of the latest taken/skipped action.
func summarizeDashboardDay(logs []models.MedicationLog) (taken, total int, lastActivity string) {
	var latest *time.Time
	for i := range logs {
		l := &logs[i]
		total++
		if l.Status == models.StatusTaken {
			taken++
		}
		if l.ActionTime != nil && (latest == nil || l.ActionTime.After(*latest)) {
			latest = l.ActionTime
		}
	}
	if latest != nil {
		lastActivity = utils.ClockString(*latest)
	}
	return taken, total, lastActivity
}
