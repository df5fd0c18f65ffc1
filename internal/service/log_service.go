package service

import (
	"errors"
	"fmt"
	"time"

	"medtrack/internal/models"
	"medtrack/internal/repository"
	"medtrack/internal/utils"
)

var (
	ErrLogNotFound   = errors.New("medication log not found")
	ErrLogNotPending = errors.New("log has already been marked")
	ErrLogUpcoming   = errors.New("log cannot be marked before its time of day")
	ErrBadLogStatus  = errors.New("logs can only be marked taken or skipped")
)

// LogService materializes daily dose logs and records dose outcomes
type LogService struct {
	logRepo *repository.LogRepository
	medRepo *repository.MedicationRepository
}

// NewLogService creates a new log service
func NewLogService(logRepo *repository.LogRepository, medRepo *repository.MedicationRepository) *LogService {
	return &LogService{
		logRepo: logRepo,
		medRepo: medRepo,
	}
}

// EnsureTodayLogs creates the pending logs for every scheduled dose of the
// elder's active medications that does not have one yet for today. Safe to
// call on every home-screen load; concurrent calls cannot double-insert.
func (s *LogService) EnsureTodayLogs(elderID string, now time.Time) error {
	meds, err := s.medRepo.GetMedicationsForElder(elderID, true)
	if err != nil {
		return fmt.Errorf("failed to get active medications: %w", err)
	}

	today := utils.DateString(now)
	existing, err := s.logRepo.GetLogsForElderDate(elderID, today)
	if err != nil {
		return fmt.Errorf("failed to get today's logs: %w", err)
	}

	for _, missing := range missingSlots(meds, existing, today) {
		if _, err := s.logRepo.InsertPendingLog(&missing); err != nil {
			return err
		}
	}
	return nil
}

// missingSlots computes the pending logs that would complete today's set:
// one per (active medication, scheduled time) pair without an existing log.
func missingSlots(meds []models.Medication, existing []models.MedicationLog, date string) []models.MedicationLog {
	seen := make(map[string]bool, len(existing))
	for i := range existing {
		seen[existing[i].Key()] = true
	}

	var missing []models.MedicationLog
	for _, med := range meds {
		for _, t := range med.Times {
			if seen[med.ID+"_"+t] {
				continue
			}
			missing = append(missing, models.MedicationLog{
				ElderID:        med.ElderID,
				MedicationID:   med.ID,
				MedicationName: med.Name,
				ScheduledTime:  t,
				ScheduledDate:  date,
			})
		}
	}
	return missing
}

// MarkLog records a dose as taken or skipped. The log must belong to the
// elder, still be pending, and sit in the current or an earlier time bucket.
func (s *LogService) MarkLog(elderID, logID string, status models.LogStatus, now time.Time) (*models.MedicationLog, error) {
	if !status.Valid() || status == models.StatusPending {
		return nil, ErrBadLogStatus
	}

	entry, err := s.logRepo.GetLogByID(logID)
	if err != nil {
		return nil, fmt.Errorf("failed to get log: %w", err)
	}
	if entry == nil || entry.ElderID != elderID {
		return nil, ErrLogNotFound
	}
	if !entry.CanMark(status) {
		return nil, ErrLogNotPending
	}

	group := models.GetTimeGroup(entry.ScheduledTime)
	current := models.TimeGroupForHour(now.Hour())
	if group.IsUpcoming(current) {
		return nil, ErrLogUpcoming
	}

	// Status guard in the update keeps a concurrent double-tap from
	// overwriting the first mark.
	marked, err := s.logRepo.MarkLog(entry.ID, status, now)
	if err != nil {
		return nil, fmt.Errorf("failed to mark log: %w", err)
	}
	if !marked {
		return nil, ErrLogNotPending
	}

	entry.Status = status
	entry.ActionTime = &now
	return entry, nil
}
