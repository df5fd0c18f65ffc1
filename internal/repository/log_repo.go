package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"medtrack/internal/database"
	"medtrack/internal/models"
)

// LogRepository handles database operations for medication logs
type LogRepository struct {
	db *database.DB
}

// NewLogRepository creates a new log repository
func NewLogRepository(db *database.DB) *LogRepository {
	return &LogRepository{db: db}
}

const logColumns = `id, elder_id, medication_id, medication_name,
	scheduled_time, scheduled_date, status, action_time, created_at`

// InsertPendingLog inserts one pending log for a (medication, time, date)
// slot. The unique index on that triple makes the insert atomic: a
// concurrent materialization inserting the same slot is silently skipped.
// Returns true if a row was actually inserted.
func (r *LogRepository) InsertPendingLog(log *models.MedicationLog) (bool, error) {
	log.ID = uuid.New().String()
	log.Status = models.StatusPending
	log.CreatedAt = time.Now()

	query := `
		INSERT INTO medication_logs (id, elder_id, medication_id, medication_name,
			scheduled_time, scheduled_date, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	inserted, err := r.db.ExecInsertIgnore(query, log.ID, log.ElderID, log.MedicationID,
		log.MedicationName, log.ScheduledTime, log.ScheduledDate, log.Status, log.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert log: %w", err)
	}
	return inserted > 0, nil
}

// GetLogByID retrieves a log by id
func (r *LogRepository) GetLogByID(id string) (*models.MedicationLog, error) {
	query := "SELECT " + logColumns + " FROM medication_logs WHERE id = ?"
	log := &models.MedicationLog{}
	var actionTime sql.NullTime
	err := r.db.QueryRow(query, id).Scan(
		&log.ID,
		&log.ElderID,
		&log.MedicationID,
		&log.MedicationName,
		&log.ScheduledTime,
		&log.ScheduledDate,
		&log.Status,
		&actionTime,
		&log.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get log: %w", err)
	}
	if actionTime.Valid {
		log.ActionTime = &actionTime.Time
	}
	return log, nil
}

// GetLogsForElderDate retrieves all of an elder's logs for one calendar date
func (r *LogRepository) GetLogsForElderDate(elderID, date string) ([]models.MedicationLog, error) {
	query := "SELECT " + logColumns + ` FROM medication_logs
		WHERE elder_id = ? AND scheduled_date = ?
		ORDER BY scheduled_time`
	return r.queryLogs(query, elderID, date)
}

// GetLogsForElderSince retrieves all of an elder's logs with a scheduled
// date at or after the given date string, newest date first
func (r *LogRepository) GetLogsForElderSince(elderID, fromDate string) ([]models.MedicationLog, error) {
	query := "SELECT " + logColumns + ` FROM medication_logs
		WHERE elder_id = ? AND scheduled_date >= ?
		ORDER BY scheduled_date DESC, scheduled_time`
	return r.queryLogs(query, elderID, fromDate)
}

// MarkLog sets a pending log to taken or skipped and records the action
// time. The status guard in the WHERE clause makes the one-way transition
// atomic; returns false if the log was not pending anymore.
func (r *LogRepository) MarkLog(id string, status models.LogStatus, actionTime time.Time) (bool, error) {
	query := `
		UPDATE medication_logs
		SET status = ?, action_time = ?
		WHERE id = ? AND status = ?
	`
	result, err := r.db.Exec(query, status, actionTime, id, models.StatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to mark log: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check mark result: %w", err)
	}
	return affected > 0, nil
}

func (r *LogRepository) queryLogs(query string, args ...interface{}) ([]models.MedicationLog, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query logs: %w", err)
	}
	defer rows.Close()

	var logs []models.MedicationLog
	for rows.Next() {
		var log models.MedicationLog
		var actionTime sql.NullTime
		err := rows.Scan(
			&log.ID,
			&log.ElderID,
			&log.MedicationID,
			&log.MedicationName,
			&log.ScheduledTime,
			&log.ScheduledDate,
			&log.Status,
			&actionTime,
			&log.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan log: %w", err)
		}
		if actionTime.Valid {
			log.ActionTime = &actionTime.Time
		}
		logs = append(logs, log)
	}

	return logs, rows.Err()
}
