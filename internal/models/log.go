package models

import "time"

// LogStatus is the state of one scheduled dose. Transitions are one-way:
// pending can become taken or skipped, and nothing else ever changes.
type LogStatus string

const (
	StatusPending LogStatus = "pending"
	StatusTaken   LogStatus = "taken"
	StatusSkipped LogStatus = "skipped"
)

func (s LogStatus) Valid() bool {
	switch s {
	case StatusPending, StatusTaken, StatusSkipped:
		return true
	}
	return false
}

// MedicationLog is one record per (medication, scheduled time, calendar date).
// Elder and medication name are denormalized for querying and display.
type MedicationLog struct {
	ID             string
	ElderID        string
	MedicationID   string
	MedicationName string
	ScheduledTime  string // "HH:MM"
	ScheduledDate  string // "YYYY-MM-DD"
	Status         LogStatus
	ActionTime     *time.Time
	CreatedAt      time.Time
}

// Key identifies the (medication, scheduled time) slot a log fills within
// its day. Used to match logs against medication schedules.
func (l *MedicationLog) Key() string {
	return l.MedicationID + "_" + l.ScheduledTime
}

// CanMark reports whether the log may transition to the given status.
// Only pending logs can be marked, and only as taken or skipped.
func (l *MedicationLog) CanMark(status LogStatus) bool {
	if l.Status != StatusPending {
		return false
	}
	return status == StatusTaken || status == StatusSkipped
}
