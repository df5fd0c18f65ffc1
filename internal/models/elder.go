package models

import "time"

// Elder is the tracked profile for an elder user. The pairing code is
// generated once at profile creation and never rotates.
type Elder struct {
	ID          string // same id as the elder's user record
	Name        string
	PairingCode string // 6 ASCII digits
	Caretakers  []string
	CreatedAt   time.Time
}

// ElderSummary is a caretaker-dashboard view of one linked elder:
// today's progress and the time of the elder's most recent action.
type ElderSummary struct {
	ID           string
	Name         string
	TakenCount   int
	TotalCount   int
	LastActivity string // "HH:MM", empty if no action today
}
