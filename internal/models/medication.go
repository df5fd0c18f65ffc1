package models

import (
	"errors"
	"regexp"
	"time"
)

// Pill appearance enumerations, cosmetic only
type (
	PillShape string
	PillColor string
	PillSize  string
)

const (
	ShapeRound    PillShape = "round"
	ShapeOval     PillShape = "oval"
	ShapeSquare   PillShape = "square"
	ShapeCapsule  PillShape = "capsule"
	ShapeTriangle PillShape = "triangle"
)

const (
	ColorWhite  PillColor = "white"
	ColorRed    PillColor = "red"
	ColorOrange PillColor = "orange"
	ColorYellow PillColor = "yellow"
	ColorGreen  PillColor = "green"
	ColorBlue   PillColor = "blue"
	ColorPurple PillColor = "purple"
	ColorBrown  PillColor = "brown"
	ColorBlack  PillColor = "black"
)

const (
	SizeSmall  PillSize = "small"
	SizeMedium PillSize = "medium"
	SizeLarge  PillSize = "large"
)

func (s PillShape) Valid() bool {
	switch s {
	case ShapeRound, ShapeOval, ShapeSquare, ShapeCapsule, ShapeTriangle:
		return true
	}
	return false
}

func (c PillColor) Valid() bool {
	switch c {
	case ColorWhite, ColorRed, ColorOrange, ColorYellow, ColorGreen,
		ColorBlue, ColorPurple, ColorBrown, ColorBlack:
		return true
	}
	return false
}

func (s PillSize) Valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}

// Pill describes how a medication looks
type Pill struct {
	Shape PillShape
	Color PillColor
	Size  PillSize
}

// Medication belongs to one elder and is managed by linked caretakers
type Medication struct {
	ID        string
	ElderID   string
	Name      string
	Dosage    string
	Notes     string
	Times     []string // scheduled times of day, "HH:MM"
	Pill      Pill
	Active    bool
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

var timeOfDayRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ValidTimeOfDay reports whether s is a well-formed "HH:MM" string
func ValidTimeOfDay(s string) bool {
	return timeOfDayRegex.MatchString(s)
}

// Validate checks the medication's user-supplied fields
func (m *Medication) Validate() error {
	if m.Name == "" {
		return errors.New("medication name is required")
	}
	if len(m.Times) == 0 {
		return errors.New("at least one scheduled time is required")
	}
	for _, t := range m.Times {
		if !ValidTimeOfDay(t) {
			return errors.New("scheduled times must be in HH:MM format")
		}
	}
	if !m.Pill.Shape.Valid() {
		return errors.New("invalid pill shape")
	}
	if !m.Pill.Color.Valid() {
		return errors.New("invalid pill color")
	}
	if !m.Pill.Size.Valid() {
		return errors.New("invalid pill size")
	}
	return nil
}
