package models

import (
	"strconv"
	"strings"
)

// TimeGroup is one of the four fixed day segments used to group doses
type TimeGroup string

const (
	GroupMorning TimeGroup = "morning"
	GroupMidday  TimeGroup = "midday"
	GroupEvening TimeGroup = "evening"
	GroupNight   TimeGroup = "night"
)

// GroupOrder is the fixed display and comparison order of the day segments
var GroupOrder = []TimeGroup{GroupMorning, GroupMidday, GroupEvening, GroupNight}

// TimeGroupForHour maps an hour of day to its segment:
// [6,11) morning, [11,14) midday, [14,20) evening, everything else night
func TimeGroupForHour(hour int) TimeGroup {
	switch {
	case hour >= 6 && hour < 11:
		return GroupMorning
	case hour >= 11 && hour < 14:
		return GroupMidday
	case hour >= 14 && hour < 20:
		return GroupEvening
	default:
		return GroupNight
	}
}

// GetTimeGroup maps an "HH:MM" string to its segment. Malformed input
// falls into the night bucket, matching hour 0.
func GetTimeGroup(timeOfDay string) TimeGroup {
	hourStr, _, _ := strings.Cut(timeOfDay, ":")
	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		hour = 0
	}
	return TimeGroupForHour(hour)
}

// Rank returns the group's position in the fixed order
func (g TimeGroup) Rank() int {
	for i, group := range GroupOrder {
		if group == g {
			return i
		}
	}
	return -1
}

// IsUpcoming reports whether the group lies after the current one in the
// fixed order. The comparison does not wrap: night is always last, so after
// midnight nothing is upcoming.
func (g TimeGroup) IsUpcoming(current TimeGroup) bool {
	return g.Rank() > current.Rank()
}
