package models

import (
	"testing"
	"time"
)

func TestGetTimeGroup(t *testing.T) {
	tests := []struct {
		name      string
		timeOfDay string
		want      TimeGroup
	}{
		{name: "just before morning", timeOfDay: "05:59", want: GroupNight},
		{name: "morning boundary", timeOfDay: "06:00", want: GroupMorning},
		{name: "late morning", timeOfDay: "10:59", want: GroupMorning},
		{name: "midday boundary", timeOfDay: "11:00", want: GroupMidday},
		{name: "just before evening", timeOfDay: "13:59", want: GroupMidday},
		{name: "evening boundary", timeOfDay: "14:00", want: GroupEvening},
		{name: "just before night", timeOfDay: "19:59", want: GroupEvening},
		{name: "night boundary", timeOfDay: "20:00", want: GroupNight},
		{name: "end of day", timeOfDay: "23:59", want: GroupNight},
		{name: "midnight", timeOfDay: "00:00", want: GroupNight},
		{name: "malformed input", timeOfDay: "bogus", want: GroupNight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GetTimeGroup(tt.timeOfDay)
			if result != tt.want {
				t.Errorf("GetTimeGroup(%q) = %v, want %v", tt.timeOfDay, result, tt.want)
			}
		})
	}
}

func TestTimeGroupIsUpcoming(t *testing.T) {
	tests := []struct {
		name    string
		group   TimeGroup
		current TimeGroup
		want    bool
	}{
		{name: "evening upcoming in morning", group: GroupEvening, current: GroupMorning, want: true},
		{name: "current group not upcoming", group: GroupMorning, current: GroupMorning, want: false},
		{name: "morning past in evening", group: GroupMorning, current: GroupEvening, want: false},
		{name: "nothing upcoming at night", group: GroupMorning, current: GroupNight, want: false},
		{name: "night upcoming in midday", group: GroupNight, current: GroupMidday, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.group.IsUpcoming(tt.current)
			if result != tt.want {
				t.Errorf("%v.IsUpcoming(%v) = %v, want %v", tt.group, tt.current, result, tt.want)
			}
		})
	}
}

func TestLogStatusValid(t *testing.T) {
	tests := []struct {
		name   string
		status LogStatus
		want   bool
	}{
		{name: "pending", status: StatusPending, want: true},
		{name: "taken", status: StatusTaken, want: true},
		{name: "skipped", status: StatusSkipped, want: true},
		{name: "empty", status: LogStatus(""), want: false},
		{name: "unknown", status: LogStatus("done"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.status.Valid()
			if result != tt.want {
				t.Errorf("LogStatus(%q).Valid() = %v, want %v", tt.status, result, tt.want)
			}
		})
	}
}

func TestLogCanMark(t *testing.T) {
	tests := []struct {
		name   string
		status LogStatus
		target LogStatus
		want   bool
	}{
		{name: "pending to taken", status: StatusPending, target: StatusTaken, want: true},
		{name: "pending to skipped", status: StatusPending, target: StatusSkipped, want: true},
		{name: "taken to skipped", status: StatusTaken, target: StatusSkipped, want: false},
		{name: "skipped to taken", status: StatusSkipped, target: StatusTaken, want: false},
		{name: "taken back to pending", status: StatusTaken, target: StatusPending, want: false},
		{name: "pending to pending", status: StatusPending, target: StatusPending, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := MedicationLog{Status: tt.status}
			result := log.CanMark(tt.target)
			if result != tt.want {
				t.Errorf("CanMark(%v) from %v = %v, want %v", tt.target, tt.status, result, tt.want)
			}
		})
	}
}

func TestMedicationValidate(t *testing.T) {
	valid := Medication{
		ID:      "med-1",
		ElderID: "elder-1",
		Name:    "Aspirin",
		Dosage:  "100mg",
		Times:   []string{"08:00", "20:00"},
		Pill:    Pill{Shape: ShapeRound, Color: ColorWhite, Size: SizeMedium},
		Active:  true,
	}

	tests := []struct {
		name    string
		mutate  func(m *Medication)
		wantErr bool
	}{
		{name: "valid medication", mutate: func(m *Medication) {}, wantErr: false},
		{name: "missing name", mutate: func(m *Medication) { m.Name = "" }, wantErr: true},
		{name: "no times", mutate: func(m *Medication) { m.Times = nil }, wantErr: true},
		{name: "bad time format", mutate: func(m *Medication) { m.Times = []string{"8am"} }, wantErr: true},
		{name: "hour out of range", mutate: func(m *Medication) { m.Times = []string{"24:00"} }, wantErr: true},
		{name: "invalid shape", mutate: func(m *Medication) { m.Pill.Shape = "hexagon" }, wantErr: true},
		{name: "invalid color", mutate: func(m *Medication) { m.Pill.Color = "chartreuse" }, wantErr: true},
		{name: "invalid size", mutate: func(m *Medication) { m.Pill.Size = "giant" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			med := valid
			med.Times = append([]string{}, valid.Times...)
			tt.mutate(&med)
			err := med.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRefreshTokenIsExpired(t *testing.T) {
	tests := []struct {
		name      string
		expiresAt time.Time
		want      bool
	}{
		{name: "future expiration", expiresAt: time.Now().Add(1 * time.Hour), want: false},
		{name: "just expired", expiresAt: time.Now().Add(-1 * time.Second), want: true},
		{name: "expired yesterday", expiresAt: time.Now().Add(-24 * time.Hour), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := RefreshToken{
				ID:        "token-1",
				UserID:    "user-1",
				ExpiresAt: tt.expiresAt,
				CreatedAt: time.Now().Add(-1 * time.Hour),
			}
			result := token.IsExpired()
			if result != tt.want {
				t.Errorf("RefreshToken.IsExpired() = %v, want %v", result, tt.want)
			}
		})
	}
}
