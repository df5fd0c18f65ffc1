package service

import (
	"testing"

	"medtrack/internal/models"
)

func TestMissingSlots(t *testing.T) {
	meds := []models.Medication{
		{ID: "m1", ElderID: "e1", Name: "Aspirin", Times: []string{"08:00", "20:00"}},
		{ID: "m2", ElderID: "e1", Name: "Vitamin D", Times: []string{"08:00"}},
	}

	tests := []struct {
		name     string
		existing []models.MedicationLog
		wantKeys []string
	}{
		{
			name:     "empty day creates every slot",
			existing: nil,
			wantKeys: []string{"m1_08:00", "m1_20:00", "m2_08:00"},
		},
		{
			name: "existing slots are skipped",
			existing: []models.MedicationLog{
				{MedicationID: "m1", ScheduledTime: "08:00"},
				{MedicationID: "m2", ScheduledTime: "08:00"},
			},
			wantKeys: []string{"m1_20:00"},
		},
		{
			name: "complete day creates nothing",
			existing: []models.MedicationLog{
				{MedicationID: "m1", ScheduledTime: "08:00"},
				{MedicationID: "m1", ScheduledTime: "20:00"},
				{MedicationID: "m2", ScheduledTime: "08:00"},
			},
			wantKeys: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			missing := missingSlots(meds, tt.existing, "2026-03-10")
			if len(missing) != len(tt.wantKeys) {
				t.Fatalf("missingSlots() returned %d slots, want %d", len(missing), len(tt.wantKeys))
			}
			for i, m := range missing {
				if got := m.MedicationID + "_" + m.ScheduledTime; got != tt.wantKeys[i] {
					t.Errorf("slot %d = %s, want %s", i, got, tt.wantKeys[i])
				}
				if m.ScheduledDate != "2026-03-10" {
					t.Errorf("slot %d date = %s, want 2026-03-10", i, m.ScheduledDate)
				}
				if m.ElderID != "e1" {
					t.Errorf("slot %d elder = %s, want e1", i, m.ElderID)
				}
			}
		})
	}
}

func TestMissingSlotsCarriesMedicationName(t *testing.T) {
	meds := []models.Medication{
		{ID: "m1", ElderID: "e1", Name: "Aspirin", Times: []string{"08:00"}},
	}

	missing := missingSlots(meds, nil, "2026-03-10")
	if len(missing) != 1 {
		t.Fatalf("missingSlots() returned %d slots, want 1", len(missing))
	}
	if missing[0].MedicationName != "Aspirin" {
		t.Errorf("medication name = %q, want Aspirin", missing[0].MedicationName)
	}
}
