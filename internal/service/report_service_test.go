package service

import (
	"testing"
	"time"

	"medtrack/internal/models"
)

func logWithStatus(status models.LogStatus) models.MedicationLog {
	return models.MedicationLog{Status: status}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name        string
		logs        []models.MedicationLog
		wantTaken   int
		wantSkipped int
		wantPending int
		wantPercent *int
	}{
		{
			name:        "no logs means no percentage",
			logs:        nil,
			wantPercent: nil,
		},
		{
			name: "all taken",
			logs: []models.MedicationLog{
				logWithStatus(models.StatusTaken),
				logWithStatus(models.StatusTaken),
			},
			wantTaken:   2,
			wantPercent: intPtr(100),
		},
		{
			name: "two of three rounds up",
			logs: []models.MedicationLog{
				logWithStatus(models.StatusTaken),
				logWithStatus(models.StatusTaken),
				logWithStatus(models.StatusSkipped),
			},
			wantTaken:   2,
			wantSkipped: 1,
			wantPercent: intPtr(67),
		},
		{
			name: "one of three rounds down",
			logs: []models.MedicationLog{
				logWithStatus(models.StatusTaken),
				logWithStatus(models.StatusSkipped),
				logWithStatus(models.StatusPending),
			},
			wantTaken:   1,
			wantSkipped: 1,
			wantPending: 1,
			wantPercent: intPtr(33),
		},
		{
			name: "half rounds away from zero",
			logs: []models.MedicationLog{
				logWithStatus(models.StatusTaken),
				logWithStatus(models.StatusPending),
			},
			wantTaken:   1,
			wantPending: 1,
			wantPercent: intPtr(50),
		},
		{
			name: "nothing taken is zero percent, not missing",
			logs: []models.MedicationLog{
				logWithStatus(models.StatusSkipped),
			},
			wantSkipped: 1,
			wantPercent: intPtr(0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := summarize(tt.logs)
			if got.Taken != tt.wantTaken || got.Skipped != tt.wantSkipped || got.Pending != tt.wantPending {
				t.Errorf("summarize() counts = %d/%d/%d, want %d/%d/%d",
					got.Taken, got.Skipped, got.Pending, tt.wantTaken, tt.wantSkipped, tt.wantPending)
			}
			if got.Total != len(tt.logs) {
				t.Errorf("summarize() total = %d, want %d", got.Total, len(tt.logs))
			}
			if (got.Percent == nil) != (tt.wantPercent == nil) {
				t.Fatalf("summarize() percent = %v, want %v", got.Percent, tt.wantPercent)
			}
			if got.Percent != nil && *got.Percent != *tt.wantPercent {
				t.Errorf("summarize() percent = %d, want %d", *got.Percent, *tt.wantPercent)
			}
		})
	}
}

func TestGroupByBucket(t *testing.T) {
	logs := []models.MedicationLog{
		{ID: "a", MedicationID: "m1", ScheduledTime: "21:00"},
		{ID: "b", MedicationID: "m1", ScheduledTime: "08:00"},
		{ID: "c", MedicationID: "m2", ScheduledTime: "07:30"},
		{ID: "d", MedicationID: "m2", ScheduledTime: "12:00"},
	}
	meds := map[string]*models.Medication{
		"m1": {ID: "m1", Name: "Aspirin"},
	}

	groups := groupByBucket(logs, meds, models.GroupMorning)

	if len(groups) != 4 {
		t.Fatalf("groupByBucket() returned %d groups, want 4", len(groups))
	}

	wantOrder := []models.TimeGroup{models.GroupMorning, models.GroupMidday, models.GroupEvening, models.GroupNight}
	for i, g := range groups {
		if g.Group != wantOrder[i] {
			t.Errorf("group %d = %s, want %s", i, g.Group, wantOrder[i])
		}
	}

	morning := groups[0]
	if morning.Upcoming {
		t.Error("current bucket should not be upcoming")
	}
	if len(morning.Items) != 2 {
		t.Fatalf("morning has %d items, want 2", len(morning.Items))
	}
	if morning.Items[0].Log.ID != "c" || morning.Items[1].Log.ID != "b" {
		t.Errorf("morning items not sorted by time: %s, %s", morning.Items[0].Log.ID, morning.Items[1].Log.ID)
	}
	if morning.Items[1].Medication == nil || morning.Items[1].Medication.Name != "Aspirin" {
		t.Error("log b should carry its medication")
	}
	if morning.Items[0].Medication != nil {
		t.Error("log of a deleted medication should have nil medication")
	}

	if !groups[1].Upcoming || !groups[2].Upcoming || !groups[3].Upcoming {
		t.Error("later buckets should be upcoming relative to morning")
	}
	if len(groups[1].Items) != 1 || len(groups[3].Items) != 1 {
		t.Errorf("midday/night item counts = %d/%d, want 1/1", len(groups[1].Items), len(groups[3].Items))
	}
	if len(groups[2].Items) != 0 {
		t.Errorf("evening should be empty, got %d items", len(groups[2].Items))
	}
}

func TestHistoryBuckets(t *testing.T) {
	dates := []string{"2026-03-10", "2026-03-09", "2026-03-08"}
	logs := []models.MedicationLog{
		{ScheduledDate: "2026-03-10", Status: models.StatusTaken},
		{ScheduledDate: "2026-03-10", Status: models.StatusSkipped},
		{ScheduledDate: "2026-03-08", Status: models.StatusTaken},
	}

	days := historyBuckets(dates, logs)

	if len(days) != 3 {
		t.Fatalf("historyBuckets() returned %d days, want 3", len(days))
	}
	if days[0].Date != "2026-03-10" || days[0].Summary.Total != 2 || *days[0].Summary.Percent != 50 {
		t.Errorf("day 0 = %+v, want total 2 at 50%%", days[0])
	}
	if days[1].Summary.Total != 0 || days[1].Summary.Percent != nil {
		t.Errorf("empty day should have no data, got %+v", days[1].Summary)
	}
	if days[2].Summary.Total != 1 || *days[2].Summary.Percent != 100 {
		t.Errorf("day 2 = %+v, want total 1 at 100%%", days[2])
	}
}

func TestSummarizeDashboardDay(t *testing.T) {
	early := time.Date(2026, 3, 10, 8, 5, 0, 0, time.UTC)
	late := time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)

	logs := []models.MedicationLog{
		{Status: models.StatusTaken, ActionTime: &early},
		{Status: models.StatusSkipped, ActionTime: &late},
		{Status: models.StatusPending},
	}

	taken, total, last := summarizeDashboardDay(logs)
	if taken != 1 || total != 3 {
		t.Errorf("summarizeDashboardDay() = %d/%d, want 1/3", taken, total)
	}
	if last != "12:30" {
		t.Errorf("last activity = %q, want 12:30", last)
	}

	taken, total, last = summarizeDashboardDay(nil)
	if taken != 0 || total != 0 || last != "" {
		t.Errorf("empty day = %d/%d/%q, want zeros", taken, total, last)
	}
}

func intPtr(v int) *int {
	return &v
}
