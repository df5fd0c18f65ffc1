package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"medtrack/internal/models"
	"medtrack/internal/repository"
	"medtrack/internal/utils"
)

// DoseItem is one scheduled dose slot: the log plus its medication, when it
// still exists. Medication is nil for doses of since-deleted medications;
// the log's denormalized name covers display.
type DoseItem struct {
	Log        models.MedicationLog
	Medication *models.Medication
}

// BucketGroup is one time-of-day section of the daily view
type BucketGroup struct {
	Group    models.TimeGroup
	Upcoming bool
	Items    []DoseItem
}

// AdherenceSummary aggregates one set of logs. Percent is nil when there
// are no logs to measure, which is distinct from 0%.
type AdherenceSummary struct {
	Taken   int
	Skipped int
	Pending int
	Total   int
	Percent *int
}

// DayStatus is the full daily view: the four buckets in fixed order plus
// the day's adherence summary.
type DayStatus struct {
	Date         string
	CurrentGroup models.TimeGroup
	Groups       []BucketGroup
	Summary      AdherenceSummary
}

// DaySummary is one history entry: a calendar date and its adherence
type DaySummary struct {
	Date    string
	Summary AdherenceSummary
}

// ReportService builds the daily status and history views from logs
type ReportService struct {
	logRepo *repository.LogRepository
	medRepo *repository.MedicationRepository
}

// NewReportService creates a new report service
func NewReportService(logRepo *repository.LogRepository, medRepo *repository.MedicationRepository) *ReportService {
	return &ReportService{
		logRepo: logRepo,
		medRepo: medRepo,
	}
}

// TodayStatus groups today's logs into the four time buckets and computes
// the day's adherence. Works for the elder home screen and the caretaker
// elder-detail view alike.
func (s *ReportService) TodayStatus(elderID string, now time.Time) (*DayStatus, error) {
	today := utils.DateString(now)
	logs, err := s.logRepo.GetLogsForElderDate(elderID, today)
	if err != nil {
		return nil, fmt.Errorf("failed to get today's logs: %w", err)
	}

	meds, err := s.medRepo.GetMedicationsForElder(elderID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get medications: %w", err)
	}
	medByID := make(map[string]*models.Medication, len(meds))
	for i := range meds {
		medByID[meds[i].ID] = &meds[i]
	}

	current := models.TimeGroupForHour(now.Hour())
	return &DayStatus{
		Date:         today,
		CurrentGroup: current,
		Groups:       groupByBucket(logs, medByID, current),
		Summary:      summarize(logs),
	}, nil
}

// History returns the last seven days including today, newest first. Days
// without any logs get a nil-percent summary.
func (s *ReportService) History(elderID string, now time.Time) ([]DaySummary, error) {
	dates := utils.LastNDates(7, now)
	oldest := dates[len(dates)-1]

	logs, err := s.logRepo.GetLogsForElderSince(elderID, oldest)
	if err != nil {
		return nil, fmt.Errorf("failed to get history logs: %w", err)
	}

	return historyBuckets(dates, logs), nil
}

// groupByBucket splits logs into the four time buckets in their fixed
// order, each bucket sorted by scheduled time.
func groupByBucket(logs []models.MedicationLog, medByID map[string]*models.Medication, current models.TimeGroup) []BucketGroup {
	byGroup := make(map[models.TimeGroup][]DoseItem)
	for i := range logs {
		l := logs[i]
		g := models.GetTimeGroup(l.ScheduledTime)
		byGroup[g] = append(byGroup[g], DoseItem{
			Log:        l,
			Medication: medByID[l.MedicationID],
		})
	}

	groups := make([]BucketGroup, 0, len(models.GroupOrder))
	for _, g := range models.GroupOrder {
		items := byGroup[g]
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Log.ScheduledTime < items[j].Log.ScheduledTime
		})
		groups = append(groups, BucketGroup{
			Group:    g,
			Upcoming: g.IsUpcoming(current),
			Items:    items,
		})
	}
	return groups
}

// summarize counts log outcomes and derives the adherence percentage,
// rounded half away from zero. No logs means no percentage at all.
func summarize(logs []models.MedicationLog) AdherenceSummary {
	var sum AdherenceSummary
	for i := range logs {
		sum.Total++
		switch logs[i].Status {
		case models.StatusTaken:
			sum.Taken++
		case models.StatusSkipped:
			sum.Skipped++
		default:
			sum.Pending++
		}
	}
	if sum.Total > 0 {
		p := int(math.Round(float64(sum.Taken) / float64(sum.Total) * 100))
		sum.Percent = &p
	}
	return sum
}

// historyBuckets assigns logs to the given dates by exact date-string
// match, preserving the order of dates.
func historyBuckets(dates []string, logs []models.MedicationLog) []DaySummary {
	byDate := make(map[string][]models.MedicationLog)
	for i := range logs {
		byDate[logs[i].ScheduledDate] = append(byDate[logs[i].ScheduledDate], logs[i])
	}

	days := make([]DaySummary, 0, len(dates))
	for _, d := range dates {
		days = append(days, DaySummary{
			Date:    d,
			Summary: summarize(byDate[d]),
		})
	}
	return days
}
