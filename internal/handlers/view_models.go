package handlers

import (
	"time"

	"medtrack/internal/models"
	"medtrack/internal/service"
)

// JSON shapes returned by the API. Converters keep the wire format stable
// independent of the internal models.

type tokenView struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type userView struct {
	ID          string   `json:"id"`
	Role        string   `json:"role"`
	DisplayName string   `json:"display_name"`
	Email       string   `json:"email,omitempty"`
	LinkedTo    []string `json:"linked_to,omitempty"`
}

type elderView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PairingCode string `json:"pairing_code,omitempty"`
}

type pillView struct {
	Shape string `json:"shape"`
	Color string `json:"color"`
	Size  string `json:"size"`
}

type medicationView struct {
	ID        string    `json:"id"`
	ElderID   string    `json:"elder_id"`
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage"`
	Notes     string    `json:"notes"`
	Times     []string  `json:"times"`
	Pill      pillView  `json:"pill"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type logView struct {
	ID             string     `json:"id"`
	MedicationID   string     `json:"medication_id"`
	MedicationName string     `json:"medication_name"`
	ScheduledTime  string     `json:"scheduled_time"`
	ScheduledDate  string     `json:"scheduled_date"`
	Status         string     `json:"status"`
	ActionTime     *time.Time `json:"action_time"`
}

type doseItemView struct {
	Log        logView         `json:"log"`
	Medication *medicationView `json:"medication"`
}

type bucketView struct {
	Group    string         `json:"group"`
	Upcoming bool           `json:"upcoming"`
	Items    []doseItemView `json:"items"`
}

type summaryView struct {
	Taken   int  `json:"taken"`
	Skipped int  `json:"skipped"`
	Pending int  `json:"pending"`
	Total   int  `json:"total"`
	Percent *int `json:"percent"`
}

type dayStatusView struct {
	Date         string       `json:"date"`
	CurrentGroup string       `json:"current_group"`
	Groups       []bucketView `json:"groups"`
	Summary      summaryView  `json:"summary"`
}

type historyDayView struct {
	Date    string      `json:"date"`
	Summary summaryView `json:"summary"`
}

type elderSummaryView struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	TakenCount   int    `json:"taken_count"`
	TotalCount   int    `json:"total_count"`
	LastActivity string `json:"last_activity,omitempty"`
}

func newUserView(u *models.User) userView {
	return userView{
		ID:          u.ID,
		Role:        u.Role,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		LinkedTo:    u.LinkedTo,
	}
}

func newTokenView(t *service.TokenPair) tokenView {
	return tokenView{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    t.AccessExpiresIn,
	}
}

func newMedicationView(m *models.Medication) medicationView {
	return medicationView{
		ID:      m.ID,
		ElderID: m.ElderID,
		Name:    m.Name,
		Dosage:  m.Dosage,
		Notes:   m.Notes,
		Times:   m.Times,
		Pill: pillView{
			Shape: string(m.Pill.Shape),
			Color: string(m.Pill.Color),
			Size:  string(m.Pill.Size),
		},
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func newLogView(l *models.MedicationLog) logView {
	return logView{
		ID:             l.ID,
		MedicationID:   l.MedicationID,
		MedicationName: l.MedicationName,
		ScheduledTime:  l.ScheduledTime,
		ScheduledDate:  l.ScheduledDate,
		Status:         string(l.Status),
		ActionTime:     l.ActionTime,
	}
}

func newSummaryView(s service.AdherenceSummary) summaryView {
	return summaryView{
		Taken:   s.Taken,
		Skipped: s.Skipped,
		Pending: s.Pending,
		Total:   s.Total,
		Percent: s.Percent,
	}
}

func newDayStatusView(ds *service.DayStatus) dayStatusView {
	groups := make([]bucketView, 0, len(ds.Groups))
	for _, g := range ds.Groups {
		items := make([]doseItemView, 0, len(g.Items))
		for i := range g.Items {
			item := doseItemView{Log: newLogView(&g.Items[i].Log)}
			if g.Items[i].Medication != nil {
				mv := newMedicationView(g.Items[i].Medication)
				item.Medication = &mv
			}
			items = append(items, item)
		}
		groups = append(groups, bucketView{
			Group:    string(g.Group),
			Upcoming: g.Upcoming,
			Items:    items,
		})
	}
	return dayStatusView{
		Date:         ds.Date,
		CurrentGroup: string(ds.CurrentGroup),
		Groups:       groups,
		Summary:      newSummaryView(ds.Summary),
	}
}

func newHistoryView(days []service.DaySummary) []historyDayView {
	views := make([]historyDayView, 0, len(days))
	for _, d := range days {
		views = append(views, historyDayView{
			Date:    d.Date,
			Summary: newSummaryView(d.Summary),
		})
	}
	return views
}

func newElderSummaryViews(summaries []models.ElderSummary) []elderSummaryView {
	views := make([]elderSummaryView, 0, len(summaries))
	for _, s := range summaries {
		views = append(views, elderSummaryView{
			ID:           s.ID,
			Name:         s.Name,
			TakenCount:   s.TakenCount,
			TotalCount:   s.TotalCount,
			LastActivity: s.LastActivity,
		})
	}
	return views
}
