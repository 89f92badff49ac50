package model

import "time"

const DefaultProjectColor = "#6366f1"

type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TimeEntry is one tracked interval. A nil End means the timer is still running.
type TimeEntry struct {
	ID        string     `json:"id"`
	ProjectID string     `json:"projectId"`
	Start     time.Time  `json:"start"`
	End       *time.Time `json:"end"`
	Note      string     `json:"note"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

func (e TimeEntry) Running() bool {
	return e.End == nil
}

type Goal struct {
	ID               string    `json:"id"`
	ProjectID        string    `json:"projectId"`
	MinMinutesPerDay int       `json:"minMinutesPerDay"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// GoalDayStatus is the derived per-day record for a goal. Date is the day
// key: an instant at local midnight.
type GoalDayStatus struct {
	ID        string    `json:"id"`
	GoalID    string    `json:"goalId"`
	Date      time.Time `json:"date"`
	Status    DayStatus `json:"status"`
	Minutes   int       `json:"minutes"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// LegacyDate is set when the stored date text predates the current
	// layout, even if it reads as the right instant.
	LegacyDate bool `json:"-"`
}
