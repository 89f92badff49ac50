package model

import (
	"fmt"
	"strings"
)

// DayStatus is how far a goal's day got toward its threshold.
type DayStatus int

const (
	StatusPending DayStatus = iota
	StatusInProgress
	StatusCompleted
)

// ClassifyDay applies the goal threshold to a day's minutes.
func ClassifyDay(minutes, minMinutesPerDay int) DayStatus {
	switch {
	case minutes >= minMinutesPerDay:
		return StatusCompleted
	case minutes > 0:
		return StatusInProgress
	default:
		return StatusPending
	}
}

func (s DayStatus) String() string {
	switch s {
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	default:
		return "pending"
	}
}

// Upper is the screaming-case spelling used by the review surface.
func (s DayStatus) Upper() string {
	return strings.ToUpper(s.String())
}

// ParseDayStatus accepts every spelling that has been persisted over time,
// case-insensitively.
func ParseDayStatus(raw string) (DayStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return StatusPending, nil
	case "in_progress", "inprogress", "in-progress":
		return StatusInProgress, nil
	case "completed":
		return StatusCompleted, nil
	default:
		return StatusPending, fmt.Errorf("unknown day status %q", raw)
	}
}

func (s DayStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *DayStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseDayStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
