package streak

import (
	"context"
	"time"

	"timeo/internal/model"
)

//go:generate mockgen -source=store.go -destination=mock_store_test.go -package=streak

// GoalReader resolves goals. A missing goal is reported as repository.ErrNotFound.
type GoalReader interface {
	GetGoal(ctx context.Context, id string) (*model.Goal, error)
	ListGoals(ctx context.Context) ([]model.Goal, error)
}

// EntryReader lists time entries of a project intersecting [start, end),
// running entries included.
type EntryReader interface {
	ListOverlapping(ctx context.Context, projectID string, start, end time.Time) ([]model.TimeEntry, error)
}

// DayStatusStore persists the derived per-day rows keyed by (goal, day key).
type DayStatusStore interface {
	UpsertDayStatus(ctx context.Context, goalID string, day time.Time, status model.DayStatus, minutes int) error
	ListDayStatuses(ctx context.Context, goalID string) ([]model.GoalDayStatus, error)
	DeleteDayStatuses(ctx context.Context, ids []string) error
	UpdateDayStatusDate(ctx context.Context, id string, day time.Time) error
}
