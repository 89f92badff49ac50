package streak

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"timeo/internal/dates"
	"timeo/internal/model"
	"timeo/internal/repository"
)

type mocks struct {
	goals    *MockGoalReader
	entries  *MockEntryReader
	statuses *MockDayStatusStore
}

func newMockEngine(t *testing.T, logOut io.Writer) (*Engine, mocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mocks{
		goals:    NewMockGoalReader(ctrl),
		entries:  NewMockEntryReader(ctrl),
		statuses: NewMockDayStatusStore(ctrl),
	}
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	engine := New(m.goals, m.entries, m.statuses, dates.ClockFunc(func() time.Time { return now }), time.UTC).
		WithLogger(log.New(logOut, "", 0))
	return engine, m
}

func TestInitializeContinuesPastFailedUpsert(t *testing.T) {
	var logs bytes.Buffer
	engine, m := newMockEngine(t, &logs)
	ctx := context.Background()
	goal := &model.Goal{ID: "g1", ProjectID: "p1", MinMinutesPerDay: 30}

	m.statuses.EXPECT().ListDayStatuses(gomock.Any(), "g1").Return(nil, nil)
	m.goals.EXPECT().GetGoal(gomock.Any(), "g1").Return(goal, nil).AnyTimes()
	m.entries.EXPECT().ListOverlapping(gomock.Any(), "p1", gomock.Any(), gomock.Any()).Return(nil, nil).Times(3)
	m.statuses.EXPECT().
		UpsertDayStatus(gomock.Any(), "g1", gomock.Any(), model.StatusPending, 0).
		Return(&repository.OpError{Op: "upsert", Resource: "goal day status", Err: repository.ErrConflict})
	m.statuses.EXPECT().
		UpsertDayStatus(gomock.Any(), "g1", gomock.Any(), model.StatusPending, 0).
		Return(nil).Times(2)

	if err := engine.InitializeGoalStatuses(ctx, "g1", 3); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if !strings.Contains(logs.String(), "upsert goal g1") {
		t.Fatalf("expected failed upsert to be logged, got %q", logs.String())
	}
}

func TestInitializeStopsWhenGoalDisappears(t *testing.T) {
	engine, m := newMockEngine(t, io.Discard)
	ctx := context.Background()
	goal := &model.Goal{ID: "g1", ProjectID: "p1", MinMinutesPerDay: 30}

	m.statuses.EXPECT().ListDayStatuses(gomock.Any(), "g1").Return(nil, nil)
	// day 0 reads the goal twice, day 1 computes and then finds it gone
	m.goals.EXPECT().GetGoal(gomock.Any(), "g1").Return(goal, nil).Times(3)
	m.goals.EXPECT().GetGoal(gomock.Any(), "g1").Return(nil, repository.ErrNotFound)
	m.entries.EXPECT().ListOverlapping(gomock.Any(), "p1", gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)
	m.statuses.EXPECT().UpsertDayStatus(gomock.Any(), "g1", gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

	if err := engine.InitializeGoalStatuses(ctx, "g1", 5); err != nil {
		t.Fatalf("expected silent stop, got %v", err)
	}
}

func TestInitializeSkipsDayWhenEntriesFail(t *testing.T) {
	engine, m := newMockEngine(t, io.Discard)
	ctx := context.Background()
	goal := &model.Goal{ID: "g1", ProjectID: "p1", MinMinutesPerDay: 30}

	m.statuses.EXPECT().ListDayStatuses(gomock.Any(), "g1").Return(nil, errors.New("database is locked"))
	m.goals.EXPECT().GetGoal(gomock.Any(), "g1").Return(goal, nil).AnyTimes()
	m.entries.EXPECT().ListOverlapping(gomock.Any(), "p1", gomock.Any(), gomock.Any()).Return(nil, repository.ErrUnavailable)
	m.entries.EXPECT().ListOverlapping(gomock.Any(), "p1", gomock.Any(), gomock.Any()).Return(nil, nil)
	m.statuses.EXPECT().UpsertDayStatus(gomock.Any(), "g1", gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)

	if err := engine.InitializeGoalStatuses(ctx, "g1", 2); err != nil {
		t.Fatalf("initialize: %v", err)
	}
}

func TestGetGoalStreakPropagatesComputeError(t *testing.T) {
	engine, m := newMockEngine(t, io.Discard)
	ctx := context.Background()

	m.goals.EXPECT().GetGoal(gomock.Any(), "g1").Return(&model.Goal{ID: "g1", ProjectID: "p1", MinMinutesPerDay: 30}, nil)
	m.statuses.EXPECT().ListDayStatuses(gomock.Any(), "g1").Return(nil, nil)
	m.entries.EXPECT().ListOverlapping(gomock.Any(), "p1", gomock.Any(), gomock.Any()).Return(nil, repository.ErrUnavailable)

	_, err := engine.GetGoalStreak(ctx, "g1", 10)
	if !errors.Is(err, repository.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestUpdateTodayStatusesContinuesPastFailingGoal(t *testing.T) {
	var logs bytes.Buffer
	engine, m := newMockEngine(t, &logs)
	ctx := context.Background()

	m.goals.EXPECT().ListGoals(gomock.Any()).Return([]model.Goal{
		{ID: "g1", ProjectID: "p1", MinMinutesPerDay: 30},
		{ID: "g2", ProjectID: "p2", MinMinutesPerDay: 30},
		{ID: "g3", ProjectID: "p3", MinMinutesPerDay: 30},
	}, nil)
	today := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	entry := model.TimeEntry{ID: "e1", ProjectID: "p1", Start: today.Add(9 * time.Hour), End: ptrTime(today.Add(10 * time.Hour))}

	m.entries.EXPECT().ListOverlapping(gomock.Any(), "p1", today, today.AddDate(0, 0, 1)).Return([]model.TimeEntry{entry}, nil)
	m.entries.EXPECT().ListOverlapping(gomock.Any(), "p2", gomock.Any(), gomock.Any()).Return(nil, repository.ErrUnavailable)
	m.entries.EXPECT().ListOverlapping(gomock.Any(), "p3", gomock.Any(), gomock.Any()).Return(nil, nil)
	m.statuses.EXPECT().UpsertDayStatus(gomock.Any(), "g1", today, model.StatusCompleted, 60).Return(nil)
	m.statuses.EXPECT().UpsertDayStatus(gomock.Any(), "g3", today, model.StatusPending, 0).Return(nil)

	result, err := engine.UpdateTodayStatuses(ctx)
	if err != nil {
		t.Fatalf("update today: %v", err)
	}
	if result.Updated != 2 || result.Failed != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if !strings.Contains(logs.String(), "goal g2") {
		t.Fatalf("expected failing goal to be logged, got %q", logs.String())
	}
}

func TestUpdateTodayStatusesReturnsListError(t *testing.T) {
	engine, m := newMockEngine(t, io.Discard)

	m.goals.EXPECT().ListGoals(gomock.Any()).Return(nil, repository.ErrUnavailable)

	if _, err := engine.UpdateTodayStatuses(context.Background()); !errors.Is(err, repository.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestCleanupReportsRedateFailures(t *testing.T) {
	engine, m := newMockEngine(t, io.Discard)
	ctx := context.Background()
	day := time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC)

	m.statuses.EXPECT().ListDayStatuses(gomock.Any(), "g1").Return([]model.GoalDayStatus{
		{ID: "a", GoalID: "g1", Date: day.Add(3 * time.Hour), Minutes: 10},
		{ID: "b", GoalID: "g1", Date: day.AddDate(0, 0, 1).Add(5 * time.Hour), Minutes: 10},
	}, nil)
	m.statuses.EXPECT().UpdateDayStatusDate(gomock.Any(), "a", day).Return(repository.ErrConflict)
	m.statuses.EXPECT().UpdateDayStatusDate(gomock.Any(), "b", day.AddDate(0, 0, 1)).Return(nil)

	result, err := engine.CleanupDuplicateDayStatuses(ctx, "g1")
	if !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected joined conflict error, got %v", err)
	}
	if result.Renormalized != 1 || result.Deleted != 0 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestCountStreak(t *testing.T) {
	days := func(statuses ...model.DayStatus) []Day {
		out := make([]Day, len(statuses))
		for i, s := range statuses {
			out[i] = Day{Status: s}
		}
		return out
	}

	cases := []struct {
		name string
		days []Day
		want int
	}{
		{"empty", nil, 0},
		{"today pending", days(model.StatusPending, model.StatusCompleted), 0},
		{"today in progress", days(model.StatusInProgress, model.StatusCompleted), 0},
		{"yesterday missed", days(model.StatusCompleted, model.StatusPending, model.StatusCompleted), 1},
		{"run broken by gap", days(model.StatusCompleted, model.StatusCompleted, model.StatusPending, model.StatusCompleted), 2},
		{"full horizon", days(model.StatusCompleted, model.StatusCompleted, model.StatusCompleted), 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CountStreak(tc.days); got != tc.want {
				t.Fatalf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func ptrTime(t time.Time) *time.Time { return &t }
