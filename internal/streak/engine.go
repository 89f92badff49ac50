// Package streak derives per-day goal statuses from tracked time and turns
// them into streaks. Day statuses are a cache: every call recomputes minutes
// from the time entries and overwrites the stored row.
package streak

import (
	"context"
	"errors"
	"log"
	"time"

	"timeo/internal/dates"
	"timeo/internal/model"
	"timeo/internal/repository"
)

const DefaultDaysBack = 90

// Day is one recomputed day of a goal's history.
type Day struct {
	Date    time.Time       `json:"date"`
	Minutes int             `json:"minutes"`
	Status  model.DayStatus `json:"status"`
}

type RefreshResult struct {
	Updated int `json:"updated"`
	Failed  int `json:"failed"`
}

type Engine struct {
	goals    GoalReader
	entries  EntryReader
	statuses DayStatusStore
	clock    dates.Clock
	loc      *time.Location
	daysBack int
	logger   *log.Logger
}

func New(goals GoalReader, entries EntryReader, statuses DayStatusStore, clock dates.Clock, loc *time.Location) *Engine {
	if clock == nil {
		clock = dates.SystemClock{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &Engine{
		goals:    goals,
		entries:  entries,
		statuses: statuses,
		clock:    clock,
		loc:      loc,
		daysBack: DefaultDaysBack,
		logger:   log.Default(),
	}
}

// WithDaysBack sets the horizon used by ComputeStreak.
func (e *Engine) WithDaysBack(days int) *Engine {
	if days > 0 {
		e.daysBack = days
	}
	return e
}

func (e *Engine) WithLogger(logger *log.Logger) *Engine {
	if logger != nil {
		e.logger = logger
	}
	return e
}

func (e *Engine) DaysBack() int { return e.daysBack }

// ComputeGoalDayMinutes sums the overlap of every entry of the goal's
// project with [dayStart, dayEnd). Overlapping entries are summed, not
// merged. A missing goal yields 0.
func (e *Engine) ComputeGoalDayMinutes(ctx context.Context, goalID string, dayStart, dayEnd time.Time) (int, error) {
	goal, err := e.goals.GetGoal(ctx, goalID)
	if errors.Is(err, repository.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return e.projectMinutes(ctx, goal.ProjectID, dates.Window{Start: dayStart, End: dayEnd})
}

func (e *Engine) projectMinutes(ctx context.Context, projectID string, w dates.Window) (int, error) {
	if projectID == "" {
		return 0, nil
	}
	entries, err := e.entries.ListOverlapping(ctx, projectID, w.Start, w.End)
	if err != nil {
		return 0, err
	}

	now := e.clock.Now()
	minutes := 0
	for _, entry := range entries {
		minutes += dates.OverlapMinutes(entry.Start, entry.End, w, now)
	}
	return minutes, nil
}

// storeDay writes the row of the day w covers. The day key is w.Start, which
// DayWindow always places at local midnight.
func (e *Engine) storeDay(ctx context.Context, goalID string, w dates.Window, status model.DayStatus, minutes int) error {
	return e.statuses.UpsertDayStatus(ctx, goalID, w.Start, status, minutes)
}

// InitializeGoalStatuses backfills the last daysBack days of a goal,
// newest first. Individual day failures are logged and skipped; the loop
// stops quietly if the goal disappears.
func (e *Engine) InitializeGoalStatuses(ctx context.Context, goalID string, daysBack int) error {
	if daysBack <= 0 {
		daysBack = DefaultDaysBack
	}

	if _, err := e.CleanupDuplicateDayStatuses(ctx, goalID); err != nil {
		e.logger.Printf("streak: cleanup before backfill of goal %s: %v", goalID, err)
	}

	now := e.clock.Now()
	for i := 0; i < daysBack; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		window := dates.DaysAgo(now, i, e.loc)
		minutes, err := e.ComputeGoalDayMinutes(ctx, goalID, window.Start, window.End)
		if err != nil {
			e.logger.Printf("streak: compute goal %s day %s: %v", goalID, dates.FormatDay(window.Start, e.loc), err)
			continue
		}

		goal, err := e.goals.GetGoal(ctx, goalID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			e.logger.Printf("streak: reload goal %s: %v", goalID, err)
			continue
		}

		status := model.ClassifyDay(minutes, goal.MinMinutesPerDay)
		if err := e.storeDay(ctx, goalID, window, status, minutes); err != nil {
			e.logger.Printf("streak: upsert goal %s day %s: %v", goalID, dates.FormatDay(window.Start, e.loc), err)
		}
	}
	return nil
}

// GetGoalStreak recomputes and stores the last daysBack days of a goal and
// returns them newest first. A missing goal yields an empty history.
func (e *Engine) GetGoalStreak(ctx context.Context, goalID string, daysBack int) ([]Day, error) {
	if daysBack <= 0 {
		daysBack = DefaultDaysBack
	}

	goal, err := e.goals.GetGoal(ctx, goalID)
	if errors.Is(err, repository.ErrNotFound) {
		return []Day{}, nil
	}
	if err != nil {
		return nil, err
	}

	if _, err := e.CleanupDuplicateDayStatuses(ctx, goalID); err != nil {
		e.logger.Printf("streak: cleanup before streak of goal %s: %v", goalID, err)
	}

	now := e.clock.Now()
	days := make([]Day, 0, daysBack)
	for i := 0; i < daysBack; i++ {
		window := dates.DaysAgo(now, i, e.loc)
		minutes, err := e.projectMinutes(ctx, goal.ProjectID, window)
		if err != nil {
			return nil, err
		}

		status := model.ClassifyDay(minutes, goal.MinMinutesPerDay)
		if err := e.storeDay(ctx, goalID, window, status, minutes); err != nil {
			e.logger.Printf("streak: upsert goal %s day %s: %v", goalID, dates.FormatDay(window.Start, e.loc), err)
		}
		days = append(days, Day{Date: window.Start, Minutes: minutes, Status: status})
	}
	return days, nil
}

// ComputeStreak is the number of consecutive completed days ending today.
// An incomplete today means 0.
func (e *Engine) ComputeStreak(ctx context.Context, goalID string) (int, error) {
	days, err := e.GetGoalStreak(ctx, goalID, e.daysBack)
	if err != nil {
		return 0, err
	}
	return CountStreak(days), nil
}

// CountStreak counts completed days from the head of a newest-first history
// up to the first day that is not completed.
func CountStreak(days []Day) int {
	streak := 0
	for _, day := range days {
		if day.Status != model.StatusCompleted {
			break
		}
		streak++
	}
	return streak
}

// UpdateTodayStatuses recomputes today's row for every goal. A failing goal
// is logged and counted; the rest are still processed.
func (e *Engine) UpdateTodayStatuses(ctx context.Context) (RefreshResult, error) {
	result := RefreshResult{}

	goals, err := e.goals.ListGoals(ctx)
	if err != nil {
		return result, err
	}

	today := dates.DayWindow(e.clock.Now(), e.loc)
	for _, goal := range goals {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		minutes, err := e.projectMinutes(ctx, goal.ProjectID, today)
		if err != nil {
			e.logger.Printf("streak: today minutes for goal %s: %v", goal.ID, err)
			result.Failed++
			continue
		}

		status := model.ClassifyDay(minutes, goal.MinMinutesPerDay)
		if err := e.storeDay(ctx, goal.ID, today, status, minutes); err != nil {
			e.logger.Printf("streak: today upsert for goal %s: %v", goal.ID, err)
			result.Failed++
			continue
		}
		result.Updated++
	}
	return result, nil
}
