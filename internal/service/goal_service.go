package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"timeo/internal/dates"
	apperrors "timeo/internal/errors"
	"timeo/internal/model"
	"timeo/internal/repository"
	"timeo/internal/streak"
)

// maxHistoryDays bounds caller-supplied streak history requests.
const maxHistoryDays = 3650

type GoalService struct {
	goals    *repository.GoalRepository
	projects *repository.ProjectRepository
	statuses *repository.DayStatusRepository
	engine   *streak.Engine
	clock    dates.Clock
}

// GoalDetail carries the goal with its stored days, newest first.
type GoalDetail struct {
	Goal     model.Goal            `json:"goal"`
	Statuses []model.GoalDayStatus `json:"statuses"`
}

// GoalSummary carries both streak readings. Streak is strict: it is 0 until
// today is completed. ProvisionalStreak keeps yesterday's run visible while
// today is still open.
type GoalSummary struct {
	model.Goal
	ProjectName       string          `json:"projectName"`
	ProjectColor      string          `json:"projectColor"`
	TodayMinutes      int             `json:"todayMinutes"`
	TodayStatus       model.DayStatus `json:"todayStatus"`
	Streak            int             `json:"streak"`
	ProvisionalStreak int             `json:"provisionalStreak"`
}

type StreakHistory struct {
	GoalID            string       `json:"goalId"`
	Days              []streak.Day `json:"days"`
	Streak            int          `json:"streak"`
	ProvisionalStreak int          `json:"provisionalStreak"`
}

func NewGoalService(
	goals *repository.GoalRepository,
	projects *repository.ProjectRepository,
	statuses *repository.DayStatusRepository,
	engine *streak.Engine,
	clock dates.Clock,
) *GoalService {
	if clock == nil {
		clock = dates.SystemClock{}
	}
	return &GoalService{
		goals:    goals,
		projects: projects,
		statuses: statuses,
		engine:   engine,
		clock:    clock,
	}
}

// Create stores the goal and backfills its day statuses over the engine horizon.
func (s *GoalService) Create(ctx context.Context, projectID string, minMinutesPerDay int) (*GoalDetail, *apperrors.APIError) {
	if strings.TrimSpace(projectID) == "" {
		return nil, apperrors.BadRequest("invalid_project", "projectId is required")
	}
	if minMinutesPerDay <= 0 {
		return nil, apperrors.BadRequest("invalid_min_minutes", "minMinutesPerDay must be a positive number of minutes")
	}
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, storageError(err, "project", "failed to get project")
	}

	now := s.clock.Now().UTC()
	goal := model.Goal{
		ID:               uuid.NewString(),
		ProjectID:        projectID,
		MinMinutesPerDay: minMinutesPerDay,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.goals.Create(ctx, &goal); err != nil {
		return nil, storageError(err, "goal", "failed to create goal")
	}

	if err := s.engine.InitializeGoalStatuses(ctx, goal.ID, s.engine.DaysBack()); err != nil {
		return nil, apperrors.Internal("failed to initialize goal statuses")
	}

	statuses, err := s.statuses.ListRecent(ctx, goal.ID, s.engine.DaysBack())
	if err != nil {
		return nil, storageError(err, "goal", "failed to list goal statuses")
	}
	return &GoalDetail{Goal: goal, Statuses: statuses}, nil
}

// List refreshes today's statuses and summarizes every goal.
func (s *GoalService) List(ctx context.Context) ([]GoalSummary, *apperrors.APIError) {
	if _, err := s.engine.UpdateTodayStatuses(ctx); err != nil {
		return nil, storageError(err, "goal", "failed to refresh today's statuses")
	}

	goals, err := s.goals.ListGoals(ctx)
	if err != nil {
		return nil, storageError(err, "goal", "failed to list goals")
	}
	projects, apiErr := projectIndex(ctx, s.projects)
	if apiErr != nil {
		return nil, apiErr
	}

	summaries := make([]GoalSummary, 0, len(goals))
	for _, goal := range goals {
		days, err := s.engine.GetGoalStreak(ctx, goal.ID, s.engine.DaysBack())
		if err != nil {
			return nil, storageError(err, "goal", "failed to compute streak")
		}

		summary := GoalSummary{
			Goal:              goal,
			ProjectName:       projects[goal.ProjectID].Name,
			ProjectColor:      projects[goal.ProjectID].Color,
			Streak:            streak.CountStreak(days),
			ProvisionalStreak: ProvisionalStreak(days),
		}
		if len(days) > 0 {
			summary.TodayMinutes = days[0].Minutes
			summary.TodayStatus = days[0].Status
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Update changes the daily threshold and re-derives the stored statuses.
func (s *GoalService) Update(ctx context.Context, id string, minMinutesPerDay int) (*model.Goal, *apperrors.APIError) {
	if minMinutesPerDay <= 0 {
		return nil, apperrors.BadRequest("invalid_min_minutes", "minMinutesPerDay must be a positive number of minutes")
	}

	goal, err := s.goals.GetGoal(ctx, id)
	if err != nil {
		return nil, storageError(err, "goal", "failed to get goal")
	}
	goal.MinMinutesPerDay = minMinutesPerDay
	goal.UpdatedAt = s.clock.Now().UTC()
	if err := s.goals.Update(ctx, goal); err != nil {
		return nil, storageError(err, "goal", "failed to update goal")
	}

	if err := s.engine.InitializeGoalStatuses(ctx, goal.ID, s.engine.DaysBack()); err != nil {
		return nil, apperrors.Internal("failed to refresh goal statuses")
	}
	return goal, nil
}

func (s *GoalService) Delete(ctx context.Context, id string) *apperrors.APIError {
	if err := s.goals.Delete(ctx, id); err != nil {
		return storageError(err, "goal", "failed to delete goal")
	}
	return nil
}

// Streaks returns the recomputed history of the last days days, newest first.
func (s *GoalService) Streaks(ctx context.Context, id string, days int) (*StreakHistory, *apperrors.APIError) {
	if days <= 0 {
		days = s.engine.DaysBack()
	}
	if days > maxHistoryDays {
		return nil, apperrors.BadRequest("invalid_days", "days is too large")
	}
	if _, err := s.goals.GetGoal(ctx, id); err != nil {
		return nil, storageError(err, "goal", "failed to get goal")
	}

	history, err := s.engine.GetGoalStreak(ctx, id, days)
	if err != nil {
		return nil, storageError(err, "goal", "failed to compute streak")
	}
	return &StreakHistory{
		GoalID:            id,
		Days:              history,
		Streak:            streak.CountStreak(history),
		ProvisionalStreak: ProvisionalStreak(history),
	}, nil
}

// Cleanup collapses duplicate day rows of a goal and re-dates legacy rows.
func (s *GoalService) Cleanup(ctx context.Context, id string) (*streak.ReconcileResult, *apperrors.APIError) {
	if _, err := s.goals.GetGoal(ctx, id); err != nil {
		return nil, storageError(err, "goal", "failed to get goal")
	}

	result, err := s.engine.CleanupDuplicateDayStatuses(ctx, id)
	if err != nil {
		return nil, storageError(err, "goal", "failed to clean up day statuses")
	}
	return &result, nil
}

// ProvisionalStreak counts the run ending yesterday when today is not yet
// completed, and the strict streak otherwise. It is a display value only.
func ProvisionalStreak(days []streak.Day) int {
	if len(days) == 0 {
		return 0
	}
	if days[0].Status == model.StatusCompleted {
		return streak.CountStreak(days)
	}
	return streak.CountStreak(days[1:])
}
