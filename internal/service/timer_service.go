package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"timeo/internal/dates"
	apperrors "timeo/internal/errors"
	"timeo/internal/model"
	"timeo/internal/repository"
	"timeo/internal/streak"
)

const (
	defaultRecentEntries = 50
	maxRecentEntries     = 500
)

type TimerService struct {
	entries  *repository.TimeEntryRepository
	projects *repository.ProjectRepository
	refresh  goalRefresher
	clock    dates.Clock
	loc      *time.Location
}

type UpdateEntryInput struct {
	Start *time.Time
	End   *time.Time
	Note  *string
}

func NewTimerService(
	entries *repository.TimeEntryRepository,
	projects *repository.ProjectRepository,
	goals *repository.GoalRepository,
	engine *streak.Engine,
	clock dates.Clock,
	loc *time.Location,
) *TimerService {
	if clock == nil {
		clock = dates.SystemClock{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &TimerService{
		entries:  entries,
		projects: projects,
		refresh:  goalRefresher{goals: goals, engine: engine, clock: clock, loc: loc},
		clock:    clock,
		loc:      loc,
	}
}

// Start closes whatever is running and opens a new entry for projectID.
func (s *TimerService) Start(ctx context.Context, projectID, note string) (*model.TimeEntry, *apperrors.APIError) {
	if strings.TrimSpace(projectID) == "" {
		return nil, apperrors.BadRequest("invalid_project", "projectId is required")
	}
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		return nil, storageError(err, "project", "failed to get project")
	}

	now := s.clock.Now().UTC()
	closed, err := s.entries.CloseOpen(ctx, now)
	if err != nil {
		return nil, storageError(err, "time_entry", "failed to stop running entries")
	}
	for _, entry := range closed {
		s.refresh.refreshSince(ctx, entry.ProjectID, entry.Start)
	}

	entry := model.TimeEntry{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Start:     now,
		Note:      strings.TrimSpace(note),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.entries.Create(ctx, &entry); err != nil {
		return nil, storageError(err, "time_entry", "failed to start entry")
	}
	return &entry, nil
}

// Restart opens a new entry with the project and note of a stopped one.
func (s *TimerService) Restart(ctx context.Context, entryID string) (*model.TimeEntry, *apperrors.APIError) {
	source, err := s.entries.Get(ctx, entryID)
	if err != nil {
		return nil, storageError(err, "time_entry", "failed to get entry")
	}
	if source.Running() {
		return nil, apperrors.BadRequest("entry_running", "time entry is still running")
	}
	return s.Start(ctx, source.ProjectID, source.Note)
}

// Stop closes entryID, or the most recently started running entry when
// entryID is empty.
func (s *TimerService) Stop(ctx context.Context, entryID string) (*model.TimeEntry, *apperrors.APIError) {
	var (
		entry *model.TimeEntry
		err   error
	)
	if entryID == "" {
		entry, err = s.entries.LatestOpen(ctx)
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.BadRequest("no_running_entry", "no running time entry")
		}
	} else {
		entry, err = s.entries.Get(ctx, entryID)
	}
	if err != nil {
		return nil, storageError(err, "time_entry", "failed to get entry")
	}
	if !entry.Running() {
		return nil, apperrors.BadRequest("no_running_entry", "time entry is already stopped")
	}

	now := s.clock.Now().UTC()
	entry.End = &now
	entry.UpdatedAt = now
	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, storageError(err, "time_entry", "failed to stop entry")
	}

	s.refresh.refreshSince(ctx, entry.ProjectID, entry.Start)
	return entry, nil
}

// Running returns the latest open entry, or nil when the timer is idle.
func (s *TimerService) Running(ctx context.Context) (*model.TimeEntry, *apperrors.APIError) {
	entry, err := s.entries.LatestOpen(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storageError(err, "time_entry", "failed to get running entry")
	}
	return entry, nil
}

// ListEntries returns entries started in [startDate, endDate). Both default
// to today; a bare endDate is exclusive.
func (s *TimerService) ListEntries(ctx context.Context, startDate, endDate string) ([]model.TimeEntry, *apperrors.APIError) {
	now := s.clock.Now()
	from := dates.DayWindow(now, s.loc).Start
	if strings.TrimSpace(startDate) != "" {
		parsed, err := dates.ParseDay(startDate, now, s.loc)
		if err != nil {
			return nil, apperrors.BadRequest("invalid_start_date", err.Error())
		}
		from = parsed
	}

	to := dates.DayWindow(from, s.loc).End
	if strings.TrimSpace(endDate) != "" {
		parsed, err := dates.ParseDay(endDate, now, s.loc)
		if err != nil {
			return nil, apperrors.BadRequest("invalid_end_date", err.Error())
		}
		to = parsed
	}
	if !to.After(from) {
		return nil, apperrors.BadRequest("invalid_range", "endDate must be after startDate")
	}

	entries, err := s.entries.ListStartedBetween(ctx, from, to)
	if err != nil {
		return nil, storageError(err, "time_entry", "failed to list entries")
	}
	return entries, nil
}

// Recent returns today's stopped entries, newest first.
func (s *TimerService) Recent(ctx context.Context, limit int) ([]model.TimeEntry, *apperrors.APIError) {
	if limit <= 0 {
		limit = defaultRecentEntries
	}
	if limit > maxRecentEntries {
		return nil, apperrors.BadRequest("invalid_limit", "limit is too large")
	}

	today := dates.DayWindow(s.clock.Now(), s.loc)
	entries, err := s.entries.ListFinishedBetween(ctx, today.Start, today.End, limit)
	if err != nil {
		return nil, storageError(err, "time_entry", "failed to list recent entries")
	}
	return entries, nil
}

func (s *TimerService) UpdateEntry(ctx context.Context, id string, input UpdateEntryInput) (*model.TimeEntry, *apperrors.APIError) {
	entry, err := s.entries.Get(ctx, id)
	if err != nil {
		return nil, storageError(err, "time_entry", "failed to get entry")
	}
	previousStart := entry.Start

	if input.Start != nil {
		entry.Start = input.Start.UTC()
	}
	if input.End != nil {
		end := input.End.UTC()
		entry.End = &end
	}
	if input.Note != nil {
		entry.Note = strings.TrimSpace(*input.Note)
	}
	if entry.End != nil && !entry.End.After(entry.Start) {
		return nil, apperrors.BadRequest("invalid_range", "end must be after start")
	}

	entry.UpdatedAt = s.clock.Now().UTC()
	if err := s.entries.Update(ctx, entry); err != nil {
		return nil, storageError(err, "time_entry", "failed to update entry")
	}

	since := entry.Start
	if previousStart.Before(since) {
		since = previousStart
	}
	s.refresh.refreshSince(ctx, entry.ProjectID, since)
	return entry, nil
}

func (s *TimerService) DeleteEntry(ctx context.Context, id string) *apperrors.APIError {
	entry, err := s.entries.Get(ctx, id)
	if err != nil {
		return storageError(err, "time_entry", "failed to get entry")
	}
	if err := s.entries.Delete(ctx, id); err != nil {
		return storageError(err, "time_entry", "failed to delete entry")
	}

	s.refresh.refreshSince(ctx, entry.ProjectID, entry.Start)
	return nil
}
