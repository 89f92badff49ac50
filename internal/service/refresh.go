package service

import (
	"context"
	"log"
	"time"

	"timeo/internal/dates"
	"timeo/internal/repository"
	"timeo/internal/streak"
)

// goalRefresher re-derives the day statuses of a project's goals after its
// tracked time changed.
type goalRefresher struct {
	goals  *repository.GoalRepository
	engine *streak.Engine
	clock  dates.Clock
	loc    *time.Location
}

// refreshSince backfills every goal of projectID from the day containing
// since up to today, capped at the engine horizon. Failures are logged; the
// entry change that triggered the refresh has already been stored.
func (r goalRefresher) refreshSince(ctx context.Context, projectID string, since time.Time) {
	goals, err := r.goals.ListByProject(ctx, projectID)
	if err != nil {
		log.Printf("refresh goals of project %s: %v", projectID, err)
		return
	}
	if len(goals) == 0 {
		return
	}

	days := dates.DaysSpanned(since, r.clock.Now(), r.loc)
	if days > r.engine.DaysBack() {
		days = r.engine.DaysBack()
	}
	for _, goal := range goals {
		if err := r.engine.InitializeGoalStatuses(ctx, goal.ID, days); err != nil {
			log.Printf("refresh goal %s: %v", goal.ID, err)
		}
	}
}
