package worker

import (
	"context"
	"log"
	"time"

	"timeo/internal/streak"
)

type TodayRefresher interface {
	UpdateTodayStatuses(ctx context.Context) (streak.RefreshResult, error)
}

// Refresher keeps today's goal statuses current so that a day rolling over
// is picked up without a request hitting the goal list.
type Refresher struct {
	Engine   TodayRefresher
	Interval time.Duration
	Logger   *log.Logger
}

// Run refreshes once immediately and then every Interval until ctx is done.
func (w *Refresher) Run(ctx context.Context) {
	logger := w.Logger
	if logger == nil {
		logger = log.Default()
	}
	if w.Interval <= 0 {
		return
	}

	w.refresh(ctx, logger)

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			w.refresh(ctx, logger)
		}
	}
}

func (w *Refresher) refresh(ctx context.Context, logger *log.Logger) {
	result, err := w.Engine.UpdateTodayStatuses(ctx)
	if err != nil {
		if ctx.Err() == nil {
			logger.Printf("today refresh error: %v", err)
		}
		return
	}
	if result.Failed > 0 {
		logger.Printf("today refresh: %d updated, %d failed", result.Updated, result.Failed)
	}
}
