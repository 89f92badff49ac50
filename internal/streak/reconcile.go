package streak

import (
	"context"
	"errors"

	"timeo/internal/dates"
	"timeo/internal/model"
)

type ReconcileResult struct {
	Deleted      int `json:"deleted"`
	Renormalized int `json:"renormalized"`
}

// CleanupDuplicateDayStatuses collapses rows of a goal that fall on the same
// local day into one and rewrites surviving dates to local midnight in the
// stored layout, so later upserts hit the same unique key.
// Running it again without new data changes nothing.
func (e *Engine) CleanupDuplicateDayStatuses(ctx context.Context, goalID string) (ReconcileResult, error) {
	result := ReconcileResult{}

	rows, err := e.statuses.ListDayStatuses(ctx, goalID)
	if err != nil {
		return result, err
	}

	order := make([]int64, 0, len(rows))
	winners := make(map[int64]model.GoalDayStatus, len(rows))
	var losers []string
	for _, row := range rows {
		key := dates.NormalizeToLocalMidnight(row.Date, e.loc).Unix()
		current, seen := winners[key]
		if !seen {
			order = append(order, key)
			winners[key] = row
			continue
		}
		if preferred(row, current) {
			losers = append(losers, current.ID)
			winners[key] = row
		} else {
			losers = append(losers, row.ID)
		}
	}

	if len(losers) > 0 {
		if err := e.statuses.DeleteDayStatuses(ctx, losers); err != nil {
			return result, err
		}
		result.Deleted = len(losers)
	}

	var errs []error
	for _, key := range order {
		row := winners[key]
		dayKey := dates.NormalizeToLocalMidnight(row.Date, e.loc)
		if row.Date.Equal(dayKey) && !row.LegacyDate {
			continue
		}
		if err := e.statuses.UpdateDayStatusDate(ctx, row.ID, dayKey); err != nil {
			errs = append(errs, err)
			continue
		}
		result.Renormalized++
	}
	return result, errors.Join(errs...)
}

// preferred reports whether candidate should replace current: more minutes
// wins, then the later createdAt.
func preferred(candidate, current model.GoalDayStatus) bool {
	if candidate.Minutes != current.Minutes {
		return candidate.Minutes > current.Minutes
	}
	return candidate.CreatedAt.After(current.CreatedAt)
}
