package repository

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"timeo/internal/model"
)

const dayStatusColumns = `id, goal_id, date, status, minutes, created_at, updated_at`

// DayStatusRepository stores goal_day_statuses. loc is the zone used to read
// legacy date values that were written without an offset.
type DayStatusRepository struct {
	db  *sql.DB
	loc *time.Location
	now func() time.Time
}

func NewDayStatusRepository(db *sql.DB, loc *time.Location) *DayStatusRepository {
	if loc == nil {
		loc = time.Local
	}
	return &DayStatusRepository{db: db, loc: loc, now: time.Now}
}

// UpsertDayStatus inserts the (goal, day) row or overwrites its status and
// minutes. Concurrent writers to the same key resolve as last writer wins.
func (r *DayStatusRepository) UpsertDayStatus(ctx context.Context, goalID string, day time.Time, status model.DayStatus, minutes int) error {
	now := formatTime(r.now())
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO goal_day_statuses (`+dayStatusColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (goal_id, date) DO UPDATE
		 SET status = excluded.status,
		     minutes = excluded.minutes,
		     updated_at = excluded.updated_at`,
		uuid.NewString(),
		goalID,
		formatTime(day),
		status.String(),
		minutes,
		now,
		now,
	)
	return wrapErr("upsert", "goal day status", goalID, err)
}

// Insert writes a row verbatim, keeping its date and timestamps.
func (r *DayStatusRepository) Insert(ctx context.Context, row *model.GoalDayStatus) error {
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO goal_day_statuses (`+dayStatusColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		row.ID,
		row.GoalID,
		formatTime(row.Date),
		row.Status.String(),
		row.Minutes,
		formatTime(row.CreatedAt),
		formatTime(row.UpdatedAt),
	)
	return wrapErr("insert", "goal day status", row.ID, err)
}

// ListDayStatuses returns all rows of a goal ordered by date ascending.
func (r *DayStatusRepository) ListDayStatuses(ctx context.Context, goalID string) ([]model.GoalDayStatus, error) {
	statuses, err := r.query(
		ctx,
		"list",
		`SELECT `+dayStatusColumns+` FROM goal_day_statuses WHERE goal_id = ?`,
		goalID,
	)
	if err != nil {
		return nil, err
	}
	// legacy text formats do not sort lexically with current ones
	sort.SliceStable(statuses, func(i, j int) bool {
		return statuses[i].Date.Before(statuses[j].Date)
	})
	return statuses, nil
}

// ListRecent returns up to limit rows of a goal, newest day first.
func (r *DayStatusRepository) ListRecent(ctx context.Context, goalID string, limit int) ([]model.GoalDayStatus, error) {
	statuses, err := r.ListDayStatuses(ctx, goalID)
	if err != nil {
		return nil, err
	}
	recent := make([]model.GoalDayStatus, 0, limit)
	for i := len(statuses) - 1; i >= 0 && len(recent) < limit; i-- {
		recent = append(recent, statuses[i])
	}
	return recent, nil
}

func (r *DayStatusRepository) DeleteDayStatuses(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	_, err := r.db.ExecContext(
		ctx,
		`DELETE FROM goal_day_statuses WHERE id IN (`+placeholders+`)`,
		args...,
	)
	return wrapErr("delete", "goal day status", "", err)
}

func (r *DayStatusRepository) UpdateDayStatusDate(ctx context.Context, id string, day time.Time) error {
	res, err := r.db.ExecContext(
		ctx,
		`UPDATE goal_day_statuses SET date = ?, updated_at = ? WHERE id = ?`,
		formatTime(day),
		formatTime(r.now()),
		id,
	)
	if err != nil {
		return wrapErr("update date", "goal day status", id, err)
	}
	return wrapErr("update date", "goal day status", id, requireAffected(res))
}

func (r *DayStatusRepository) query(ctx context.Context, op, query string, args ...interface{}) ([]model.GoalDayStatus, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, "goal day status", "", err)
	}
	defer rows.Close()

	statuses := make([]model.GoalDayStatus, 0)
	for rows.Next() {
		status, scanErr := r.scan(rows)
		if scanErr != nil {
			return nil, wrapErr(op, "goal day status", "", scanErr)
		}
		statuses = append(statuses, *status)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, "goal day status", "", err)
	}
	return statuses, nil
}

func (r *DayStatusRepository) scan(s scanner) (*model.GoalDayStatus, error) {
	row := model.GoalDayStatus{}
	var date, status, createdAt, updatedAt string
	if err := s.Scan(&row.ID, &row.GoalID, &date, &status, &row.Minutes, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if row.Date, err = parseTime(date, r.loc); err != nil {
		return nil, err
	}
	// the unique key compares text, so an equal instant in another layout is
	// still a different key
	row.LegacyDate = date != formatTime(row.Date)
	if row.Status, err = model.ParseDayStatus(status); err != nil {
		return nil, err
	}
	if row.CreatedAt, err = parseTime(createdAt, r.loc); err != nil {
		return nil, err
	}
	if row.UpdatedAt, err = parseTime(updatedAt, r.loc); err != nil {
		return nil, err
	}
	return &row, nil
}
