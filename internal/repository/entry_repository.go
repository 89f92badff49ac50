package repository

import (
	"context"
	"database/sql"
	"time"

	"timeo/internal/model"
)

const entryColumns = `id, project_id, start_time, end_time, note, created_at, updated_at`

type TimeEntryRepository struct {
	db *sql.DB
}

func NewTimeEntryRepository(db *sql.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

func (r *TimeEntryRepository) Create(ctx context.Context, entry *model.TimeEntry) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO time_entries (`+entryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.ProjectID,
		formatTime(entry.Start),
		nullableTime(entry.End),
		entry.Note,
		formatTime(entry.CreatedAt),
		formatTime(entry.UpdatedAt),
	)
	return wrapErr("create", "time entry", entry.ID, err)
}

func (r *TimeEntryRepository) Get(ctx context.Context, id string) (*model.TimeEntry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+entryColumns+` FROM time_entries WHERE id = ?`, id)
	entry, err := scanTimeEntry(row)
	if err != nil {
		return nil, wrapErr("get", "time entry", id, err)
	}
	return entry, nil
}

func (r *TimeEntryRepository) Update(ctx context.Context, entry *model.TimeEntry) error {
	res, err := r.db.ExecContext(
		ctx,
		`UPDATE time_entries
		 SET start_time = ?,
		     end_time = ?,
		     note = ?,
		     updated_at = ?
		 WHERE id = ?`,
		formatTime(entry.Start),
		nullableTime(entry.End),
		entry.Note,
		formatTime(entry.UpdatedAt),
		entry.ID,
	)
	if err != nil {
		return wrapErr("update", "time entry", entry.ID, err)
	}
	return wrapErr("update", "time entry", entry.ID, requireAffected(res))
}

func (r *TimeEntryRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM time_entries WHERE id = ?`, id)
	if err != nil {
		return wrapErr("delete", "time entry", id, err)
	}
	return wrapErr("delete", "time entry", id, requireAffected(res))
}

// CloseOpen stamps end on every running entry and returns the entries it closed.
func (r *TimeEntryRepository) CloseOpen(ctx context.Context, end time.Time) ([]model.TimeEntry, error) {
	open, err := r.query(ctx, "close open", `SELECT `+entryColumns+` FROM time_entries WHERE end_time IS NULL`)
	if err != nil {
		return nil, err
	}
	if len(open) == 0 {
		return open, nil
	}

	if _, err := r.db.ExecContext(
		ctx,
		`UPDATE time_entries SET end_time = ?, updated_at = ? WHERE end_time IS NULL`,
		formatTime(end),
		formatTime(end),
	); err != nil {
		return nil, wrapErr("close open", "time entry", "", err)
	}

	for i := range open {
		closedAt := end
		open[i].End = &closedAt
		open[i].UpdatedAt = end
	}
	return open, nil
}

// LatestOpen returns the most recently started running entry.
func (r *TimeEntryRepository) LatestOpen(ctx context.Context) (*model.TimeEntry, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT `+entryColumns+` FROM time_entries
		 WHERE end_time IS NULL
		 ORDER BY start_time DESC
		 LIMIT 1`,
	)
	entry, err := scanTimeEntry(row)
	if err != nil {
		return nil, wrapErr("latest open", "time entry", "", err)
	}
	return entry, nil
}

// ListOverlapping returns entries intersecting [start, end), running entries
// included. An empty projectID matches every project.
func (r *TimeEntryRepository) ListOverlapping(ctx context.Context, projectID string, start, end time.Time) ([]model.TimeEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_entries
		 WHERE start_time < ? AND (end_time > ? OR end_time IS NULL)`
	args := []interface{}{formatTime(end), formatTime(start)}
	if projectID != "" {
		query += ` AND project_id = ?`
		args = append(args, projectID)
	}
	query += ` ORDER BY start_time ASC`
	return r.query(ctx, "list overlapping", query, args...)
}

// ListStartedBetween returns entries whose start lies in [from, to).
func (r *TimeEntryRepository) ListStartedBetween(ctx context.Context, from, to time.Time) ([]model.TimeEntry, error) {
	return r.query(
		ctx,
		"list started between",
		`SELECT `+entryColumns+` FROM time_entries
		 WHERE start_time >= ? AND start_time < ?
		 ORDER BY start_time ASC`,
		formatTime(from),
		formatTime(to),
	)
}

// ListFinishedBetween returns stopped entries whose start lies in
// [from, to), newest first, at most limit of them.
func (r *TimeEntryRepository) ListFinishedBetween(ctx context.Context, from, to time.Time, limit int) ([]model.TimeEntry, error) {
	return r.query(
		ctx,
		"list finished between",
		`SELECT `+entryColumns+` FROM time_entries
		 WHERE end_time IS NOT NULL AND start_time >= ? AND start_time < ?
		 ORDER BY start_time DESC
		 LIMIT ?`,
		formatTime(from),
		formatTime(to),
		limit,
	)
}

// StartRange returns the earliest and latest start of stopped entries. Both
// are nil when nothing has been tracked yet.
func (r *TimeEntryRepository) StartRange(ctx context.Context) (*time.Time, *time.Time, error) {
	var first, last sql.NullString
	err := r.db.QueryRowContext(
		ctx,
		`SELECT MIN(start_time), MAX(start_time) FROM time_entries WHERE end_time IS NOT NULL`,
	).Scan(&first, &last)
	if err != nil {
		return nil, nil, wrapErr("start range", "time entry", "", err)
	}

	firstTime, err := parseNullTime(first, nil)
	if err != nil {
		return nil, nil, wrapErr("start range", "time entry", "", err)
	}
	lastTime, err := parseNullTime(last, nil)
	if err != nil {
		return nil, nil, wrapErr("start range", "time entry", "", err)
	}
	return firstTime, lastTime, nil
}

func (r *TimeEntryRepository) query(ctx context.Context, op, query string, args ...interface{}) ([]model.TimeEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, "time entry", "", err)
	}
	defer rows.Close()

	entries := make([]model.TimeEntry, 0)
	for rows.Next() {
		entry, scanErr := scanTimeEntry(rows)
		if scanErr != nil {
			return nil, wrapErr(op, "time entry", "", scanErr)
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, "time entry", "", err)
	}
	return entries, nil
}

func scanTimeEntry(s scanner) (*model.TimeEntry, error) {
	entry := model.TimeEntry{}
	var start, createdAt, updatedAt string
	var end sql.NullString
	if err := s.Scan(&entry.ID, &entry.ProjectID, &start, &end, &entry.Note, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if entry.Start, err = parseTime(start, nil); err != nil {
		return nil, err
	}
	if entry.End, err = parseNullTime(end, nil); err != nil {
		return nil, err
	}
	if entry.CreatedAt, err = parseTime(createdAt, nil); err != nil {
		return nil, err
	}
	if entry.UpdatedAt, err = parseTime(updatedAt, nil); err != nil {
		return nil, err
	}
	return &entry, nil
}
