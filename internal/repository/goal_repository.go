package repository

import (
	"context"
	"database/sql"

	"timeo/internal/model"
)

const goalColumns = `id, project_id, min_minutes_per_day, created_at, updated_at`

type GoalRepository struct {
	db *sql.DB
}

func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) Create(ctx context.Context, goal *model.Goal) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO goals (`+goalColumns+`) VALUES (?, ?, ?, ?, ?)`,
		goal.ID,
		goal.ProjectID,
		goal.MinMinutesPerDay,
		formatTime(goal.CreatedAt),
		formatTime(goal.UpdatedAt),
	)
	return wrapErr("create", "goal", goal.ID, err)
}

func (r *GoalRepository) GetGoal(ctx context.Context, id string) (*model.Goal, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = ?`, id)
	goal, err := scanGoal(row)
	if err != nil {
		return nil, wrapErr("get", "goal", id, err)
	}
	return goal, nil
}

// ListGoals returns every goal, newest first.
func (r *GoalRepository) ListGoals(ctx context.Context) ([]model.Goal, error) {
	return r.query(ctx, "list", `SELECT `+goalColumns+` FROM goals ORDER BY created_at DESC, id`)
}

func (r *GoalRepository) ListByProject(ctx context.Context, projectID string) ([]model.Goal, error) {
	return r.query(
		ctx,
		"list by project",
		`SELECT `+goalColumns+` FROM goals WHERE project_id = ? ORDER BY created_at DESC, id`,
		projectID,
	)
}

func (r *GoalRepository) Update(ctx context.Context, goal *model.Goal) error {
	res, err := r.db.ExecContext(
		ctx,
		`UPDATE goals SET project_id = ?, min_minutes_per_day = ?, updated_at = ? WHERE id = ?`,
		goal.ProjectID,
		goal.MinMinutesPerDay,
		formatTime(goal.UpdatedAt),
		goal.ID,
	)
	if err != nil {
		return wrapErr("update", "goal", goal.ID, err)
	}
	return wrapErr("update", "goal", goal.ID, requireAffected(res))
}

func (r *GoalRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return wrapErr("delete", "goal", id, err)
	}
	return wrapErr("delete", "goal", id, requireAffected(res))
}

func (r *GoalRepository) query(ctx context.Context, op, query string, args ...interface{}) ([]model.Goal, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapErr(op, "goal", "", err)
	}
	defer rows.Close()

	goals := make([]model.Goal, 0)
	for rows.Next() {
		goal, scanErr := scanGoal(rows)
		if scanErr != nil {
			return nil, wrapErr(op, "goal", "", scanErr)
		}
		goals = append(goals, *goal)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, "goal", "", err)
	}
	return goals, nil
}

func scanGoal(s scanner) (*model.Goal, error) {
	goal := model.Goal{}
	var createdAt, updatedAt string
	if err := s.Scan(&goal.ID, &goal.ProjectID, &goal.MinMinutesPerDay, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if goal.CreatedAt, err = parseTime(createdAt, nil); err != nil {
		return nil, err
	}
	if goal.UpdatedAt, err = parseTime(updatedAt, nil); err != nil {
		return nil, err
	}
	return &goal, nil
}
