package repository

import (
	"context"
	"database/sql"

	"timeo/internal/model"
)

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO projects (id, name, color, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		project.ID,
		project.Name,
		project.Color,
		formatTime(project.CreatedAt),
		formatTime(project.UpdatedAt),
	)
	return wrapErr("create", "project", project.ID, err)
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (*model.Project, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, name, color, created_at, updated_at
		 FROM projects WHERE id = ?`,
		id,
	)
	project, err := scanProject(row)
	if err != nil {
		return nil, wrapErr("get", "project", id, err)
	}
	return project, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, name, color, created_at, updated_at
		 FROM projects ORDER BY name`,
	)
	if err != nil {
		return nil, wrapErr("list", "project", "", err)
	}
	defer rows.Close()

	projects := make([]model.Project, 0)
	for rows.Next() {
		project, scanErr := scanProject(rows)
		if scanErr != nil {
			return nil, wrapErr("list", "project", "", scanErr)
		}
		projects = append(projects, *project)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("list", "project", "", err)
	}
	return projects, nil
}

func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	res, err := r.db.ExecContext(
		ctx,
		`UPDATE projects SET name = ?, color = ?, updated_at = ? WHERE id = ?`,
		project.Name,
		project.Color,
		formatTime(project.UpdatedAt),
		project.ID,
	)
	if err != nil {
		return wrapErr("update", "project", project.ID, err)
	}
	return wrapErr("update", "project", project.ID, requireAffected(res))
}

// Delete removes the project; entries, goals and day statuses follow through
// ON DELETE CASCADE.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return wrapErr("delete", "project", id, err)
	}
	return wrapErr("delete", "project", id, requireAffected(res))
}

func scanProject(s scanner) (*model.Project, error) {
	project := model.Project{}
	var createdAt, updatedAt string
	if err := s.Scan(&project.ID, &project.Name, &project.Color, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if project.CreatedAt, err = parseTime(createdAt, nil); err != nil {
		return nil, err
	}
	if project.UpdatedAt, err = parseTime(updatedAt, nil); err != nil {
		return nil, err
	}
	return &project, nil
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
