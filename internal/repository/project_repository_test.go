package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"timeo/internal/model"
)

func TestProjectCRUD(t *testing.T) {
	database := setupDB(t)
	repo := NewProjectRepository(database)
	ctx := context.Background()

	created := seedProject(t, repo, "Writing")
	seedProject(t, repo, "Abacus")

	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get project: %v", err)
	}
	if got.Name != "Writing" || got.Color != created.Color {
		t.Fatalf("unexpected project: %+v", got)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list projects: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Abacus" {
		t.Fatalf("expected projects ordered by name, got %+v", list)
	}

	got.Color = "#ff0000"
	got.UpdatedAt = time.Now().UTC()
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("update project: %v", err)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	if _, err := repo.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}

func TestProjectDuplicateNameIsConflict(t *testing.T) {
	database := setupDB(t)
	repo := NewProjectRepository(database)

	seedProject(t, repo, "Reading")
	dup := seedProjectErr(repo, "Reading")
	if !errors.Is(dup, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", dup)
	}

	var opErr *OpError
	if !errors.As(dup, &opErr) || opErr.Resource != "project" {
		t.Fatalf("expected project OpError, got %v", dup)
	}
}

func TestProjectDeleteCascades(t *testing.T) {
	database := setupDB(t)
	projects := NewProjectRepository(database)
	goals := NewGoalRepository(database)
	entries := NewTimeEntryRepository(database)
	statuses := NewDayStatusRepository(database, time.UTC)
	ctx := context.Background()

	project := seedProject(t, projects, "Guitar")
	goal := seedGoal(t, goals, project.ID, 30)
	start := time.Date(2024, time.May, 1, 9, 0, 0, 0, time.UTC)
	seedEntry(t, entries, project.ID, start, ptrTime(start.Add(time.Hour)))
	if err := statuses.UpsertDayStatus(ctx, goal.ID, start.Truncate(24*time.Hour), model.StatusCompleted, 60); err != nil {
		t.Fatalf("upsert status: %v", err)
	}

	if err := projects.Delete(ctx, project.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}

	for _, table := range []string{"time_entries", "goals", "goal_day_statuses"} {
		var count int
		if err := database.QueryRow(`SELECT COUNT(1) FROM ` + table).Scan(&count); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if count != 0 {
			t.Fatalf("expected %s to be empty after cascade, got %d", table, count)
		}
	}
}

func seedProjectErr(repo *ProjectRepository, name string) error {
	now := time.Now().UTC()
	project := model.Project{ID: uuid.NewString(), Name: name, Color: model.DefaultProjectColor, CreatedAt: now, UpdatedAt: now}
	return repo.Create(context.Background(), &project)
}
