package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"

	"timeo/internal/db"
	"timeo/internal/model"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	_, currentFile, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(currentFile), "..", "..", "migrations")
	if err := db.RunMigrations(database, migrationsDir); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	return database
}

func seedProject(t *testing.T, repo *ProjectRepository, name string) model.Project {
	t.Helper()
	now := time.Now().UTC()
	project := model.Project{ID: uuid.NewString(), Name: name, Color: model.DefaultProjectColor, CreatedAt: now, UpdatedAt: now}
	if err := repo.Create(context.Background(), &project); err != nil {
		t.Fatalf("create project %s: %v", name, err)
	}
	return project
}

func seedGoal(t *testing.T, repo *GoalRepository, projectID string, minMinutes int) model.Goal {
	t.Helper()
	now := time.Now().UTC()
	goal := model.Goal{ID: uuid.NewString(), ProjectID: projectID, MinMinutesPerDay: minMinutes, CreatedAt: now, UpdatedAt: now}
	if err := repo.Create(context.Background(), &goal); err != nil {
		t.Fatalf("create goal: %v", err)
	}
	return goal
}

func seedEntry(t *testing.T, repo *TimeEntryRepository, projectID string, start time.Time, end *time.Time) model.TimeEntry {
	t.Helper()
	entry := model.TimeEntry{ID: uuid.NewString(), ProjectID: projectID, Start: start, End: end, CreatedAt: start, UpdatedAt: start}
	if err := repo.Create(context.Background(), &entry); err != nil {
		t.Fatalf("create entry: %v", err)
	}
	return entry
}

func ptrTime(t time.Time) *time.Time { return &t }
