package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"timeo/internal/dates"
	apperrors "timeo/internal/errors"
	"timeo/internal/model"
	"timeo/internal/repository"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type ProjectService struct {
	repo  *repository.ProjectRepository
	clock dates.Clock
}

type UpdateProjectInput struct {
	Name  *string
	Color *string
}

func NewProjectService(repo *repository.ProjectRepository, clock dates.Clock) *ProjectService {
	if clock == nil {
		clock = dates.SystemClock{}
	}
	return &ProjectService{repo: repo, clock: clock}
}

func (s *ProjectService) Create(ctx context.Context, name, color string) (*model.Project, *apperrors.APIError) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.BadRequest("invalid_name", "name is required")
	}
	color, apiErr := normalizeColor(color)
	if apiErr != nil {
		return nil, apiErr
	}

	now := s.clock.Now().UTC()
	project := model.Project{
		ID:        uuid.NewString(),
		Name:      name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, &project); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.Conflict("project_exists", "a project with this name already exists", nil)
		}
		return nil, storageError(err, "project", "failed to create project")
	}
	return &project, nil
}

func (s *ProjectService) List(ctx context.Context) ([]model.Project, *apperrors.APIError) {
	projects, err := s.repo.List(ctx)
	if err != nil {
		return nil, storageError(err, "project", "failed to list projects")
	}
	return projects, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*model.Project, *apperrors.APIError) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, storageError(err, "project", "failed to get project")
	}
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, id string, input UpdateProjectInput) (*model.Project, *apperrors.APIError) {
	project, apiErr := s.Get(ctx, id)
	if apiErr != nil {
		return nil, apiErr
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.BadRequest("invalid_name", "name must not be empty")
		}
		project.Name = name
	}
	if input.Color != nil {
		color, apiErr := normalizeColor(*input.Color)
		if apiErr != nil {
			return nil, apiErr
		}
		project.Color = color
	}

	project.UpdatedAt = s.clock.Now().UTC()
	if err := s.repo.Update(ctx, project); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, apperrors.Conflict("project_exists", "a project with this name already exists", nil)
		}
		return nil, storageError(err, "project", "failed to update project")
	}
	return project, nil
}

// Delete removes the project together with its entries, goals and day statuses.
func (s *ProjectService) Delete(ctx context.Context, id string) *apperrors.APIError {
	if err := s.repo.Delete(ctx, id); err != nil {
		return storageError(err, "project", "failed to delete project")
	}
	return nil
}

func normalizeColor(color string) (string, *apperrors.APIError) {
	color = strings.TrimSpace(color)
	if color == "" {
		return model.DefaultProjectColor, nil
	}
	if !colorPattern.MatchString(color) {
		return "", apperrors.BadRequest("invalid_color", "color must look like #rrggbb")
	}
	return strings.ToLower(color), nil
}

func projectIndex(ctx context.Context, repo *repository.ProjectRepository) (map[string]model.Project, *apperrors.APIError) {
	projects, err := repo.List(ctx)
	if err != nil {
		return nil, storageError(err, "project", "failed to list projects")
	}
	index := make(map[string]model.Project, len(projects))
	for _, project := range projects {
		index[project.ID] = project
	}
	return index, nil
}
