package service

import (
	"errors"

	apperrors "timeo/internal/errors"
	"timeo/internal/repository"
)

// storageError maps a repository failure to the API error the handlers
// render. resource names the thing the caller asked for.
func storageError(err error, resource, action string) *apperrors.APIError {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return apperrors.NotFound(resource+"_not_found", resource+" not found")
	case errors.Is(err, repository.ErrConflict):
		return apperrors.Conflict(resource+"_conflict", action+": conflicting "+resource, nil)
	case errors.Is(err, repository.ErrUnavailable):
		return apperrors.Unavailable(action)
	default:
		return apperrors.Internal(action)
	}
}
