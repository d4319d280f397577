package repository

import (
	"context"
	"errors"

	"careerconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrApplicationNotFound is returned when an application lookup misses.
var ErrApplicationNotFound = errors.New("application not found")

// ErrDuplicateApplication is returned when a candidate applies to the same
// job twice.
var ErrDuplicateApplication = errors.New("application already exists for this job")

// ApplicationRepository defines the operations for application persistence.
type ApplicationRepository interface {
	// FindByID retrieves a single application by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Application, error)

	// FindByJobAndCandidate retrieves the candidate's application to a job.
	FindByJobAndCandidate(ctx context.Context, jobID, candidateID uuid.UUID) (*entity.Application, error)

	// ListByJob retrieves all applications to a job, newest first.
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]*entity.Application, error)

	// ListByCandidate retrieves all of a candidate's applications, newest first.
	ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*entity.Application, error)

	// Create persists a new application. Returns ErrDuplicateApplication when
	// the candidate already applied to the job.
	Create(ctx context.Context, application *entity.Application) error

	// Update modifies an existing application (status transitions).
	Update(ctx context.Context, application *entity.Application) error
}
