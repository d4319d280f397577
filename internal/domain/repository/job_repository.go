package repository

import (
	"context"
	"errors"

	"careerconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrJobNotFound is returned when a job lookup misses.
var ErrJobNotFound = errors.New("job not found")

// JobRepository defines the operations for job posting persistence.
type JobRepository interface {
	// FindByID retrieves a single job by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error)

	// List retrieves jobs matching the filter, newest first.
	List(ctx context.Context, filter entity.JobFilter) ([]*entity.Job, error)

	// Create persists a new job posting.
	Create(ctx context.Context, job *entity.Job) error

	// Update modifies an existing job posting.
	Update(ctx context.Context, job *entity.Job) error

	// Delete removes a job posting.
	Delete(ctx context.Context, id uuid.UUID) error
}
