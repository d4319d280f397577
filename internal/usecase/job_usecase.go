package usecase

import (
	"context"

	"careerconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateJobInput defines the data required to post a job.
type CreateJobInput struct {
	ActorID     uuid.UUID
	Title       string
	Description string
	Location    string
	Remote      bool
	SalaryMin   *int
	SalaryMax   *int
}

// UpdateJobInput defines the mutable job fields.
type UpdateJobInput struct {
	ActorID     uuid.UUID
	JobID       uuid.UUID
	Title       string
	Description string
	Location    string
	Remote      bool
	SalaryMin   *int
	SalaryMax   *int
}

// JobUsecase defines the interface for job posting business operations.
// Mutations are restricted to company members whose role can manage the
// company's recruiting surface.
type JobUsecase interface {
	// CreateJob posts a job for the actor's company.
	CreateJob(ctx context.Context, input CreateJobInput) (*entity.Job, error)

	// GetJob returns a single job posting.
	GetJob(ctx context.Context, id uuid.UUID) (*entity.Job, error)

	// ListJobs returns jobs matching the filter, newest first.
	ListJobs(ctx context.Context, filter entity.JobFilter) ([]*entity.Job, error)

	// UpdateJob modifies a posting belonging to the actor's company.
	UpdateJob(ctx context.Context, input UpdateJobInput) (*entity.Job, error)

	// CloseJob stops a posting from accepting applications.
	CloseJob(ctx context.Context, actorID, jobID uuid.UUID) (*entity.Job, error)

	// DeleteJob removes a posting belonging to the actor's company.
	DeleteJob(ctx context.Context, actorID, jobID uuid.UUID) error
}
