package usecase

import (
	"context"

	"careerconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// ApplyInput defines the data required to apply to a job.
type ApplyInput struct {
	CandidateID uuid.UUID
	JobID       uuid.UUID
	CoverLetter string
}

// UpdateApplicationStatusInput moves an application to a new review state.
type UpdateApplicationStatusInput struct {
	ActorID       uuid.UUID
	ApplicationID uuid.UUID
	Status        entity.ApplicationStatus
}

// ApplicationUsecase defines the interface for application business
// operations.
type ApplicationUsecase interface {
	// Apply submits a candidate's application to an open job. The candidate
	// must have a resume on file and may apply to a job only once.
	Apply(ctx context.Context, input ApplyInput) (*entity.Application, error)

	// ListForJob returns a job's applications for the hiring company.
	ListForJob(ctx context.Context, actorID, jobID uuid.UUID) ([]*entity.Application, error)

	// ListMine returns the caller's own applications.
	ListMine(ctx context.Context, candidateID uuid.UUID) ([]*entity.Application, error)

	// UpdateStatus moves an application between review states and, when the
	// candidate opted in, emails them about the change.
	UpdateStatus(ctx context.Context, input UpdateApplicationStatusInput) (*entity.Application, error)
}
