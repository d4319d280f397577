package impl

import (
	"context"
	"log/slog"

	deliverycontext "careerconnect/internal/delivery/context"
	"careerconnect/internal/domain/entity"
	domainerrors "careerconnect/internal/domain/errors"
	"careerconnect/internal/domain/repository"
	"careerconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// jobService implements the JobUsecase interface.
type jobService struct {
	userRepo repository.UserRepository
	jobRepo  repository.JobRepository
	logger   *slog.Logger
}

// JobServiceParams holds dependencies for jobService, injected by Fx.
type JobServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	JobRepo  repository.JobRepository
	Logger   *slog.Logger
}

// NewJobService is the constructor for jobService.
func NewJobService(params JobServiceParams) usecase.JobUsecase {
	return &jobService{
		userRepo: params.UserRepo,
		jobRepo:  params.JobRepo,
		logger:   params.Logger,
	}
}

func (srv *jobService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateJob posts a job for the actor's company.
func (srv *jobService) CreateJob(ctx context.Context, input usecase.CreateJobInput) (*entity.Job, error) {
	actor, err := srv.requireManagingMember(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}

	job := &entity.Job{
		CompanyID:   *actor.CompanyID,
		PostedBy:    actor.ID,
		Title:       input.Title,
		Description: input.Description,
		Location:    input.Location,
		Remote:      input.Remote,
		SalaryMin:   input.SalaryMin,
		SalaryMax:   input.SalaryMax,
		Status:      entity.JobOpen,
	}
	if err := srv.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Job created", slog.Any("jobID", job.ID), slog.Any("companyID", job.CompanyID))

	return job, nil
}

// GetJob returns a single job posting.
func (srv *jobService) GetJob(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	job, err := srv.jobRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, domainerrors.ErrJobNotFound
		}

		return nil, errors.Wrap(err, "failed to load job")
	}

	return job, nil
}

// ListJobs returns jobs matching the filter, newest first.
func (srv *jobService) ListJobs(ctx context.Context, filter entity.JobFilter) ([]*entity.Job, error) {
	return srv.jobRepo.List(ctx, filter)
}

// UpdateJob modifies a posting belonging to the actor's company.
func (srv *jobService) UpdateJob(ctx context.Context, input usecase.UpdateJobInput) (*entity.Job, error) {
	job, err := srv.ownedJob(ctx, input.ActorID, input.JobID)
	if err != nil {
		return nil, err
	}

	job.Title = input.Title
	job.Description = input.Description
	job.Location = input.Location
	job.Remote = input.Remote
	job.SalaryMin = input.SalaryMin
	job.SalaryMax = input.SalaryMax
	if err := srv.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

// CloseJob stops a posting from accepting applications.
func (srv *jobService) CloseJob(ctx context.Context, actorID, jobID uuid.UUID) (*entity.Job, error) {
	job, err := srv.ownedJob(ctx, actorID, jobID)
	if err != nil {
		return nil, err
	}

	job.Status = entity.JobClosed
	if err := srv.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Job closed", slog.Any("jobID", jobID))

	return job, nil
}

// DeleteJob removes a posting belonging to the actor's company.
func (srv *jobService) DeleteJob(ctx context.Context, actorID, jobID uuid.UUID) error {
	if _, err := srv.ownedJob(ctx, actorID, jobID); err != nil {
		return err
	}

	return srv.jobRepo.Delete(ctx, jobID)
}

// requireManagingMember loads the actor and checks they hold a company role
// that can manage the recruiting surface.
func (srv *jobService) requireManagingMember(ctx context.Context, actorID uuid.UUID) (*entity.User, error) {
	actor, err := srv.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load acting user")
	}
	if actor.CompanyID == nil || actor.CompanyRole == nil {
		return nil, domainerrors.ErrForbidden.WrapMessage("not a member of any company")
	}
	if !actor.CompanyRole.CanManageCompany() {
		return nil, domainerrors.ErrForbidden.WrapMessage("insufficient company role")
	}

	return actor, nil
}

// ownedJob loads a job and verifies the actor can manage it.
func (srv *jobService) ownedJob(ctx context.Context, actorID, jobID uuid.UUID) (*entity.Job, error) {
	actor, err := srv.requireManagingMember(ctx, actorID)
	if err != nil {
		return nil, err
	}

	job, err := srv.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.CompanyID != *actor.CompanyID {
		return nil, domainerrors.ErrForbidden.WrapMessage("job belongs to another company")
	}

	return job, nil
}
