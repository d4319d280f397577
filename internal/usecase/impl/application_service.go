package impl

import (
	"context"
	"log/slog"

	deliverycontext "careerconnect/internal/delivery/context"
	"careerconnect/internal/domain/entity"
	domainerrors "careerconnect/internal/domain/errors"
	"careerconnect/internal/domain/repository"
	"careerconnect/internal/domain/service"
	"careerconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// applicationService implements the ApplicationUsecase interface.
type applicationService struct {
	userRepo        repository.UserRepository
	jobRepo         repository.JobRepository
	applicationRepo repository.ApplicationRepository
	mailer          service.Mailer
	logger          *slog.Logger
}

// ApplicationServiceParams holds dependencies for applicationService,
// injected by Fx.
type ApplicationServiceParams struct {
	fx.In

	UserRepo        repository.UserRepository
	JobRepo         repository.JobRepository
	ApplicationRepo repository.ApplicationRepository
	Mailer          service.Mailer
	Logger          *slog.Logger
}

// NewApplicationService is the constructor for applicationService.
func NewApplicationService(params ApplicationServiceParams) usecase.ApplicationUsecase {
	return &applicationService{
		userRepo:        params.UserRepo,
		jobRepo:         params.JobRepo,
		applicationRepo: params.ApplicationRepo,
		mailer:          params.Mailer,
		logger:          params.Logger,
	}
}

func (srv *applicationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Apply submits a candidate's application to an open job.
func (srv *applicationService) Apply(ctx context.Context, input usecase.ApplyInput) (*entity.Application, error) {
	candidate, err := srv.userRepo.FindByID(ctx, input.CandidateID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load candidate")
	}
	if candidate.Role != entity.RoleCandidate {
		return nil, domainerrors.ErrForbidden.WrapMessage("only candidates can apply to jobs")
	}
	if candidate.ResumeURL == "" {
		return nil, domainerrors.ErrResumeRequired
	}

	job, err := srv.jobRepo.FindByID(ctx, input.JobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, domainerrors.ErrJobNotFound
		}

		return nil, errors.Wrap(err, "failed to load job")
	}
	if !job.AcceptsApplications() {
		return nil, domainerrors.ErrJobClosed
	}

	application := &entity.Application{
		JobID:       job.ID,
		CandidateID: candidate.ID,
		ResumeURL:   candidate.ResumeURL,
		CoverLetter: input.CoverLetter,
		Status:      entity.ApplicationSubmitted,
	}
	if err := srv.applicationRepo.Create(ctx, application); err != nil {
		if errors.Is(err, repository.ErrDuplicateApplication) {
			return nil, domainerrors.ErrDuplicateApplication
		}

		return nil, err
	}

	srv.log(ctx).Info("Application submitted",
		slog.Any("applicationID", application.ID), slog.Any("jobID", job.ID))

	return application, nil
}

// ListForJob returns a job's applications for the hiring company.
func (srv *applicationService) ListForJob(ctx context.Context, actorID, jobID uuid.UUID) ([]*entity.Application, error) {
	job, err := srv.jobRepo.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return nil, domainerrors.ErrJobNotFound
		}

		return nil, errors.Wrap(err, "failed to load job")
	}

	if err := srv.requireManaging(ctx, actorID, job.CompanyID); err != nil {
		return nil, err
	}

	return srv.applicationRepo.ListByJob(ctx, jobID)
}

// ListMine returns the caller's own applications.
func (srv *applicationService) ListMine(ctx context.Context, candidateID uuid.UUID) ([]*entity.Application, error) {
	return srv.applicationRepo.ListByCandidate(ctx, candidateID)
}

// UpdateStatus moves an application between review states and, when the
// candidate opted in, emails them about the change.
func (srv *applicationService) UpdateStatus(ctx context.Context, input usecase.UpdateApplicationStatusInput) (*entity.Application, error) {
	if !input.Status.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown application status")
	}

	application, err := srv.applicationRepo.FindByID(ctx, input.ApplicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("application not found")
		}

		return nil, errors.Wrap(err, "failed to load application")
	}

	job, err := srv.jobRepo.FindByID(ctx, application.JobID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load job for application")
	}

	if err := srv.requireManaging(ctx, input.ActorID, job.CompanyID); err != nil {
		return nil, err
	}

	application.Status = input.Status
	if err := srv.applicationRepo.Update(ctx, application); err != nil {
		return nil, err
	}

	srv.notifyCandidate(ctx, application, job)

	return application, nil
}

// notifyCandidate emails the candidate about a status change when they opted
// in. Delivery failure is logged, never surfaced.
func (srv *applicationService) notifyCandidate(ctx context.Context, application *entity.Application, job *entity.Job) {
	candidate, err := srv.userRepo.FindByID(ctx, application.CandidateID)
	if err != nil {
		srv.log(ctx).Warn("Failed to load candidate for status email", slog.Any("error", err))

		return
	}
	if !candidate.AutoSendStatusEmail {
		return
	}

	if err := srv.mailer.SendApplicationStatus(ctx, candidate.Email, job.Title, string(application.Status)); err != nil {
		srv.log(ctx).Warn("Failed to send status email",
			slog.Any("applicationID", application.ID), slog.Any("error", err))
	}
}

// requireManaging checks the actor manages the given company's recruiting
// surface, against the live database record.
func (srv *applicationService) requireManaging(ctx context.Context, actorID, companyID uuid.UUID) error {
	actor, err := srv.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return errors.Wrap(err, "failed to load acting user")
	}
	if actor.CompanyID == nil || *actor.CompanyID != companyID || actor.CompanyRole == nil {
		return domainerrors.ErrForbidden.WrapMessage("not a member of this company")
	}
	if !actor.CompanyRole.CanManageCompany() {
		return domainerrors.ErrForbidden.WrapMessage("insufficient company role")
	}

	return nil
}
