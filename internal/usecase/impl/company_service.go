package impl

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

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

// companyService implements the CompanyUsecase interface.
type companyService struct {
	txManager       repository.TransactionManager
	userRepo        repository.UserRepository
	companyRepo     repository.CompanyRepository
	joinRequestRepo repository.JoinRequestRepository
	fileStorage     service.FileStorage
	logger          *slog.Logger
}

// CompanyServiceParams holds dependencies for companyService, injected by Fx.
type CompanyServiceParams struct {
	fx.In

	TxManager       repository.TransactionManager
	UserRepo        repository.UserRepository
	CompanyRepo     repository.CompanyRepository
	JoinRequestRepo repository.JoinRequestRepository
	FileStorage     service.FileStorage
	Logger          *slog.Logger
}

// NewCompanyService is the constructor for companyService.
func NewCompanyService(params CompanyServiceParams) usecase.CompanyUsecase {
	return &companyService{
		txManager:       params.TxManager,
		userRepo:        params.UserRepo,
		companyRepo:     params.CompanyRepo,
		joinRequestRepo: params.JoinRequestRepo,
		fileStorage:     params.FileStorage,
		logger:          params.Logger,
	}
}

func (srv *companyService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateCompany creates a company and makes the owner its admin member, in
// one transaction.
func (srv *companyService) CreateCompany(ctx context.Context, input usecase.CreateCompanyInput) (*entity.Company, error) {
	var created *entity.Company
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		owner, err := userRepo.FindByID(ctx, input.OwnerID)
		if err != nil {
			return errors.Wrap(err, "failed to load company owner")
		}
		if owner.Role != entity.RoleRecruiter {
			return domainerrors.ErrForbidden.WrapMessage("only recruiters can create companies")
		}
		if owner.HasCompany() {
			return domainerrors.ErrAlreadyCompanyMember
		}

		company := &entity.Company{
			Name:        input.Name,
			Description: input.Description,
			Website:     input.Website,
			OwnerID:     owner.ID,
		}
		if err := repoFactory.CompanyRepo().Create(ctx, company); err != nil {
			return err
		}

		adminRole := entity.CompanyRoleAdmin
		owner.CompanyID = &company.ID
		owner.CompanyRole = &adminRole
		if err := userRepo.Update(ctx, owner); err != nil {
			return errors.Wrap(err, "failed to attach owner to company")
		}

		created = company

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Company created",
		slog.Any("companyID", created.ID), slog.Any("ownerID", input.OwnerID))

	return created, nil
}

// GetCompany returns a single company.
func (srv *companyService) GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	company, err := srv.companyRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return nil, domainerrors.ErrCompanyNotFound
		}

		return nil, errors.Wrap(err, "failed to load company")
	}

	return company, nil
}

// ListCompanies returns companies ordered by name.
func (srv *companyService) ListCompanies(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	return srv.companyRepo.List(ctx, limit, offset)
}

// UpdateCompany modifies company details. Admin only.
func (srv *companyService) UpdateCompany(ctx context.Context, input usecase.UpdateCompanyInput) (*entity.Company, error) {
	if err := srv.requireCompanyRole(ctx, input.ActorID, input.CompanyID, entity.CompanyRoleAdmin); err != nil {
		return nil, err
	}

	company, err := srv.GetCompany(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	company.Name = input.Name
	company.Description = input.Description
	company.Website = input.Website
	if err := srv.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}

	return company, nil
}

// UploadLogo stores a company logo and records its URL. Admin only.
func (srv *companyService) UploadLogo(ctx context.Context, companyID uuid.UUID, input usecase.UploadInput) (string, error) {
	if err := srv.requireCompanyRole(ctx, input.ActorID, companyID, entity.CompanyRoleAdmin); err != nil {
		return "", err
	}

	company, err := srv.GetCompany(ctx, companyID)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("logos/%s%s", companyID, path.Ext(input.Filename))
	url, err := srv.fileStorage.Save(ctx, key, input.ContentType, input.Content)
	if err != nil {
		return "", errors.Wrap(err, "failed to store company logo")
	}

	company.LogoURL = url
	if err := srv.companyRepo.Update(ctx, company); err != nil {
		return "", err
	}

	return url, nil
}

// SubmitJoinRequest files a pending membership request.
func (srv *companyService) SubmitJoinRequest(ctx context.Context, input usecase.SubmitJoinRequestInput) (*entity.JoinRequest, error) {
	if !input.RequestedRole.IsValid() {
		return nil, domainerrors.ErrInvalidRole.WrapMessage("unknown company role")
	}

	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load requesting user")
	}
	if user.Role != entity.RoleRecruiter {
		return nil, domainerrors.ErrForbidden.WrapMessage("only recruiters can join companies")
	}
	if user.HasCompany() {
		return nil, domainerrors.ErrAlreadyCompanyMember
	}

	if _, err := srv.companyRepo.FindByID(ctx, input.CompanyID); err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			return nil, domainerrors.ErrCompanyNotFound
		}

		return nil, errors.Wrap(err, "failed to load target company")
	}

	if _, err := srv.joinRequestRepo.FindPendingByUser(ctx, input.UserID); err == nil {
		return nil, domainerrors.ErrJoinRequestPending
	} else if !errors.Is(err, repository.ErrJoinRequestNotFound) {
		return nil, errors.Wrap(err, "failed to check pending join request")
	}

	request := &entity.JoinRequest{
		CompanyID:     input.CompanyID,
		UserID:        input.UserID,
		RequestedRole: input.RequestedRole,
		Status:        entity.JoinRequestPending,
	}
	if err := srv.joinRequestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Join request submitted",
		slog.Any("userID", input.UserID), slog.Any("companyID", input.CompanyID))

	return request, nil
}

// GetMyJoinRequest returns the caller's pending join request, if any.
func (srv *companyService) GetMyJoinRequest(ctx context.Context, userID uuid.UUID) (*entity.JoinRequest, error) {
	request, err := srv.joinRequestRepo.FindPendingByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrJoinRequestNotFound) {
			return nil, domainerrors.ErrNotFound.WrapMessage("no pending join request")
		}

		return nil, errors.Wrap(err, "failed to load pending join request")
	}

	return request, nil
}

// ListJoinRequests returns a company's join requests. Admin only.
func (srv *companyService) ListJoinRequests(ctx context.Context, actorID, companyID uuid.UUID, status *entity.JoinRequestStatus) ([]*entity.JoinRequest, error) {
	if err := srv.requireCompanyRole(ctx, actorID, companyID, entity.CompanyRoleAdmin); err != nil {
		return nil, err
	}

	return srv.joinRequestRepo.ListByCompany(ctx, companyID, status)
}

// DecideJoinRequest accepts or rejects a pending request. Accepting attaches
// the user to the company with the requested role, atomically with the
// status flip.
func (srv *companyService) DecideJoinRequest(ctx context.Context, input usecase.DecideJoinRequestInput) (*entity.JoinRequest, error) {
	var decided *entity.JoinRequest
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		joinRequestRepo := repoFactory.JoinRequestRepo()

		request, err := joinRequestRepo.FindByID(ctx, input.RequestID)
		if err != nil {
			if errors.Is(err, repository.ErrJoinRequestNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("join request not found")
			}

			return errors.Wrap(err, "failed to load join request")
		}

		if err := srv.requireCompanyRoleIn(ctx, repoFactory, input.ActorID, request.CompanyID, entity.CompanyRoleAdmin); err != nil {
			return err
		}

		if request.Status.Terminal() {
			return domainerrors.ErrJoinRequestDecided
		}

		now := time.Now()
		request.DecidedBy = &input.ActorID
		request.DecidedAt = &now

		if !input.Accept {
			request.Status = entity.JoinRequestRejected
			if err := joinRequestRepo.Update(ctx, request); err != nil {
				return err
			}
			decided = request

			return nil
		}

		userRepo := repoFactory.UserRepo()
		user, err := userRepo.FindByID(ctx, request.UserID)
		if err != nil {
			return errors.Wrap(err, "failed to load requesting user")
		}
		if user.HasCompany() {
			return domainerrors.ErrAlreadyCompanyMember
		}

		role := request.RequestedRole
		user.CompanyID = &request.CompanyID
		user.CompanyRole = &role
		if err := userRepo.Update(ctx, user); err != nil {
			return errors.Wrap(err, "failed to attach user to company")
		}

		request.Status = entity.JoinRequestAccepted
		if err := joinRequestRepo.Update(ctx, request); err != nil {
			return err
		}
		decided = request

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Join request decided",
		slog.Any("requestID", decided.ID), slog.String("status", string(decided.Status)))

	return decided, nil
}

// ListMembers returns the company's members. Any member may look.
func (srv *companyService) ListMembers(ctx context.Context, actorID, companyID uuid.UUID) ([]*entity.User, error) {
	actor, err := srv.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load acting user")
	}
	if actor.CompanyID == nil || *actor.CompanyID != companyID {
		return nil, domainerrors.ErrForbidden.WrapMessage("not a member of this company")
	}

	return srv.userRepo.ListByCompany(ctx, companyID)
}

// RemoveMember detaches a member from the company. Admin only; the owner
// cannot be removed.
func (srv *companyService) RemoveMember(ctx context.Context, actorID, companyID, memberID uuid.UUID) error {
	return srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := srv.requireCompanyRoleIn(ctx, repoFactory, actorID, companyID, entity.CompanyRoleAdmin); err != nil {
			return err
		}

		company, err := repoFactory.CompanyRepo().FindByID(ctx, companyID)
		if err != nil {
			return errors.Wrap(err, "failed to load company")
		}
		if company.OwnerID == memberID {
			return domainerrors.ErrForbidden.WrapMessage("the company owner cannot be removed")
		}

		userRepo := repoFactory.UserRepo()
		member, err := userRepo.FindByID(ctx, memberID)
		if err != nil {
			return errors.Wrap(err, "failed to load member")
		}
		if member.CompanyID == nil || *member.CompanyID != companyID {
			return domainerrors.ErrNotFound.WrapMessage("user is not a member of this company")
		}

		member.CompanyID = nil
		member.CompanyRole = nil
		if err := userRepo.Update(ctx, member); err != nil {
			return errors.Wrap(err, "failed to detach member")
		}

		srv.log(ctx).Info("Member removed",
			slog.Any("companyID", companyID), slog.Any("memberID", memberID))

		return nil
	})
}

// requireCompanyRole checks the acting user's membership against the live
// database record, not the token claims.
func (srv *companyService) requireCompanyRole(ctx context.Context, actorID, companyID uuid.UUID, roles ...entity.CompanyRole) error {
	actor, err := srv.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return errors.Wrap(err, "failed to load acting user")
	}

	return checkMembership(actor, companyID, roles)
}

// requireCompanyRoleIn is requireCompanyRole bound to a transaction.
func (srv *companyService) requireCompanyRoleIn(ctx context.Context, repoFactory repository.RepositoryFactory, actorID, companyID uuid.UUID, roles ...entity.CompanyRole) error {
	actor, err := repoFactory.UserRepo().FindByID(ctx, actorID)
	if err != nil {
		return errors.Wrap(err, "failed to load acting user")
	}

	return checkMembership(actor, companyID, roles)
}

func checkMembership(actor *entity.User, companyID uuid.UUID, roles entity.CompanyRoles) error {
	if actor.CompanyID == nil || *actor.CompanyID != companyID || actor.CompanyRole == nil {
		return domainerrors.ErrForbidden.WrapMessage("not a member of this company")
	}
	if len(roles) > 0 && !roles.Contains(*actor.CompanyRole) {
		return domainerrors.ErrForbidden.WrapMessage("insufficient company role")
	}

	return nil
}
