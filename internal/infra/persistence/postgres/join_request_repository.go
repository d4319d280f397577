package postgres

import (
	"context"

	"careerconnect/internal/domain/entity"
	domainerrors "careerconnect/internal/domain/errors"
	"careerconnect/internal/domain/repository"
	"careerconnect/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// joinRequestRepository implements the domain.JoinRequestRepository interface
// using GORM.
type joinRequestRepository struct {
	db *gorm.DB
}

// NewJoinRequestRepository is the constructor for joinRequestRepository.
func NewJoinRequestRepository(db *gorm.DB) repository.JoinRequestRepository {
	return &joinRequestRepository{db: db}
}

// FindByID retrieves a single join request by its unique ID.
func (repo *joinRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.JoinRequest, error) {
	var requestM model.JoinRequestModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&requestM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrJoinRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find join request by id")
	}

	return toJoinRequestDomain(&requestM), nil
}

// FindPendingByUser retrieves the user's pending request, if any.
func (repo *joinRequestRepository) FindPendingByUser(ctx context.Context, userID uuid.UUID) (*entity.JoinRequest, error) {
	var requestM model.JoinRequestModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(entity.JoinRequestPending)).
		Order("created_at desc").
		First(&requestM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrJoinRequestNotFound
		}

		return nil, errors.Wrap(err, "failed to find pending join request")
	}

	return toJoinRequestDomain(&requestM), nil
}

// ListByCompany retrieves requests for a company filtered by status, newest
// first. A nil status returns all.
func (repo *joinRequestRepository) ListByCompany(ctx context.Context, companyID uuid.UUID, status *entity.JoinRequestStatus) ([]*entity.JoinRequest, error) {
	query := repo.db.WithContext(ctx).Where("company_id = ?", companyID)
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	var models []model.JoinRequestModel
	if err := query.Order("created_at desc").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list join requests")
	}

	requests := make([]*entity.JoinRequest, 0, len(models))
	for i := range models {
		requests = append(requests, toJoinRequestDomain(&models[i]))
	}

	return requests, nil
}

// Create persists a new join request.
func (repo *joinRequestRepository) Create(ctx context.Context, request *entity.JoinRequest) error {
	requestM := fromJoinRequestDomain(request)

	if err := repo.db.WithContext(ctx).Create(requestM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "join request references unknown company or user")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create join request")
	}

	request.ID = requestM.ID
	request.CreatedAt = requestM.CreatedAt

	return nil
}

// Update modifies an existing join request.
func (repo *joinRequestRepository) Update(ctx context.Context, request *entity.JoinRequest) error {
	requestM := fromJoinRequestDomain(request)

	result := repo.db.WithContext(ctx).
		Model(&model.JoinRequestModel{}).
		Where("id = ?", request.ID).
		Select("status", "decided_by", "decided_at").
		Updates(requestM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update join request")
	}
	if result.RowsAffected == 0 {
		return repository.ErrJoinRequestNotFound
	}

	return nil
}

// toJoinRequestDomain converts a GORM JoinRequestModel to a domain entity.
func toJoinRequestDomain(data *model.JoinRequestModel) *entity.JoinRequest {
	if data == nil {
		return nil
	}

	return &entity.JoinRequest{
		ID:            data.ID,
		CompanyID:     data.CompanyID,
		UserID:        data.UserID,
		RequestedRole: entity.CompanyRole(data.RequestedRole),
		Status:        entity.JoinRequestStatus(data.Status),
		DecidedBy:     data.DecidedBy,
		DecidedAt:     data.DecidedAt,
		CreatedAt:     data.CreatedAt,
	}
}

// fromJoinRequestDomain converts a domain entity to a GORM JoinRequestModel.
func fromJoinRequestDomain(data *entity.JoinRequest) *model.JoinRequestModel {
	if data == nil {
		return nil
	}

	return &model.JoinRequestModel{
		ID:            data.ID,
		CompanyID:     data.CompanyID,
		UserID:        data.UserID,
		RequestedRole: data.RequestedRole.String(),
		Status:        string(data.Status),
		DecidedBy:     data.DecidedBy,
		DecidedAt:     data.DecidedAt,
	}
}
