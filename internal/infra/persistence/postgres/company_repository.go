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

// companyRepository implements the domain.CompanyRepository interface using GORM.
type companyRepository struct {
	db *gorm.DB
}

// NewCompanyRepository is the constructor for companyRepository.
func NewCompanyRepository(db *gorm.DB) repository.CompanyRepository {
	return &companyRepository{db: db}
}

// FindByID retrieves a single company by its unique ID.
func (repo *companyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error) {
	var companyM model.CompanyModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&companyM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCompanyNotFound
		}

		return nil, errors.Wrap(err, "failed to find company by id")
	}

	return toCompanyDomain(&companyM), nil
}

// FindByName retrieves a single company by its unique name.
func (repo *companyRepository) FindByName(ctx context.Context, name string) (*entity.Company, error) {
	var companyM model.CompanyModel
	err := repo.db.WithContext(ctx).
		Where("name = ?", name).
		First(&companyM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCompanyNotFound
		}

		return nil, errors.Wrap(err, "failed to find company by name")
	}

	return toCompanyDomain(&companyM), nil
}

// Create persists a new company.
func (repo *companyRepository) Create(ctx context.Context, company *entity.Company) error {
	companyM := fromCompanyDomain(company)

	if err := repo.db.WithContext(ctx).Create(companyM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrCompanyAlreadyExists.WrapMessage("company name already taken")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create company")
	}

	company.ID = companyM.ID
	company.CreatedAt = companyM.CreatedAt
	company.UpdatedAt = companyM.UpdatedAt

	return nil
}

// Update modifies an existing company.
func (repo *companyRepository) Update(ctx context.Context, company *entity.Company) error {
	companyM := fromCompanyDomain(company)

	result := repo.db.WithContext(ctx).
		Model(&model.CompanyModel{}).
		Where("id = ?", company.ID).
		Select("name", "description", "website", "logo_url").
		Updates(companyM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrCompanyAlreadyExists.WrapMessage("company name already taken")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update company")
	}
	if result.RowsAffected == 0 {
		return repository.ErrCompanyNotFound
	}

	return nil
}

// List retrieves companies ordered by name, paginated.
func (repo *companyRepository) List(ctx context.Context, limit, offset int) ([]*entity.Company, error) {
	if limit <= 0 {
		limit = 50
	}

	var models []model.CompanyModel
	err := repo.db.WithContext(ctx).
		Order("name asc").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list companies")
	}

	companies := make([]*entity.Company, 0, len(models))
	for i := range models {
		companies = append(companies, toCompanyDomain(&models[i]))
	}

	return companies, nil
}

// toCompanyDomain converts a GORM CompanyModel to a domain Company entity.
func toCompanyDomain(data *model.CompanyModel) *entity.Company {
	if data == nil {
		return nil
	}

	return &entity.Company{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Website:     data.Website,
		LogoURL:     data.LogoURL,
		OwnerID:     data.OwnerID,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromCompanyDomain converts a domain Company entity to a GORM CompanyModel.
func fromCompanyDomain(data *entity.Company) *model.CompanyModel {
	if data == nil {
		return nil
	}

	return &model.CompanyModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		Website:     data.Website,
		LogoURL:     data.LogoURL,
		OwnerID:     data.OwnerID,
	}
}
