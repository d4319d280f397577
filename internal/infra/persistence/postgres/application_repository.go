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

// applicationRepository implements the domain.ApplicationRepository interface
// using GORM.
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository is the constructor for applicationRepository.
func NewApplicationRepository(db *gorm.DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

// FindByID retrieves a single application by its unique ID.
func (repo *applicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Application, error) {
	var appM model.ApplicationModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&appM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrApplicationNotFound
		}

		return nil, errors.Wrap(err, "failed to find application by id")
	}

	return toApplicationDomain(&appM), nil
}

// FindByJobAndCandidate retrieves the candidate's application to a job.
func (repo *applicationRepository) FindByJobAndCandidate(ctx context.Context, jobID, candidateID uuid.UUID) (*entity.Application, error) {
	var appM model.ApplicationModel
	err := repo.db.WithContext(ctx).
		Where("job_id = ? AND candidate_id = ?", jobID, candidateID).
		First(&appM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrApplicationNotFound
		}

		return nil, errors.Wrap(err, "failed to find application by job and candidate")
	}

	return toApplicationDomain(&appM), nil
}

// ListByJob retrieves all applications to a job, newest first.
func (repo *applicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]*entity.Application, error) {
	var models []model.ApplicationModel
	err := repo.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("created_at desc").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list applications by job")
	}

	return toApplicationDomainSlice(models), nil
}

// ListByCandidate retrieves all of a candidate's applications, newest first.
func (repo *applicationRepository) ListByCandidate(ctx context.Context, candidateID uuid.UUID) ([]*entity.Application, error) {
	var models []model.ApplicationModel
	err := repo.db.WithContext(ctx).
		Where("candidate_id = ?", candidateID).
		Order("created_at desc").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list applications by candidate")
	}

	return toApplicationDomainSlice(models), nil
}

// Create persists a new application. The composite unique index on
// (job_id, candidate_id) backs the one-application-per-job rule.
func (repo *applicationRepository) Create(ctx context.Context, application *entity.Application) error {
	appM := fromApplicationDomain(application)

	if err := repo.db.WithContext(ctx).Create(appM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateApplication
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "application references unknown job or user")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create application")
	}

	application.ID = appM.ID
	application.CreatedAt = appM.CreatedAt
	application.UpdatedAt = appM.UpdatedAt

	return nil
}

// Update modifies an existing application.
func (repo *applicationRepository) Update(ctx context.Context, application *entity.Application) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ApplicationModel{}).
		Where("id = ?", application.ID).
		Update("status", string(application.Status))
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update application")
	}
	if result.RowsAffected == 0 {
		return repository.ErrApplicationNotFound
	}

	return nil
}

// toApplicationDomain converts a GORM ApplicationModel to a domain entity.
func toApplicationDomain(data *model.ApplicationModel) *entity.Application {
	if data == nil {
		return nil
	}

	return &entity.Application{
		ID:          data.ID,
		JobID:       data.JobID,
		CandidateID: data.CandidateID,
		ResumeURL:   data.ResumeURL,
		CoverLetter: data.CoverLetter,
		Status:      entity.ApplicationStatus(data.Status),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toApplicationDomainSlice(models []model.ApplicationModel) []*entity.Application {
	applications := make([]*entity.Application, 0, len(models))
	for i := range models {
		applications = append(applications, toApplicationDomain(&models[i]))
	}

	return applications
}

// fromApplicationDomain converts a domain entity to a GORM ApplicationModel.
func fromApplicationDomain(data *entity.Application) *model.ApplicationModel {
	if data == nil {
		return nil
	}

	return &model.ApplicationModel{
		ID:          data.ID,
		JobID:       data.JobID,
		CandidateID: data.CandidateID,
		ResumeURL:   data.ResumeURL,
		CoverLetter: data.CoverLetter,
		Status:      string(data.Status),
	}
}
