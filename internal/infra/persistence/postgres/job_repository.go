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

// defaultJobPageSize caps unfiltered job listings.
const defaultJobPageSize = 20

// jobRepository implements the domain.JobRepository interface using GORM.
type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository is the constructor for jobRepository.
func NewJobRepository(db *gorm.DB) repository.JobRepository {
	return &jobRepository{db: db}
}

// FindByID retrieves a single job by its unique ID.
func (repo *jobRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Job, error) {
	var jobM model.JobModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&jobM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrJobNotFound
		}

		return nil, errors.Wrap(err, "failed to find job by id")
	}

	return toJobDomain(&jobM), nil
}

// List retrieves jobs matching the filter, newest first.
func (repo *jobRepository) List(ctx context.Context, filter entity.JobFilter) ([]*entity.Job, error) {
	query := repo.db.WithContext(ctx).Model(&model.JobModel{})

	if filter.Keyword != "" {
		pattern := "%" + filter.Keyword + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.RemoteOnly {
		query = query.Where("remote = true")
	}
	if filter.SalaryMin != nil {
		query = query.Where("salary_max >= ?", *filter.SalaryMin)
	}
	if filter.CompanyID != nil {
		query = query.Where("company_id = ?", *filter.CompanyID)
	}

	// Public listings default to open jobs unless a status is asked for.
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	} else {
		query = query.Where("status = ?", string(entity.JobOpen))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultJobPageSize
	}

	var models []model.JobModel
	err := query.
		Order("created_at desc").
		Limit(limit).
		Offset(filter.Offset).
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list jobs")
	}

	jobs := make([]*entity.Job, 0, len(models))
	for i := range models {
		jobs = append(jobs, toJobDomain(&models[i]))
	}

	return jobs, nil
}

// Create persists a new job posting.
func (repo *jobRepository) Create(ctx context.Context, job *entity.Job) error {
	jobM := fromJobDomain(job)

	if err := repo.db.WithContext(ctx).Create(jobM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "job references unknown company")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create job")
	}

	job.ID = jobM.ID
	job.CreatedAt = jobM.CreatedAt
	job.UpdatedAt = jobM.UpdatedAt

	return nil
}

// Update modifies an existing job posting.
func (repo *jobRepository) Update(ctx context.Context, job *entity.Job) error {
	jobM := fromJobDomain(job)

	result := repo.db.WithContext(ctx).
		Model(&model.JobModel{}).
		Where("id = ?", job.ID).
		Select("title", "description", "location", "remote", "salary_min", "salary_max", "status").
		Updates(jobM)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update job")
	}
	if result.RowsAffected == 0 {
		return repository.ErrJobNotFound
	}

	return nil
}

// Delete removes a job posting.
func (repo *jobRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.JobModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete job")
	}
	if result.RowsAffected == 0 {
		return repository.ErrJobNotFound
	}

	return nil
}

// toJobDomain converts a GORM JobModel to a domain Job entity.
func toJobDomain(data *model.JobModel) *entity.Job {
	if data == nil {
		return nil
	}

	return &entity.Job{
		ID:          data.ID,
		CompanyID:   data.CompanyID,
		PostedBy:    data.PostedBy,
		Title:       data.Title,
		Description: data.Description,
		Location:    data.Location,
		Remote:      data.Remote,
		SalaryMin:   data.SalaryMin,
		SalaryMax:   data.SalaryMax,
		Status:      entity.JobStatus(data.Status),
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromJobDomain converts a domain Job entity to a GORM JobModel.
func fromJobDomain(data *entity.Job) *model.JobModel {
	if data == nil {
		return nil
	}

	return &model.JobModel{
		ID:          data.ID,
		CompanyID:   data.CompanyID,
		PostedBy:    data.PostedBy,
		Title:       data.Title,
		Description: data.Description,
		Location:    data.Location,
		Remote:      data.Remote,
		SalaryMin:   data.SalaryMin,
		SalaryMax:   data.SalaryMax,
		Status:      string(data.Status),
	}
}
