package repository

import (
	"context"
	"errors"

	"careerconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCompanyNotFound is returned when a company lookup misses.
var ErrCompanyNotFound = errors.New("company not found")

// CompanyRepository defines the operations for company persistence.
type CompanyRepository interface {
	// FindByID retrieves a single company by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)

	// FindByName retrieves a single company by its unique name.
	FindByName(ctx context.Context, name string) (*entity.Company, error)

	// Create persists a new company.
	Create(ctx context.Context, company *entity.Company) error

	// Update modifies an existing company.
	Update(ctx context.Context, company *entity.Company) error

	// List retrieves companies ordered by name, paginated.
	List(ctx context.Context, limit, offset int) ([]*entity.Company, error)
}
