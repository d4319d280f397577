package repository

import (
	"context"
	"errors"

	"careerconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrJoinRequestNotFound is returned when a join request lookup misses.
var ErrJoinRequestNotFound = errors.New("join request not found")

// JoinRequestRepository defines the operations for join request persistence.
type JoinRequestRepository interface {
	// FindByID retrieves a single join request by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.JoinRequest, error)

	// FindPendingByUser retrieves the user's pending request, if any.
	// A user has at most one pending request at a time.
	FindPendingByUser(ctx context.Context, userID uuid.UUID) (*entity.JoinRequest, error)

	// ListByCompany retrieves requests for a company filtered by status,
	// newest first. A nil status returns all.
	ListByCompany(ctx context.Context, companyID uuid.UUID, status *entity.JoinRequestStatus) ([]*entity.JoinRequest, error)

	// Create persists a new join request.
	Create(ctx context.Context, request *entity.JoinRequest) error

	// Update modifies an existing join request (status transitions).
	Update(ctx context.Context, request *entity.JoinRequest) error
}
