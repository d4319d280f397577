package usecase

import (
	"context"
	"io"

	"careerconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateCompanyInput defines the data required to create a company.
type CreateCompanyInput struct {
	OwnerID     uuid.UUID
	Name        string
	Description string
	Website     string
}

// UpdateCompanyInput defines the mutable company fields.
type UpdateCompanyInput struct {
	ActorID     uuid.UUID
	CompanyID   uuid.UUID
	Name        string
	Description string
	Website     string
}

// SubmitJoinRequestInput is a recruiter's request to join a company.
type SubmitJoinRequestInput struct {
	UserID        uuid.UUID
	CompanyID     uuid.UUID
	RequestedRole entity.CompanyRole
}

// DecideJoinRequestInput is an admin's decision on a pending request.
type DecideJoinRequestInput struct {
	ActorID   uuid.UUID
	RequestID uuid.UUID
	Accept    bool
}

// UploadInput carries a streamed file upload.
type UploadInput struct {
	ActorID     uuid.UUID
	Filename    string
	ContentType string
	Content     io.Reader
}

// CompanyUsecase defines the interface for company and membership
// business operations.
type CompanyUsecase interface {
	// CreateCompany creates a company and makes the owner its admin member.
	// The owner must hold the recruiter role and not belong to a company yet.
	CreateCompany(ctx context.Context, input CreateCompanyInput) (*entity.Company, error)

	// GetCompany returns a single company.
	GetCompany(ctx context.Context, id uuid.UUID) (*entity.Company, error)

	// ListCompanies returns companies ordered by name.
	ListCompanies(ctx context.Context, limit, offset int) ([]*entity.Company, error)

	// UpdateCompany modifies company details. Admin only.
	UpdateCompany(ctx context.Context, input UpdateCompanyInput) (*entity.Company, error)

	// UploadLogo stores a company logo and records its URL. Admin only.
	UploadLogo(ctx context.Context, companyID uuid.UUID, input UploadInput) (string, error)

	// SubmitJoinRequest files a pending membership request. The user must be
	// a recruiter without a company and without another pending request.
	SubmitJoinRequest(ctx context.Context, input SubmitJoinRequestInput) (*entity.JoinRequest, error)

	// GetMyJoinRequest returns the caller's pending join request, if any.
	GetMyJoinRequest(ctx context.Context, userID uuid.UUID) (*entity.JoinRequest, error)

	// ListJoinRequests returns a company's join requests, optionally
	// filtered by status. Admin only.
	ListJoinRequests(ctx context.Context, actorID, companyID uuid.UUID, status *entity.JoinRequestStatus) ([]*entity.JoinRequest, error)

	// DecideJoinRequest accepts or rejects a pending request. Accepting
	// attaches the user to the company with the requested role. Admin only.
	DecideJoinRequest(ctx context.Context, input DecideJoinRequestInput) (*entity.JoinRequest, error)

	// ListMembers returns the company's members. Any member may look.
	ListMembers(ctx context.Context, actorID, companyID uuid.UUID) ([]*entity.User, error)

	// RemoveMember detaches a member from the company. Admin only; the
	// company owner cannot be removed.
	RemoveMember(ctx context.Context, actorID, companyID, memberID uuid.UUID) error
}
