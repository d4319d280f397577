package usecase

import (
	"context"

	"careerconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdateProfileInput defines the self-editable profile fields.
type UpdateProfileInput struct {
	UserID              uuid.UUID
	Name                string
	AutoSendStatusEmail bool
}

// ProfileUsecase defines the interface for self-service profile operations.
type ProfileUsecase interface {
	// UpdateProfile modifies the caller's own profile fields.
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*entity.User, error)

	// UploadAvatar stores an avatar image and records its URL on the user.
	UploadAvatar(ctx context.Context, input UploadInput) (string, error)

	// UploadResume stores a resume document and records its URL on the user.
	// Only candidates carry resumes.
	UploadResume(ctx context.Context, input UploadInput) (string, error)
}
