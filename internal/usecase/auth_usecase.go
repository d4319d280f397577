// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"careerconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     entity.GlobalRole
}

// LoginInput defines the data required to log in. OTP is only consulted when
// the account has two-factor auth enabled.
type LoginInput struct {
	Email    string
	Password string
	OTP      string
}

// VerifySignupOTPInput completes a registration whose email ownership is
// still unverified.
type VerifySignupOTPInput struct {
	UserID uuid.UUID
	OTP    string
}

// RefreshTokenInput carries the raw refresh token presented by the client.
type RefreshTokenInput struct {
	RefreshToken string
}

// --- Output DTOs ---

// RegisterOutput returns either a completed registration or a signal that an
// emailed one-time code must be verified first.
type RegisterOutput struct {
	User              *entity.User
	TwoFactorRequired bool
	PendingUserID     uuid.UUID
}

// LoginOutput returns tokens after a successful login, or signals that a
// one-time code was emailed and must be supplied on the next attempt.
type LoginOutput struct {
	AccessToken       string
	RefreshToken      string
	User              *entity.User
	TwoFactorRequired bool
}

// TokenPairOutput returns a fresh access/refresh token pair.
type TokenPairOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract the delivery layer depends on.
type AuthUsecase interface {
	// Register creates a new account. When the chosen settings require email
	// verification, the output carries TwoFactorRequired and no tokens.
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)

	// Login authenticates with email and password, handling the two-factor
	// branch when the account requires it.
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// VerifySignupOTP finishes a registration by checking the emailed code
	// and returns the first token pair.
	VerifySignupOTP(ctx context.Context, input VerifySignupOTPInput) (*TokenPairOutput, error)

	// RefreshToken rotates a refresh token into a new token pair.
	RefreshToken(ctx context.Context, input RefreshTokenInput) (*TokenPairOutput, error)

	// Logout invalidates the presented refresh token.
	Logout(ctx context.Context, refreshToken string) error

	// Me returns the caller's current profile, company membership included.
	Me(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// SetTwoFactor enables or disables two-factor login for the caller.
	SetTwoFactor(ctx context.Context, userID uuid.UUID, enabled bool) error
}
