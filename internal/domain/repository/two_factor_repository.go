package repository

import (
	"context"
	"errors"

	"careerconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTwoFactorCodeNotFound is returned when no usable code matches.
var ErrTwoFactorCodeNotFound = errors.New("two-factor code not found")

// TwoFactorRepository defines the operations for one-time code persistence.
type TwoFactorRepository interface {
	// CreateCode persists a new one-time code record. Any previous unconsumed
	// codes for the same user and purpose are invalidated by the caller
	// issuing a new one; lookups always match the newest record.
	CreateCode(ctx context.Context, code *entity.TwoFactorCode) error

	// FindActiveCode retrieves the newest unconsumed, unexpired code for the
	// user and purpose.
	FindActiveCode(ctx context.Context, userID uuid.UUID, purpose entity.OTPPurpose) (*entity.TwoFactorCode, error)

	// ConsumeCode marks a code as used. Returns ErrTwoFactorCodeNotFound if
	// the code was already consumed, so a code can never be spent twice.
	ConsumeCode(ctx context.Context, id uuid.UUID) error

	// DeleteExpiredCodes removes all codes past their expiry.
	DeleteExpiredCodes(ctx context.Context) error
}
