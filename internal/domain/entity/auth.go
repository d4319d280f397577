// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Provider values for Authentication records.
const (
	// ProviderTypeEmail is the email/password credential provider.
	ProviderTypeEmail = "email"
)

// Authentication represents a single method of logging in (a credential).
// Only the email/password provider is supported today, but the shape keeps
// the door open for external identity providers.
type Authentication struct {
	ID             uuid.UUID // The unique ID for this authentication record itself.
	UserID         uuid.UUID // Links this credential to the User it belongs to.
	Provider       string    // The authentication provider, e.g. "email".
	ProviderUserID string    // The user's unique ID at the provider. For "email" this is the email address.
	PasswordHash   string    // The bcrypt-hashed password, only used when Provider is "email".
	CreatedAt      time.Time // Timestamp of when this credential was created.
}

// RefreshToken represents a long-lived, authorized user session. It is used
// to obtain a new access token after the old one expires, without requiring
// credentials again.
type RefreshToken struct {
	ID        uuid.UUID // The unique ID for this refresh token record.
	UserID    uuid.UUID // Links this session to the User it belongs to.
	TokenHash string    // SHA-256 hash of the raw refresh token for secure comparison.
	ExpiresAt time.Time // When this refresh token becomes invalid.
	CreatedAt time.Time // When this session was created (i.e. when the user logged in).
}

// OTPPurpose distinguishes what a one-time code authorizes.
type OTPPurpose string

const (
	// OTPPurposeLogin verifies a second factor during login.
	OTPPurposeLogin OTPPurpose = "login"
	// OTPPurposeSignup verifies ownership of the email during registration.
	OTPPurposeSignup OTPPurpose = "signup"
)

// TwoFactorCode is an email-delivered one-time code. The raw code is never
// stored; only its SHA-256 hash is persisted, and a code can be consumed at
// most once.
type TwoFactorCode struct {
	ID        uuid.UUID  // The unique ID for this code record.
	UserID    uuid.UUID  // The user this code was issued to.
	CodeHash  string     // SHA-256 hash of the raw code.
	Purpose   OTPPurpose // What the code authorizes: login or signup.
	ExpiresAt time.Time  // When the code stops being accepted.
	Consumed  bool       // Whether the code has already been used.
	CreatedAt time.Time  // When the code was issued.
}

// Expired reports whether the code is past its expiry at the given instant.
func (c *TwoFactorCode) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
