package service

import (
	"time"

	"careerconnect/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by access tokens. The company
// fields mirror the user's membership at issue time; the database stays
// authoritative and mutating endpoints re-check membership there.
type Claims struct {
	UserID      uuid.UUID `json:"uid"`
	Role        string    `json:"role"`
	CompanyID   string    `json:"companyId,omitempty"`
	CompanyRole string    `json:"companyRole,omitempty"`
	TokenType   string    `json:"type"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating JWTs.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateTokens creates a new access token and refresh token for a user.
	// The access token embeds the user's global role and company membership.
	GenerateTokens(user *entity.User) (accessToken string, refreshToken string, err error)

	// ValidateAccessToken checks an access token and returns its claims.
	ValidateAccessToken(tokenString string) (*Claims, error)

	// ValidateRefreshToken checks a refresh token and returns its claims.
	ValidateRefreshToken(tokenString string) (*Claims, error)

	// HashToken returns the storable hash of a raw token.
	HashToken(token string) string

	// GetRefreshTokenDuration returns the configured refresh token lifetime.
	GetRefreshTokenDuration() time.Duration
}
