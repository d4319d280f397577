package middleware

import (
	"strings"

	deliverycontext "careerconnect/internal/delivery/context"
	"careerconnect/internal/delivery/http/response"
	"careerconnect/internal/domain/entity"
	"careerconnect/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer access token and stores the caller's
// identity on the request context. The company claims mirror membership at
// token issue time; mutating use cases re-check the database.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "AUTH_HEADER_MISSING", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "AUTH_HEADER_MALFORMED", "Authorization must be a Bearer token")
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "TOKEN_INVALID", "Invalid or expired token")
		}

		role := entity.GlobalRole(claims.Role)
		if !role.IsValid() {
			return response.Unauthorized(c, "TOKEN_INVALID", "Unknown role in token")
		}

		companyID, companyRole := membershipFromClaims(claims)
		deliverycontext.SetIdentity(c, claims.UserID, role, companyID, companyRole)

		return next(c)
	}
}

// OptionalAuthenticate populates the caller's identity when a valid bearer
// token is present, but lets anonymous requests through untouched.
func (m *AuthMiddleware) OptionalAuthenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return next(c)
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return next(c)
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return next(c)
		}

		role := entity.GlobalRole(claims.Role)
		if !role.IsValid() {
			return next(c)
		}

		companyID, companyRole := membershipFromClaims(claims)
		deliverycontext.SetIdentity(c, claims.UserID, role, companyID, companyRole)

		return next(c)
	}
}

// RequireRole restricts a route to callers holding one of the given global
// roles. Must run after Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...entity.GlobalRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := deliverycontext.GetGlobalRole(c)
			if !ok {
				return response.Forbidden(c, "ROLE_MISSING", "Role information missing")
			}

			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}

			return response.Forbidden(c, "ROLE_DENIED", "Insufficient role for this resource")
		}
	}
}

// RequireCompanyRole restricts a route to company members holding one of the
// given company roles. Must run after Authenticate.
func (m *AuthMiddleware) RequireCompanyRole(roles ...entity.CompanyRole) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			companyRole, ok := deliverycontext.GetCompanyRole(c)
			if !ok {
				return response.Forbidden(c, "COMPANY_ROLE_MISSING", "Not a member of any company")
			}

			if !entity.CompanyRoles(roles).Contains(companyRole) {
				return response.Forbidden(c, "COMPANY_ROLE_DENIED", "Insufficient company role for this resource")
			}

			return next(c)
		}
	}
}

// membershipFromClaims extracts the optional company claims, dropping a
// half-present pair so the identity never carries a role without a company.
func membershipFromClaims(claims *service.Claims) (*uuid.UUID, *entity.CompanyRole) {
	if claims.CompanyID == "" || claims.CompanyRole == "" {
		return nil, nil
	}

	companyID, err := uuid.Parse(claims.CompanyID)
	if err != nil {
		return nil, nil
	}

	companyRole, ok := entity.CompanyRoleFromString(claims.CompanyRole)
	if !ok {
		return nil, nil
	}

	return &companyID, &companyRole
}
