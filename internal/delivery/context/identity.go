package context

import (
	"careerconnect/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// KeyUserID is the key for the authenticated user's id.
	KeyUserID ContextKey = "user_id"

	// KeyGlobalRole is the key for the authenticated user's global role.
	KeyGlobalRole ContextKey = "global_role"

	// KeyCompanyID is the key for the company id claim, when present.
	KeyCompanyID ContextKey = "company_id"

	// KeyCompanyRole is the key for the company role claim, when present.
	KeyCompanyRole ContextKey = "company_role"
)

// SetIdentity stores the authenticated identity on the echo context.
func SetIdentity(c echo.Context, userID uuid.UUID, role entity.GlobalRole, companyID *uuid.UUID, companyRole *entity.CompanyRole) {
	c.Set(string(KeyUserID), userID)
	c.Set(string(KeyGlobalRole), role)
	if companyID != nil {
		c.Set(string(KeyCompanyID), *companyID)
	}
	if companyRole != nil {
		c.Set(string(KeyCompanyRole), *companyRole)
	}
}

// GetUserID extracts the authenticated user's id from echo.Context.
// The second return is false on unauthenticated requests.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(string(KeyUserID)).(uuid.UUID)

	return id, ok
}

// GetGlobalRole extracts the authenticated user's global role.
func GetGlobalRole(c echo.Context) (entity.GlobalRole, bool) {
	role, ok := c.Get(string(KeyGlobalRole)).(entity.GlobalRole)

	return role, ok
}

// GetCompanyID extracts the company id claim, when the token carried one.
func GetCompanyID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(string(KeyCompanyID)).(uuid.UUID)

	return id, ok
}

// GetCompanyRole extracts the company role claim, when the token carried one.
func GetCompanyRole(c echo.Context) (entity.CompanyRole, bool) {
	role, ok := c.Get(string(KeyCompanyRole)).(entity.CompanyRole)

	return role, ok
}
