package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	deliverycontext "careerconnect/internal/delivery/context"
	"careerconnect/internal/domain/entity"
	"careerconnect/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokenService struct {
	claims map[string]*service.Claims
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{claims: make(map[string]*service.Claims)}
}

func (f *fakeTokenService) GenerateTokens(user *entity.User) (string, string, error) {
	return "", "", errors.New("not implemented")
}

func (f *fakeTokenService) ValidateAccessToken(tokenString string) (*service.Claims, error) {
	claims, ok := f.claims[tokenString]
	if !ok {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

func (f *fakeTokenService) ValidateRefreshToken(tokenString string) (*service.Claims, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeTokenService) HashToken(token string) string { return token }

func (f *fakeTokenService) GetRefreshTokenDuration() time.Duration { return time.Hour }

func newAuthRequest(token string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestAuthenticatePopulatesIdentity(t *testing.T) {
	tokenSvc := newFakeTokenService()
	userID := uuid.New()
	companyID := uuid.New()
	tokenSvc.claims["good"] = &service.Claims{
		UserID:      userID,
		Role:        "recruiter",
		CompanyID:   companyID.String(),
		CompanyRole: "admin",
	}

	m := NewAuthMiddleware(tokenSvc)
	c, rec := newAuthRequest("good")

	err := m.Authenticate(func(c echo.Context) error {
		gotID, ok := deliverycontext.GetUserID(c)
		require.True(t, ok)
		assert.Equal(t, userID, gotID)

		role, ok := deliverycontext.GetGlobalRole(c)
		require.True(t, ok)
		assert.Equal(t, entity.RoleRecruiter, role)

		gotCompany, ok := deliverycontext.GetCompanyID(c)
		require.True(t, ok)
		assert.Equal(t, companyID, gotCompany)

		companyRole, ok := deliverycontext.GetCompanyRole(c)
		require.True(t, ok)
		assert.Equal(t, entity.CompanyRoleAdmin, companyRole)

		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticateWithoutMembershipLeavesCompanyUnset(t *testing.T) {
	tokenSvc := newFakeTokenService()
	tokenSvc.claims["solo"] = &service.Claims{
		UserID: uuid.New(),
		Role:   "candidate",
	}

	m := NewAuthMiddleware(tokenSvc)
	c, _ := newAuthRequest("solo")

	err := m.Authenticate(func(c echo.Context) error {
		_, ok := deliverycontext.GetCompanyID(c)
		assert.False(t, ok)
		_, ok = deliverycontext.GetCompanyRole(c)
		assert.False(t, ok)

		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err)
}

func TestAuthenticateDropsHalfPresentMembership(t *testing.T) {
	tokenSvc := newFakeTokenService()
	tokenSvc.claims["half"] = &service.Claims{
		UserID:      uuid.New(),
		Role:        "recruiter",
		CompanyRole: "admin",
	}

	m := NewAuthMiddleware(tokenSvc)
	c, _ := newAuthRequest("half")

	err := m.Authenticate(func(c echo.Context) error {
		_, ok := deliverycontext.GetCompanyRole(c)
		assert.False(t, ok)

		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err)
}

func TestAuthenticateRejectsMissingHeader(t *testing.T) {
	m := NewAuthMiddleware(newFakeTokenService())
	c, rec := newAuthRequest("")

	err := m.Authenticate(okHandler)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateRejectsBadToken(t *testing.T) {
	m := NewAuthMiddleware(newFakeTokenService())
	c, rec := newAuthRequest("garbage")

	err := m.Authenticate(okHandler)(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleAllowsAndDenies(t *testing.T) {
	tokenSvc := newFakeTokenService()
	tokenSvc.claims["candidate"] = &service.Claims{UserID: uuid.New(), Role: "candidate"}

	m := NewAuthMiddleware(tokenSvc)

	c, rec := newAuthRequest("candidate")
	err := m.Authenticate(m.RequireRole(entity.RoleCandidate)(okHandler))(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newAuthRequest("candidate")
	err = m.Authenticate(m.RequireRole(entity.RoleRecruiter)(okHandler))(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireCompanyRole(t *testing.T) {
	tokenSvc := newFakeTokenService()
	companyID := uuid.New()
	tokenSvc.claims["employee"] = &service.Claims{
		UserID:      uuid.New(),
		Role:        "recruiter",
		CompanyID:   companyID.String(),
		CompanyRole: "employee",
	}
	tokenSvc.claims["outsider"] = &service.Claims{
		UserID: uuid.New(),
		Role:   "recruiter",
	}

	m := NewAuthMiddleware(tokenSvc)

	c, rec := newAuthRequest("employee")
	err := m.Authenticate(m.RequireCompanyRole(entity.CompanyRoleAdmin, entity.CompanyRoleRecruiter)(okHandler))(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	c, rec = newAuthRequest("employee")
	err = m.Authenticate(m.RequireCompanyRole(entity.CompanyRoleEmployee)(okHandler))(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newAuthRequest("outsider")
	err = m.Authenticate(m.RequireCompanyRole(entity.CompanyRoleAdmin)(okHandler))(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOptionalAuthenticateAllowsAnonymous(t *testing.T) {
	m := NewAuthMiddleware(newFakeTokenService())
	c, rec := newAuthRequest("")

	err := m.OptionalAuthenticate(func(c echo.Context) error {
		_, ok := deliverycontext.GetUserID(c)
		assert.False(t, ok)

		return c.NoContent(http.StatusOK)
	})(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
