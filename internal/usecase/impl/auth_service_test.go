package impl

import (
	"context"
	"testing"

	"careerconnect/internal/domain/entity"
	domainerrors "careerconnect/internal/domain/errors"
	"careerconnect/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authHarness struct {
	store   *fakeStore
	mailer  *fakeMailer
	service usecase.AuthUsecase
}

func newAuthHarness() *authHarness {
	store := newFakeStore()
	mailer := &fakeMailer{}

	svc := NewAuthService(AuthServiceParams{
		TxManager:        &fakeTxManager{store},
		UserRepo:         &fakeUserRepo{store},
		AuthRepo:         &fakeAuthRepo{store},
		RefreshTokenRepo: &fakeRefreshTokenRepo{store},
		TwoFactorRepo:    &fakeTwoFactorRepo{store},
		Hasher:           fakeHasher{},
		TokenService:     &fakeTokenService{},
		OTPService:       &fakeOTPService{},
		Mailer:           mailer,
		Config:           newTestConfig(),
		Logger:           newDiscardLogger(),
	})

	return &authHarness{store: store, mailer: mailer, service: svc}
}

func TestAuthService_Register_SendsSignupCode(t *testing.T) {
	h := newAuthHarness()
	ctx := context.Background()

	out, err := h.service.Register(ctx, usecase.RegisterInput{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "longenough",
		Role:     entity.RoleRecruiter,
	})

	require.NoError(t, err)
	assert.True(t, out.TwoFactorRequired)
	require.NotNil(t, out.User)
	assert.Equal(t, entity.RoleRecruiter, out.User.Role)
	assert.Equal(t, out.User.ID, out.PendingUserID)

	require.Len(t, h.mailer.sent, 1)
	assert.Equal(t, "dana@example.com", h.mailer.sent[0].To)
	assert.Equal(t, "123456", h.mailer.sent[0].Code)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	h := newAuthHarness()
	ctx := context.Background()
	input := usecase.RegisterInput{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "longenough",
		Role:     entity.RoleCandidate,
	}

	_, err := h.service.Register(ctx, input)
	require.NoError(t, err)

	_, err = h.service.Register(ctx, input)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestAuthService_Register_InvalidRole(t *testing.T) {
	h := newAuthHarness()

	_, err := h.service.Register(context.Background(), usecase.RegisterInput{
		Name:     "X",
		Email:    "x@example.com",
		Password: "longenough",
		Role:     entity.GlobalRole("superuser"),
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidRole)
}

func TestAuthService_VerifySignupOTP_IssuesTokens(t *testing.T) {
	h := newAuthHarness()
	ctx := context.Background()

	out, err := h.service.Register(ctx, usecase.RegisterInput{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "longenough",
		Role:     entity.RoleCandidate,
	})
	require.NoError(t, err)

	pair, err := h.service.VerifySignupOTP(ctx, usecase.VerifySignupOTPInput{
		UserID: out.PendingUserID,
		OTP:    "123456",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, out.PendingUserID, pair.User.ID)
}

func TestAuthService_VerifySignupOTP_WrongCode(t *testing.T) {
	h := newAuthHarness()
	ctx := context.Background()

	out, err := h.service.Register(ctx, usecase.RegisterInput{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "longenough",
		Role:     entity.RoleCandidate,
	})
	require.NoError(t, err)

	_, err = h.service.VerifySignupOTP(ctx, usecase.VerifySignupOTPInput{
		UserID: out.PendingUserID,
		OTP:    "000000",
	})

	assert.ErrorIs(t, err, domainerrors.ErrOTPInvalid)
}

func TestAuthService_VerifySignupOTP_CodeConsumedOnce(t *testing.T) {
	h := newAuthHarness()
	ctx := context.Background()

	out, err := h.service.Register(ctx, usecase.RegisterInput{
		Name:     "Dana",
		Email:    "dana@example.com",
		Password: "longenough",
		Role:     entity.RoleCandidate,
	})
	require.NoError(t, err)

	_, err = h.service.VerifySignupOTP(ctx, usecase.VerifySignupOTPInput{UserID: out.PendingUserID, OTP: "123456"})
	require.NoError(t, err)

	_, err = h.service.VerifySignupOTP(ctx, usecase.VerifySignupOTPInput{UserID: out.PendingUserID, OTP: "123456"})
	assert.ErrorIs(t, err, domainerrors.ErrOTPInvalid)
}

func registerAndVerify(t *testing.T, h *authHarness, email string, role entity.GlobalRole) *entity.User {
	t.Helper()
	ctx := context.Background()

	out, err := h.service.Register(ctx, usecase.RegisterInput{
		Name:     "User",
		Email:    email,
		Password: "longenough",
		Role:     role,
	})
	require.NoError(t, err)

	pair, err := h.service.VerifySignupOTP(ctx, usecase.VerifySignupOTPInput{UserID: out.PendingUserID, OTP: "123456"})
	require.NoError(t, err)

	return pair.User
}

func TestAuthService_Login_Success(t *testing.T) {
	h := newAuthHarness()
	ctx := context.Background()
	registerAndVerify(t, h, "dana@example.com", entity.RoleCandidate)

	out, err := h.service.Login(ctx, usecase.LoginInput{Email: "dana@example.com", Password: "longenough"})

	require.NoError(t, err)
	assert.False(t, out.TwoFactorRequired)
	assert.NotEmpty(t, out.AccessToken)
	assert.NotEmpty(t, out.RefreshToken)
	require.NotNil(t, out.User)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	h := newAuthHarness()
	registerAndVerify(t, h, "dana@example.com", entity.RoleCandidate)

	_, err := h.service.Login(context.Background(), usecase.LoginInput{
		Email:    "dana@example.com",
		Password: "nottheone",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	h := newAuthHarness()

	_, err := h.service.Login(context.Background(), usecase.LoginInput{
		Email:    "ghost@example.com",
		Password: "whatever1",
	})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_TwoFactorBranch(t *testing.T) {
	h := newAuthHarness()
	ctx := context.Background()
	user := registerAndVerify(t, h, "dana@example.com", entity.RoleCandidate)

	require.NoError(t, h.service.SetTwoFactor(ctx, user.ID, true))
	h.mailer.sent = nil

	// First call: password only. No tokens, a code is emailed.
	out, err := h.service.Login(ctx, usecase.LoginInput{Email: "dana@example.com", Password: "longenough"})
	require.NoError(t, err)
	assert.True(t, out.TwoFactorRequired)
	assert.Empty(t, out.AccessToken)
	assert.Empty(t, out.RefreshToken)
	assert.Nil(t, out.User)
	require.Len(t, h.mailer.sent, 1)

	// Second call: password plus the emailed code.
	out, err = h.service.Login(ctx, usecase.LoginInput{
		Email:    "dana@example.com",
		Password: "longenough",
		OTP:      h.mailer.sent[0].Code,
	})
	require.NoError(t, err)
	assert.False(t, out.TwoFactorRequired)
	assert.NotEmpty(t, out.AccessToken)
}

func TestAuthService_Login_TwoFactorWrongCode(t *testing.T) {
	h := newAuthHarness()
	ctx := context.Background()
	user := registerAndVerify(t, h, "dana@example.com", entity.RoleCandidate)
	require.NoError(t, h.service.SetTwoFactor(ctx, user.ID, true))

	_, err := h.service.Login(ctx, usecase.LoginInput{Email: "dana@example.com", Password: "longenough"})
	require.NoError(t, err)

	_, err = h.service.Login(ctx, usecase.LoginInput{
		Email:    "dana@example.com",
		Password: "longenough",
		OTP:      "999999",
	})

	assert.ErrorIs(t, err, domainerrors.ErrOTPInvalid)
}

func TestAuthService_RefreshToken_RotatesSession(t *testing.T) {
	h := newAuthHarness()
	ctx := context.Background()
	registerAndVerify(t, h, "dana@example.com", entity.RoleCandidate)

	login, err := h.service.Login(ctx, usecase.LoginInput{Email: "dana@example.com", Password: "longenough"})
	require.NoError(t, err)

	pair, err := h.service.RefreshToken(ctx, usecase.RefreshTokenInput{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, pair.RefreshToken)

	// The old token was rotated out and cannot be replayed.
	_, err = h.service.RefreshToken(ctx, usecase.RefreshTokenInput{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_Logout_UnknownTokenIsFine(t *testing.T) {
	h := newAuthHarness()

	err := h.service.Logout(context.Background(), "refresh-never-issued")

	assert.NoError(t, err)
}

func TestAuthService_Me_IncludesMembership(t *testing.T) {
	h := newAuthHarness()
	ctx := context.Background()
	user := registerAndVerify(t, h, "dana@example.com", entity.RoleRecruiter)

	role := entity.CompanyRoleAdmin
	stored := h.store.users[user.ID]
	cid := stored.ID // any uuid works for the fake
	stored.CompanyID = &cid
	stored.CompanyRole = &role

	me, err := h.service.Me(ctx, user.ID)

	require.NoError(t, err)
	require.NotNil(t, me.CompanyID)
	require.NotNil(t, me.CompanyRole)
	assert.Equal(t, entity.CompanyRoleAdmin, *me.CompanyRole)
}
