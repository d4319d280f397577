// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"time"

	"careerconnect/config"
	deliverycontext "careerconnect/internal/delivery/context"
	"careerconnect/internal/domain/entity"
	domainerrors "careerconnect/internal/domain/errors"
	"careerconnect/internal/domain/repository"
	"careerconnect/internal/domain/service"
	"careerconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	authRepo          repository.AuthRepository
	refreshTokenRepo  repository.RefreshTokenRepository
	twoFactorRepo     repository.TwoFactorRepository
	hasher            service.PasswordHasher
	tokenService      service.TokenService
	otpService        service.OTPService
	mailer            service.Mailer
	otpTTL            time.Duration
	maxActiveSessions int
	logger            *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	AuthRepo         repository.AuthRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	TwoFactorRepo    repository.TwoFactorRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	OTPService       service.OTPService
	Mailer           service.Mailer
	Config           *config.Config
	Logger           *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all
// dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	otpTTL := 10 * time.Minute
	maxActiveSessions := 0
	if params.Config != nil {
		if params.Config.Auth.OTPTTL > 0 {
			otpTTL = params.Config.Auth.OTPTTL
		}
		maxActiveSessions = params.Config.Auth.MaxActiveSessions
	}

	return &authService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		authRepo:          params.AuthRepo,
		refreshTokenRepo:  params.RefreshTokenRepo,
		twoFactorRepo:     params.TwoFactorRepo,
		hasher:            params.Hasher,
		tokenService:      params.TokenService,
		otpService:        params.OTPService,
		mailer:            params.Mailer,
		otpTTL:            otpTTL,
		maxActiveSessions: maxActiveSessions,
		logger:            params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to
// the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates the account and emails a signup verification code. Tokens
// are only issued once the code is verified.
func (srv *authService) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	if !input.Role.IsValid() {
		return nil, domainerrors.ErrInvalidRole.WrapMessage("role must be candidate or recruiter")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("email", input.Email))

		return nil, err
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	var registeredUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		authRepo := repoFactory.AuthRepo()

		_, err := authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email)
		if err == nil {
			return domainerrors.ErrUserAlreadyExists
		}
		if !errors.Is(err, repository.ErrAuthNotFound) {
			return errors.Wrap(err, "failed to check existing authentication")
		}

		newUser := &entity.User{
			Email: input.Email,
			Name:  input.Name,
			Role:  input.Role,
		}
		if err := repoFactory.UserRepo().Create(ctx, newUser); err != nil {
			return err
		}

		credential := &entity.Authentication{
			UserID:         newUser.ID,
			Provider:       entity.ProviderTypeEmail,
			ProviderUserID: input.Email,
			PasswordHash:   hashedPassword,
		}
		if err := authRepo.CreateAuthentication(ctx, credential); err != nil {
			return err
		}

		registeredUser = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	if err := srv.issueOTP(ctx, registeredUser, entity.OTPPurposeSignup); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User registered, signup code sent",
		slog.Any("userID", registeredUser.ID), slog.String("role", registeredUser.Role.String()))

	return &usecase.RegisterOutput{
		User:              registeredUser,
		TwoFactorRequired: true,
		PendingUserID:     registeredUser.ID,
	}, nil
}

// Login authenticates with email and password. Accounts with two-factor
// enabled take a second round trip: the first call emails a code, the second
// presents it.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	credential, err := srv.authRepo.FindAuthentication(ctx, entity.ProviderTypeEmail, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAuthNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find authentication during login")
	}

	if !srv.hasher.Check(input.Password, credential.PasswordHash) {
		srv.log(ctx).Warn("Login with wrong password", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials
	}

	user, err := srv.userRepo.FindByID(ctx, credential.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user during login")
	}

	if user.TwoFactorEnabled {
		if input.OTP == "" {
			if err := srv.issueOTP(ctx, user, entity.OTPPurposeLogin); err != nil {
				return nil, err
			}

			srv.log(ctx).Info("Login code sent", slog.Any("userID", user.ID))

			return &usecase.LoginOutput{TwoFactorRequired: true}, nil
		}

		if err := srv.verifyOTP(ctx, user.ID, entity.OTPPurposeLogin, input.OTP); err != nil {
			return nil, err
		}
	}

	pair, err := srv.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User logged in", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user,
	}, nil
}

// VerifySignupOTP finishes a registration by checking the emailed code and
// returns the first token pair.
func (srv *authService) VerifySignupOTP(ctx context.Context, input usecase.VerifySignupOTPInput) (*usecase.TokenPairOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrOTPInvalid
		}

		return nil, errors.Wrap(err, "failed to load user during signup verification")
	}

	if err := srv.verifyOTP(ctx, user.ID, entity.OTPPurposeSignup, input.OTP); err != nil {
		return nil, err
	}

	pair, err := srv.issueTokenPair(ctx, user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Signup verified", slog.Any("userID", user.ID))

	return pair, nil
}

// RefreshToken rotates a presented refresh token into a fresh pair. The old
// token is deleted so it cannot be replayed.
func (srv *authService) RefreshToken(ctx context.Context, input usecase.RefreshTokenInput) (*usecase.TokenPairOutput, error) {
	claims, err := srv.tokenService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	tokenHash := srv.tokenService.HashToken(input.RefreshToken)
	stored, err := srv.refreshTokenRepo.FindRefreshTokenByHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil, domainerrors.ErrRefreshTokenInvalid
		}

		return nil, errors.Wrap(err, "failed to look up refresh token")
	}

	if stored.UserID != claims.UserID {
		srv.log(ctx).Warn("Refresh token user mismatch", slog.Any("userID", claims.UserID))

		return nil, domainerrors.ErrRefreshTokenInvalid
	}

	if err := srv.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, tokenHash); err != nil &&
		!errors.Is(err, repository.ErrRefreshTokenNotFound) {
		return nil, errors.Wrap(err, "failed to rotate refresh token")
	}

	user, err := srv.userRepo.FindByID(ctx, stored.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user during token refresh")
	}

	return srv.issueTokenPair(ctx, user)
}

// Logout invalidates the presented refresh token. An unknown token is not an
// error: the session is gone either way.
func (srv *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := srv.tokenService.HashToken(refreshToken)

	err := srv.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, tokenHash)
	if err != nil && !errors.Is(err, repository.ErrRefreshTokenNotFound) {
		return errors.Wrap(err, "failed to delete refresh token during logout")
	}

	return nil
}

// Me returns the caller's current profile, company membership included.
func (srv *authService) Me(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to load current user")
	}

	return user, nil
}

// SetTwoFactor enables or disables two-factor login for the caller.
func (srv *authService) SetTwoFactor(ctx context.Context, userID uuid.UUID, enabled bool) error {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound
		}

		return errors.Wrap(err, "failed to load user for two-factor change")
	}

	user.TwoFactorEnabled = enabled
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to persist two-factor change")
	}

	srv.log(ctx).Info("Two-factor setting changed", slog.Any("userID", userID), slog.Bool("enabled", enabled))

	return nil
}

// issueOTP creates, stores and emails a one-time code.
func (srv *authService) issueOTP(ctx context.Context, user *entity.User, purpose entity.OTPPurpose) error {
	code, err := srv.otpService.Generate()
	if err != nil {
		return errors.Wrap(err, "failed to generate one-time code")
	}

	record := &entity.TwoFactorCode{
		UserID:    user.ID,
		CodeHash:  srv.otpService.Hash(code),
		Purpose:   purpose,
		ExpiresAt: time.Now().Add(srv.otpTTL),
	}
	if err := srv.twoFactorRepo.CreateCode(ctx, record); err != nil {
		return errors.Wrap(err, "failed to store one-time code")
	}

	if err := srv.mailer.SendOTP(ctx, user.Email, code); err != nil {
		return errors.Wrap(err, "failed to send one-time code")
	}

	return nil
}

// verifyOTP checks the presented code against the newest active record and
// consumes it on success.
func (srv *authService) verifyOTP(ctx context.Context, userID uuid.UUID, purpose entity.OTPPurpose, code string) error {
	record, err := srv.twoFactorRepo.FindActiveCode(ctx, userID, purpose)
	if err != nil {
		if errors.Is(err, repository.ErrTwoFactorCodeNotFound) {
			return domainerrors.ErrOTPInvalid
		}

		return errors.Wrap(err, "failed to look up one-time code")
	}

	presented := srv.otpService.Hash(code)
	if subtle.ConstantTimeCompare([]byte(presented), []byte(record.CodeHash)) != 1 {
		return domainerrors.ErrOTPInvalid
	}

	if err := srv.twoFactorRepo.ConsumeCode(ctx, record.ID); err != nil {
		if errors.Is(err, repository.ErrTwoFactorCodeNotFound) {
			return domainerrors.ErrOTPInvalid
		}

		return errors.Wrap(err, "failed to consume one-time code")
	}

	return nil
}

// issueTokenPair generates a token pair, stores the refresh token hash and
// enforces the per-user active session cap.
func (srv *authService) issueTokenPair(ctx context.Context, user *entity.User) (*usecase.TokenPairOutput, error) {
	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	record := &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: srv.tokenService.HashToken(refreshToken),
		ExpiresAt: time.Now().Add(srv.tokenService.GetRefreshTokenDuration()),
	}
	if err := srv.refreshTokenRepo.CreateRefreshToken(ctx, record); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	if err := srv.enforceSessionLimit(ctx, user.ID); err != nil {
		srv.log(ctx).Warn("Failed to enforce session limit", slog.Any("userID", user.ID), slog.Any("error", err))
	}

	return &usecase.TokenPairOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// enforceSessionLimit trims the oldest sessions beyond the configured cap.
// A cap of zero means unlimited.
func (srv *authService) enforceSessionLimit(ctx context.Context, userID uuid.UUID) error {
	if srv.maxActiveSessions <= 0 {
		return nil
	}

	tokens, err := srv.refreshTokenRepo.FindRefreshTokensByUserID(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to list sessions")
	}

	for i := srv.maxActiveSessions; i < len(tokens); i++ {
		if err := srv.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, tokens[i].TokenHash); err != nil &&
			!errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return errors.Wrap(err, "failed to trim session")
		}
	}

	return nil
}
