package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "careerconnect/internal/delivery/context"
	"careerconnect/internal/delivery/http/response"
	"careerconnect/internal/domain/entity"
	"careerconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"required,oneof=candidate recruiter"`
}

// registerResponse signals the client that a one-time code must be verified
// before tokens are issued.
type registerResponse struct {
	UserID            uuid.UUID `json:"userId"`
	Email             string    `json:"email"`
	TwoFactorRequired bool      `json:"twoFactorRequired"`
}

// Register handles the account registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     entity.GlobalRole(req.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, registerResponse{
		UserID:            output.PendingUserID,
		Email:             output.User.Email,
		TwoFactorRequired: output.TwoFactorRequired,
	}, "Verification code sent")
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	OTP      string `json:"otp"`
}

// tokenResponse is the payload of every endpoint that issues tokens.
type tokenResponse struct {
	AccessToken       string      `json:"accessToken,omitempty"`
	RefreshToken      string      `json:"refreshToken,omitempty"`
	User              *userView   `json:"user,omitempty"`
	TwoFactorRequired bool        `json:"twoFactorRequired,omitempty"`
}

// Login handles the login request, including the two-factor round trip.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
		OTP:      req.OTP,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	if output.TwoFactorRequired {
		return response.Success(c, http.StatusOK, tokenResponse{TwoFactorRequired: true}, "Verification code sent")
	}

	return response.Success(c, http.StatusOK, tokenResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		User:         toUserView(output.User),
	}, "Login successful")
}

type verifySignupRequest struct {
	UserID uuid.UUID `json:"userId" validate:"required"`
	OTP    string    `json:"otp" validate:"required,len=6"`
}

// VerifySignupOTP completes a registration with the emailed code.
func (h *AuthHandler) VerifySignupOTP(c echo.Context) error {
	var req verifySignupRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.VerifySignupOTP(c.Request().Context(), usecase.VerifySignupOTPInput{
		UserID: req.UserID,
		OTP:    req.OTP,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tokenResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		User:         toUserView(output.User),
	}, "Signup verified")
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// RefreshToken rotates a refresh token into a new pair.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid refresh input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.RefreshToken(c.Request().Context(), usecase.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, tokenResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		User:         toUserView(output.User),
	}, "Token refreshed")
}

// Logout invalidates the presented refresh token.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req refreshRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid logout input")
	}

	if err := h.uc.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Logged out")
}

// Me returns the authenticated caller's profile snapshot.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	user, err := h.uc.Me(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "")
}

type twoFactorRequest struct {
	Enabled bool `json:"enabled"`
}

// SetTwoFactor toggles two-factor login for the caller.
func (h *AuthHandler) SetTwoFactor(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	var req twoFactorRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}

	if err := h.uc.SetTwoFactor(c.Request().Context(), userID, req.Enabled); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"enabled": req.Enabled}, "")
}

// userView is the wire form of a user profile. Company fields are present
// only for members.
type userView struct {
	ID                  uuid.UUID  `json:"id"`
	Email               string     `json:"email"`
	Name                string     `json:"name"`
	Role                string     `json:"role"`
	AvatarURL           string     `json:"avatarUrl,omitempty"`
	ResumeURL           string     `json:"resumeUrl,omitempty"`
	TwoFactorEnabled    bool       `json:"twoFactorEnabled"`
	AutoSendStatusEmail bool       `json:"autoSendStatusEmail"`
	CompanyID           *uuid.UUID `json:"companyId,omitempty"`
	CompanyRole         *string    `json:"companyRole,omitempty"`
}

func toUserView(user *entity.User) *userView {
	if user == nil {
		return nil
	}

	view := &userView{
		ID:                  user.ID,
		Email:               user.Email,
		Name:                user.Name,
		Role:                user.Role.String(),
		AvatarURL:           user.AvatarURL,
		ResumeURL:           user.ResumeURL,
		TwoFactorEnabled:    user.TwoFactorEnabled,
		AutoSendStatusEmail: user.AutoSendStatusEmail,
	}

	companyID, companyRole := user.Membership()
	if companyID != nil && companyRole != nil {
		roleStr := companyRole.String()
		view.CompanyID = companyID
		view.CompanyRole = &roleStr
	}

	return view
}
