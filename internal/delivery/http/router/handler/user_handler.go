package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "careerconnect/internal/delivery/context"
	"careerconnect/internal/delivery/http/response"
	"careerconnect/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for profile handlers.
type UserHandler struct {
	uc     usecase.ProfileUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.ProfileUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{uc: uc, logger: logger}
}

type updateProfileRequest struct {
	Name                string `json:"name" validate:"required,max=100"`
	AutoSendStatusEmail bool   `json:"autoSendStatusEmail"`
}

// UpdateProfile updates the caller's editable profile fields.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.UpdateProfile(c.Request().Context(), usecase.UpdateProfileInput{
		UserID:              userID,
		Name:                req.Name,
		AutoSendStatusEmail: req.AutoSendStatusEmail,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserView(user), "Profile updated")
}

// UploadAvatar stores a new avatar image for the caller.
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	upload, err := readMultipartFile(c, "avatar")
	if err != nil {
		return response.BadRequest(c, "INVALID_FILE", "Missing or unreadable avatar file")
	}
	defer upload.close()

	url, err := h.uc.UploadAvatar(c.Request().Context(), usecase.UploadInput{
		ActorID:     userID,
		Filename:    upload.filename,
		ContentType: upload.contentType,
		Content:     upload.content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"avatarUrl": url}, "Avatar updated")
}

// UploadResume stores a new resume document for the caller.
func (h *UserHandler) UploadResume(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	upload, err := readMultipartFile(c, "resume")
	if err != nil {
		return response.BadRequest(c, "INVALID_FILE", "Missing or unreadable resume file")
	}
	defer upload.close()

	url, err := h.uc.UploadResume(c.Request().Context(), usecase.UploadInput{
		ActorID:     userID,
		Filename:    upload.filename,
		ContentType: upload.contentType,
		Content:     upload.content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"resumeUrl": url}, "Resume updated")
}
