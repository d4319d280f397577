package handler

import (
	"log/slog"
	"net/http"
	"time"

	deliverycontext "careerconnect/internal/delivery/context"
	"careerconnect/internal/delivery/http/response"
	"careerconnect/internal/domain/entity"
	"careerconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ApplicationHandler holds dependencies for job application handlers.
type ApplicationHandler struct {
	uc     usecase.ApplicationUsecase
	logger *slog.Logger
}

// NewApplicationHandler is the constructor for ApplicationHandler, injected by Fx.
func NewApplicationHandler(uc usecase.ApplicationUsecase, logger *slog.Logger) *ApplicationHandler {
	return &ApplicationHandler{uc: uc, logger: logger}
}

type applyRequest struct {
	CoverLetter string `json:"coverLetter" validate:"max=10000"`
}

// Apply submits the caller's application to a job.
func (h *ApplicationHandler) Apply(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid job id")
	}

	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid application input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	application, err := h.uc.Apply(c.Request().Context(), usecase.ApplyInput{
		CandidateID: userID,
		JobID:       jobID,
		CoverLetter: req.CoverLetter,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toApplicationView(application), "Application submitted")
}

// ListForJob returns a job's applications for the hiring company.
func (h *ApplicationHandler) ListForJob(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid job id")
	}

	applications, err := h.uc.ListForJob(c.Request().Context(), userID, jobID)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*applicationView, 0, len(applications))
	for _, application := range applications {
		views = append(views, toApplicationView(application))
	}

	return response.Success(c, http.StatusOK, views, "")
}

// ListMine returns the caller's own applications.
func (h *ApplicationHandler) ListMine(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	applications, err := h.uc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*applicationView, 0, len(applications))
	for _, application := range applications {
		views = append(views, toApplicationView(application))
	}

	return response.Success(c, http.StatusOK, views, "")
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=submitted reviewed rejected hired"`
}

// UpdateStatus moves an application between review states.
func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	applicationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid application id")
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	application, err := h.uc.UpdateStatus(c.Request().Context(), usecase.UpdateApplicationStatusInput{
		ActorID:       userID,
		ApplicationID: applicationID,
		Status:        entity.ApplicationStatus(req.Status),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toApplicationView(application), "Application updated")
}

type applicationView struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"jobId"`
	CandidateID uuid.UUID `json:"candidateId"`
	ResumeURL   string    `json:"resumeUrl"`
	CoverLetter string    `json:"coverLetter,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toApplicationView(application *entity.Application) *applicationView {
	if application == nil {
		return nil
	}
	return &applicationView{
		ID:          application.ID,
		JobID:       application.JobID,
		CandidateID: application.CandidateID,
		ResumeURL:   application.ResumeURL,
		CoverLetter: application.CoverLetter,
		Status:      string(application.Status),
		CreatedAt:   application.CreatedAt,
		UpdatedAt:   application.UpdatedAt,
	}
}
