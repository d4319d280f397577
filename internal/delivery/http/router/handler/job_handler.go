package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	deliverycontext "careerconnect/internal/delivery/context"
	"careerconnect/internal/delivery/http/response"
	"careerconnect/internal/domain/entity"
	"careerconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// JobHandler holds dependencies for job posting handlers.
type JobHandler struct {
	uc     usecase.JobUsecase
	logger *slog.Logger
}

// NewJobHandler is the constructor for JobHandler, injected by Fx.
func NewJobHandler(uc usecase.JobUsecase, logger *slog.Logger) *JobHandler {
	return &JobHandler{uc: uc, logger: logger}
}

type jobRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"required"`
	Location    string `json:"location" validate:"max=200"`
	Remote      bool   `json:"remote"`
	SalaryMin   *int   `json:"salaryMin" validate:"omitempty,min=0"`
	SalaryMax   *int   `json:"salaryMax" validate:"omitempty,min=0"`
}

// CreateJob posts a job for the caller's company.
func (h *JobHandler) CreateJob(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	var req jobRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid job input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	job, err := h.uc.CreateJob(c.Request().Context(), usecase.CreateJobInput{
		ActorID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Remote:      req.Remote,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toJobView(job), "Job posted")
}

// GetJob returns a single job posting.
func (h *JobHandler) GetJob(c echo.Context) error {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid job id")
	}

	job, err := h.uc.GetJob(c.Request().Context(), jobID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toJobView(job), "")
}

// ListJobs returns job postings matching the query filter.
func (h *JobHandler) ListJobs(c echo.Context) error {
	filter := entity.JobFilter{
		Keyword:    c.QueryParam("q"),
		Location:   c.QueryParam("location"),
		RemoteOnly: c.QueryParam("remote") == "true",
	}

	if raw := c.QueryParam("salaryMin"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			filter.SalaryMin = &n
		}
	}
	if raw := c.QueryParam("companyId"); raw != "" {
		companyID, err := uuid.Parse(raw)
		if err != nil {
			return response.BadRequest(c, "INVALID_ID", "Invalid company id")
		}
		filter.CompanyID = &companyID
	}
	if raw := c.QueryParam("status"); raw != "" {
		status := entity.JobStatus(raw)
		if !status.IsValid() {
			return response.BadRequest(c, "INVALID_STATUS", "Unknown job status")
		}
		filter.Status = &status
	}
	filter.Limit, filter.Offset = parsePagination(c)

	jobs, err := h.uc.ListJobs(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*jobView, 0, len(jobs))
	for _, job := range jobs {
		views = append(views, toJobView(job))
	}

	return response.Success(c, http.StatusOK, views, "")
}

// UpdateJob modifies a posting belonging to the caller's company.
func (h *JobHandler) UpdateJob(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid job id")
	}

	var req jobRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid job input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	job, err := h.uc.UpdateJob(c.Request().Context(), usecase.UpdateJobInput{
		ActorID:     userID,
		JobID:       jobID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Remote:      req.Remote,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toJobView(job), "Job updated")
}

// CloseJob stops a posting from accepting applications.
func (h *JobHandler) CloseJob(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid job id")
	}

	job, err := h.uc.CloseJob(c.Request().Context(), userID, jobID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toJobView(job), "Job closed")
}

// DeleteJob removes a posting belonging to the caller's company.
func (h *JobHandler) DeleteJob(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid job id")
	}

	if err := h.uc.DeleteJob(c.Request().Context(), userID, jobID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Job deleted")
}

type jobView struct {
	ID          uuid.UUID `json:"id"`
	CompanyID   uuid.UUID `json:"companyId"`
	PostedBy    uuid.UUID `json:"postedBy"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location,omitempty"`
	Remote      bool      `json:"remote"`
	SalaryMin   *int      `json:"salaryMin,omitempty"`
	SalaryMax   *int      `json:"salaryMax,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func toJobView(job *entity.Job) *jobView {
	if job == nil {
		return nil
	}
	return &jobView{
		ID:          job.ID,
		CompanyID:   job.CompanyID,
		PostedBy:    job.PostedBy,
		Title:       job.Title,
		Description: job.Description,
		Location:    job.Location,
		Remote:      job.Remote,
		SalaryMin:   job.SalaryMin,
		SalaryMax:   job.SalaryMax,
		Status:      string(job.Status),
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
	}
}
