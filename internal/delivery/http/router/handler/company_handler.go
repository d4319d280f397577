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

// CompanyHandler holds dependencies for company and membership handlers.
type CompanyHandler struct {
	uc     usecase.CompanyUsecase
	logger *slog.Logger
}

// NewCompanyHandler is the constructor for CompanyHandler, injected by Fx.
func NewCompanyHandler(uc usecase.CompanyUsecase, logger *slog.Logger) *CompanyHandler {
	return &CompanyHandler{uc: uc, logger: logger}
}

type createCompanyRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Website     string `json:"website" validate:"omitempty,url"`
}

// CreateCompany creates a company owned by the caller.
func (h *CompanyHandler) CreateCompany(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	var req createCompanyRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid company input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	company, err := h.uc.CreateCompany(c.Request().Context(), usecase.CreateCompanyInput{
		OwnerID:     userID,
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toCompanyView(company), "Company created")
}

// GetCompany returns a single company page.
func (h *CompanyHandler) GetCompany(c echo.Context) error {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid company id")
	}

	company, err := h.uc.GetCompany(c.Request().Context(), companyID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCompanyView(company), "")
}

// ListCompanies returns a paginated company directory.
func (h *CompanyHandler) ListCompanies(c echo.Context) error {
	limit, offset := parsePagination(c)

	companies, err := h.uc.ListCompanies(c.Request().Context(), limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*companyView, 0, len(companies))
	for _, company := range companies {
		views = append(views, toCompanyView(company))
	}

	return response.Success(c, http.StatusOK, views, "")
}

// UpdateCompany modifies company details.
func (h *CompanyHandler) UpdateCompany(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid company id")
	}

	var req createCompanyRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid company input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	company, err := h.uc.UpdateCompany(c.Request().Context(), usecase.UpdateCompanyInput{
		ActorID:     userID,
		CompanyID:   companyID,
		Name:        req.Name,
		Description: req.Description,
		Website:     req.Website,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCompanyView(company), "Company updated")
}

// UploadLogo stores a company logo image.
func (h *CompanyHandler) UploadLogo(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid company id")
	}

	upload, err := readMultipartFile(c, "logo")
	if err != nil {
		return response.BadRequest(c, "INVALID_FILE", "Missing or unreadable logo file")
	}
	defer upload.close()

	url, err := h.uc.UploadLogo(c.Request().Context(), companyID, usecase.UploadInput{
		ActorID:     userID,
		Filename:    upload.filename,
		ContentType: upload.contentType,
		Content:     upload.content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"logoUrl": url}, "Logo updated")
}

type joinRequestRequest struct {
	CompanyID     uuid.UUID `json:"companyId" validate:"required"`
	RequestedRole string    `json:"requestedRole" validate:"required,oneof=admin recruiter employee"`
}

// SubmitJoinRequest files the caller's request to join a company.
func (h *CompanyHandler) SubmitJoinRequest(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	var req joinRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid join request input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	role, _ := entity.CompanyRoleFromString(req.RequestedRole)

	request, err := h.uc.SubmitJoinRequest(c.Request().Context(), usecase.SubmitJoinRequestInput{
		UserID:        userID,
		CompanyID:     req.CompanyID,
		RequestedRole: role,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toJoinRequestView(request), "Join request submitted")
}

// GetMyJoinRequest returns the caller's pending join request, if any.
func (h *CompanyHandler) GetMyJoinRequest(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	request, err := h.uc.GetMyJoinRequest(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toJoinRequestView(request), "")
}

// ListJoinRequests returns a company's join requests for its admins.
func (h *CompanyHandler) ListJoinRequests(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid company id")
	}

	var status *entity.JoinRequestStatus
	if raw := c.QueryParam("status"); raw != "" {
		candidate := entity.JoinRequestStatus(raw)
		if !candidate.IsValid() {
			return response.BadRequest(c, "INVALID_STATUS", "Unknown join request status")
		}
		status = &candidate
	}

	requests, err := h.uc.ListJoinRequests(c.Request().Context(), userID, companyID, status)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*joinRequestView, 0, len(requests))
	for _, request := range requests {
		views = append(views, toJoinRequestView(request))
	}

	return response.Success(c, http.StatusOK, views, "")
}

type decideJoinRequestRequest struct {
	Accept bool `json:"accept"`
}

// DecideJoinRequest accepts or rejects a pending join request.
func (h *CompanyHandler) DecideJoinRequest(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	requestID, err := uuid.Parse(c.Param("requestId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid join request id")
	}

	var req decideJoinRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid decision input")
	}

	request, err := h.uc.DecideJoinRequest(c.Request().Context(), usecase.DecideJoinRequestInput{
		ActorID:   userID,
		RequestID: requestID,
		Accept:    req.Accept,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toJoinRequestView(request), "Join request decided")
}

// ListMembers returns the company's member roster.
func (h *CompanyHandler) ListMembers(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid company id")
	}

	members, err := h.uc.ListMembers(c.Request().Context(), userID, companyID)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*userView, 0, len(members))
	for _, member := range members {
		views = append(views, toUserView(member))
	}

	return response.Success(c, http.StatusOK, views, "")
}

// RemoveMember detaches a member from the company.
func (h *CompanyHandler) RemoveMember(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid company id")
	}

	memberID, err := uuid.Parse(c.Param("memberId"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid member id")
	}

	if err := h.uc.RemoveMember(c.Request().Context(), userID, companyID, memberID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Member removed")
}

type companyView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Website     string    `json:"website,omitempty"`
	LogoURL     string    `json:"logoUrl,omitempty"`
	OwnerID     uuid.UUID `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

func toCompanyView(company *entity.Company) *companyView {
	if company == nil {
		return nil
	}
	return &companyView{
		ID:          company.ID,
		Name:        company.Name,
		Description: company.Description,
		Website:     company.Website,
		LogoURL:     company.LogoURL,
		OwnerID:     company.OwnerID,
		CreatedAt:   company.CreatedAt,
	}
}

type joinRequestView struct {
	ID            uuid.UUID  `json:"id"`
	CompanyID     uuid.UUID  `json:"companyId"`
	UserID        uuid.UUID  `json:"userId"`
	RequestedRole string     `json:"requestedRole"`
	Status        string     `json:"status"`
	DecidedBy     *uuid.UUID `json:"decidedBy,omitempty"`
	DecidedAt     *time.Time `json:"decidedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func toJoinRequestView(request *entity.JoinRequest) *joinRequestView {
	if request == nil {
		return nil
	}
	return &joinRequestView{
		ID:            request.ID,
		CompanyID:     request.CompanyID,
		UserID:        request.UserID,
		RequestedRole: request.RequestedRole.String(),
		Status:        string(request.Status),
		DecidedBy:     request.DecidedBy,
		DecidedAt:     request.DecidedAt,
		CreatedAt:     request.CreatedAt,
	}
}

// parsePagination reads limit and offset query parameters with sane bounds.
func parsePagination(c echo.Context) (limit, offset int) {
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if raw := c.QueryParam("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}
