package impl

import (
	"context"
	"strings"
	"testing"

	"careerconnect/internal/domain/entity"
	domainerrors "careerconnect/internal/domain/errors"
	"careerconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type companyHarness struct {
	store   *fakeStore
	storage *fakeFileStorage
	service usecase.CompanyUsecase
}

func newCompanyHarness() *companyHarness {
	store := newFakeStore()
	storage := &fakeFileStorage{}

	svc := NewCompanyService(CompanyServiceParams{
		TxManager:       &fakeTxManager{store},
		UserRepo:        &fakeUserRepo{store},
		CompanyRepo:     &fakeCompanyRepo{store},
		JoinRequestRepo: &fakeJoinRequestRepo{store},
		FileStorage:     storage,
		Logger:          newDiscardLogger(),
	})

	return &companyHarness{store: store, storage: storage, service: svc}
}

func (h *companyHarness) addUser(role entity.GlobalRole) *entity.User {
	user := &entity.User{
		ID:    uuid.New(),
		Email: uuid.NewString()[:8] + "@example.com",
		Name:  "User",
		Role:  role,
	}
	h.store.users[user.ID] = user

	return user
}

func (h *companyHarness) addMember(companyID uuid.UUID, role entity.CompanyRole) *entity.User {
	user := h.addUser(entity.RoleRecruiter)
	user.CompanyID = &companyID
	user.CompanyRole = &role

	return user
}

func TestCompanyService_CreateCompany_OwnerBecomesAdmin(t *testing.T) {
	h := newCompanyHarness()
	ctx := context.Background()
	owner := h.addUser(entity.RoleRecruiter)

	company, err := h.service.CreateCompany(ctx, usecase.CreateCompanyInput{
		OwnerID: owner.ID,
		Name:    "Acme",
	})

	require.NoError(t, err)
	assert.Equal(t, owner.ID, company.OwnerID)

	stored := h.store.users[owner.ID]
	require.NotNil(t, stored.CompanyID)
	require.NotNil(t, stored.CompanyRole)
	assert.Equal(t, company.ID, *stored.CompanyID)
	assert.Equal(t, entity.CompanyRoleAdmin, *stored.CompanyRole)
}

func TestCompanyService_CreateCompany_CandidateDenied(t *testing.T) {
	h := newCompanyHarness()
	owner := h.addUser(entity.RoleCandidate)

	_, err := h.service.CreateCompany(context.Background(), usecase.CreateCompanyInput{
		OwnerID: owner.ID,
		Name:    "Acme",
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestCompanyService_CreateCompany_AlreadyMember(t *testing.T) {
	h := newCompanyHarness()
	ctx := context.Background()
	owner := h.addUser(entity.RoleRecruiter)

	_, err := h.service.CreateCompany(ctx, usecase.CreateCompanyInput{OwnerID: owner.ID, Name: "Acme"})
	require.NoError(t, err)

	_, err = h.service.CreateCompany(ctx, usecase.CreateCompanyInput{OwnerID: owner.ID, Name: "Globex"})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyCompanyMember)
}

func TestCompanyService_SubmitJoinRequest(t *testing.T) {
	h := newCompanyHarness()
	ctx := context.Background()
	owner := h.addUser(entity.RoleRecruiter)
	company, err := h.service.CreateCompany(ctx, usecase.CreateCompanyInput{OwnerID: owner.ID, Name: "Acme"})
	require.NoError(t, err)

	applicant := h.addUser(entity.RoleRecruiter)

	request, err := h.service.SubmitJoinRequest(ctx, usecase.SubmitJoinRequestInput{
		UserID:        applicant.ID,
		CompanyID:     company.ID,
		RequestedRole: entity.CompanyRoleRecruiter,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.JoinRequestPending, request.Status)
	assert.Nil(t, request.DecidedBy)
	assert.Nil(t, request.DecidedAt)
}

func TestCompanyService_SubmitJoinRequest_OnePendingAtATime(t *testing.T) {
	h := newCompanyHarness()
	ctx := context.Background()
	owner := h.addUser(entity.RoleRecruiter)
	company, err := h.service.CreateCompany(ctx, usecase.CreateCompanyInput{OwnerID: owner.ID, Name: "Acme"})
	require.NoError(t, err)

	applicant := h.addUser(entity.RoleRecruiter)
	input := usecase.SubmitJoinRequestInput{
		UserID:        applicant.ID,
		CompanyID:     company.ID,
		RequestedRole: entity.CompanyRoleEmployee,
	}

	_, err = h.service.SubmitJoinRequest(ctx, input)
	require.NoError(t, err)

	_, err = h.service.SubmitJoinRequest(ctx, input)
	assert.ErrorIs(t, err, domainerrors.ErrJoinRequestPending)
}

func TestCompanyService_SubmitJoinRequest_CandidateDenied(t *testing.T) {
	h := newCompanyHarness()
	ctx := context.Background()
	owner := h.addUser(entity.RoleRecruiter)
	company, err := h.service.CreateCompany(ctx, usecase.CreateCompanyInput{OwnerID: owner.ID, Name: "Acme"})
	require.NoError(t, err)

	candidate := h.addUser(entity.RoleCandidate)

	_, err = h.service.SubmitJoinRequest(ctx, usecase.SubmitJoinRequestInput{
		UserID:        candidate.ID,
		CompanyID:     company.ID,
		RequestedRole: entity.CompanyRoleEmployee,
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestCompanyService_DecideJoinRequest_AcceptAttachesMembership(t *testing.T) {
	h := newCompanyHarness()
	ctx := context.Background()
	owner := h.addUser(entity.RoleRecruiter)
	company, err := h.service.CreateCompany(ctx, usecase.CreateCompanyInput{OwnerID: owner.ID, Name: "Acme"})
	require.NoError(t, err)

	applicant := h.addUser(entity.RoleRecruiter)
	request, err := h.service.SubmitJoinRequest(ctx, usecase.SubmitJoinRequestInput{
		UserID:        applicant.ID,
		CompanyID:     company.ID,
		RequestedRole: entity.CompanyRoleRecruiter,
	})
	require.NoError(t, err)

	decided, err := h.service.DecideJoinRequest(ctx, usecase.DecideJoinRequestInput{
		ActorID:   owner.ID,
		RequestID: request.ID,
		Accept:    true,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.JoinRequestAccepted, decided.Status)
	require.NotNil(t, decided.DecidedBy)
	assert.Equal(t, owner.ID, *decided.DecidedBy)
	assert.NotNil(t, decided.DecidedAt)

	member := h.store.users[applicant.ID]
	require.NotNil(t, member.CompanyID)
	require.NotNil(t, member.CompanyRole)
	assert.Equal(t, company.ID, *member.CompanyID)
	assert.Equal(t, entity.CompanyRoleRecruiter, *member.CompanyRole)
}

func TestCompanyService_DecideJoinRequest_RejectLeavesUserDetached(t *testing.T) {
	h := newCompanyHarness()
	ctx := context.Background()
	owner := h.addUser(entity.RoleRecruiter)
	company, err := h.service.CreateCompany(ctx, usecase.CreateCompanyInput{OwnerID: owner.ID, Name: "Acme"})
	require.NoError(t, err)

	applicant := h.addUser(entity.RoleRecruiter)
	request, err := h.service.SubmitJoinRequest(ctx, usecase.SubmitJoinRequestInput{
		UserID:        applicant.ID,
		CompanyID:     company.ID,
		RequestedRole: entity.CompanyRoleRecruiter,
	})
	require.NoError(t, err)

	decided, err := h.service.DecideJoinRequest(ctx, usecase.DecideJoinRequestInput{
		ActorID:   owner.ID,
		RequestID: request.ID,
		Accept:    false,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.JoinRequestRejected, decided.Status)
	assert.Nil(t, h.store.users[applicant.ID].CompanyID)
}

func TestCompanyService_DecideJoinRequest_TerminalIsFinal(t *testing.T) {
	h := newCompanyHarness()
	ctx := context.Background()
	owner := h.addUser(entity.RoleRecruiter)
	company, err := h.service.CreateCompany(ctx, usecase.CreateCompanyInput{OwnerID: owner.ID, Name: "Acme"})
	require.NoError(t, err)

	applicant := h.addUser(entity.RoleRecruiter)
	request, err := h.service.SubmitJoinRequest(ctx, usecase.SubmitJoinRequestInput{
		UserID:        applicant.ID,
		CompanyID:     company.ID,
		RequestedRole: entity.CompanyRoleEmployee,
	})
	require.NoError(t, err)

	_, err = h.service.DecideJoinRequest(ctx, usecase.DecideJoinRequestInput{
		ActorID: owner.ID, RequestID: request.ID, Accept: false,
	})
	require.NoError(t, err)

	_, err = h.service.DecideJoinRequest(ctx, usecase.DecideJoinRequestInput{
		ActorID: owner.ID, RequestID: request.ID, Accept: true,
	})
	assert.ErrorIs(t, err, domainerrors.ErrJoinRequestDecided)
}

func TestCompanyService_DecideJoinRequest_NonAdminDenied(t *testing.T) {
	h := newCompanyHarness()
	ctx := context.Background()
	owner := h.addUser(entity.RoleRecruiter)
	company, err := h.service.CreateCompany(ctx, usecase.CreateCompanyInput{OwnerID: owner.ID, Name: "Acme"})
	require.NoError(t, err)

	recruiter := h.addMember(company.ID, entity.CompanyRoleRecruiter)
	applicant := h.addUser(entity.RoleRecruiter)
	request, err := h.service.SubmitJoinRequest(ctx, usecase.SubmitJoinRequestInput{
		UserID:        applicant.ID,
		CompanyID:     company.ID,
		RequestedRole: entity.CompanyRoleEmployee,
	})
	require.NoError(t, err)

	_, err = h.service.DecideJoinRequest(ctx, usecase.DecideJoinRequestInput{
		ActorID: recruiter.ID, RequestID: request.ID, Accept: true,
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestCompanyService_RemoveMember(t *testing.T) {
	h := newCompanyHarness()
	ctx := context.Background()
	owner := h.addUser(entity.RoleRecruiter)
	company, err := h.service.CreateCompany(ctx, usecase.CreateCompanyInput{OwnerID: owner.ID, Name: "Acme"})
	require.NoError(t, err)

	member := h.addMember(company.ID, entity.CompanyRoleEmployee)

	require.NoError(t, h.service.RemoveMember(ctx, owner.ID, company.ID, member.ID))

	detached := h.store.users[member.ID]
	assert.Nil(t, detached.CompanyID)
	assert.Nil(t, detached.CompanyRole)
}

func TestCompanyService_RemoveMember_OwnerProtected(t *testing.T) {
	h := newCompanyHarness()
	ctx := context.Background()
	owner := h.addUser(entity.RoleRecruiter)
	company, err := h.service.CreateCompany(ctx, usecase.CreateCompanyInput{OwnerID: owner.ID, Name: "Acme"})
	require.NoError(t, err)

	err = h.service.RemoveMember(ctx, owner.ID, company.ID, owner.ID)

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestCompanyService_UploadLogo(t *testing.T) {
	h := newCompanyHarness()
	ctx := context.Background()
	owner := h.addUser(entity.RoleRecruiter)
	company, err := h.service.CreateCompany(ctx, usecase.CreateCompanyInput{OwnerID: owner.ID, Name: "Acme"})
	require.NoError(t, err)

	url, err := h.service.UploadLogo(ctx, company.ID, usecase.UploadInput{
		ActorID:     owner.ID,
		Filename:    "logo.png",
		ContentType: "image/png",
		Content:     strings.NewReader("png-bytes"),
	})

	require.NoError(t, err)
	assert.Contains(t, url, "logos/"+company.ID.String())
	assert.Equal(t, url, h.store.companies[company.ID].LogoURL)
}
