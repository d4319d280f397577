package impl

import (
	"context"
	"testing"

	"careerconnect/internal/domain/entity"
	domainerrors "careerconnect/internal/domain/errors"
	"careerconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type jobHarness struct {
	store   *fakeStore
	service usecase.JobUsecase
}

func newJobHarness() *jobHarness {
	store := newFakeStore()

	svc := NewJobService(JobServiceParams{
		UserRepo: &fakeUserRepo{store},
		JobRepo:  &fakeJobRepo{store},
		Logger:   newDiscardLogger(),
	})

	return &jobHarness{store: store, service: svc}
}

func (h *jobHarness) addMember(companyID uuid.UUID, role entity.CompanyRole) *entity.User {
	user := &entity.User{
		ID:          uuid.New(),
		Email:       uuid.NewString()[:8] + "@example.com",
		Role:        entity.RoleRecruiter,
		CompanyID:   &companyID,
		CompanyRole: &role,
	}
	h.store.users[user.ID] = user

	return user
}

func TestJobService_CreateJob(t *testing.T) {
	h := newJobHarness()
	companyID := uuid.New()
	recruiter := h.addMember(companyID, entity.CompanyRoleRecruiter)

	job, err := h.service.CreateJob(context.Background(), usecase.CreateJobInput{
		ActorID: recruiter.ID,
		Title:   "Backend Engineer",
		Remote:  true,
	})

	require.NoError(t, err)
	assert.Equal(t, companyID, job.CompanyID)
	assert.Equal(t, recruiter.ID, job.PostedBy)
	assert.Equal(t, entity.JobOpen, job.Status)
}

func TestJobService_CreateJob_EmployeeDenied(t *testing.T) {
	h := newJobHarness()
	employee := h.addMember(uuid.New(), entity.CompanyRoleEmployee)

	_, err := h.service.CreateJob(context.Background(), usecase.CreateJobInput{
		ActorID: employee.ID,
		Title:   "Backend Engineer",
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestJobService_CreateJob_NoCompanyDenied(t *testing.T) {
	h := newJobHarness()
	loner := &entity.User{ID: uuid.New(), Role: entity.RoleRecruiter}
	h.store.users[loner.ID] = loner

	_, err := h.service.CreateJob(context.Background(), usecase.CreateJobInput{
		ActorID: loner.ID,
		Title:   "Backend Engineer",
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestJobService_UpdateJob_OtherCompanyDenied(t *testing.T) {
	h := newJobHarness()
	ctx := context.Background()
	recruiter := h.addMember(uuid.New(), entity.CompanyRoleRecruiter)
	intruder := h.addMember(uuid.New(), entity.CompanyRoleAdmin)

	job, err := h.service.CreateJob(ctx, usecase.CreateJobInput{ActorID: recruiter.ID, Title: "Role"})
	require.NoError(t, err)

	_, err = h.service.UpdateJob(ctx, usecase.UpdateJobInput{
		ActorID: intruder.ID,
		JobID:   job.ID,
		Title:   "Hijacked",
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestJobService_CloseJob(t *testing.T) {
	h := newJobHarness()
	ctx := context.Background()
	admin := h.addMember(uuid.New(), entity.CompanyRoleAdmin)

	job, err := h.service.CreateJob(ctx, usecase.CreateJobInput{ActorID: admin.ID, Title: "Role"})
	require.NoError(t, err)

	closed, err := h.service.CloseJob(ctx, admin.ID, job.ID)

	require.NoError(t, err)
	assert.Equal(t, entity.JobClosed, closed.Status)
	assert.False(t, closed.AcceptsApplications())
}

func TestJobService_DeleteJob(t *testing.T) {
	h := newJobHarness()
	ctx := context.Background()
	admin := h.addMember(uuid.New(), entity.CompanyRoleAdmin)

	job, err := h.service.CreateJob(ctx, usecase.CreateJobInput{ActorID: admin.ID, Title: "Role"})
	require.NoError(t, err)

	require.NoError(t, h.service.DeleteJob(ctx, admin.ID, job.ID))

	_, err = h.service.GetJob(ctx, job.ID)
	assert.ErrorIs(t, err, domainerrors.ErrJobNotFound)
}
