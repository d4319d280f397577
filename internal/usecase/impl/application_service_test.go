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

type applicationHarness struct {
	store   *fakeStore
	mailer  *fakeMailer
	service usecase.ApplicationUsecase
}

func newApplicationHarness() *applicationHarness {
	store := newFakeStore()
	mailer := &fakeMailer{}

	svc := NewApplicationService(ApplicationServiceParams{
		UserRepo:        &fakeUserRepo{store},
		JobRepo:         &fakeJobRepo{store},
		ApplicationRepo: &fakeApplicationRepo{store},
		Mailer:          mailer,
		Logger:          newDiscardLogger(),
	})

	return &applicationHarness{store: store, mailer: mailer, service: svc}
}

func (h *applicationHarness) addCandidate(resumeURL string) *entity.User {
	user := &entity.User{
		ID:        uuid.New(),
		Email:     uuid.NewString()[:8] + "@example.com",
		Role:      entity.RoleCandidate,
		ResumeURL: resumeURL,
	}
	h.store.users[user.ID] = user

	return user
}

func (h *applicationHarness) addJob(companyID uuid.UUID, status entity.JobStatus) *entity.Job {
	job := &entity.Job{
		ID:        uuid.New(),
		CompanyID: companyID,
		Title:     "Backend Engineer",
		Status:    status,
	}
	h.store.jobs[job.ID] = job

	return job
}

func (h *applicationHarness) addManager(companyID uuid.UUID) *entity.User {
	role := entity.CompanyRoleRecruiter
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

func TestApplicationService_Apply(t *testing.T) {
	h := newApplicationHarness()
	candidate := h.addCandidate("https://files.example.com/resumes/r.pdf")
	job := h.addJob(uuid.New(), entity.JobOpen)

	application, err := h.service.Apply(context.Background(), usecase.ApplyInput{
		CandidateID: candidate.ID,
		JobID:       job.ID,
		CoverLetter: "hello",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationSubmitted, application.Status)
	assert.Equal(t, candidate.ResumeURL, application.ResumeURL)
}

func TestApplicationService_Apply_ResumeRequired(t *testing.T) {
	h := newApplicationHarness()
	candidate := h.addCandidate("")
	job := h.addJob(uuid.New(), entity.JobOpen)

	_, err := h.service.Apply(context.Background(), usecase.ApplyInput{
		CandidateID: candidate.ID,
		JobID:       job.ID,
	})

	assert.ErrorIs(t, err, domainerrors.ErrResumeRequired)
}

func TestApplicationService_Apply_ClosedJob(t *testing.T) {
	h := newApplicationHarness()
	candidate := h.addCandidate("resume.pdf")
	job := h.addJob(uuid.New(), entity.JobClosed)

	_, err := h.service.Apply(context.Background(), usecase.ApplyInput{
		CandidateID: candidate.ID,
		JobID:       job.ID,
	})

	assert.ErrorIs(t, err, domainerrors.ErrJobClosed)
}

func TestApplicationService_Apply_OncePerJob(t *testing.T) {
	h := newApplicationHarness()
	ctx := context.Background()
	candidate := h.addCandidate("resume.pdf")
	job := h.addJob(uuid.New(), entity.JobOpen)
	input := usecase.ApplyInput{CandidateID: candidate.ID, JobID: job.ID}

	_, err := h.service.Apply(ctx, input)
	require.NoError(t, err)

	_, err = h.service.Apply(ctx, input)
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateApplication)
}

func TestApplicationService_Apply_RecruiterDenied(t *testing.T) {
	h := newApplicationHarness()
	recruiter := h.addManager(uuid.New())
	job := h.addJob(uuid.New(), entity.JobOpen)

	_, err := h.service.Apply(context.Background(), usecase.ApplyInput{
		CandidateID: recruiter.ID,
		JobID:       job.ID,
	})

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestApplicationService_ListForJob_CompanyScoped(t *testing.T) {
	h := newApplicationHarness()
	ctx := context.Background()
	companyID := uuid.New()
	job := h.addJob(companyID, entity.JobOpen)
	manager := h.addManager(companyID)
	outsider := h.addManager(uuid.New())

	candidate := h.addCandidate("resume.pdf")
	_, err := h.service.Apply(ctx, usecase.ApplyInput{CandidateID: candidate.ID, JobID: job.ID})
	require.NoError(t, err)

	applications, err := h.service.ListForJob(ctx, manager.ID, job.ID)
	require.NoError(t, err)
	assert.Len(t, applications, 1)

	_, err = h.service.ListForJob(ctx, outsider.ID, job.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestApplicationService_UpdateStatus_EmailsOptedInCandidate(t *testing.T) {
	h := newApplicationHarness()
	ctx := context.Background()
	companyID := uuid.New()
	job := h.addJob(companyID, entity.JobOpen)
	manager := h.addManager(companyID)

	candidate := h.addCandidate("resume.pdf")
	candidate.AutoSendStatusEmail = true
	application, err := h.service.Apply(ctx, usecase.ApplyInput{CandidateID: candidate.ID, JobID: job.ID})
	require.NoError(t, err)

	updated, err := h.service.UpdateStatus(ctx, usecase.UpdateApplicationStatusInput{
		ActorID:       manager.ID,
		ApplicationID: application.ID,
		Status:        entity.ApplicationReviewed,
	})

	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationReviewed, updated.Status)
	require.Len(t, h.mailer.sent, 1)
	assert.Equal(t, candidate.Email, h.mailer.sent[0].To)
	assert.Equal(t, job.Title, h.mailer.sent[0].Subject)
}

func TestApplicationService_UpdateStatus_NoEmailWithoutOptIn(t *testing.T) {
	h := newApplicationHarness()
	ctx := context.Background()
	companyID := uuid.New()
	job := h.addJob(companyID, entity.JobOpen)
	manager := h.addManager(companyID)

	candidate := h.addCandidate("resume.pdf")
	application, err := h.service.Apply(ctx, usecase.ApplyInput{CandidateID: candidate.ID, JobID: job.ID})
	require.NoError(t, err)

	_, err = h.service.UpdateStatus(ctx, usecase.UpdateApplicationStatusInput{
		ActorID:       manager.ID,
		ApplicationID: application.ID,
		Status:        entity.ApplicationHired,
	})

	require.NoError(t, err)
	assert.Empty(t, h.mailer.sent)
}
