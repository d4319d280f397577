package session

import (
	"context"
	"testing"
	"time"

	"careerconnect/internal/client/api"
	"careerconnect/internal/client/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecruiterSession(t *testing.T, apiClient *fakeAPI) *Session {
	t.Helper()

	s := New(store.NewMemStore(), apiClient, newDiscardLogger())
	require.NoError(t, s.Login(context.Background(), "r@co.example", "password1", ""))

	return s
}

func TestPollerNotifiesOnceOnAcceptance(t *testing.T) {
	detached := &store.UserSnapshot{ID: uuid.New(), Role: "recruiter"}
	apiClient := &fakeAPI{loginResult: &api.LoginResult{Token: "tok", User: detached}}
	s := newRecruiterSession(t, apiClient)

	companyID := uuid.New()
	role := "recruiter"
	joined := *detached
	joined.CompanyID = &companyID
	joined.CompanyRole = &role
	apiClient.mu.Lock()
	apiClient.meUser = &joined
	apiClient.mu.Unlock()

	p := NewPoller(s, time.Minute, newDiscardLogger())
	var notified []uuid.UUID
	var navigated []string
	p.Notify = func(id uuid.UUID) { notified = append(notified, id) }
	p.Navigate = func(path string) { navigated = append(navigated, path) }

	// Two consecutive cycles both observing the same accepted company.
	assert.True(t, p.poll(context.Background()))
	assert.True(t, p.poll(context.Background()))

	require.Len(t, notified, 1)
	assert.Equal(t, companyID, notified[0])
	require.Len(t, navigated, 1)
	assert.Equal(t, RecruiterDashboardPath, navigated[0])

	assert.True(t, s.Snapshot().Membership.HasCompany())
}

func TestPollerSkipsTransientErrors(t *testing.T) {
	detached := &store.UserSnapshot{ID: uuid.New(), Role: "recruiter"}
	apiClient := &fakeAPI{loginResult: &api.LoginResult{Token: "tok", User: detached}}
	s := newRecruiterSession(t, apiClient)

	apiClient.mu.Lock()
	apiClient.meErr = assert.AnError
	apiClient.mu.Unlock()

	p := NewPoller(s, time.Minute, newDiscardLogger())
	fired := 0
	p.Notify = func(uuid.UUID) { fired++ }

	// A failed poll neither stops the loop nor notifies.
	assert.False(t, p.poll(context.Background()))
	assert.Equal(t, 0, fired)
}

func TestPollerStopsWhenConditionFlips(t *testing.T) {
	user := recruiterWithCompany()
	apiClient := &fakeAPI{loginResult: &api.LoginResult{Token: "tok", User: user}}
	s := newRecruiterSession(t, apiClient)

	p := NewPoller(s, time.Minute, newDiscardLogger())
	fired := 0
	p.Notify = func(uuid.UUID) { fired++ }

	// Already a member: the activation condition fails, no notification.
	assert.True(t, p.poll(context.Background()))
	assert.Equal(t, 0, fired)
}

func TestPollerDedupSurvivesRecreation(t *testing.T) {
	detached := &store.UserSnapshot{ID: uuid.New(), Role: "recruiter"}
	apiClient := &fakeAPI{loginResult: &api.LoginResult{Token: "tok", User: detached}}
	s := newRecruiterSession(t, apiClient)

	companyID := uuid.New()
	role := "recruiter"
	joined := *detached
	joined.CompanyID = &companyID
	joined.CompanyRole = &role
	apiClient.mu.Lock()
	apiClient.meUser = &joined
	apiClient.mu.Unlock()

	first := NewPoller(s, time.Minute, newDiscardLogger())
	fired := 0
	first.Notify = func(uuid.UUID) { fired++ }
	assert.True(t, first.poll(context.Background()))
	require.Equal(t, 1, fired)

	// Membership revoked server-side, then the same company accepted again.
	apiClient.mu.Lock()
	apiClient.meUser = detached
	apiClient.mu.Unlock()
	require.NoError(t, s.RefreshUserData(context.Background()))
	require.False(t, s.Snapshot().Membership.HasCompany())

	apiClient.mu.Lock()
	apiClient.meUser = &joined
	apiClient.mu.Unlock()

	// A fresh poller must stay quiet about a company already announced.
	second := NewPoller(s, time.Minute, newDiscardLogger())
	second.Notify = func(uuid.UUID) { fired++ }
	assert.True(t, second.poll(context.Background()))
	assert.Equal(t, 1, fired)
}

func TestPollerStartAgainAfterSelfStop(t *testing.T) {
	detached := &store.UserSnapshot{ID: uuid.New(), Role: "recruiter"}
	apiClient := &fakeAPI{loginResult: &api.LoginResult{Token: "tok", User: detached}}
	s := newRecruiterSession(t, apiClient)

	companyID := uuid.New()
	role := "recruiter"
	joined := *detached
	joined.CompanyID = &companyID
	joined.CompanyRole = &role
	apiClient.mu.Lock()
	apiClient.meUser = &joined
	apiClient.mu.Unlock()

	p := NewPoller(s, time.Millisecond, newDiscardLogger())
	p.Start(context.Background())

	// The loop sees the accepted company and winds itself down.
	require.Eventually(t, func() bool {
		p.mu.Lock()
		defer p.mu.Unlock()

		return p.cancel == nil
	}, time.Second, time.Millisecond)

	// Membership revoked again: Start must launch a fresh loop without an
	// intervening Stop.
	apiClient.mu.Lock()
	apiClient.meUser = detached
	apiClient.mu.Unlock()
	require.NoError(t, s.RefreshUserData(context.Background()))

	p.Start(context.Background())
	p.mu.Lock()
	running := p.cancel != nil
	p.mu.Unlock()
	assert.True(t, running)

	p.Stop()
}

func TestPollerStartIsNoOpWithoutActivation(t *testing.T) {
	user := &store.UserSnapshot{ID: uuid.New(), Role: "candidate"}
	apiClient := &fakeAPI{loginResult: &api.LoginResult{Token: "tok", User: user}}
	s := newRecruiterSession(t, apiClient)

	p := NewPoller(s, 10*time.Millisecond, newDiscardLogger())
	p.Start(context.Background())
	defer p.Stop()

	p.mu.Lock()
	running := p.cancel != nil
	p.mu.Unlock()
	assert.False(t, running)
}

func TestPollerStartStop(t *testing.T) {
	detached := &store.UserSnapshot{ID: uuid.New(), Role: "recruiter"}
	apiClient := &fakeAPI{loginResult: &api.LoginResult{Token: "tok", User: detached}}
	s := newRecruiterSession(t, apiClient)

	p := NewPoller(s, 5*time.Millisecond, newDiscardLogger())
	p.Start(context.Background())

	// Let at least one tick fire, then tear down.
	time.Sleep(20 * time.Millisecond)
	p.Stop()

	assert.Greater(t, apiClient.calls(), 0)
}
