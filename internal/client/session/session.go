// Package session owns the client's in-memory session state: the bearer
// token, the cached user profile and the derived company membership. All
// state transitions write through to the persistence store.
package session

import (
	"context"
	"log/slog"
	"sync"

	"careerconnect/internal/client/api"
	"careerconnect/internal/client/store"
	"careerconnect/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// API is the transport surface the session needs. *api.Client satisfies it;
// tests substitute a fake.
type API interface {
	SetToken(token string)
	ClearToken()
	Login(ctx context.Context, email, password, otp string) (*api.LoginResult, error)
	Register(ctx context.Context, name, email, password, role string) error
	VerifySignupOTP(ctx context.Context, userID uuid.UUID, otp string) (*api.LoginResult, error)
	Me(ctx context.Context) (*store.UserSnapshot, error)
}

// Membership is the derived company standing of the current user. It is
// never authoritative; it mirrors the last server-confirmed user profile.
type Membership struct {
	CompanyID   *uuid.UUID
	CompanyRole *entity.CompanyRole
}

// HasCompany reports whether the user belongs to a company.
func (m Membership) HasCompany() bool {
	return m.CompanyID != nil
}

// CanManageCompany reports whether the membership grants access to the
// company's recruiting surface.
func (m Membership) CanManageCompany() bool {
	return m.CompanyRole != nil && m.CompanyRole.CanManageCompany()
}

// Snapshot is an immutable view of the session for guards and layouts.
type Snapshot struct {
	Initialized   bool
	Authenticated bool
	User          *store.UserSnapshot
	Membership    Membership
}

// GlobalRole returns the user's global role, empty when anonymous.
func (s Snapshot) GlobalRole() entity.GlobalRole {
	if s.User == nil {
		return ""
	}

	return entity.GlobalRole(s.User.Role)
}

// Session is the injectable session service. The zero session is anonymous
// and uninitialized; Initialize performs the one-time bootstrap.
type Session struct {
	store  store.Store
	api    API
	logger *slog.Logger

	mu          sync.Mutex
	token       string
	user        *store.UserSnapshot
	membership  Membership
	initialized bool
}

func New(st store.Store, client API, logger *slog.Logger) *Session {
	return &Session{store: st, api: client, logger: logger}
}

// Initialize turns the persisted token into a verified session. It is
// idempotent and single-flight: concurrent and repeated calls perform at
// most one network request per process, and any bootstrap failure is
// absorbed into the anonymous state.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	record, err := s.store.LoadAuth()
	if err != nil {
		s.logger.Warn("failed to load persisted session", slog.Any("error", err))
		s.clearLocked()
		s.initialized = true

		return nil
	}

	if record.Empty() {
		s.initialized = true

		return nil
	}

	s.api.SetToken(record.Token)

	user, err := s.api.Me(ctx)
	if err != nil {
		s.logger.Info("persisted token rejected, starting anonymous", slog.Any("error", err))
		s.clearLocked()
		s.initialized = true

		return nil
	}

	s.token = record.Token
	s.applyUserLocked(user)
	s.initialized = true

	return nil
}

// Login exchanges credentials for a session. When the account requires a
// second factor and no otp is given, the api.TwoFactorRequiredError is
// returned and no state changes.
func (s *Session) Login(ctx context.Context, email, password, otp string) error {
	result, err := s.api.Login(ctx, email, password, otp)
	if err != nil {
		return err
	}

	s.establish(result)

	return nil
}

// Signup registers an account. The server always demands a one-time code
// before issuing tokens, so the result is an api.TwoFactorRequiredError
// carrying the pending user id; no state changes.
func (s *Session) Signup(ctx context.Context, name, email, password, role string) error {
	return s.api.Register(ctx, name, email, password, role)
}

// VerifySignup completes a registration with the emailed code and
// establishes the session.
func (s *Session) VerifySignup(ctx context.Context, userID uuid.UUID, otp string) error {
	result, err := s.api.VerifySignupOTP(ctx, userID, otp)
	if err != nil {
		return err
	}

	s.establish(result)

	return nil
}

// Logout clears every piece of client state. It is synchronous, makes no
// network call and never fails.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked()
	s.initialized = true
}

// RefreshUserData re-fetches the profile and reconciles the user and the
// derived membership, leaving the token untouched.
func (s *Session) RefreshUserData(ctx context.Context) error {
	s.mu.Lock()
	if s.token == "" {
		s.mu.Unlock()

		return errors.New("no active session")
	}
	s.mu.Unlock()

	user, err := s.api.Me(ctx)
	if err != nil {
		return errors.Wrap(err, "refresh user data")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == "" {
		// Logged out while the request was in flight; drop the result.
		return nil
	}

	s.applyUserLocked(user)

	return nil
}

// Snapshot returns an immutable view of the current session.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user *store.UserSnapshot
	if s.user != nil {
		copied := *s.user
		user = &copied
	}

	return Snapshot{
		Initialized:   s.initialized,
		Authenticated: s.token != "" && s.user != nil,
		User:          user,
		Membership:    s.membership,
	}
}

func (s *Session) establish(result *api.LoginResult) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = result.Token
	s.api.SetToken(result.Token)
	s.applyUserLocked(result.User)
	s.initialized = true
}

// applyUserLocked stores the user and derives membership in the same
// critical section, so no reader ever observes the user without its
// matching membership.
func (s *Session) applyUserLocked(user *store.UserSnapshot) {
	s.user = user
	s.membership = deriveMembership(user)

	record := store.AuthRecord{Token: s.token, User: user}
	if user != nil {
		record.ResumeURL = user.ResumeURL
		record.AutoSendStatusEmail = user.AutoSendStatusEmail
	}
	if err := s.store.SaveAuth(record); err != nil {
		s.logger.Warn("failed to persist session", slog.Any("error", err))
	}

	// The notified-company marker outlives membership changes; only logout
	// wipes it.
	existing, err := s.store.LoadCompany()
	if err != nil {
		s.logger.Warn("failed to load persisted membership", slog.Any("error", err))
		existing = store.CompanyRecord{}
	}

	if s.membership.HasCompany() {
		roleStr := s.membership.CompanyRole.String()
		err := s.store.SaveCompany(store.CompanyRecord{
			CompanyID:         s.membership.CompanyID,
			CompanyRole:       &roleStr,
			NotifiedCompanyID: existing.NotifiedCompanyID,
		})
		if err != nil {
			s.logger.Warn("failed to persist membership", slog.Any("error", err))
		}
	} else if existing.NotifiedCompanyID != nil {
		record := store.CompanyRecord{NotifiedCompanyID: existing.NotifiedCompanyID}
		if err := s.store.SaveCompany(record); err != nil {
			s.logger.Warn("failed to persist membership", slog.Any("error", err))
		}
	} else if err := s.store.ClearCompany(); err != nil {
		s.logger.Warn("failed to clear membership", slog.Any("error", err))
	}
}

// notifiedCompany returns the company id whose acceptance was already
// announced to the user, if any.
func (s *Session) notifiedCompany() *uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.store.LoadCompany()
	if err != nil {
		s.logger.Warn("failed to load persisted membership", slog.Any("error", err))

		return nil
	}

	return record.NotifiedCompanyID
}

// markCompanyNotified persists the announced company id so the acceptance
// notification fires once per company, even across poller rebuilds.
func (s *Session) markCompanyNotified(companyID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, err := s.store.LoadCompany()
	if err != nil {
		s.logger.Warn("failed to load persisted membership", slog.Any("error", err))
		record = store.CompanyRecord{}
	}

	record.NotifiedCompanyID = &companyID
	if err := s.store.SaveCompany(record); err != nil {
		s.logger.Warn("failed to persist membership", slog.Any("error", err))
	}
}

func (s *Session) clearLocked() {
	s.token = ""
	s.user = nil
	s.membership = Membership{}
	s.api.ClearToken()

	if err := s.store.ClearAuth(); err != nil {
		s.logger.Warn("failed to clear persisted session", slog.Any("error", err))
	}
	if err := s.store.ClearCompany(); err != nil {
		s.logger.Warn("failed to clear persisted membership", slog.Any("error", err))
	}
}

// deriveMembership maps a profile to its membership view. The role is kept
// only when the company id is present as well.
func deriveMembership(user *store.UserSnapshot) Membership {
	if user == nil || user.CompanyID == nil || user.CompanyRole == nil {
		return Membership{}
	}

	role, ok := entity.CompanyRoleFromString(*user.CompanyRole)
	if !ok {
		return Membership{}
	}

	return Membership{CompanyID: user.CompanyID, CompanyRole: &role}
}
