package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"careerconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// DefaultPollInterval is the join-request poll cadence when none is
// configured.
const DefaultPollInterval = 5 * time.Second

// RecruiterDashboardPath is where the poller navigates once a join request
// is accepted.
const RecruiterDashboardPath = "/recruiter/dashboard"

// Poller watches for server-side acceptance of a pending join request. It
// runs only while the user is a recruiter without a company, and notifies
// exactly once per company.
type Poller struct {
	session  *Session
	interval time.Duration
	logger   *slog.Logger

	// Notify fires once when a company association appears.
	Notify func(companyID uuid.UUID)
	// Navigate is invoked with the recruiter dashboard path after Notify.
	Navigate func(path string)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPoller(s *Session, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}

	return &Poller{session: s, interval: interval, logger: logger}
}

// WaitingForCompany reports whether the snapshot describes a recruiter with
// no company yet. The poller runs only while this holds.
func WaitingForCompany(snap Snapshot) bool {
	return snap.GlobalRole() == entity.RoleRecruiter && !snap.Membership.HasCompany()
}

// Start launches the poll loop. It is a no-op when already running or when
// the activation condition does not hold.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return
	}
	if !WaitingForCompany(p.session.Snapshot()) {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go p.loop(loopCtx, p.done)
}

// Stop tears the poll loop down and waits for it to exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel = nil
	p.done = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (p *Poller) loop(ctx context.Context, done chan struct{}) {
	// Clear the registration on the way out so a self-stopped loop does not
	// block a later Start.
	defer func() {
		p.mu.Lock()
		if p.done == done {
			p.cancel = nil
			p.done = nil
		}
		p.mu.Unlock()
		close(done)
	}()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if p.poll(ctx) {
				return
			}
		}
	}
}

// poll runs one refresh cycle. It returns true when the loop should stop,
// either because the condition no longer holds or a company appeared.
func (p *Poller) poll(ctx context.Context) bool {
	if !WaitingForCompany(p.session.Snapshot()) {
		return true
	}

	if err := p.session.RefreshUserData(ctx); err != nil {
		// Transient; retry on the next tick.
		p.logger.Debug("join request poll failed", slog.Any("error", err))

		return false
	}

	snap := p.session.Snapshot()
	if !snap.Membership.HasCompany() {
		return false
	}

	p.notifyOnce(*snap.Membership.CompanyID)

	return true
}

// notifyOnce fires the acceptance callbacks unless this company was already
// announced, by this poller or an earlier one. The marker is persisted with
// the membership record, so tearing the poller down and rebuilding it does
// not repeat the notification.
func (p *Poller) notifyOnce(companyID uuid.UUID) {
	if last := p.session.notifiedCompany(); last != nil && *last == companyID {
		return
	}
	p.session.markCompanyNotified(companyID)

	if p.Notify != nil {
		p.Notify(companyID)
	}
	if p.Navigate != nil {
		p.Navigate(RecruiterDashboardPath)
	}
}
