// careerctl is a small terminal client for the CareerConnect API. It keeps
// a session on disk and mirrors the access rules the web client enforces.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"careerconnect/config"
	"careerconnect/internal/client/api"
	"careerconnect/internal/client/guard"
	"careerconnect/internal/client/session"
	"careerconnect/internal/client/store"
	"careerconnect/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Supported subcommands:
// - login:  Authenticate and persist the session
// - signup: Register a new account (email verification follows)
// - verify: Complete a registration with the emailed code
// - me:     Show the current profile
// - jobs:   List open job postings
// - wait:   Poll until a pending join request is decided
// - logout: Drop the persisted session

func main() {
	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginEmail := loginCmd.String("email", "", "Account email")
	loginPassword := loginCmd.String("password", "", "Account password")
	loginOTP := loginCmd.String("otp", "", "One-time code when two-factor is enabled")

	signupCmd := flag.NewFlagSet("signup", flag.ExitOnError)
	signupName := signupCmd.String("name", "", "Display name")
	signupEmail := signupCmd.String("email", "", "Account email")
	signupPassword := signupCmd.String("password", "", "Account password")
	signupRole := signupCmd.String("role", "candidate", "Global role (candidate or recruiter)")

	verifyCmd := flag.NewFlagSet("verify", flag.ExitOnError)
	verifyUserID := verifyCmd.String("user", "", "Pending user id from signup")
	verifyOTP := verifyCmd.String("otp", "", "Emailed one-time code")

	meCmd := flag.NewFlagSet("me", flag.ExitOnError)
	jobsCmd := flag.NewFlagSet("jobs", flag.ExitOnError)
	jobsKeyword := jobsCmd.String("q", "", "Keyword filter")
	waitCmd := flag.NewFlagSet("wait", flag.ExitOnError)
	logoutCmd := flag.NewFlagSet("logout", flag.ExitOnError)

	configPath := os.Getenv("CAREERCTL_CONFIG")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()

	app, err := newApp(ctx, configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "login":
		_ = loginCmd.Parse(os.Args[2:])
		err = app.login(ctx, *loginEmail, *loginPassword, *loginOTP)
	case "signup":
		_ = signupCmd.Parse(os.Args[2:])
		err = app.signup(ctx, *signupName, *signupEmail, *signupPassword, *signupRole)
	case "verify":
		_ = verifyCmd.Parse(os.Args[2:])
		err = app.verify(ctx, *verifyUserID, *verifyOTP)
	case "me":
		_ = meCmd.Parse(os.Args[2:])
		err = app.me(ctx)
	case "jobs":
		_ = jobsCmd.Parse(os.Args[2:])
		err = app.jobs(ctx, *jobsKeyword)
	case "wait":
		_ = waitCmd.Parse(os.Args[2:])
		err = app.wait(ctx)
	case "logout":
		_ = logoutCmd.Parse(os.Args[2:])
		err = app.logout()
	default:
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: careerctl <command> [flags]")
	fmt.Println("Commands: login, signup, verify, me, jobs, wait, logout")
}

type app struct {
	cfg     *config.ClientConfig
	session *session.Session
	client  *api.Client
	logger  *slog.Logger
}

func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.NewClientConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	fileStore, err := store.NewFileStore(cfg.StateDir)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.ServerURL)
	sess := session.New(fileStore, client, logger)
	client.OnAuthExpired = func() {
		sess.Logout()
		fmt.Fprintln(os.Stderr, "Session expired, please log in again.")
	}

	if err := sess.Initialize(ctx); err != nil {
		return nil, err
	}

	return &app{cfg: cfg, session: sess, client: client, logger: logger}, nil
}

// check runs the route guard the same way the web client would before
// rendering a view.
func (a *app) check(route guard.Route) error {
	result := guard.Evaluate(a.session.Snapshot(), route)
	switch result.Decision {
	case guard.Allow:
		return nil
	case guard.RedirectLogin:
		return errors.New("not logged in, run: careerctl login")
	case guard.RedirectUnauthorized:
		return errors.New("your role does not allow this")
	default:
		return errors.New("session not ready")
	}
}

func (a *app) login(ctx context.Context, email, password, otp string) error {
	if email == "" || password == "" {
		return errors.New("both -email and -password are required")
	}

	err := a.session.Login(ctx, email, password, otp)

	var twoFactor *api.TwoFactorRequiredError
	if errors.As(err, &twoFactor) {
		fmt.Println("A verification code was emailed to you. Re-run login with -otp.")

		return nil
	}
	if err != nil {
		return err
	}

	snap := a.session.Snapshot()
	fmt.Printf("Logged in as %s (%s)\n", snap.User.Email, snap.User.Role)
	a.printShell(snap)
	if session.WaitingForCompany(snap) {
		fmt.Println("Run careerctl wait to be told when a company accepts you.")
	}

	return nil
}

// printShell mirrors the layout the web client would render for this user.
func (a *app) printShell(snap session.Snapshot) {
	layout := guard.SelectLayout(snap, guard.LayoutRoute{})
	fmt.Printf("shell: %s\n", layout.Layout)
}

func (a *app) signup(ctx context.Context, name, email, password, role string) error {
	if name == "" || email == "" || password == "" {
		return errors.New("-name, -email and -password are required")
	}

	err := a.session.Signup(ctx, name, email, password, role)

	var twoFactor *api.TwoFactorRequiredError
	if errors.As(err, &twoFactor) {
		fmt.Printf("A verification code was emailed to %s.\n", twoFactor.Email)
		fmt.Printf("Complete with: careerctl verify -user %s -otp <code>\n", twoFactor.UserID)

		return nil
	}

	return err
}

func (a *app) verify(ctx context.Context, rawUserID, otp string) error {
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return errors.New("-user must be the id printed by signup")
	}
	if otp == "" {
		return errors.New("-otp is required")
	}

	if err := a.session.VerifySignup(ctx, userID, otp); err != nil {
		return err
	}

	snap := a.session.Snapshot()
	fmt.Printf("Welcome %s, you are signed in.\n", snap.User.Name)

	return nil
}

func (a *app) me(ctx context.Context) error {
	if err := a.check(guard.Route{Path: "/users/me", RequireAuth: true}); err != nil {
		return err
	}

	if err := a.session.RefreshUserData(ctx); err != nil {
		return err
	}

	snap := a.session.Snapshot()
	user := snap.User
	fmt.Printf("%s <%s> role=%s\n", user.Name, user.Email, user.Role)
	a.printShell(snap)
	if snap.Membership.HasCompany() {
		fmt.Printf("company=%s companyRole=%s\n", snap.Membership.CompanyID, snap.Membership.CompanyRole.String())
	} else if snap.GlobalRole() == entity.RoleRecruiter {
		fmt.Println("No company yet. Join requests are decided by company admins.")
	}

	return nil
}

// wait polls the profile until a pending join request is decided, the same
// loop the web client runs in the recruiter onboarding shell.
func (a *app) wait(ctx context.Context) error {
	route := guard.Route{Path: "/recruiter/onboarding", Roles: []entity.GlobalRole{entity.RoleRecruiter}}
	if err := a.check(route); err != nil {
		return err
	}

	if !session.WaitingForCompany(a.session.Snapshot()) {
		fmt.Println("You already belong to a company.")

		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	accepted := make(chan uuid.UUID, 1)
	poller := session.NewPoller(a.session, a.cfg.PollInterval, a.logger)
	poller.Notify = func(companyID uuid.UUID) {
		fmt.Printf("Join request accepted, you are now a member of company %s.\n", companyID)
		accepted <- companyID
	}
	poller.Navigate = func(path string) {
		fmt.Printf("Open %s to start recruiting.\n", path)
	}

	fmt.Printf("Waiting for a join request decision (checking every %s, Ctrl-C to stop).\n", a.cfg.PollInterval)
	poller.Start(ctx)
	defer poller.Stop()

	select {
	case <-accepted:
		a.printShell(a.session.Snapshot())

		return nil
	case <-ctx.Done():
		fmt.Println("Stopped waiting.")

		return nil
	}
}

func (a *app) jobs(ctx context.Context, keyword string) error {
	if err := a.check(guard.Route{Path: "/jobs"}); err != nil {
		return err
	}

	jobs, err := a.client.ListJobs(ctx, keyword)
	if err != nil {
		return err
	}

	if len(jobs) == 0 {
		fmt.Println("No open jobs.")

		return nil
	}

	for _, job := range jobs {
		remote := ""
		if job.Remote {
			remote = " (remote)"
		}
		fmt.Printf("%s  %s%s  [%s]\n", job.ID, job.Title, remote, job.Location)
	}

	return nil
}

func (a *app) logout() error {
	a.session.Logout()
	fmt.Println("Logged out.")

	return nil
}
