// Package guard decides, per navigation, whether a view renders, waits or
// redirects. Both the route guard and the layout selector are pure
// functions over a session snapshot and a route description; the precedence
// of their rules is spelled out as ordered rule lists.
package guard

import (
	"net/url"

	"careerconnect/internal/client/session"
	"careerconnect/internal/domain/entity"
)

// Paths for redirect decisions.
const (
	LoginPath        = "/auth/login"
	UnauthorizedPath = "/unauthorized"
)

// Route describes a navigation target and its access requirements.
type Route struct {
	Path string

	// RequireAuth marks the route as members-only.
	RequireAuth bool
	// Roles restricts the route to the listed global roles. Empty means any
	// authenticated role. Implies RequireAuth.
	Roles []entity.GlobalRole
	// CompanyRoles restricts the route to the listed company roles. Empty
	// means no company requirement. Implies RequireAuth.
	CompanyRoles []entity.CompanyRole
}

func (r Route) requiresAuth() bool {
	return r.RequireAuth || len(r.Roles) > 0 || len(r.CompanyRoles) > 0
}

// Decision is the outcome of a guard evaluation.
type Decision int

const (
	// Loading means bootstrap has not completed; render a wait state.
	Loading Decision = iota
	// RedirectLogin sends the visitor to the login page, keeping the
	// attempted path for the post-login return.
	RedirectLogin
	// RedirectUnauthorized sends the visitor to the unauthorized page.
	RedirectUnauthorized
	// Allow renders the requested view.
	Allow
)

// Result pairs a decision with its redirect target, when any.
type Result struct {
	Decision   Decision
	RedirectTo string
}

// rule is one step of the ordered evaluation. A nil result means the rule
// did not trigger and evaluation moves on.
type rule func(snap session.Snapshot, route Route) *Result

// rules is evaluated strictly in order: loading before authentication,
// authentication before global role, global role before company role. A
// caller failing a later rule has, by construction, passed all earlier ones.
var rules = []rule{
	loadingRule,
	unauthenticatedRule,
	roleRule,
	companyRoleRule,
}

// Evaluate runs the guard over a snapshot and a route.
func Evaluate(snap session.Snapshot, route Route) Result {
	for _, r := range rules {
		if result := r(snap, route); result != nil {
			return *result
		}
	}

	return Result{Decision: Allow}
}

func loadingRule(snap session.Snapshot, route Route) *Result {
	if !snap.Initialized {
		return &Result{Decision: Loading}
	}

	return nil
}

func unauthenticatedRule(snap session.Snapshot, route Route) *Result {
	if route.requiresAuth() && snap.User == nil {
		return &Result{
			Decision:   RedirectLogin,
			RedirectTo: LoginPath + "?next=" + url.QueryEscape(route.Path),
		}
	}

	return nil
}

func roleRule(snap session.Snapshot, route Route) *Result {
	if len(route.Roles) == 0 {
		return nil
	}

	role := snap.GlobalRole()
	for _, allowed := range route.Roles {
		if role == allowed {
			return nil
		}
	}

	return &Result{Decision: RedirectUnauthorized, RedirectTo: UnauthorizedPath}
}

func companyRoleRule(snap session.Snapshot, route Route) *Result {
	if len(route.CompanyRoles) == 0 {
		return nil
	}

	if snap.Membership.CompanyRole != nil {
		for _, allowed := range route.CompanyRoles {
			if *snap.Membership.CompanyRole == allowed {
				return nil
			}
		}
	}

	return &Result{Decision: RedirectUnauthorized, RedirectTo: UnauthorizedPath}
}
