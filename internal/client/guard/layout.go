package guard

import (
	"careerconnect/internal/client/session"
	"careerconnect/internal/domain/entity"
)

// Layout is a navigational shell choice.
type Layout int

const (
	// LayoutCandidate is the default shell.
	LayoutCandidate Layout = iota
	// LayoutRecruiter is the full company shell for admin and recruiter
	// company roles.
	LayoutRecruiter
	// LayoutOnboarding is the reduced shell for recruiters without a
	// company yet.
	LayoutOnboarding
)

// String names the shell for terminal output and logs.
func (l Layout) String() string {
	switch l {
	case LayoutRecruiter:
		return "recruiter"
	case LayoutOnboarding:
		return "onboarding"
	default:
		return "candidate"
	}
}

// LayoutRoute is the subset of route metadata the selector needs.
type LayoutRoute struct {
	// RecruiterOnly marks routes that only make sense inside the recruiter
	// shell.
	RecruiterOnly bool
	// CandidateEquivalent is where employees are sent away from a
	// recruiter-only route.
	CandidateEquivalent string
}

// LayoutResult is either a shell choice or a redirect.
type LayoutResult struct {
	Layout     Layout
	RedirectTo string
}

type layoutRule struct {
	match  func(snap session.Snapshot, route LayoutRoute) bool
	result func(snap session.Snapshot, route LayoutRoute) LayoutResult
}

// layoutRules is order-sensitive: each rule is a fallback for the ones
// before it failing to match.
var layoutRules = []layoutRule{
	// An employee on a recruiter-only route is bounced to the candidate
	// equivalent.
	{
		match: func(snap session.Snapshot, route LayoutRoute) bool {
			return route.RecruiterOnly && hasCompanyRole(snap, entity.CompanyRoleEmployee)
		},
		result: func(snap session.Snapshot, route LayoutRoute) LayoutResult {
			return LayoutResult{Layout: LayoutCandidate, RedirectTo: route.CandidateEquivalent}
		},
	},
	// Employees browse in the candidate shell.
	{
		match: func(snap session.Snapshot, route LayoutRoute) bool {
			return hasCompanyRole(snap, entity.CompanyRoleEmployee)
		},
		result: func(session.Snapshot, LayoutRoute) LayoutResult {
			return LayoutResult{Layout: LayoutCandidate}
		},
	},
	// Managing members get the full recruiter shell.
	{
		match: func(snap session.Snapshot, route LayoutRoute) bool {
			return snap.Membership.CanManageCompany()
		},
		result: func(session.Snapshot, LayoutRoute) LayoutResult {
			return LayoutResult{Layout: LayoutRecruiter}
		},
	},
	// Recruiters without a company land in onboarding.
	{
		match: func(snap session.Snapshot, route LayoutRoute) bool {
			return snap.GlobalRole() == entity.RoleRecruiter && snap.Membership.CompanyRole == nil
		},
		result: func(session.Snapshot, LayoutRoute) LayoutResult {
			return LayoutResult{Layout: LayoutOnboarding}
		},
	},
}

// SelectLayout picks the shell for a snapshot and route, falling back to
// the candidate shell.
func SelectLayout(snap session.Snapshot, route LayoutRoute) LayoutResult {
	for _, r := range layoutRules {
		if r.match(snap, route) {
			return r.result(snap, route)
		}
	}

	return LayoutResult{Layout: LayoutCandidate}
}

func hasCompanyRole(snap session.Snapshot, role entity.CompanyRole) bool {
	return snap.Membership.CompanyRole != nil && *snap.Membership.CompanyRole == role
}
