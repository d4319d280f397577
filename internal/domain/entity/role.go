// Package entity contains the core business objects of the project.
package entity

import "slices"

// GlobalRole represents the account-wide role a user holds in the system.
type GlobalRole string

const (
	// RoleCandidate indicates a job-seeking user.
	RoleCandidate GlobalRole = "candidate"
	// RoleRecruiter indicates a user who posts jobs on behalf of a company.
	RoleRecruiter GlobalRole = "recruiter"
)

// String returns the string representation of the GlobalRole.
func (r GlobalRole) String() string {
	return string(r)
}

// IsValid checks if the GlobalRole is a valid value.
func (r GlobalRole) IsValid() bool {
	switch r {
	case RoleCandidate, RoleRecruiter:
		return true
	default:
		return false
	}
}

// CompanyRole represents a user's standing within the company they belong to.
// It only applies to recruiter-role users that have an accepted company
// association.
type CompanyRole string

const (
	// CompanyRoleAdmin can manage the company, its members and join requests.
	CompanyRoleAdmin CompanyRole = "admin"
	// CompanyRoleRecruiter can manage jobs and applications for the company.
	CompanyRoleRecruiter CompanyRole = "recruiter"
	// CompanyRoleEmployee is a read-only member with candidate-style access.
	CompanyRoleEmployee CompanyRole = "employee"
)

// String returns the string representation of the CompanyRole.
func (r CompanyRole) String() string {
	return string(r)
}

// IsValid checks if the CompanyRole is a valid value.
func (r CompanyRole) IsValid() bool {
	switch r {
	case CompanyRoleAdmin, CompanyRoleRecruiter, CompanyRoleEmployee:
		return true
	default:
		return false
	}
}

// CanManageCompany reports whether the role grants access to the company's
// recruiting surface (jobs, applications, join requests).
func (r CompanyRole) CanManageCompany() bool {
	return r == CompanyRoleAdmin || r == CompanyRoleRecruiter
}

// CompanyRoles is a slice of CompanyRole for convenience.
type CompanyRoles []CompanyRole

// Contains checks if the slice contains a specific company role.
func (rs CompanyRoles) Contains(role CompanyRole) bool {
	return slices.Contains(rs, role)
}

// CompanyRoleFromString converts a string to a CompanyRole, returning false
// for unknown values.
func CompanyRoleFromString(s string) (CompanyRole, bool) {
	role := CompanyRole(s)

	return role, role.IsValid()
}
