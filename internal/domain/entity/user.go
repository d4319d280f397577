// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system. A user always carries exactly one
// global role (candidate or recruiter). The company association fields are
// only populated for recruiter-role users whose join request was accepted or
// who created a company themselves.
type User struct {
	ID                  uuid.UUID    // The unique identifier for the user.
	Email               string       // The user's primary contact email, used as a login identifier.
	Name                string       // The user's display name.
	Role                GlobalRole   // The account-wide role: candidate or recruiter.
	AvatarURL           string       // URL of the uploaded avatar image, empty if none.
	ResumeURL           string       // URL of the uploaded resume, empty if none. Only meaningful for candidates.
	TwoFactorEnabled    bool         // Whether login requires an email-delivered one-time code.
	AutoSendStatusEmail bool         // Whether application status changes trigger a notification email.
	CompanyID           *uuid.UUID   // The company this user belongs to. Nil without an accepted association.
	CompanyRole         *CompanyRole // The user's role within CompanyID. Non-nil only when CompanyID is set.
	CreatedAt           time.Time    // Timestamp of when this account was created.
	UpdatedAt           time.Time    // Timestamp of the last modification to this user's data.
}

// HasCompany reports whether the user has an accepted company association.
func (u *User) HasCompany() bool {
	return u.CompanyID != nil
}

// Membership returns the user's company membership view. Both fields are nil
// unless the association is complete; a company id without a role (or the
// reverse) is treated as no membership at all.
func (u *User) Membership() (companyID *uuid.UUID, companyRole *CompanyRole) {
	if u.CompanyID == nil || u.CompanyRole == nil {
		return nil, nil
	}

	return u.CompanyID, u.CompanyRole
}
