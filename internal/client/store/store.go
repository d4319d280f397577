// Package store persists the client's session and company membership
// records. State transitions live in the session package; this package is a
// write-through persistence adapter with no logic of its own.
package store

import (
	"github.com/google/uuid"
)

// UserSnapshot is the client-side cache of the server's user profile.
type UserSnapshot struct {
	ID                  uuid.UUID  `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email"`
	Role                string     `json:"role"`
	CompanyID           *uuid.UUID `json:"companyId,omitempty"`
	CompanyRole         *string    `json:"companyRole,omitempty"`
	TwoFactorEnabled    bool       `json:"twoFactorEnabled"`
	ResumeURL           string     `json:"resumeUrl,omitempty"`
	AutoSendStatusEmail bool       `json:"autoSendStatusEmail"`
}

// AuthRecord is the persisted credential namespace. An empty Token means no
// session; User must be nil in that case.
type AuthRecord struct {
	Token               string        `json:"token"`
	User                *UserSnapshot `json:"user,omitempty"`
	ResumeURL           string        `json:"resumeUrl,omitempty"`
	AutoSendStatusEmail bool          `json:"autoSendStatusEmail"`
}

// Empty reports whether the record carries no credential.
func (r AuthRecord) Empty() bool {
	return r.Token == ""
}

// CompanyRecord is the persisted company membership namespace. CompanyRole
// is non-nil only when CompanyID is non-nil.
type CompanyRecord struct {
	CompanyID   *uuid.UUID `json:"companyId,omitempty"`
	CompanyRole *string    `json:"companyRole,omitempty"`
	ResumeID    *uuid.UUID `json:"resumeId,omitempty"`

	// NotifiedCompanyID remembers the company whose join-request acceptance
	// was already announced, so a rebuilt poller stays quiet about it.
	NotifiedCompanyID *uuid.UUID `json:"notifiedCompanyId,omitempty"`
}

// Empty reports whether the record carries no membership.
func (r CompanyRecord) Empty() bool {
	return r.CompanyID == nil && r.CompanyRole == nil
}

// Store persists the two client state namespaces. Load on a missing record
// returns the zero value, not an error.
type Store interface {
	LoadAuth() (AuthRecord, error)
	SaveAuth(record AuthRecord) error
	ClearAuth() error

	LoadCompany() (CompanyRecord, error)
	SaveCompany(record CompanyRecord) error
	ClearCompany() error
}
