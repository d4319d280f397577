// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Company is an employer profile. Jobs are always posted on behalf of a
// company, and recruiter-role users associate with exactly one company.
type Company struct {
	ID          uuid.UUID // The unique identifier for the company.
	Name        string    // The company's display name, unique across the system.
	Description string    // Free-form description shown on the company page.
	Website     string    // The company's public website URL, optional.
	LogoURL     string    // URL of the uploaded logo image, empty if none.
	OwnerID     uuid.UUID // The user that created the company. Always a company admin.
	CreatedAt   time.Time // Timestamp of when the company was created.
	UpdatedAt   time.Time // Timestamp of the last modification.
}

// JoinRequestStatus is the lifecycle state of a JoinRequest.
type JoinRequestStatus string

const (
	// JoinRequestPending means the request awaits a company admin decision.
	JoinRequestPending JoinRequestStatus = "pending"
	// JoinRequestAccepted means the user became a member of the company.
	JoinRequestAccepted JoinRequestStatus = "accepted"
	// JoinRequestRejected means the request was declined. Terminal.
	JoinRequestRejected JoinRequestStatus = "rejected"
)

// IsValid checks if the status is a known value.
func (s JoinRequestStatus) IsValid() bool {
	switch s {
	case JoinRequestPending, JoinRequestAccepted, JoinRequestRejected:
		return true
	default:
		return false
	}
}

// Terminal reports whether the status admits no further transition.
// Only pending → accepted and pending → rejected are legal moves.
func (s JoinRequestStatus) Terminal() bool {
	return s == JoinRequestAccepted || s == JoinRequestRejected
}

// JoinRequest is a recruiter-role user's request to become a member of a
// company with a given role. The server is authoritative for its status;
// clients only poll and reflect it.
type JoinRequest struct {
	ID            uuid.UUID         // The unique identifier for this request.
	CompanyID     uuid.UUID         // The company the user wants to join.
	UserID        uuid.UUID         // The requesting user.
	RequestedRole CompanyRole       // The company role the user asked for.
	Status        JoinRequestStatus // pending, accepted or rejected.
	DecidedBy     *uuid.UUID        // The admin that decided the request, nil while pending.
	DecidedAt     *time.Time        // When the request was decided, nil while pending.
	CreatedAt     time.Time         // When the request was submitted.
}
