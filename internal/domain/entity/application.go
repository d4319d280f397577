// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the review state of an application.
type ApplicationStatus string

const (
	// ApplicationSubmitted is the initial state after a candidate applies.
	ApplicationSubmitted ApplicationStatus = "submitted"
	// ApplicationReviewed means the company has looked at the application.
	ApplicationReviewed ApplicationStatus = "reviewed"
	// ApplicationRejected is a terminal negative decision.
	ApplicationRejected ApplicationStatus = "rejected"
	// ApplicationHired is a terminal positive decision.
	ApplicationHired ApplicationStatus = "hired"
)

// IsValid checks if the status is a known value.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case ApplicationSubmitted, ApplicationReviewed, ApplicationRejected, ApplicationHired:
		return true
	default:
		return false
	}
}

// Application is a candidate's application to a single job. A candidate can
// apply to a given job at most once.
type Application struct {
	ID          uuid.UUID         // The unique identifier for the application.
	JobID       uuid.UUID         // The job applied to.
	CandidateID uuid.UUID         // The applying user.
	ResumeURL   string            // Resume snapshot URL at application time.
	CoverLetter string            // Optional cover letter text.
	Status      ApplicationStatus // Review state.
	CreatedAt   time.Time         // When the application was submitted.
	UpdatedAt   time.Time         // When the application was last modified.
}
