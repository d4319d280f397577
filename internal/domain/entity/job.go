// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// JobStatus is the publication state of a job posting.
type JobStatus string

const (
	// JobOpen means the job accepts applications.
	JobOpen JobStatus = "open"
	// JobClosed means the job no longer accepts applications.
	JobClosed JobStatus = "closed"
)

// IsValid checks if the status is a known value.
func (s JobStatus) IsValid() bool {
	return s == JobOpen || s == JobClosed
}

// Job is a single job posting, always owned by a company.
type Job struct {
	ID          uuid.UUID // The unique identifier for the job.
	CompanyID   uuid.UUID // The company the job is posted for.
	PostedBy    uuid.UUID // The company member that created the posting.
	Title       string    // The job title.
	Description string    // Full description, markdown allowed.
	Location    string    // Free-form location, e.g. "Berlin" or "EU".
	Remote      bool      // Whether the position is remote-friendly.
	SalaryMin   *int      // Lower salary bound, nil when undisclosed.
	SalaryMax   *int      // Upper salary bound, nil when undisclosed.
	Status      JobStatus // open or closed.
	CreatedAt   time.Time // When the posting was created.
	UpdatedAt   time.Time // When the posting was last modified.
}

// AcceptsApplications reports whether candidates may still apply.
func (j *Job) AcceptsApplications() bool {
	return j.Status == JobOpen
}

// JobFilter narrows job listings. Zero values mean "no constraint".
type JobFilter struct {
	Keyword    string     // Matched against title and description.
	Location   string     // Exact-ish location match.
	RemoteOnly bool       // Only remote-friendly jobs.
	SalaryMin  *int       // Jobs whose advertised maximum is at least this.
	CompanyID  *uuid.UUID // Jobs belonging to a single company.
	Status     *JobStatus // Defaults to open listings when nil.
	Limit      int        // Page size; repositories apply a sane default when 0.
	Offset     int        // Page offset.
}
