package model

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationModel mirrors the 'applications' table. The composite unique
// index enforces one application per candidate per job.
type ApplicationModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	JobID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_job_candidate"`
	CandidateID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_job_candidate"`
	ResumeURL   string    `gorm:"type:text;not null"`
	CoverLetter string    `gorm:"type:text"`
	Status      string    `gorm:"type:varchar(20);not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (ApplicationModel) TableName() string {
	return "applications"
}
