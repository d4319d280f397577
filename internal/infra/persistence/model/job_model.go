package model

import (
	"time"

	"github.com/google/uuid"
)

// JobModel mirrors the 'jobs' table.
type JobModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index"`
	PostedBy    uuid.UUID `gorm:"type:uuid;not null"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Description string    `gorm:"type:text"`
	Location    string    `gorm:"type:varchar(100);index"`
	Remote      bool      `gorm:"not null;default:false"`
	SalaryMin   *int
	SalaryMax   *int
	Status      string `gorm:"type:varchar(20);not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (JobModel) TableName() string {
	return "jobs"
}
