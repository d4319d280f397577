// Package model contains the GORM persistence models, kept separate from the
// pure domain entities.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// It is an exported type so it can be used by the GORM Gen tool from other packages.
type UserModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Email               string    `gorm:"type:varchar(255);unique;not null"`
	Name                string    `gorm:"type:varchar(100)"`
	Role                string    `gorm:"type:varchar(20);not null"`
	AvatarURL           string    `gorm:"type:text"`
	ResumeURL           string    `gorm:"type:text"`
	TwoFactorEnabled    bool      `gorm:"not null;default:false"`
	AutoSendStatusEmail bool      `gorm:"not null;default:false"`
	CompanyID           *uuid.UUID `gorm:"type:uuid;index"`
	CompanyRole         *string    `gorm:"type:varchar(20)"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
	DeletedAt           *time.Time `gorm:"index"`

	Company         *CompanyModel         `gorm:"foreignKey:CompanyID"`
	Authentications []AuthenticationModel `gorm:"foreignKey:UserID"`
	RefreshTokens   []RefreshTokenModel   `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
