package model

import (
	"time"

	"github.com/google/uuid"
)

// ArticleModel mirrors the 'articles' table.
type ArticleModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"type:varchar(200);not null"`
	Slug      string    `gorm:"type:varchar(220);unique;not null"`
	Body      string    `gorm:"type:text"`
	Published bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (ArticleModel) TableName() string {
	return "articles"
}
