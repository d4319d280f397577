// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Article is a content piece written by any user. Published articles are
// publicly listed; drafts are only visible to their author.
type Article struct {
	ID        uuid.UUID // The unique identifier for the article.
	AuthorID  uuid.UUID // The user that wrote the article.
	Title     string    // The article title.
	Slug      string    // URL-safe identifier derived from the title, unique.
	Body      string    // Full article body, markdown allowed.
	Published bool      // Whether the article is publicly visible.
	CreatedAt time.Time // When the article was created.
	UpdatedAt time.Time // When the article was last modified.
}
