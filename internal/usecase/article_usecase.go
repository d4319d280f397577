package usecase

import (
	"context"

	"careerconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateArticleInput defines the data required to write an article.
type CreateArticleInput struct {
	AuthorID  uuid.UUID
	Title     string
	Body      string
	Published bool
}

// UpdateArticleInput defines the mutable article fields.
type UpdateArticleInput struct {
	ActorID   uuid.UUID
	ArticleID uuid.UUID
	Title     string
	Body      string
	Published bool
}

// ArticleUsecase defines the interface for article business operations.
type ArticleUsecase interface {
	// CreateArticle stores a new article with a slug derived from its title.
	CreateArticle(ctx context.Context, input CreateArticleInput) (*entity.Article, error)

	// GetArticleBySlug returns a published article, or the author's own draft.
	GetArticleBySlug(ctx context.Context, slug string, viewerID *uuid.UUID) (*entity.Article, error)

	// ListPublished returns published articles, newest first.
	ListPublished(ctx context.Context, limit, offset int) ([]*entity.Article, error)

	// ListMine returns all of the caller's articles, drafts included.
	ListMine(ctx context.Context, authorID uuid.UUID) ([]*entity.Article, error)

	// UpdateArticle modifies an article. Author only.
	UpdateArticle(ctx context.Context, input UpdateArticleInput) (*entity.Article, error)

	// DeleteArticle removes an article. Author only.
	DeleteArticle(ctx context.Context, actorID, articleID uuid.UUID) error
}
