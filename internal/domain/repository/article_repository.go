package repository

import (
	"context"
	"errors"

	"careerconnect/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrArticleNotFound is returned when an article lookup misses.
var ErrArticleNotFound = errors.New("article not found")

// ArticleRepository defines the operations for article persistence.
type ArticleRepository interface {
	// FindByID retrieves a single article by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Article, error)

	// FindBySlug retrieves a single article by its unique slug.
	FindBySlug(ctx context.Context, slug string) (*entity.Article, error)

	// ListPublished retrieves published articles, newest first, paginated.
	ListPublished(ctx context.Context, limit, offset int) ([]*entity.Article, error)

	// ListByAuthor retrieves all of an author's articles, drafts included.
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entity.Article, error)

	// Create persists a new article.
	Create(ctx context.Context, article *entity.Article) error

	// Update modifies an existing article.
	Update(ctx context.Context, article *entity.Article) error

	// Delete removes an article.
	Delete(ctx context.Context, id uuid.UUID) error
}
