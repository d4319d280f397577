package postgres

import (
	"context"

	"careerconnect/internal/domain/entity"
	domainerrors "careerconnect/internal/domain/errors"
	"careerconnect/internal/domain/repository"
	"careerconnect/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// defaultArticlePageSize caps published article listings.
const defaultArticlePageSize = 20

// articleRepository implements the domain.ArticleRepository interface using GORM.
type articleRepository struct {
	db *gorm.DB
}

// NewArticleRepository is the constructor for articleRepository.
func NewArticleRepository(db *gorm.DB) repository.ArticleRepository {
	return &articleRepository{db: db}
}

// FindByID retrieves a single article by its unique ID.
func (repo *articleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Article, error) {
	var articleM model.ArticleModel
	err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&articleM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrArticleNotFound
		}

		return nil, errors.Wrap(err, "failed to find article by id")
	}

	return toArticleDomain(&articleM), nil
}

// FindBySlug retrieves a single article by its unique slug.
func (repo *articleRepository) FindBySlug(ctx context.Context, slug string) (*entity.Article, error) {
	var articleM model.ArticleModel
	err := repo.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&articleM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrArticleNotFound
		}

		return nil, errors.Wrap(err, "failed to find article by slug")
	}

	return toArticleDomain(&articleM), nil
}

// ListPublished retrieves published articles, newest first, paginated.
func (repo *articleRepository) ListPublished(ctx context.Context, limit, offset int) ([]*entity.Article, error) {
	if limit <= 0 {
		limit = defaultArticlePageSize
	}

	var models []model.ArticleModel
	err := repo.db.WithContext(ctx).
		Where("published = true").
		Order("created_at desc").
		Limit(limit).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list published articles")
	}

	return toArticleDomainSlice(models), nil
}

// ListByAuthor retrieves all of an author's articles, drafts included.
func (repo *articleRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*entity.Article, error) {
	var models []model.ArticleModel
	err := repo.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at desc").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list articles by author")
	}

	return toArticleDomainSlice(models), nil
}

// Create persists a new article.
func (repo *articleRepository) Create(ctx context.Context, article *entity.Article) error {
	articleM := fromArticleDomain(article)

	if err := repo.db.WithContext(ctx).Create(articleM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrSlugTaken.WrapMessage("article slug already taken")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create article")
	}

	article.ID = articleM.ID
	article.CreatedAt = articleM.CreatedAt
	article.UpdatedAt = articleM.UpdatedAt

	return nil
}

// Update modifies an existing article.
func (repo *articleRepository) Update(ctx context.Context, article *entity.Article) error {
	articleM := fromArticleDomain(article)

	result := repo.db.WithContext(ctx).
		Model(&model.ArticleModel{}).
		Where("id = ?", article.ID).
		Select("title", "slug", "body", "published").
		Updates(articleM)
	if result.Error != nil {
		if isUniqueConstraintViolation(result.Error) {
			return domainerrors.ErrSlugTaken.WrapMessage("article slug already taken")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update article")
	}
	if result.RowsAffected == 0 {
		return repository.ErrArticleNotFound
	}

	return nil
}

// Delete removes an article.
func (repo *articleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ArticleModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete article")
	}
	if result.RowsAffected == 0 {
		return repository.ErrArticleNotFound
	}

	return nil
}

// toArticleDomain converts a GORM ArticleModel to a domain Article entity.
func toArticleDomain(data *model.ArticleModel) *entity.Article {
	if data == nil {
		return nil
	}

	return &entity.Article{
		ID:        data.ID,
		AuthorID:  data.AuthorID,
		Title:     data.Title,
		Slug:      data.Slug,
		Body:      data.Body,
		Published: data.Published,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}

func toArticleDomainSlice(models []model.ArticleModel) []*entity.Article {
	articles := make([]*entity.Article, 0, len(models))
	for i := range models {
		articles = append(articles, toArticleDomain(&models[i]))
	}

	return articles
}

// fromArticleDomain converts a domain Article entity to a GORM ArticleModel.
func fromArticleDomain(data *entity.Article) *model.ArticleModel {
	if data == nil {
		return nil
	}

	return &model.ArticleModel{
		ID:        data.ID,
		AuthorID:  data.AuthorID,
		Title:     data.Title,
		Slug:      data.Slug,
		Body:      data.Body,
		Published: data.Published,
	}
}
