package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	deliverycontext "careerconnect/internal/delivery/context"
	"careerconnect/internal/domain/entity"
	domainerrors "careerconnect/internal/domain/errors"
	"careerconnect/internal/domain/repository"
	"careerconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// articleService implements the ArticleUsecase interface.
type articleService struct {
	articleRepo repository.ArticleRepository
	logger      *slog.Logger
}

// ArticleServiceParams holds dependencies for articleService, injected by Fx.
type ArticleServiceParams struct {
	fx.In

	ArticleRepo repository.ArticleRepository
	Logger      *slog.Logger
}

// NewArticleService is the constructor for articleService.
func NewArticleService(params ArticleServiceParams) usecase.ArticleUsecase {
	return &articleService{
		articleRepo: params.ArticleRepo,
		logger:      params.Logger,
	}
}

func (srv *articleService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateArticle stores a new article with a slug derived from its title.
// On a slug collision a short random suffix is appended and the insert is
// retried once.
func (srv *articleService) CreateArticle(ctx context.Context, input usecase.CreateArticleInput) (*entity.Article, error) {
	article := &entity.Article{
		AuthorID:  input.AuthorID,
		Title:     input.Title,
		Slug:      Slugify(input.Title),
		Body:      input.Body,
		Published: input.Published,
	}

	err := srv.articleRepo.Create(ctx, article)
	if err != nil && errors.Is(err, domainerrors.ErrSlugTaken) {
		article.Slug = fmt.Sprintf("%s-%s", article.Slug, uuid.NewString()[:8])
		err = srv.articleRepo.Create(ctx, article)
	}
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Article created", slog.Any("articleID", article.ID), slog.String("slug", article.Slug))

	return article, nil
}

// GetArticleBySlug returns a published article, or the author's own draft.
func (srv *articleService) GetArticleBySlug(ctx context.Context, slug string, viewerID *uuid.UUID) (*entity.Article, error) {
	article, err := srv.articleRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return nil, domainerrors.ErrArticleNotFound
		}

		return nil, errors.Wrap(err, "failed to load article")
	}

	if !article.Published && (viewerID == nil || *viewerID != article.AuthorID) {
		return nil, domainerrors.ErrArticleNotFound
	}

	return article, nil
}

// ListPublished returns published articles, newest first.
func (srv *articleService) ListPublished(ctx context.Context, limit, offset int) ([]*entity.Article, error) {
	return srv.articleRepo.ListPublished(ctx, limit, offset)
}

// ListMine returns all of the caller's articles, drafts included.
func (srv *articleService) ListMine(ctx context.Context, authorID uuid.UUID) ([]*entity.Article, error) {
	return srv.articleRepo.ListByAuthor(ctx, authorID)
}

// UpdateArticle modifies an article. Author only. The slug follows the title.
func (srv *articleService) UpdateArticle(ctx context.Context, input usecase.UpdateArticleInput) (*entity.Article, error) {
	article, err := srv.ownedArticle(ctx, input.ActorID, input.ArticleID)
	if err != nil {
		return nil, err
	}

	if input.Title != article.Title {
		article.Slug = Slugify(input.Title)
	}
	article.Title = input.Title
	article.Body = input.Body
	article.Published = input.Published
	if err := srv.articleRepo.Update(ctx, article); err != nil {
		return nil, err
	}

	return article, nil
}

// DeleteArticle removes an article. Author only.
func (srv *articleService) DeleteArticle(ctx context.Context, actorID, articleID uuid.UUID) error {
	if _, err := srv.ownedArticle(ctx, actorID, articleID); err != nil {
		return err
	}

	return srv.articleRepo.Delete(ctx, articleID)
}

func (srv *articleService) ownedArticle(ctx context.Context, actorID, articleID uuid.UUID) (*entity.Article, error) {
	article, err := srv.articleRepo.FindByID(ctx, articleID)
	if err != nil {
		if errors.Is(err, repository.ErrArticleNotFound) {
			return nil, domainerrors.ErrArticleNotFound
		}

		return nil, errors.Wrap(err, "failed to load article")
	}
	if article.AuthorID != actorID {
		return nil, domainerrors.ErrForbidden.WrapMessage("only the author can modify this article")
	}

	return article, nil
}

// Slugify lowercases the title and collapses every non-alphanumeric run into
// a single hyphen.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false

			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
