package handler

import (
	"log/slog"
	"net/http"
	"time"

	deliverycontext "careerconnect/internal/delivery/context"
	"careerconnect/internal/delivery/http/response"
	"careerconnect/internal/domain/entity"
	"careerconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ArticleHandler holds dependencies for article handlers.
type ArticleHandler struct {
	uc     usecase.ArticleUsecase
	logger *slog.Logger
}

// NewArticleHandler is the constructor for ArticleHandler, injected by Fx.
func NewArticleHandler(uc usecase.ArticleUsecase, logger *slog.Logger) *ArticleHandler {
	return &ArticleHandler{uc: uc, logger: logger}
}

type articleRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	Body      string `json:"body" validate:"required"`
	Published bool   `json:"published"`
}

// CreateArticle stores a new article by the caller.
func (h *ArticleHandler) CreateArticle(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid article input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	article, err := h.uc.CreateArticle(c.Request().Context(), usecase.CreateArticleInput{
		AuthorID:  userID,
		Title:     req.Title,
		Body:      req.Body,
		Published: req.Published,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toArticleView(article), "Article created")
}

// GetArticleBySlug returns a published article, or the author's own draft.
func (h *ArticleHandler) GetArticleBySlug(c echo.Context) error {
	var viewerID *uuid.UUID
	if userID, ok := deliverycontext.GetUserID(c); ok {
		viewerID = &userID
	}

	article, err := h.uc.GetArticleBySlug(c.Request().Context(), c.Param("slug"), viewerID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toArticleView(article), "")
}

// ListPublished returns published articles, newest first.
func (h *ArticleHandler) ListPublished(c echo.Context) error {
	limit, offset := parsePagination(c)

	articles, err := h.uc.ListPublished(c.Request().Context(), limit, offset)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*articleView, 0, len(articles))
	for _, article := range articles {
		views = append(views, toArticleView(article))
	}

	return response.Success(c, http.StatusOK, views, "")
}

// ListMine returns all of the caller's articles, drafts included.
func (h *ArticleHandler) ListMine(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	articles, err := h.uc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]*articleView, 0, len(articles))
	for _, article := range articles {
		views = append(views, toArticleView(article))
	}

	return response.Success(c, http.StatusOK, views, "")
}

// UpdateArticle modifies one of the caller's articles.
func (h *ArticleHandler) UpdateArticle(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid article id")
	}

	var req articleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid article input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	article, err := h.uc.UpdateArticle(c.Request().Context(), usecase.UpdateArticleInput{
		ActorID:   userID,
		ArticleID: articleID,
		Title:     req.Title,
		Body:      req.Body,
		Published: req.Published,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toArticleView(article), "Article updated")
}

// DeleteArticle removes one of the caller's articles.
func (h *ArticleHandler) DeleteArticle(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Not authenticated")
	}

	articleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_ID", "Invalid article id")
	}

	if err := h.uc.DeleteArticle(c.Request().Context(), userID, articleID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Article deleted")
}

type articleView struct {
	ID        uuid.UUID `json:"id"`
	AuthorID  uuid.UUID `json:"authorId"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Body      string    `json:"body"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toArticleView(article *entity.Article) *articleView {
	if article == nil {
		return nil
	}
	return &articleView{
		ID:        article.ID,
		AuthorID:  article.AuthorID,
		Title:     article.Title,
		Slug:      article.Slug,
		Body:      article.Body,
		Published: article.Published,
		CreatedAt: article.CreatedAt,
		UpdatedAt: article.UpdatedAt,
	}
}
