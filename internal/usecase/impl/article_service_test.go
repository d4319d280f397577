package impl

import (
	"context"
	"testing"

	domainerrors "careerconnect/internal/domain/errors"
	"careerconnect/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newArticleService(store *fakeStore) usecase.ArticleUsecase {
	return NewArticleService(ArticleServiceParams{
		ArticleRepo: &fakeArticleRepo{store},
		Logger:      newDiscardLogger(),
	})
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Spaces   everywhere  ", "spaces-everywhere"},
		{"Go 1.25 Released!", "go-1-25-released"},
		{"already-slugged", "already-slugged"},
		{"ÜBER Führung", "über-führung"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.title), "title %q", tc.title)
	}
}

func TestArticleService_CreateArticle_DerivesSlug(t *testing.T) {
	svc := newArticleService(newFakeStore())

	article, err := svc.CreateArticle(context.Background(), usecase.CreateArticleInput{
		AuthorID:  uuid.New(),
		Title:     "My First Post",
		Body:      "body",
		Published: true,
	})

	require.NoError(t, err)
	assert.Equal(t, "my-first-post", article.Slug)
}

func TestArticleService_CreateArticle_SlugCollisionGetsSuffix(t *testing.T) {
	svc := newArticleService(newFakeStore())
	ctx := context.Background()

	first, err := svc.CreateArticle(ctx, usecase.CreateArticleInput{AuthorID: uuid.New(), Title: "Same Title"})
	require.NoError(t, err)

	second, err := svc.CreateArticle(ctx, usecase.CreateArticleInput{AuthorID: uuid.New(), Title: "Same Title"})
	require.NoError(t, err)

	assert.NotEqual(t, first.Slug, second.Slug)
	assert.Contains(t, second.Slug, "same-title-")
}

func TestArticleService_GetArticleBySlug_DraftHiddenFromOthers(t *testing.T) {
	svc := newArticleService(newFakeStore())
	ctx := context.Background()
	author := uuid.New()

	draft, err := svc.CreateArticle(ctx, usecase.CreateArticleInput{
		AuthorID:  author,
		Title:     "Draft Post",
		Published: false,
	})
	require.NoError(t, err)

	// Anonymous viewer.
	_, err = svc.GetArticleBySlug(ctx, draft.Slug, nil)
	assert.ErrorIs(t, err, domainerrors.ErrArticleNotFound)

	// A different user.
	other := uuid.New()
	_, err = svc.GetArticleBySlug(ctx, draft.Slug, &other)
	assert.ErrorIs(t, err, domainerrors.ErrArticleNotFound)

	// The author sees their own draft.
	got, err := svc.GetArticleBySlug(ctx, draft.Slug, &author)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, got.ID)
}

func TestArticleService_UpdateArticle_AuthorOnly(t *testing.T) {
	svc := newArticleService(newFakeStore())
	ctx := context.Background()
	author := uuid.New()

	article, err := svc.CreateArticle(ctx, usecase.CreateArticleInput{AuthorID: author, Title: "Post"})
	require.NoError(t, err)

	_, err = svc.UpdateArticle(ctx, usecase.UpdateArticleInput{
		ActorID:   uuid.New(),
		ArticleID: article.ID,
		Title:     "Stolen",
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	updated, err := svc.UpdateArticle(ctx, usecase.UpdateArticleInput{
		ActorID:   author,
		ArticleID: article.ID,
		Title:     "Renamed Post",
		Published: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "renamed-post", updated.Slug)
	assert.True(t, updated.Published)
}

func TestArticleService_DeleteArticle_AuthorOnly(t *testing.T) {
	svc := newArticleService(newFakeStore())
	ctx := context.Background()
	author := uuid.New()

	article, err := svc.CreateArticle(ctx, usecase.CreateArticleInput{AuthorID: author, Title: "Post"})
	require.NoError(t, err)

	err = svc.DeleteArticle(ctx, uuid.New(), article.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	require.NoError(t, svc.DeleteArticle(ctx, author, article.ID))
}
