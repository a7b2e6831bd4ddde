package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/common"
)

func TestArticlesListPublished(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	publishedAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "title", "slug", "excerpt", "cover_image_url", "published_at", "created_at"}).
		AddRow(uuid.NewString(), "Grounding Techniques", "grounding-techniques", "Five ways to stay present.", "", publishedAt, time.Now()).
		AddRow(uuid.NewString(), "On Sleep", "on-sleep", "", "", nil, time.Now())

	mock.ExpectQuery("SELECT id, title, slug").WillReturnRows(rows)

	repo := NewArticles(db)
	posts, err := repo.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)

	require.NotNil(t, posts[0].PublishedAt)
	assert.Equal(t, publishedAt, *posts[0].PublishedAt)
	// published_at can be NULL for posts published before the column existed.
	assert.Nil(t, posts[1].PublishedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticlesGetPublishedBySlug_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, title, slug").
		WithArgs("unfinished-draft").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "slug", "excerpt", "cover_image_url", "content", "published", "published_at", "created_at"}))

	repo := NewArticles(db)
	_, err = repo.GetPublishedBySlug(context.Background(), "unfinished-draft")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestArticlesSetPublished_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec("UPDATE blog_posts").
		WithArgs(id, true).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewArticles(db)
	err = repo.SetPublished(context.Background(), id, true)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
