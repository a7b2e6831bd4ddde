package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/common"
	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/models"
)

type Articles struct {
	db *sql.DB
}

func NewArticles(db *sql.DB) *Articles {
	return &Articles{db: db}
}

// ListPublished returns summaries of published posts ordered by publish time,
// falling back to creation time when published_at was never set.
func (r *Articles) ListPublished(ctx context.Context) ([]models.ArticleSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, slug, COALESCE(excerpt, ''), COALESCE(cover_image_url, ''), published_at, created_at
		FROM blog_posts
		WHERE published = TRUE
		ORDER BY COALESCE(published_at, created_at) DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []models.ArticleSummary{}
	for rows.Next() {
		var p models.ArticleSummary
		var publishedAt sql.NullTime
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.CoverImageURL, &publishedAt, &p.CreatedAt); err != nil {
			return nil, err
		}
		if publishedAt.Valid {
			p.PublishedAt = &publishedAt.Time
		}
		posts = append(posts, p)
	}
	return posts, rows.Err()
}

// GetPublishedBySlug returns a published post by slug. Draft and nonexistent
// slugs are both ErrNotFound so drafts are never revealed.
func (r *Articles) GetPublishedBySlug(ctx context.Context, slug string) (*models.Article, error) {
	var a models.Article
	var publishedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, slug, COALESCE(excerpt, ''), COALESCE(cover_image_url, ''), content, published, published_at, created_at
		FROM blog_posts
		WHERE slug = $1 AND published = TRUE
	`, slug).Scan(&a.ID, &a.Title, &a.Slug, &a.Excerpt, &a.CoverImageURL, &a.Content, &a.Published, &publishedAt, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		a.PublishedAt = &publishedAt.Time
	}
	return &a, nil
}

// Insert stores a new draft post.
func (r *Articles) Insert(ctx context.Context, a *models.Article) (*models.Article, error) {
	out := *a
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO blog_posts (title, slug, excerpt, cover_image_url, content, published)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, FALSE)
		RETURNING id, created_at
	`, a.Title, a.Slug, a.Excerpt, a.CoverImageURL, a.Content).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SetPublished publishes or unpublishes a post. Publishing stamps
// published_at only the first time, so republishing keeps the original date.
func (r *Articles) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE blog_posts
		SET published = $2,
		    published_at = CASE WHEN $2 AND published_at IS NULL THEN NOW() ELSE published_at END
		WHERE id = $1
	`, id, published)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
