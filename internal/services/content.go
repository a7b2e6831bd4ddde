package services

import (
	"context"

	"github.com/kamaufranciskihiko-svg/anamtherapy-33b9f0d6/internal/models"
)

// ArticleReader is the published-content storage the reader needs. The store
// is responsible for never returning unpublished rows.
type ArticleReader interface {
	ListPublished(ctx context.Context) ([]models.ArticleSummary, error)
	GetPublishedBySlug(ctx context.Context, slug string) (*models.Article, error)
}

// ContentService serves the public blog. It is read-only and needs no
// authentication; a draft slug and a missing slug are indistinguishable to
// callers so drafts never leak.
type ContentService struct {
	articles ArticleReader
}

func NewContentService(articles ArticleReader) *ContentService {
	return &ContentService{articles: articles}
}

// ListPublished returns published article summaries, newest publish date
// first (falling back to creation date for posts without one).
func (s *ContentService) ListPublished(ctx context.Context) ([]models.ArticleSummary, error) {
	return s.articles.ListPublished(ctx)
}

// GetBySlug returns a published article, or common.ErrNotFound for both
// unpublished and nonexistent slugs.
func (s *ContentService) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	return s.articles.GetPublishedBySlug(ctx, slug)
}
