package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/rs/zerolog/log"
)

// ArticleService runs the notice board
type ArticleService struct {
	articleRepo domain.ArticleRepository
}

// NewArticleService creates a new ArticleService
func NewArticleService(articleRepo domain.ArticleRepository) *ArticleService {
	return &ArticleService{articleRepo: articleRepo}
}

// ArticleInput is the editable part of an article
type ArticleInput struct {
	Title   string
	Content string
}

func validateArticle(in *ArticleInput) error {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)

	verr := &domain.ValidationError{}
	if in.Title == "" {
		verr.Add("title", "title is required")
	} else if utf8.RuneCountInString(in.Title) > domain.MaxArticleTitleLength {
		verr.Add("title", "title must be at most 200 characters")
	}
	if in.Content == "" {
		verr.Add("content", "content is required")
	}
	return verr.OrNil()
}

// Publish creates an article
func (s *ArticleService) Publish(ctx context.Context, in ArticleInput) (*domain.Article, error) {
	if err := validateArticle(&in); err != nil {
		return nil, err
	}
	article, err := s.articleRepo.Create(ctx, &domain.Article{Title: in.Title, Content: in.Content})
	if err != nil {
		return nil, err
	}
	log.Info().Int64("article_id", article.ID).Msg("Article published")
	return article, nil
}

// Get returns one article
func (s *ArticleService) Get(ctx context.Context, id int64) (*domain.Article, error) {
	return s.articleRepo.GetByID(ctx, id)
}

// List returns one page of the notice board, newest first. The page size
// is fixed.
func (s *ArticleService) List(ctx context.Context, page int32) (*domain.PaginatedArticles, error) {
	if page < 1 {
		page = 1
	}
	return s.articleRepo.List(ctx, page, domain.ArticlesPageSize)
}

// Edit replaces an article's title and content
func (s *ArticleService) Edit(ctx context.Context, id int64, in ArticleInput) (*domain.Article, error) {
	if err := validateArticle(&in); err != nil {
		return nil, err
	}
	return s.articleRepo.Update(ctx, &domain.Article{ID: id, Title: in.Title, Content: in.Content})
}

// Delete removes an article
func (s *ArticleService) Delete(ctx context.Context, id int64) error {
	if err := s.articleRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Int64("article_id", id).Msg("Article deleted")
	return nil
}
