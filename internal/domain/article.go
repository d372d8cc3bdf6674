package domain

import (
	"context"
	"time"
)

// ArticlesPageSize is the page size of the public notice board
const ArticlesPageSize = 5

// MaxArticleTitleLength bounds article titles
const MaxArticleTitleLength = 200

// Article is a notice published by the administration. PublishedAt moves
// forward on every edit.
type Article struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"publishedAt"`
}

// PaginatedArticles is one page of articles, newest first
type PaginatedArticles struct {
	Data       []*Article `json:"data"`
	Page       int32      `json:"page"`
	PageSize   int32      `json:"pageSize"`
	TotalItems int64      `json:"totalItems"`
	TotalPages int32      `json:"totalPages"`
}

// ArticleRepository persists notice board articles
type ArticleRepository interface {
	Create(ctx context.Context, article *Article) (*Article, error)
	GetByID(ctx context.Context, id int64) (*Article, error)
	List(ctx context.Context, page, pageSize int32) (*PaginatedArticles, error)
	Update(ctx context.Context, article *Article) (*Article, error)
	Delete(ctx context.Context, id int64) error
}
