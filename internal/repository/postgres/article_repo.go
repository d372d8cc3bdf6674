package postgres

import (
	"context"
	"errors"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const articleColumns = `id, title, content, published_at`

// ArticleRepository implements domain.ArticleRepository using PostgreSQL
type ArticleRepository struct {
	pool *pgxpool.Pool
}

// NewArticleRepository creates a new ArticleRepository
func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

// Create inserts an article published now
func (r *ArticleRepository) Create(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	return scanArticle(r.pool.QueryRow(ctx, `
		INSERT INTO articles (title, content)
		VALUES ($1, $2)
		RETURNING `+articleColumns,
		a.Title, a.Content,
	))
}

// GetByID retrieves an article
func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*domain.Article, error) {
	return scanArticle(r.pool.QueryRow(ctx, `SELECT `+articleColumns+` FROM articles WHERE id = $1`, id))
}

// List returns one page of articles, newest first
func (r *ArticleRepository) List(ctx context.Context, page, pageSize int32) (*domain.PaginatedArticles, error) {
	page, pageSize, offset := pageOffset(page, pageSize)

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM articles`).Scan(&total); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+articleColumns+` FROM articles
		ORDER BY published_at DESC, id DESC
		LIMIT $1 OFFSET $2`, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	data := make([]*domain.Article, 0, pageSize)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		data = append(data, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &domain.PaginatedArticles{
		Data:       data,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages(total, pageSize),
	}, nil
}

// Update rewrites an article and bumps its publication time
func (r *ArticleRepository) Update(ctx context.Context, a *domain.Article) (*domain.Article, error) {
	return scanArticle(r.pool.QueryRow(ctx, `
		UPDATE articles SET title = $2, content = $3, published_at = NOW()
		WHERE id = $1
		RETURNING `+articleColumns,
		a.ID, a.Title, a.Content,
	))
}

// Delete removes an article
func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrArticleNotFound
	}
	return nil
}

func scanArticle(row rowScanner) (*domain.Article, error) {
	var a domain.Article
	if err := row.Scan(&a.ID, &a.Title, &a.Content, &a.PublishedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrArticleNotFound
		}
		return nil, err
	}
	return &a, nil
}
