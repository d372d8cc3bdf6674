package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/dafibh/condo/condo-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArticleHandler_PublicList(t *testing.T) {
	env := newTestEnv(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		env.articles.AddArticle(&domain.Article{
			Title:       fmt.Sprintf("notice %d", i),
			Content:     "text",
			PublishedAt: base.AddDate(0, 0, i),
		})
	}

	rec := env.do(t, http.MethodGet, "/api/v1/articles", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := decode[ArticleListResponse](t, rec)
	assert.Equal(t, int32(5), page.PageSize)
	assert.Equal(t, int32(2), page.TotalPages)
	require.Len(t, page.Data, 5)
	assert.Equal(t, "notice 5", page.Data[0].Title)
	assert.Equal(t, "2024-05-06T12:00:00Z", page.Data[0].PublishedAt)

	rec = env.do(t, http.MethodGet, "/api/v1/articles?page=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, decode[ArticleListResponse](t, rec).Data, 1)

	rec = env.do(t, http.MethodGet, "/api/v1/articles?page=x", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodGet, "/api/v1/articles/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestArticleHandler_AdminCRUD(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/articles", "", ArticleRequest{Title: "Notice", Content: "text"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/v1/articles", residentToken, ArticleRequest{Title: "Notice", Content: "text"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/v1/articles", adminToken, ArticleRequest{Content: "text"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "title", decode[ProblemDetails](t, rec).Errors[0].Field)

	rec = env.do(t, http.MethodPost, "/api/v1/articles", adminToken, ArticleRequest{Title: "Water outage", Content: "Monday 8-12"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[ArticleResponse](t, rec)

	path := fmt.Sprintf("/api/v1/articles/%d", created.ID)
	rec = env.do(t, http.MethodPut, path, residentToken, ArticleRequest{Title: "x", Content: "y"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.do(t, http.MethodPut, path, adminToken, ArticleRequest{Title: "Water outage", Content: "Monday 8-14"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Monday 8-14", decode[ArticleResponse](t, rec).Content)

	rec = env.do(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Monday 8-14", decode[ArticleResponse](t, rec).Content)

	rec = env.do(t, http.MethodDelete, path, residentToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec = env.do(t, http.MethodDelete, path, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = env.do(t, http.MethodDelete, path, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
