package handler

import (
	"net/http"

	"github.com/dafibh/condo/condo-backend/internal/service"
	"github.com/labstack/echo/v4"
)

// ArticleHandler handles notice board requests
type ArticleHandler struct {
	articleService *service.ArticleService
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(articleService *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// ArticleRequest holds the editable fields of an article
type ArticleRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

// List handles GET /articles
// @Summary Notice board, newest first
// @Description Five articles per page. No authentication required.
// @Tags articles
// @Produce json
// @Param page query int false "Page"
// @Success 200 {object} ArticleListResponse
// @Router /articles [get]
func (h *ArticleHandler) List(c echo.Context) error {
	page, err := queryIntDefault(c, "page", 1)
	if err != nil {
		return invalidParam(c, "page", "must be a number")
	}

	result, err := h.articleService.List(c.Request().Context(), int32(page))
	if err != nil {
		return handleServiceError(c, err, "list articles")
	}

	data := make([]ArticleResponse, 0, len(result.Data))
	for _, a := range result.Data {
		data = append(data, toArticleResponse(a))
	}
	return c.JSON(http.StatusOK, ArticleListResponse{
		Data:       data,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalItems: result.TotalItems,
		TotalPages: result.TotalPages,
	})
}

// Get handles GET /articles/:id
func (h *ArticleHandler) Get(c echo.Context) error {
	id, err := pathInt64(c, "id")
	if err != nil {
		return invalidParam(c, "id", "must be a number")
	}
	article, err := h.articleService.Get(c.Request().Context(), id)
	if err != nil {
		return handleServiceError(c, err, "get article")
	}
	return c.JSON(http.StatusOK, toArticleResponse(article))
}

// Create handles POST /articles
// @Summary Publish an article
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ArticleRequest true "Article"
// @Success 201 {object} ArticleResponse
// @Failure 400 {object} ProblemDetails
// @Failure 403 {object} ProblemDetails
// @Router /articles [post]
func (h *ArticleHandler) Create(c echo.Context) error {
	var req ArticleRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	article, err := h.articleService.Publish(c.Request().Context(), service.ArticleInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return handleServiceError(c, err, "publish article")
	}
	return c.JSON(http.StatusCreated, toArticleResponse(article))
}

// Update handles PUT /articles/:id
// @Summary Edit an article
// @Description Editing moves the article to the top of the board
// @Tags articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Param request body ArticleRequest true "Article"
// @Success 200 {object} ArticleResponse
// @Failure 400 {object} ProblemDetails
// @Failure 404 {object} ProblemDetails
// @Router /articles/{id} [put]
func (h *ArticleHandler) Update(c echo.Context) error {
	id, err := pathInt64(c, "id")
	if err != nil {
		return invalidParam(c, "id", "must be a number")
	}
	var req ArticleRequest
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	article, err := h.articleService.Edit(c.Request().Context(), id, service.ArticleInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return handleServiceError(c, err, "update article")
	}
	return c.JSON(http.StatusOK, toArticleResponse(article))
}

// Delete handles DELETE /articles/:id
// @Summary Delete an article
// @Tags articles
// @Security BearerAuth
// @Param id path int true "Article ID"
// @Success 204
// @Failure 404 {object} ProblemDetails
// @Router /articles/{id} [delete]
func (h *ArticleHandler) Delete(c echo.Context) error {
	id, err := pathInt64(c, "id")
	if err != nil {
		return invalidParam(c, "id", "must be a number")
	}
	if err := h.articleService.Delete(c.Request().Context(), id); err != nil {
		return handleServiceError(c, err, "delete article")
	}
	return c.NoContent(http.StatusNoContent)
}
