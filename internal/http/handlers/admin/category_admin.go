package admin

import (
	"errors"

	"github.com/blogicum/internal/constants"
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/repository"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

// CategoryRequest 分类请求
type CategoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	IsPublished *bool  `json:"is_published"`
}

func (r CategoryRequest) toInput() service.CategoryInput {
	return service.CategoryInput{
		Title:       r.Title,
		Description: r.Description,
		Slug:        r.Slug,
		IsPublished: r.IsPublished,
	}
}

func respondCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.category_not_found", nil)
	case errors.Is(err, service.ErrCategoryTitleMissing):
		respondError(c, response.CodeBadRequest, "error.category_title_missing", nil)
	case errors.Is(err, service.ErrSlugInvalid):
		respondError(c, response.CodeBadRequest, "error.slug_invalid", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, response.CodeConflict, "error.slug_exists", nil)
	case errors.Is(err, service.ErrSlugImmutable):
		respondError(c, response.CodeConflict, "error.slug_immutable", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}

// GetAdminCategories 获取分类列表 (Admin)
func (h *Handler) GetAdminCategories(c *gin.Context) {
	page, pageSize := pageParams(c)
	isPublished, err := parseBoolQuery(c, "is_published")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	categories, total, err := h.CategoryService.List(repository.CategoryListFilter{
		Page:        page,
		PageSize:    pageSize,
		Search:      c.Query("search"),
		IsPublished: isPublished,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, categories, response.NewPagination(page, pageSize, total))
}

// GetAdminCategory 获取分类详情 (Admin)
func (h *Handler) GetAdminCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	category, err := h.CategoryService.Get(id)
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	response.Success(c, category)
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Create(req.toInput())
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	h.recordModeration(c, constants.ModerationActionCreate, constants.ModerationTargetCategory, category.ID, map[string]interface{}{
		"slug":         category.Slug,
		"is_published": category.IsPublished,
	})
	response.Created(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	category, err := h.CategoryService.Update(id, req.toInput())
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	h.recordModeration(c, constants.ModerationActionUpdate, constants.ModerationTargetCategory, category.ID, map[string]interface{}{
		"slug":         category.Slug,
		"is_published": category.IsPublished,
	})
	response.Success(c, category)
}

// DeleteCategory 删除分类，关联文章的分类置空
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	category, err := h.CategoryService.Delete(id)
	if err != nil {
		respondCategoryError(c, err)
		return
	}
	h.recordModeration(c, constants.ModerationActionDelete, constants.ModerationTargetCategory, category.ID, map[string]interface{}{
		"slug": category.Slug,
	})
	response.Success(c, nil)
}
