package public

import (
	"github.com/blogicum/internal/http/handlers/shared"
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

var categoryErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.category_not_found"},
}

// GetCategoryPosts 分类页：分类缺失或未发布时对所有人返回 404
func (h *Handler) GetCategoryPosts(c *gin.Context) {
	page, pageSize := shared.PageQuery(c)
	result, err := h.PostService.ListCategory(viewerOf(c), c.Param("slug"), page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, categoryErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.SuccessWithPage(c, gin.H{
		"category": result.Category,
		"posts":    result.Posts,
	}, response.NewPagination(result.Page, result.PageSize, result.Total))
}
