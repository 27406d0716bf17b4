package admin

import (
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetAdminUsers 获取作者列表
func (h *Handler) GetAdminUsers(c *gin.Context) {
	page, pageSize := pageParams(c)
	users, total, err := h.UserAuthService.ListUsers(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  c.Query("keyword"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, users, response.NewPagination(page, pageSize, total))
}
