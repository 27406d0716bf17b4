package public

import (
	"github.com/blogicum/internal/http/handlers/shared"
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

var profileErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.profile_not_found"},
}

// ProfileRequest 资料编辑请求
type ProfileRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// GetProfile 个人主页：主人可见全部文章
func (h *Handler) GetProfile(c *gin.Context) {
	page, pageSize := shared.PageQuery(c)
	result, err := h.PostService.ListProfile(viewerOf(c), c.Param("username"), page, pageSize)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.SuccessWithPage(c, gin.H{
		"profile":  result.Owner,
		"is_owner": result.IsOwner,
		"posts":    result.Posts,
	}, response.NewPagination(result.Page, result.PageSize, result.Total))
}

// GetProfileForEdit 资料编辑表单数据；匿名访问返回 404
func (h *Handler) GetProfileForEdit(c *gin.Context) {
	user, err := h.UserAuthService.GetProfileForEdit(viewerOf(c))
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, user)
}

// UpdateProfile 更新资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	user, err := h.UserAuthService.UpdateProfile(viewerOf(c), service.ProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	})
	if err != nil {
		respondAccountError(c, err)
		return
	}
	response.Success(c, user)
}

// ChangePassword 修改密码，成功后需重新登录
func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.UserAuthService.ChangePassword(viewerOf(c), req.OldPassword, req.NewPassword); err != nil {
		respondAccountError(c, err)
		return
	}
	response.Success(c, gin.H{"changed": true})
}
