package admin

import (
	"errors"

	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

type authzCreateAdminPayload struct {
	Username string   `json:"username" binding:"required"`
	Password string   `json:"password" binding:"required"`
	Roles    []string `json:"roles"`
}

// CreateAuthzAdmin 创建审核人员账号并分配角色
func (h *Handler) CreateAuthzAdmin(c *gin.Context) {
	var req authzCreateAdminPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	admin, err := h.AuthService.CreateAdmin(req.Username, req.Password)
	if err != nil {
		if respondPasswordPolicyError(c, err) {
			return
		}
		switch {
		case errors.Is(err, service.ErrUsernameInvalid):
			respondError(c, response.CodeBadRequest, "error.username_invalid", nil)
		case errors.Is(err, service.ErrUsernameExists):
			respondError(c, response.CodeConflict, "error.username_exists", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	if len(req.Roles) > 0 {
		if err := h.AuthzService.SetAdminRoles(admin.ID, req.Roles); err != nil {
			respondAuthzError(c, err)
			return
		}
	}
	requestLog(c).Infow("admin_account_created",
		"operator_admin_id", currentAdminID(c),
		"admin_id", admin.ID,
		"roles", req.Roles,
	)
	response.Created(c, gin.H{
		"id":       admin.ID,
		"username": admin.Username,
		"roles":    req.Roles,
	})
}
