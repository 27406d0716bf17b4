package shared

import (
	"strconv"
	"strings"

	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/policy"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	ContextKeyViewer        = "viewer"
	ContextKeyAdminID       = "admin_id"
	ContextKeyAdminUsername = "admin_username"
	ContextKeyRequestID     = "request_id"
)

// Viewer 读取中间件解析好的访问者，缺失时为匿名
func Viewer(c *gin.Context) policy.Viewer {
	if value, ok := c.Get(ContextKeyViewer); ok {
		if viewer, ok := value.(policy.Viewer); ok {
			return viewer
		}
	}
	return policy.Anonymous()
}

// RequestID 当前请求 ID
func RequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// ParamUint 解析路径中的正整数 ID，非法时直接返回 404
func ParamUint(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		RespondError(c, response.CodeNotFound, "error.not_found", nil)
		return 0, false
	}
	return uint(value), true
}

// GetContextUintWithKeys 从上下文读取 uint 值并统一处理错误响应。
func GetContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}
	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	}
}
