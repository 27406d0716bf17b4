package admin

import (
	"github.com/blogicum/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetCaptchaSettings 获取当前验证码配置
func (h *Handler) GetCaptchaSettings(c *gin.Context) {
	response.Success(c, h.CaptchaService.PublicSetting())
}
