package public

import (
	"time"

	"github.com/blogicum/internal/cache"
	"github.com/blogicum/internal/http/response"

	"github.com/gin-gonic/gin"
)

const (
	publicConfigCacheKey = "public:config"
	publicConfigCacheTTL = 60 * time.Second
)

// GetConfig 获取前台全局配置
func (h *Handler) GetConfig(c *gin.Context) {
	var cached map[string]interface{}
	if hit, err := cache.GetJSON(c.Request.Context(), publicConfigCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	blog := h.Config.Blog
	blog.Normalize()
	data := map[string]interface{}{
		"site_name":     "Блогикум",
		"paginate_by":   blog.PaginateBy,
		"max_page_size": blog.MaxPageSize,
		"captcha":       h.CaptchaService.PublicSetting(),
		"upload": map[string]interface{}{
			"max_size":           h.Config.Upload.MaxSize,
			"allowed_extensions": h.Config.Upload.AllowedExtensions,
		},
	}

	if err := cache.SetJSON(c.Request.Context(), publicConfigCacheKey, data, publicConfigCacheTTL); err != nil {
		handlerLog(c).Warnw("public_config_cache_set_failed", "error", err)
	}
	response.Success(c, data)
}
