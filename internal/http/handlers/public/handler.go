package public

import "github.com/blogicum/internal/provider"

// Handler 前台接口处理器入口
// 说明：游客与登录作者共用，访问者身份由 ViewerMiddleware 注入。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
