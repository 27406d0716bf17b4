package public

import (
	"github.com/blogicum/internal/constants"
	"github.com/blogicum/internal/http/response"

	"github.com/gin-gonic/gin"
)

// staticPage 静态页面内容
type staticPage struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

var staticPages = map[string]staticPage{
	constants.PageAbout: {
		Slug:    constants.PageAbout,
		Title:   "О проекте",
		Content: "Блогикум — сайт, на котором пользователь может создать свою страницу и публиковать на ней сообщения.",
	},
	constants.PageRules: {
		Slug:    constants.PageRules,
		Title:   "Наши правила",
		Content: "Запрещено публиковать оскорбительные, незаконные и рекламные материалы. Нарушители будут заблокированы.",
	},
}

// GetPage 获取静态页面
func (h *Handler) GetPage(c *gin.Context) {
	page, ok := staticPages[c.Param("page")]
	if !ok {
		respondError(c, response.CodeNotFound, "error.not_found", nil)
		return
	}
	response.Success(c, page)
}
