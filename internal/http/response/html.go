package response

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed templates/error.html
var templateFS embed.FS

var errorPage = template.Must(template.ParseFS(templateFS, "templates/error.html"))

var errorTitles = map[int]string{
	http.StatusForbidden:           "Доступ запрещён",
	http.StatusNotFound:            "Страница не найдена",
	http.StatusInternalServerError: "Ошибка сервера",
}

type errorPageData struct {
	Status    int
	Title     string
	Message   string
	RequestID string
}

// WantsHTML 请求方是否偏好 HTML（浏览器直接访问）
func WantsHTML(c *gin.Context) bool {
	if c == nil || c.Request == nil {
		return false
	}
	return c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML &&
		strings.Contains(c.GetHeader("Accept"), gin.MIMEHTML)
}

func renderErrorPage(c *gin.Context, statusCode int, msg string) {
	status := HTTPStatus(statusCode)
	title := errorTitles[status]
	if title == "" {
		title = http.StatusText(status)
	}
	var buf bytes.Buffer
	if err := errorPage.Execute(&buf, errorPageData{
		Status:    status,
		Title:     title,
		Message:   msg,
		RequestID: requestID(c),
	}); err != nil {
		c.String(status, msg)
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
