package public

import (
	"errors"

	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadImage 上传文章配图
func (h *Handler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	url, err := h.UploadService.SaveFile(viewerOf(c), file, c.PostForm("scene"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		case errors.Is(err, service.ErrUploadRejected):
			respondError(c, response.CodeBadRequest, "error.upload_rejected", err)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}
	response.Created(c, gin.H{
		"url":      url,
		"filename": file.Filename,
		"size":     file.Size,
	})
}
