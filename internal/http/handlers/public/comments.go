package public

import (
	"github.com/blogicum/internal/constants"
	"github.com/blogicum/internal/http/handlers/shared"
	"github.com/blogicum/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CommentRequest 评论请求
type CommentRequest struct {
	Text           string                       `json:"text"`
	CaptchaPayload shared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// CreateComment 发表评论
func (h *Handler) CreateComment(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	viewer := viewerOf(c)
	if !viewer.IsAuthenticated() {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return
	}
	if !h.verifyCaptcha(c, constants.CaptchaSceneComment, req.CaptchaPayload.ToServicePayload()) {
		return
	}
	comment, err := h.CommentService.Create(viewer, postID, req.Text)
	if err != nil {
		respondCommentError(c, err)
		return
	}
	c.Header("Location", postDetailPath(postID))
	response.Created(c, comment)
}

// GetCommentForEdit 评论编辑表单数据
func (h *Handler) GetCommentForEdit(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	commentID, ok := commentIDParam(c)
	if !ok {
		return
	}
	comment, err := h.CommentService.GetForEdit(viewerOf(c), postID, commentID)
	if err != nil {
		respondCommentError(c, err)
		return
	}
	response.Success(c, comment)
}

// UpdateComment 编辑评论，仅作者可操作
func (h *Handler) UpdateComment(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	commentID, ok := commentIDParam(c)
	if !ok {
		return
	}
	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	comment, err := h.CommentService.Update(viewerOf(c), postID, commentID, req.Text)
	if err != nil {
		respondCommentError(c, err)
		return
	}
	response.Success(c, comment)
}

// DeleteComment 删除评论，仅作者可操作
func (h *Handler) DeleteComment(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	commentID, ok := commentIDParam(c)
	if !ok {
		return
	}
	if err := h.CommentService.Delete(viewerOf(c), postID, commentID); err != nil {
		respondCommentError(c, err)
		return
	}
	response.Success(c, gin.H{
		"deleted":  true,
		"location": postDetailPath(postID),
	})
}
