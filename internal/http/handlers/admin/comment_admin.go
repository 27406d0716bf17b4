package admin

import (
	"errors"

	"github.com/blogicum/internal/constants"
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/repository"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

// sweepRequest 全量复核请求
type sweepRequest struct {
	BatchSize int  `json:"batch_size"`
	Sync      bool `json:"sync"`
}

// GetAdminComments 获取评论列表 (Admin)
func (h *Handler) GetAdminComments(c *gin.Context) {
	page, pageSize := pageParams(c)
	postID, err := parseUintQuery(c, "post_id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	authorID, err := parseUintQuery(c, "author_id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	comments, total, err := h.CommentService.AdminList(repository.CommentListFilter{
		Page:     page,
		PageSize: pageSize,
		PostID:   postID,
		AuthorID: authorID,
		Search:   c.Query("search"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, comments, response.NewPagination(page, pageSize, total))
}

// DeleteAdminComment 删除评论并重算所属文章评论数
func (h *Handler) DeleteAdminComment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	comment, err := h.CommentService.AdminDelete(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.comment_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	h.recordModeration(c, constants.ModerationActionDelete, constants.ModerationTargetComment, comment.ID, map[string]interface{}{
		"post_id":   comment.PostID,
		"author_id": comment.AuthorID,
	})
	response.Success(c, nil)
}

// SweepCommentCounts 触发全量评论数复核
// 队列可用时异步执行，否则（或 sync=true）在请求内完成。
func (h *Handler) SweepCommentCounts(c *gin.Context) {
	var req sweepRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
	}

	if !req.Sync && h.QueueClient.Enabled() {
		if err := h.QueueClient.EnqueueCommentCountSweep(req.BatchSize); err != nil {
			respondError(c, response.CodeInternal, "error.internal", err)
			return
		}
		h.recordModeration(c, constants.ModerationActionRecount, constants.ModerationTargetPost, 0, map[string]interface{}{
			"mode": "queued",
		})
		response.Success(c, gin.H{"queued": true})
		return
	}

	fixed, err := h.CommentCounter.SweepAll(req.BatchSize)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	h.recordModeration(c, constants.ModerationActionRecount, constants.ModerationTargetPost, 0, map[string]interface{}{
		"mode":  "sync",
		"fixed": fixed,
	})
	response.Success(c, gin.H{"queued": false, "fixed": fixed})
}
