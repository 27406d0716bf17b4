package admin

import (
	"errors"

	"github.com/blogicum/internal/constants"
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/repository"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

// PostQuickEditRequest 文章快速编辑请求
type PostQuickEditRequest struct {
	IsPublished   *bool `json:"is_published"`
	CategoryID    *uint `json:"category_id"`
	ClearCategory bool  `json:"clear_category"`
}

// GetAdminPosts 获取文章列表 (Admin)
func (h *Handler) GetAdminPosts(c *gin.Context) {
	page, pageSize := pageParams(c)
	authorID, err := parseUintQuery(c, "author_id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	categoryID, err := parseUintQuery(c, "category_id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	locationID, err := parseUintQuery(c, "location_id")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	isPublished, err := parseBoolQuery(c, "is_published")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	posts, total, err := h.PostService.AdminList(repository.PostListFilter{
		Page:        page,
		PageSize:    pageSize,
		AuthorID:    authorID,
		CategoryID:  categoryID,
		LocationID:  locationID,
		Search:      c.Query("search"),
		IsPublished: isPublished,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, posts, response.NewPagination(page, pageSize, total))
}

// GetAdminPost 获取文章详情 (Admin)
func (h *Handler) GetAdminPost(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	post, err := h.PostService.AdminGet(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.post_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, post)
}

// QuickEditPost 修改文章发布状态或分类
func (h *Handler) QuickEditPost(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req PostQuickEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	post, err := h.PostService.QuickEdit(id, service.PostQuickEditInput{
		IsPublished:   req.IsPublished,
		CategoryID:    req.CategoryID,
		ClearCategory: req.ClearCategory,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "error.post_not_found", nil)
		case errors.Is(err, service.ErrCategoryInvalid):
			respondError(c, response.CodeBadRequest, "error.category_invalid", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal", err)
		}
		return
	}

	action := constants.ModerationActionUpdate
	if req.IsPublished != nil {
		action = constants.ModerationActionUnpublish
		if *req.IsPublished {
			action = constants.ModerationActionPublish
		}
	}
	h.recordModeration(c, action, constants.ModerationTargetPost, post.ID, map[string]interface{}{
		"is_published":   post.IsPublished,
		"category_id":    post.CategoryID,
		"clear_category": req.ClearCategory,
	})
	response.Success(c, post)
}

// DeleteAdminPost 删除文章 (Admin)
func (h *Handler) DeleteAdminPost(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	post, err := h.PostService.AdminDelete(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.post_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	h.recordModeration(c, constants.ModerationActionDelete, constants.ModerationTargetPost, post.ID, map[string]interface{}{
		"title":     post.Title,
		"author_id": post.AuthorID,
	})
	response.Success(c, nil)
}

// RecountPostComments 立即重算单篇文章的评论数
func (h *Handler) RecountPostComments(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	count, err := h.CommentCounter.Resync(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "error.post_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	h.recordModeration(c, constants.ModerationActionRecount, constants.ModerationTargetPost, id, map[string]interface{}{
		"comment_count": count,
	})
	response.Success(c, gin.H{"post_id": id, "comment_count": count})
}
