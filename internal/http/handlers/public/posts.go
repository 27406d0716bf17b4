package public

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blogicum/internal/http/handlers/shared"
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

// PostRequest 发布/编辑文章请求
// 作者与评论数不可通过表单写入。
type PostRequest struct {
	Title       string     `json:"title"`
	Text        string     `json:"text"`
	PubDate     *time.Time `json:"pub_date"`
	LocationID  *uint      `json:"location_id"`
	CategoryID  *uint      `json:"category_id"`
	Image       *string    `json:"image"`
	IsPublished *bool      `json:"is_published"`
}

func (r PostRequest) toInput() service.PostInput {
	return service.PostInput{
		Title:       r.Title,
		Text:        r.Text,
		PubDate:     r.PubDate,
		LocationID:  r.LocationID,
		CategoryID:  r.CategoryID,
		Image:       r.Image,
		IsPublished: r.IsPublished,
	}
}

func postDetailPath(id uint) string {
	return fmt.Sprintf("/api/v1/posts/%d", id)
}

func profilePath(username string) string {
	return "/api/v1/profile/" + strings.TrimSpace(username)
}

// ListPosts 首页文章列表
func (h *Handler) ListPosts(c *gin.Context) {
	page, pageSize := shared.PageQuery(c)
	result, err := h.PostService.ListIndex(page, pageSize)
	if err != nil {
		respondPostError(c, err)
		return
	}
	response.SuccessWithPage(c, result.Posts, response.NewPagination(result.Page, result.PageSize, result.Total))
}

// GetPost 文章详情
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	detail, err := h.PostService.GetDetail(viewerOf(c), id)
	if err != nil {
		respondPostError(c, err)
		return
	}
	response.Success(c, gin.H{
		"post":     detail.Post,
		"comments": detail.Comments,
		"can_edit": detail.CanEdit,
	})
}

// CreatePost 发布文章
func (h *Handler) CreatePost(c *gin.Context) {
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	viewer := viewerOf(c)
	post, err := h.PostService.Create(viewer, req.toInput())
	if err != nil {
		respondPostError(c, err)
		return
	}
	c.Header("Location", postDetailPath(post.ID))
	response.Created(c, post)
}

// GetPostForEdit 编辑表单数据；非作者被重定向到文章详情
func (h *Handler) GetPostForEdit(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	post, err := h.PostService.GetForEdit(viewerOf(c), id)
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.Redirect(c, postDetailPath(id))
			return
		}
		respondPostError(c, err)
		return
	}
	response.Success(c, post)
}

// UpdatePost 编辑文章；非作者被重定向到文章详情
func (h *Handler) UpdatePost(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	viewer := viewerOf(c)
	// 先校验作者身份，非作者无论请求体如何都重定向
	if _, err := h.PostService.GetForEdit(viewer, id); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.Redirect(c, postDetailPath(id))
			return
		}
		respondPostError(c, err)
		return
	}
	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	post, err := h.PostService.Update(viewer, id, req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrForbidden) {
			response.Redirect(c, postDetailPath(id))
			return
		}
		respondPostError(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost 删除文章及其评论，仅作者可操作
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := postIDParam(c)
	if !ok {
		return
	}
	viewer := viewerOf(c)
	if err := h.PostService.Delete(viewer, id); err != nil {
		respondPostError(c, err)
		return
	}
	response.Success(c, gin.H{
		"deleted":  true,
		"location": profilePath(viewer.Username),
	})
}
