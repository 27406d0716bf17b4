package admin

import (
	"errors"

	"github.com/blogicum/internal/constants"
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/repository"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

// LocationRequest 地点请求
type LocationRequest struct {
	Name        string `json:"name"`
	IsPublished *bool  `json:"is_published"`
}

func respondLocationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "error.location_not_found", nil)
	case errors.Is(err, service.ErrLocationNameMissing):
		respondError(c, response.CodeBadRequest, "error.location_name_missing", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal", err)
	}
}

// GetAdminLocations 获取地点列表 (Admin)
func (h *Handler) GetAdminLocations(c *gin.Context) {
	page, pageSize := pageParams(c)
	isPublished, err := parseBoolQuery(c, "is_published")
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	locations, total, err := h.LocationService.List(repository.LocationListFilter{
		Page:        page,
		PageSize:    pageSize,
		Search:      c.Query("search"),
		IsPublished: isPublished,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, locations, response.NewPagination(page, pageSize, total))
}

// CreateLocation 创建地点
func (h *Handler) CreateLocation(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	location, err := h.LocationService.Create(service.LocationInput{Name: req.Name, IsPublished: req.IsPublished})
	if err != nil {
		respondLocationError(c, err)
		return
	}
	h.recordModeration(c, constants.ModerationActionCreate, constants.ModerationTargetLocation, location.ID, map[string]interface{}{
		"name": location.Name,
	})
	response.Created(c, location)
}

// UpdateLocation 更新地点
func (h *Handler) UpdateLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	location, err := h.LocationService.Update(id, service.LocationInput{Name: req.Name, IsPublished: req.IsPublished})
	if err != nil {
		respondLocationError(c, err)
		return
	}
	h.recordModeration(c, constants.ModerationActionUpdate, constants.ModerationTargetLocation, location.ID, map[string]interface{}{
		"name":         location.Name,
		"is_published": location.IsPublished,
	})
	response.Success(c, location)
}

// DeleteLocation 删除地点
func (h *Handler) DeleteLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	location, err := h.LocationService.Delete(id)
	if err != nil {
		respondLocationError(c, err)
		return
	}
	h.recordModeration(c, constants.ModerationActionDelete, constants.ModerationTargetLocation, location.ID, map[string]interface{}{
		"name": location.Name,
	})
	response.Success(c, nil)
}
