package cache

import (
	"context"
	"strings"
	"time"

	"github.com/blogicum/internal/models"
)

// CategorySnapshot 分类页使用的分类快照
type CategorySnapshot struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Slug        string `json:"slug"`
	IsPublished bool   `json:"is_published"`
}

// categoryKey 与数据库一致按原样区分大小写
func categoryKey(slug string) string {
	return "category:slug:" + strings.TrimSpace(slug)
}

// BuildCategorySnapshot 从分类模型构建快照
func BuildCategorySnapshot(category *models.Category) *CategorySnapshot {
	if category == nil {
		return nil
	}
	return &CategorySnapshot{
		ID:          category.ID,
		Title:       category.Title,
		Description: category.Description,
		Slug:        category.Slug,
		IsPublished: category.IsPublished,
	}
}

// Model 还原为分类模型
func (s *CategorySnapshot) Model() *models.Category {
	if s == nil {
		return nil
	}
	return &models.Category{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Slug:        s.Slug,
		IsPublished: s.IsPublished,
	}
}

// GetCategory 读取分类快照
func GetCategory(ctx context.Context, slug string) (*CategorySnapshot, bool, error) {
	var snapshot CategorySnapshot
	hit, err := GetJSON(ctx, categoryKey(slug), &snapshot)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &snapshot, true, nil
}

// SetCategory 写入分类快照
func SetCategory(ctx context.Context, snapshot *CategorySnapshot, ttl time.Duration) error {
	if snapshot == nil || ttl <= 0 {
		return nil
	}
	return SetJSON(ctx, categoryKey(snapshot.Slug), snapshot, ttl)
}

// DelCategory 分类变更后失效快照
func DelCategory(ctx context.Context, slug string) error {
	if strings.TrimSpace(slug) == "" {
		return nil
	}
	return Del(ctx, categoryKey(slug))
}
