package policy

import (
	"time"

	"github.com/blogicum/internal/models"
)

// IsCategoryVisible 分类是否对外可见
func IsCategoryVisible(category *models.Category) bool {
	return category != nil && category.IsPublished
}

// IsPostVisible 判断文章对访问者是否可见
// 作者本人始终可见；其他人要求文章已发布、发布时间不晚于 now，且分类为空或分类已发布。
// 调用方需预加载 Category，CategoryID 非空但未加载时按不可见处理。
func IsPostVisible(viewer Viewer, post *models.Post, now time.Time) bool {
	if post == nil {
		return false
	}
	if viewer.Is(post.AuthorID) {
		return true
	}
	if !post.IsPublished || post.PubDate.After(now) {
		return false
	}
	if post.CategoryID == nil {
		return true
	}
	return IsCategoryVisible(post.Category)
}
