package repository

import "time"

// PostVisibility 文章可见性过滤条件
// ViewerID 为 0 表示匿名访客；作者本人的文章不受发布状态限制。
type PostVisibility struct {
	ViewerID uint
	Now      time.Time
}

// PostListFilter 查询文章列表的过滤条件
type PostListFilter struct {
	Page        int
	PageSize    int
	AuthorID    uint
	CategoryID  uint
	LocationID  uint
	Search      string
	IsPublished *bool
	Visibility  *PostVisibility // 为空时不做可见性过滤（作者本人/后台）
	OrderBy     string
}

// CommentListFilter 查询评论列表的过滤条件
type CommentListFilter struct {
	Page     int
	PageSize int
	PostID   uint
	AuthorID uint
	Search   string
}

// CategoryListFilter 查询分类列表的过滤条件
type CategoryListFilter struct {
	Page        int
	PageSize    int
	Search      string
	IsPublished *bool
}

// LocationListFilter 查询地点列表的过滤条件
type LocationListFilter struct {
	Page        int
	PageSize    int
	Search      string
	IsPublished *bool
}

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
}

// ModerationLogListFilter 查询审核日志的过滤条件
type ModerationLogListFilter struct {
	Page            int
	PageSize        int
	OperatorAdminID uint
	Action          string
	TargetType      string
	CreatedFrom     *time.Time
	CreatedTo       *time.Time
}
