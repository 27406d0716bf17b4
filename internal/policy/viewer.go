package policy

import "strings"

// Viewer 发起请求的主体：已登录用户或匿名访客
// 由路由中间件解析一次，再显式传入每个策略/查询调用。
type Viewer struct {
	ID       uint
	Username string
}

// Anonymous 匿名访客
func Anonymous() Viewer {
	return Viewer{}
}

// Authenticated 已登录用户
func Authenticated(id uint, username string) Viewer {
	return Viewer{ID: id, Username: strings.TrimSpace(username)}
}

// IsAuthenticated 是否已登录
func (v Viewer) IsAuthenticated() bool {
	return v.ID != 0
}

// Is 判断是否为指定用户本人
func (v Viewer) Is(userID uint) bool {
	return v.IsAuthenticated() && v.ID == userID
}
