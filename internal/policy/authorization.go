package policy

// CanEdit 仅作者本人可以修改或删除自己的文章/评论
func CanEdit(viewer Viewer, authorID uint) bool {
	return viewer.Is(authorID)
}

// CanEditProfile 只能编辑自己的资料，匿名访客不可编辑
func CanEditProfile(viewer Viewer) bool {
	return viewer.IsAuthenticated()
}

// SeesAllPostsOf 个人主页访问者是否能看到主人的全部文章（含未发布）
func SeesAllPostsOf(viewer Viewer, ownerID uint) bool {
	return viewer.Is(ownerID)
}
