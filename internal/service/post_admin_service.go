package service

import (
	"github.com/blogicum/internal/models"
	"github.com/blogicum/internal/repository"
)

// PostQuickEditInput 后台列表快速编辑
// ClearCategory 为真时移除分类，优先于 CategoryID。
type PostQuickEditInput struct {
	IsPublished   *bool
	CategoryID    *uint
	ClearCategory bool
}

// AdminList 后台文章列表，不做可见性过滤
func (s *PostService) AdminList(filter repository.PostListFilter) ([]models.Post, int64, error) {
	filter.Visibility = nil
	return s.postRepo.List(filter)
}

// AdminGet 后台读取文章
func (s *PostService) AdminGet(id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// QuickEdit 修改发布状态与分类
func (s *PostService) QuickEdit(id uint, input PostQuickEditInput) (*models.Post, error) {
	post, err := s.AdminGet(id)
	if err != nil {
		return nil, err
	}
	fields := map[string]interface{}{}
	if input.IsPublished != nil {
		fields["is_published"] = *input.IsPublished
	}
	switch {
	case input.ClearCategory:
		fields["category_id"] = nil
	case input.CategoryID != nil:
		categoryID, err := s.resolveCategory(input.CategoryID)
		if err != nil {
			return nil, err
		}
		if categoryID == nil {
			fields["category_id"] = nil
		} else {
			fields["category_id"] = *categoryID
		}
	}
	if len(fields) == 0 {
		return post, nil
	}
	fields["updated_at"] = s.now()
	if err := s.postRepo.UpdateFields(post.ID, fields); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(post.ID)
}

// AdminDelete 后台删除文章（连同评论）
func (s *PostService) AdminDelete(id uint) (*models.Post, error) {
	post, err := s.AdminGet(id)
	if err != nil {
		return nil, err
	}
	if err := s.postRepo.DeleteWithComments(post.ID); err != nil {
		return nil, err
	}
	return post, nil
}
