package service

import (
	"strings"
	"time"

	"github.com/blogicum/internal/models"
	"github.com/blogicum/internal/policy"
	"github.com/blogicum/internal/repository"

	"gorm.io/gorm"
)

const maxCommentLength = 4000

// CommentService 评论业务服务
type CommentService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	counter     *CommentCountSynchronizer
	now         func() time.Time
}

// NewCommentService 创建评论服务
func NewCommentService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	counter *CommentCountSynchronizer,
) *CommentService {
	return &CommentService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		counter:     counter,
		now:         time.Now,
	}
}

// SetClock 替换时间来源
func (s *CommentService) SetClock(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Create 为文章添加评论；文章对访问者不可见时视为不存在
func (s *CommentService) Create(viewer policy.Viewer, postID uint, text string) (*models.Comment, error) {
	if !viewer.IsAuthenticated() {
		return nil, ErrUnauthorized
	}
	text, err := normalizeCommentText(text)
	if err != nil {
		return nil, err
	}
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post == nil || !policy.IsPostVisible(viewer, post, s.now()) {
		return nil, ErrNotFound
	}

	comment := &models.Comment{
		Text:     text,
		PostID:   post.ID,
		AuthorID: viewer.ID,
	}
	err = s.postRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.commentRepo.WithTx(tx).Create(comment); err != nil {
			return err
		}
		_, err := s.counter.ResyncTx(tx, post.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.counter.ScheduleReconcile(post.ID)
	return s.commentRepo.GetByID(comment.ID)
}

// GetForEdit 读取待编辑评论，只有作者可以编辑
func (s *CommentService) GetForEdit(viewer policy.Viewer, postID, commentID uint) (*models.Comment, error) {
	if !viewer.IsAuthenticated() {
		return nil, ErrUnauthorized
	}
	comment, err := s.load(postID, commentID)
	if err != nil {
		return nil, err
	}
	if !policy.CanEdit(viewer, comment.AuthorID) {
		return nil, ErrForbidden
	}
	return comment, nil
}

// Update 修改评论内容
func (s *CommentService) Update(viewer policy.Viewer, postID, commentID uint, text string) (*models.Comment, error) {
	comment, err := s.GetForEdit(viewer, postID, commentID)
	if err != nil {
		return nil, err
	}
	text, err = normalizeCommentText(text)
	if err != nil {
		return nil, err
	}
	if err := s.commentRepo.UpdateText(comment.ID, text); err != nil {
		return nil, err
	}
	return s.commentRepo.GetByID(comment.ID)
}

// Delete 删除评论并重算文章评论数
func (s *CommentService) Delete(viewer policy.Viewer, postID, commentID uint) error {
	if _, err := s.GetForEdit(viewer, postID, commentID); err != nil {
		return err
	}
	return s.remove(postID, commentID)
}

// AdminDelete 后台删除评论，不做作者校验
func (s *CommentService) AdminDelete(commentID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	if err := s.remove(comment.PostID, comment.ID); err != nil {
		return nil, err
	}
	return comment, nil
}

// AdminList 后台评论列表
func (s *CommentService) AdminList(filter repository.CommentListFilter) ([]models.Comment, int64, error) {
	return s.commentRepo.List(filter)
}

func (s *CommentService) remove(postID, commentID uint) error {
	err := s.postRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.commentRepo.WithTx(tx).Delete(commentID); err != nil {
			return err
		}
		_, err := s.counter.ResyncTx(tx, postID)
		return err
	})
	if err != nil {
		return err
	}
	s.counter.ScheduleReconcile(postID)
	return nil
}

// load 读取评论并校验其归属的文章
func (s *CommentService) load(postID, commentID uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil || comment.PostID != postID {
		return nil, ErrNotFound
	}
	return comment, nil
}

func normalizeCommentText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrCommentTextRequired
	}
	if len([]rune(text)) > maxCommentLength {
		return "", ErrInvalidInput
	}
	return text, nil
}
