package service

import (
	"time"

	"github.com/blogicum/internal/logger"
	"github.com/blogicum/internal/repository"

	"gorm.io/gorm"
)

// ReconcileEnqueuer 评论数延迟复核任务的投递方
type ReconcileEnqueuer interface {
	EnqueueCommentCountReconcile(postID uint, delay time.Duration) error
}

// CommentCountSynchronizer 维护 posts.comment_count 冗余字段
// 计数始终取评论表的实时数量，重复执行结果不变。
type CommentCountSynchronizer struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	enqueuer    ReconcileEnqueuer
	delay       time.Duration
}

// NewCommentCountSynchronizer 创建评论数同步器
func NewCommentCountSynchronizer(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	enqueuer ReconcileEnqueuer,
	delay time.Duration,
) *CommentCountSynchronizer {
	return &CommentCountSynchronizer{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		enqueuer:    enqueuer,
		delay:       delay,
	}
}

// Resync 在独立事务中重算文章评论数
func (s *CommentCountSynchronizer) Resync(postID uint) (int64, error) {
	var count int64
	err := s.postRepo.Transaction(func(tx *gorm.DB) error {
		var err error
		count, err = s.ResyncTx(tx, postID)
		return err
	})
	return count, err
}

// ResyncTx 在调用方事务内重算评论数，文章行加锁
func (s *CommentCountSynchronizer) ResyncTx(tx *gorm.DB, postID uint) (int64, error) {
	postRepo := s.postRepo.WithTx(tx)
	post, err := postRepo.GetByIDForUpdate(postID)
	if err != nil {
		return 0, err
	}
	if post == nil {
		return 0, ErrNotFound
	}
	count, err := s.commentRepo.WithTx(tx).CountByPost(postID)
	if err != nil {
		return 0, err
	}
	if post.CommentCount == count {
		return count, nil
	}
	if err := postRepo.SetCommentCount(postID, count); err != nil {
		return 0, err
	}
	logger.Debugw("comment_count_resynced",
		"post_id", postID,
		"previous", post.CommentCount,
		"count", count,
	)
	return count, nil
}

// ScheduleReconcile 投递延迟复核任务，失败只记录日志
func (s *CommentCountSynchronizer) ScheduleReconcile(postID uint) {
	if s.enqueuer == nil {
		return
	}
	if err := s.enqueuer.EnqueueCommentCountReconcile(postID, s.delay); err != nil {
		logger.Warnw("comment_count_reconcile_enqueue_failed",
			"post_id", postID,
			"error", err,
		)
	}
}

// SweepAll 按主键分批复核全部文章，返回被修正的文章数
func (s *CommentCountSynchronizer) SweepAll(batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 200
	}
	var afterID uint
	fixed := 0
	for {
		ids, err := s.postRepo.ListIDs(afterID, batchSize)
		if err != nil {
			return fixed, err
		}
		if len(ids) == 0 {
			return fixed, nil
		}
		for _, id := range ids {
			changed, err := s.reconcileOne(id)
			if err != nil {
				return fixed, err
			}
			if changed {
				fixed++
			}
		}
		afterID = ids[len(ids)-1]
		if len(ids) < batchSize {
			return fixed, nil
		}
	}
}

func (s *CommentCountSynchronizer) reconcileOne(postID uint) (bool, error) {
	changed := false
	err := s.postRepo.Transaction(func(tx *gorm.DB) error {
		post, err := s.postRepo.WithTx(tx).GetByIDForUpdate(postID)
		if err != nil || post == nil {
			return err
		}
		count, err := s.ResyncTx(tx, postID)
		if err != nil {
			return err
		}
		changed = count != post.CommentCount
		return nil
	})
	return changed, err
}
