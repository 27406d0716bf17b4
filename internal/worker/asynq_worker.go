package worker

import (
	"context"
	"errors"

	"github.com/blogicum/internal/logger"
	"github.com/blogicum/internal/provider"
	"github.com/blogicum/internal/queue"
	"github.com/blogicum/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskCommentCountReconcile, c.handleCommentCountReconcile)
	mux.HandleFunc(queue.TaskCommentCountSweep, c.handleCommentCountSweep)
}

func (c *Consumer) handleCommentCountReconcile(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_comment_count_reconcile_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseCommentCountReconcilePayload(task)
	if err != nil {
		logger.Warnw("worker_comment_count_reconcile_payload_invalid", "error", err)
		return errors.Join(err, asynq.SkipRetry)
	}
	return c.reconcilePost(payload.PostID)
}

func (c *Consumer) reconcilePost(postID uint) error {
	if c.Container == nil || c.CommentCounter == nil {
		logger.Warnw("worker_comment_count_reconcile_skip_counter_nil", "post_id", postID)
		return nil
	}
	count, err := c.CommentCounter.Resync(postID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			// 文章已删除，评论随之级联删除
			logger.Debugw("worker_comment_count_reconcile_skip_post_not_found", "post_id", postID)
			return nil
		}
		logger.Warnw("worker_comment_count_reconcile_failed", "post_id", postID, "error", err)
		return err
	}
	logger.Debugw("worker_comment_count_reconciled", "post_id", postID, "count", count)
	return nil
}

func (c *Consumer) handleCommentCountSweep(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_comment_count_sweep_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseCommentCountSweepPayload(task)
	if err != nil {
		logger.Warnw("worker_comment_count_sweep_unmarshal_failed", "error", err)
		return errors.Join(err, asynq.SkipRetry)
	}
	_, err = c.sweep(payload.BatchSize)
	return err
}

func (c *Consumer) sweep(batchSize int) (int, error) {
	if c.Container == nil || c.CommentCounter == nil {
		logger.Warnw("worker_comment_count_sweep_skip_counter_nil")
		return 0, nil
	}
	fixed, err := c.CommentCounter.SweepAll(batchSize)
	if err != nil {
		logger.Warnw("worker_comment_count_sweep_failed", "fixed", fixed, "error", err)
		return fixed, err
	}
	if fixed > 0 {
		logger.Infow("worker_comment_count_sweep_fixed", "fixed", fixed)
	}
	return fixed, nil
}
