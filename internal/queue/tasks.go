package queue

import (
	"encoding/json"
	"fmt"

	"github.com/blogicum/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCommentCountReconcile 单篇文章评论数复核任务
	TaskCommentCountReconcile = constants.TaskCommentCountReconcile
	// TaskCommentCountSweep 全量评论数复核任务
	TaskCommentCountSweep = constants.TaskCommentCountSweep
)

// CommentCountReconcilePayload 评论数复核任务载荷
type CommentCountReconcilePayload struct {
	PostID uint `json:"post_id"`
}

// CommentCountSweepPayload 全量复核任务载荷
type CommentCountSweepPayload struct {
	BatchSize int `json:"batch_size"`
}

// NewCommentCountReconcileTask 创建评论数复核任务
func NewCommentCountReconcileTask(payload CommentCountReconcilePayload) (*asynq.Task, error) {
	if payload.PostID == 0 {
		return nil, fmt.Errorf("comment count reconcile: post_id is required")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCommentCountReconcile, body), nil
}

// ParseCommentCountReconcilePayload 解析评论数复核任务载荷
func ParseCommentCountReconcilePayload(task *asynq.Task) (CommentCountReconcilePayload, error) {
	var payload CommentCountReconcilePayload
	if task == nil {
		return payload, fmt.Errorf("nil task")
	}
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, err
	}
	if payload.PostID == 0 {
		return payload, fmt.Errorf("comment count reconcile: post_id is required")
	}
	return payload, nil
}

// NewCommentCountSweepTask 创建全量复核任务
func NewCommentCountSweepTask(payload CommentCountSweepPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCommentCountSweep, body), nil
}

// ParseCommentCountSweepPayload 解析全量复核任务载荷
func ParseCommentCountSweepPayload(task *asynq.Task) (CommentCountSweepPayload, error) {
	var payload CommentCountSweepPayload
	if task == nil {
		return payload, fmt.Errorf("nil task")
	}
	if len(task.Payload()) == 0 {
		return payload, nil
	}
	err := json.Unmarshal(task.Payload(), &payload)
	return payload, err
}
