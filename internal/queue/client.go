package queue

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault
)

// Client 队列客户端封装，未启用时所有入队操作为空操作
type Client struct {
	client       *asynq.Client
	enabled      bool
	defaultQueue string
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{enabled: false, defaultQueue: DefaultQueue}, nil
	}
	return &Client{
		client:       asynq.NewClient(buildRedisOpt(cfg)),
		enabled:      true,
		defaultQueue: DefaultQueue,
	}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueCommentCountReconcile 延迟复核某篇文章的评论数
// 同一文章在去重窗口内只保留一个待执行任务。
func (c *Client) EnqueueCommentCountReconcile(postID uint, delay time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewCommentCountReconcileTask(CommentCountReconcilePayload{PostID: postID})
	if err != nil {
		return err
	}
	if delay < 0 {
		delay = 0
	}
	_, err = c.client.Enqueue(task, reconcileOptions(c.defaultQueue, delay)...)
	if errors.Is(err, asynq.ErrDuplicateTask) || errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

// EnqueueCommentCountSweep 推送全量复核任务
func (c *Client) EnqueueCommentCountSweep(batchSize int) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewCommentCountSweepTask(CommentCountSweepPayload{BatchSize: batchSize})
	if err != nil {
		return err
	}
	_, err = c.client.Enqueue(task, asynq.Queue(c.defaultQueue), asynq.Unique(10*time.Minute))
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}

func reconcileOptions(queueName string, delay time.Duration) []asynq.Option {
	unique := time.Duration(constants.CommentReconcileUniqueTTLS) * time.Second
	if delay > unique {
		unique = delay + time.Second
	}
	return []asynq.Option{
		asynq.Queue(queueName),
		asynq.ProcessIn(delay),
		asynq.Unique(unique),
		asynq.MaxRetry(3),
	}
}

// BuildServerConfig 生成队列服务配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	concurrency := 5
	if cfg != nil && cfg.Concurrency > 0 {
		concurrency = cfg.Concurrency
	}
	queues := map[string]int{DefaultQueue: 1}
	if cfg != nil && len(cfg.Queues) > 0 {
		queues = cfg.Queues
	}
	return buildRedisOpt(cfg), asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	opt.Addr = fmt.Sprintf("%s:%d", host, port)
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}
