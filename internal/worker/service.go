package worker

import (
	"context"
	"errors"
	"time"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 异步队列服务
type Service struct {
	name          string
	server        *asynq.Server
	mux           *asynq.ServeMux
	consumer      *Consumer
	sweepInterval time.Duration
}

// NewService 创建异步队列服务
// sweepInterval 为评论数全量复核周期，<=0 时不启动周期复核。
func NewService(cfg *config.QueueConfig, consumer *Consumer, sweepInterval time.Duration) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:          "worker",
		server:        server,
		mux:           mux,
		consumer:      consumer,
		sweepInterval: sweepInterval,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动服务
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.sweepInterval > 0 {
		go runSweepLoop(ctx, s.consumer, s.sweepInterval)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	_ = ctx
	s.server.Shutdown()
	return nil
}

// runSweepLoop 启动时先复核一次，之后按周期执行
func runSweepLoop(ctx context.Context, consumer *Consumer, interval time.Duration) {
	if consumer == nil || interval <= 0 {
		return
	}
	_, _ = consumer.sweep(0)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = consumer.sweep(0)
		}
	}
}

// Sweeper 不依赖队列的周期复核服务，队列未启用时代替 Worker 运行
type Sweeper struct {
	consumer *Consumer
	interval time.Duration
}

// NewSweeper 创建周期复核服务
func NewSweeper(consumer *Consumer, interval time.Duration) (*Sweeper, error) {
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	if interval <= 0 {
		return nil, errors.New("sweep interval must be positive")
	}
	return &Sweeper{consumer: consumer, interval: interval}, nil
}

// Name 服务名称
func (s *Sweeper) Name() string {
	return "comment_count_sweeper"
}

// Start 阻塞运行直到 ctx 结束
func (s *Sweeper) Start(ctx context.Context) error {
	if s == nil || s.consumer == nil {
		return errors.New("sweeper not initialized")
	}
	runSweepLoop(ctx, s.consumer, s.interval)
	return nil
}

// Stop 随 ctx 退出，无需额外处理
func (s *Sweeper) Stop(context.Context) error {
	return nil
}
