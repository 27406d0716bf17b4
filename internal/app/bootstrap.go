package app

import (
	"errors"
	"time"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/logger"
	"github.com/blogicum/internal/provider"
	"github.com/blogicum/internal/router"
	"github.com/blogicum/internal/worker"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	mode, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	opts := Options{Mode: mode}

	container := provider.NewContainer(cfg)

	var services []Service

	// 初始化 HTTP 服务
	if opts.runsAPI() {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(cfg.Server, engine))
	}

	// 初始化 Worker 服务
	if opts.runsWorker() {
		workerServices, err := buildWorkerServices(cfg, container, mode)
		if err != nil {
			return nil, err
		}
		services = append(services, workerServices...)
	}

	if len(services) == 0 {
		return nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...), nil
}

// buildWorkerServices 队列启用时运行 asynq Worker；
// all 模式下队列未启用则退化为进程内的周期复核。
func buildWorkerServices(cfg *config.Config, container *provider.Container, mode string) ([]Service, error) {
	consumer := worker.NewConsumer(container)
	interval := time.Duration(cfg.Blog.CommentReconcileIntervalMinutes) * time.Minute

	if cfg.Queue.Enabled {
		workerService, err := worker.NewService(&cfg.Queue, consumer, interval)
		if err != nil {
			return nil, err
		}
		return []Service{workerService}, nil
	}
	if mode == ModeWorker {
		return nil, errors.New("worker mode requires queue.enabled")
	}
	if interval <= 0 {
		logger.Infow("app_comment_count_sweep_disabled")
		return nil, nil
	}
	sweeper, err := worker.NewSweeper(consumer, interval)
	if err != nil {
		return nil, err
	}
	logger.Infow("app_queue_disabled_use_inprocess_sweeper", "interval", interval.String())
	return []Service{sweeper}, nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start", "addr", opts.Config.Server.Addr(), "mode", opts.Mode)
	return RunWithOptions(runner, opts)
}
