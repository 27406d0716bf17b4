package app

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/logger"

	"go.uber.org/zap"
)

// 启动模式：all 同时运行 API 与评论数复核，api/worker 可拆分部署
const (
	ModeAll    = "all"
	ModeAPI    = "api"
	ModeWorker = "worker"
)

// ParseMode 校验 -mode 参数，空值视为 all
func ParseMode(raw string) (string, error) {
	mode := strings.ToLower(strings.TrimSpace(raw))
	switch mode {
	case "":
		return ModeAll, nil
	case ModeAll, ModeAPI, ModeWorker:
		return mode, nil
	}
	return "", fmt.Errorf("unknown mode %q (want all, api or worker)", raw)
}

func (o Options) runsAPI() bool    { return o.Mode == ModeAll || o.Mode == ModeAPI }
func (o Options) runsWorker() bool { return o.Mode == ModeAll || o.Mode == ModeWorker }

// Options 应用启动选项
type Options struct {
	Config          *config.Config
	Logger          *zap.SugaredLogger
	Signals         []os.Signal
	ShutdownTimeout time.Duration
	Mode            string
}

func normalizeOptions(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = logger.S()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 10 * time.Second
	}
	if mode, err := ParseMode(opts.Mode); err == nil {
		opts.Mode = mode
	}
	return opts
}
