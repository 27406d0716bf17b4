package provider

import (
	"time"

	"github.com/blogicum/internal/authz"
	"github.com/blogicum/internal/cache"
	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/logger"
	"github.com/blogicum/internal/models"
	"github.com/blogicum/internal/queue"
	"github.com/blogicum/internal/repository"
	"github.com/blogicum/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo         repository.AdminRepository
	UserRepo          repository.UserRepository
	PostRepo          repository.PostRepository
	CommentRepo       repository.CommentRepository
	CategoryRepo      repository.CategoryRepository
	LocationRepo      repository.LocationRepository
	ModerationLogRepo repository.ModerationLogRepository

	// Services
	AuthzService      *authz.Service
	AuthService       *service.AdminAuthService
	UserAuthService   *service.UserAuthService
	CaptchaService    *service.CaptchaService
	UploadService     *service.UploadService
	CategoryService   *service.CategoryService
	LocationService   *service.LocationService
	PostService       *service.PostService
	CommentService    *service.CommentService
	CommentCounter    *service.CommentCountSynchronizer
	ModerationService *service.ModerationService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.PostRepo = repository.NewPostRepository(db)
	c.CommentRepo = repository.NewCommentRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.LocationRepo = repository.NewLocationRepository(db)
	c.ModerationLogRepo = repository.NewModerationLogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	blog := c.Config.Blog
	blog.Normalize()

	c.AuthService = service.NewAdminAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.UploadService = service.NewUploadService(c.Config.Upload)
	c.ModerationService = service.NewModerationService(c.ModerationLogRepo)

	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.PostRepo, blog)
	c.LocationService = service.NewLocationService(c.LocationRepo)
	c.PostService = service.NewPostService(
		c.PostRepo,
		c.CommentRepo,
		c.CategoryRepo,
		c.LocationRepo,
		c.UserRepo,
		c.CategoryService,
		blog,
	)

	var enqueuer service.ReconcileEnqueuer
	if c.QueueClient != nil {
		enqueuer = c.QueueClient
	}
	c.CommentCounter = service.NewCommentCountSynchronizer(
		c.PostRepo,
		c.CommentRepo,
		enqueuer,
		time.Duration(blog.CommentReconcileDelaySeconds)*time.Second,
	)
	c.CommentService = service.NewCommentService(c.PostRepo, c.CommentRepo, c.CommentCounter)
}
