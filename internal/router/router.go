package router

import (
	"sort"
	"strings"

	"github.com/blogicum/internal/authz"
	"github.com/blogicum/internal/cache"
	"github.com/blogicum/internal/config"
	adminhandlers "github.com/blogicum/internal/http/handlers/admin"
	publichandlers "github.com/blogicum/internal/http/handlers/public"
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/logger"
	"github.com/blogicum/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisClient := cache.Client()
	loginRule := NewRateLimitRule(RateSceneLogin, cfg.Security.LoginRateLimit)
	registerRule := NewRateLimitRule(RateSceneRegister, cfg.Security.LoginRateLimit)
	adminLoginRule := NewRateLimitRule(RateSceneAdminLogin, cfg.Security.LoginRateLimit)

	// 中间件
	r.Use(RecoveryMiddleware())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))
	r.NoRoute(NoRouteHandler)

	// 上传的文章配图
	r.Static("/uploads", c.UploadService.Dir())

	viewer := ViewerMiddleware(c.UserAuthService)

	// 首页别名
	r.GET("/", viewer, publicHandler.ListPosts)

	apiV1 := r.Group("/api/v1")
	{
		// 前台接口：访问者可选登录
		site := apiV1.Group("")
		site.Use(viewer)
		{
			site.GET("/config", publicHandler.GetConfig)
			site.GET("/captcha/image", publicHandler.GetImageCaptcha)
			site.GET("/pages/:page", publicHandler.GetPage)

			site.GET("/posts", publicHandler.ListPosts)
			site.POST("/posts", publicHandler.CreatePost)
			site.GET("/posts/:id", publicHandler.GetPost)
			site.GET("/posts/:id/edit", publicHandler.GetPostForEdit)
			site.PUT("/posts/:id", publicHandler.UpdatePost)
			site.DELETE("/posts/:id", publicHandler.DeletePost)

			site.POST("/posts/:id/comments", publicHandler.CreateComment)
			site.GET("/posts/:id/comments/:comment_id/edit", publicHandler.GetCommentForEdit)
			site.PUT("/posts/:id/comments/:comment_id", publicHandler.UpdateComment)
			site.DELETE("/posts/:id/comments/:comment_id", publicHandler.DeleteComment)

			site.GET("/category/:slug", publicHandler.GetCategoryPosts)

			site.GET("/profile/edit", publicHandler.GetProfileForEdit)
			site.PUT("/profile", publicHandler.UpdateProfile)
			site.PUT("/profile/password", publicHandler.ChangePassword)
			site.GET("/profile/:username", publicHandler.GetProfile)

			site.GET("/me", publicHandler.GetCurrentUser)
			site.POST("/uploads", publicHandler.UploadImage)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", RateLimitMiddleware(redisClient, registerRule, KeyByIP), publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("username")), publicHandler.UserLogin)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIPAndJSONField("username")), adminHandler.AdminLogin)

			// 仅需登录的个人接口
			self := admin.Group("")
			self.Use(AdminJWTAuthMiddleware(c.AuthService))
			{
				self.GET("/me", adminHandler.GetAdminMe)
				self.PUT("/password", adminHandler.UpdateAdminPassword)
			}

			// 需要鉴权的接口
			authorized := admin.Group("")
			authorized.Use(AdminJWTAuthMiddleware(c.AuthService), AdminRBACMiddleware(c.AuthzService))
			{
				// 文章审核
				authorized.GET("/posts", adminHandler.GetAdminPosts)
				authorized.GET("/posts/:id", adminHandler.GetAdminPost)
				authorized.PATCH("/posts/:id", adminHandler.QuickEditPost)
				authorized.DELETE("/posts/:id", adminHandler.DeleteAdminPost)
				authorized.POST("/posts/:id/recount", adminHandler.RecountPostComments)

				// 评论审核
				authorized.GET("/comments", adminHandler.GetAdminComments)
				authorized.DELETE("/comments/:id", adminHandler.DeleteAdminComment)
				authorized.POST("/comment-counts/sweep", adminHandler.SweepCommentCounts)

				// 分类与地点
				authorized.GET("/categories", adminHandler.GetAdminCategories)
				authorized.POST("/categories", adminHandler.CreateCategory)
				authorized.GET("/categories/:id", adminHandler.GetAdminCategory)
				authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
				authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)
				authorized.GET("/locations", adminHandler.GetAdminLocations)
				authorized.POST("/locations", adminHandler.CreateLocation)
				authorized.PUT("/locations/:id", adminHandler.UpdateLocation)
				authorized.DELETE("/locations/:id", adminHandler.DeleteLocation)

				// 作者与日志
				authorized.GET("/users", adminHandler.GetAdminUsers)
				authorized.GET("/moderation-logs", adminHandler.ListModerationLogs)
				authorized.GET("/captcha/settings", adminHandler.GetCaptchaSettings)

				// 权限管理
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.GET("/authz/roles/:role/policies", adminHandler.GetAuthzRolePolicies)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				authorized.GET("/authz/admins", adminHandler.ListAuthzAdmins)
				authorized.POST("/authz/admins", adminHandler.CreateAuthzAdmin)
				authorized.GET("/authz/admins/:id/roles", adminHandler.GetAuthzAdminRoles)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)
				authorized.GET("/authz/permissions/catalog", func(ctx *gin.Context) {
					response.Success(ctx, buildAdminPermissionCatalog(r))
				})
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

type adminPermissionCatalogItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

func buildAdminPermissionCatalog(engine *gin.Engine) []adminPermissionCatalogItem {
	if engine == nil {
		return []adminPermissionCatalogItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]adminPermissionCatalogItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api/v1/admin/") {
			continue
		}
		if item.Path == "/api/v1/admin/login" || item.Path == "/api/v1/admin/me" || item.Path == "/api/v1/admin/password" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, adminPermissionCatalogItem{
			Module:     deriveAdminPermissionModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveAdminPermissionModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	segments := strings.Split(normalized, "/")
	if len(segments) <= 1 {
		return segments[0]
	}
	if segments[0] != "admin" {
		return segments[0]
	}
	if segments[1] == "authz" {
		return "authz"
	}
	return segments[1]
}
