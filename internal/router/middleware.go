package router

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/blogicum/internal/authz"
	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/http/handlers/shared"
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/logger"
	"github.com/blogicum/internal/policy"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDKey = shared.ContextKeyRequestID
const requestIDHeader = "X-Request-ID"
const adminIsSuperContextKey = "admin_is_super"

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Accept-Encoding",
			"Authorization",
			"Cache-Control",
			"X-Requested-With",
			"X-CSRF-Token",
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	if len(allowedOrigins) == 0 {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.L()
	}
	sugar := logger.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			log.Errorw("request", "errors", c.Errors.String())
			return
		}
		log.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(requestIDKey)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// RecoveryMiddleware 捕获 panic 并返回 500
func RecoveryMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				logger.SW("request_id", getRequestID(c)).Errorw("request_panic",
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
					"panic", fmt.Sprint(recovered),
				)
				shared.RespondError(c, response.CodeInternal, "error.internal", nil)
				c.Abort()
			}
		}()
		c.Next()
	}
}

// ViewerAuthenticator 将 Bearer Token 解析为访问者
type ViewerAuthenticator interface {
	Authenticate(ctx context.Context, token string) (policy.Viewer, error)
}

// AdminAuthenticator 将 Bearer Token 解析为管理员身份
type AdminAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*service.AdminIdentity, error)
}

func bearerToken(c *gin.Context) (string, bool, error) {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if authHeader == "" {
		return "", false, nil
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if !(len(parts) == 2 && parts[0] == "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", true, service.ErrInvalidToken
	}
	return strings.TrimSpace(parts[1]), true, nil
}

// ViewerMiddleware 解析可选的用户 Token，匿名请求照常放行
// 携带了无效或已吊销的 Token 时返回 401。
func ViewerMiddleware(auth ViewerAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		viewer := policy.Anonymous()
		token, present, err := bearerToken(c)
		if present && err == nil {
			if auth == nil {
				err = service.ErrInvalidToken
			} else {
				viewer, err = auth.Authenticate(c.Request.Context(), token)
			}
		}
		if err != nil {
			if !service.IsTokenError(err) {
				shared.RespondError(c, response.CodeInternal, "error.internal", err)
				c.Abort()
				return
			}
			shared.RespondError(c, response.CodeUnauthorized, "error.invalid_token", nil)
			c.Abort()
			return
		}
		c.Set(shared.ContextKeyViewer, viewer)
		c.Next()
	}
}

// AdminJWTAuthMiddleware 管理端 JWT 鉴权中间件
func AdminJWTAuthMiddleware(auth AdminAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, present, err := bearerToken(c)
		if !present {
			shared.RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
			c.Abort()
			return
		}
		var identity *service.AdminIdentity
		if err == nil {
			if auth == nil {
				err = service.ErrInvalidToken
			} else {
				identity, err = auth.Authenticate(c.Request.Context(), token)
			}
		}
		if err != nil || identity == nil {
			if err != nil && !service.IsTokenError(err) {
				shared.RespondError(c, response.CodeInternal, "error.internal", err)
			} else {
				shared.RespondError(c, response.CodeUnauthorized, "error.invalid_token", nil)
			}
			c.Abort()
			return
		}

		c.Set(shared.ContextKeyAdminID, identity.AdminID)
		c.Set(shared.ContextKeyAdminUsername, identity.Username)
		c.Set(adminIsSuperContextKey, identity.IsSuper)
		c.Next()
	}
}

// AdminRBACMiddleware 管理端 RBAC 鉴权中间件
func AdminRBACMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if isSuper, ok := c.Get(adminIsSuperContextKey); ok {
			if superValue, typeOK := isSuper.(bool); typeOK && superValue {
				c.Next()
				return
			}
		}

		if authzService == nil {
			logger.Errorw("admin_rbac_service_unavailable")
			shared.RespondError(c, response.CodeForbidden, "error.forbidden", nil)
			c.Abort()
			return
		}

		adminID := c.GetUint(shared.ContextKeyAdminID)
		if adminID == 0 {
			shared.RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
			c.Abort()
			return
		}

		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceAdmin(adminID, resource, c.Request.Method)
		if err != nil && !errors.Is(err, authz.ErrUnavailable) {
			logger.Errorw("admin_rbac_enforce_failed",
				"admin_id", adminID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			shared.RespondError(c, response.CodeInternal, "error.internal", nil)
			c.Abort()
			return
		}
		if !allowed {
			logger.Warnw("admin_rbac_permission_denied",
				"admin_id", adminID,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"resource", authz.NormalizeObject(resource),
			)
			shared.RespondError(c, response.CodeForbidden, "error.forbidden", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// NoRouteHandler 未匹配路由统一 404
func NoRouteHandler(c *gin.Context) {
	shared.RespondError(c, response.CodeNotFound, "error.not_found", nil)
}
