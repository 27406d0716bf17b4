package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/blogicum/internal/cache"
	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/http/handlers/shared"
	"github.com/blogicum/internal/http/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// 限流场景
const (
	RateSceneLogin      = "login"
	RateSceneRegister   = "register"
	RateSceneAdminLogin = "admin_login"
)

// RateLimitKeyFunc 生成限流主体的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 账号类接口的限流规则
// 窗口内超过 MaxRequests 次后封禁 BlockSeconds 秒；BlockSeconds 为 0 时只等待窗口结束。
type RateLimitRule struct {
	Scene         string
	WindowSeconds int
	MaxRequests   int
	BlockSeconds  int
}

// NewRateLimitRule 由安全配置构建指定场景的规则
func NewRateLimitRule(scene string, cfg config.LoginRateLimitConfig) RateLimitRule {
	return RateLimitRule{
		Scene:         scene,
		WindowSeconds: cfg.WindowSeconds,
		MaxRequests:   cfg.MaxAttempts,
		BlockSeconds:  cfg.BlockSeconds,
	}
}

func (r RateLimitRule) enabled() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

func (r RateLimitRule) keys(subject string) []string {
	base := cache.Key("rate:" + r.Scene + ":" + subject)
	return []string{base, base + ":blocked"}
}

// KEYS[1] 计数，KEYS[2] 封禁标记；ARGV 依次为窗口、上限、封禁时长。
// 返回 {放行 1/拒绝 0, 需等待秒数}
var rateLimitScript = redis.NewScript(`
local blocked = redis.call("TTL", KEYS[2])
if blocked > 0 then
	return {0, blocked}
end
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
if current <= tonumber(ARGV[2]) then
	return {1, 0}
end
local block = tonumber(ARGV[3])
if block > 0 then
	redis.call("SET", KEYS[2], "1", "EX", ARGV[3])
	redis.call("DEL", KEYS[1])
	return {0, block}
end
return {0, redis.call("TTL", KEYS[1])}
`)

// RateLimitMiddleware 登录/注册频率限制，Redis 未启用时直接放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !rule.enabled() {
			c.Next()
			return
		}

		subject := ""
		if keyFunc != nil {
			subject = strings.TrimSpace(keyFunc(c))
		}
		if subject == "" {
			subject = c.ClientIP()
		}

		result, err := rateLimitScript.Run(c.Request.Context(), client, rule.keys(subject),
			rule.WindowSeconds, rule.MaxRequests, rule.BlockSeconds).Int64Slice()
		if err != nil || len(result) < 2 {
			shared.RespondError(c, response.CodeInternal, "error.rate_limit_unavailable", err)
			c.Abort()
			return
		}
		if result[0] == 1 {
			c.Next()
			return
		}

		wait := int(result[1])
		if wait < 1 {
			wait = rule.WindowSeconds
		}
		shared.RequestLog(c).Warnw("account_rate_limited", "scene", rule.Scene, "subject", subject, "retry_after", wait)
		c.Header("Retry-After", strconv.Itoa(wait))
		response.Error(c, response.CodeTooManyRequests, fmt.Sprintf(shared.Message("error.rate_limited"), wait))
		c.Abort()
	}
}

// KeyByIP 按客户端 IP 限流
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 按请求体中的用户名与 IP 组合限流，读取后恢复请求体
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(readJSONField(c, field))
		if value == "" {
			return c.ClientIP()
		}
		return value + "|" + c.ClientIP()
	}
}

func readJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	var payload map[string]json.RawMessage
	if len(body) == 0 || json.Unmarshal(body, &payload) != nil {
		return ""
	}
	var text string
	if err := json.Unmarshal(payload[field], &text); err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
