package shared

import (
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if id := RequestID(c); id != "" {
		return logger.SW("request_id", id)
	}
	return logger.S()
}

// RespondError 按文案 key 返回错误响应，有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	respondAppError(c, response.NewError(code, key, Message(key), err))
}

// RespondErrorWithMsg 返回自定义消息错误响应，有原始错误时记录日志。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	respondAppError(c, response.WrapError(code, msg, err))
}

func respondAppError(c *gin.Context, appErr *response.AppError) {
	if appErr.Err != nil {
		log := RequestLog(c)
		if appErr.Internal() {
			log.Errorw("handler_error", appErr.LogFields()...)
		} else {
			log.Warnw("handler_rejected", appErr.LogFields()...)
		}
	}
	response.Error(c, appErr.Code, appErr.Message)
}
