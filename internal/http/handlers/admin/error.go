package admin

import (
	"errors"

	handlershared "github.com/blogicum/internal/http/handlers/shared"
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func respondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	handlershared.RespondErrorWithMsg(c, code, msg, err)
}

func respondPasswordPolicyError(c *gin.Context, err error) bool {
	var policyErr service.PasswordPolicyError
	if !errors.As(err, &policyErr) {
		return false
	}
	respondErrorWithMsg(c, response.CodeBadRequest, handlershared.Message("error.password_weak")+": "+policyErr.Error(), nil)
	return true
}
