package public

import (
	handlershared "github.com/blogicum/internal/http/handlers/shared"
	"github.com/blogicum/internal/policy"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func respondError(c *gin.Context, code int, key string, err error) {
	handlershared.RespondError(c, code, key, err)
}

func viewerOf(c *gin.Context) policy.Viewer {
	return handlershared.Viewer(c)
}

func postIDParam(c *gin.Context) (uint, bool) {
	return handlershared.ParamUint(c, "id")
}

func commentIDParam(c *gin.Context) (uint, bool) {
	return handlershared.ParamUint(c, "comment_id")
}

func messageFor(key string) string {
	return handlershared.Message(key)
}

func handlerLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}
