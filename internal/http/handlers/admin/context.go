package admin

import (
	"strconv"
	"strings"
	"time"

	handlershared "github.com/blogicum/internal/http/handlers/shared"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

func getAdminID(c *gin.Context) (uint, bool) {
	return handlershared.GetContextUintWithKeys(c, handlershared.ContextKeyAdminID, "error.unauthorized", "error.internal")
}

func currentAdminID(c *gin.Context) uint {
	return c.GetUint(handlershared.ContextKeyAdminID)
}

func currentUsername(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(handlershared.ContextKeyAdminUsername))
}

func currentRequestID(c *gin.Context) string {
	return strings.TrimSpace(handlershared.RequestID(c))
}

func parseIDParam(c *gin.Context) (uint, bool) {
	return handlershared.ParamUint(c, "id")
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return handlershared.NormalizePagination(page, pageSize)
}

func parseUintQuery(c *gin.Context, name string) (uint, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

func parseBoolQuery(c *gin.Context, name string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func parseTimeNullable(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// recordModeration 记录后台操作日志，失败不影响请求结果
func (h *Handler) recordModeration(c *gin.Context, action, targetType string, targetID uint, detail map[string]interface{}) {
	if h == nil || h.ModerationService == nil {
		return
	}
	h.ModerationService.RecordQuietly(service.ModerationRecordInput{
		OperatorAdminID:  currentAdminID(c),
		OperatorUsername: currentUsername(c),
		Action:           action,
		TargetType:       targetType,
		TargetID:         targetID,
		RequestID:        currentRequestID(c),
		Detail:           detail,
	})
}
