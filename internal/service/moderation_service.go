package service

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/blogicum/internal/logger"
	"github.com/blogicum/internal/models"
	"github.com/blogicum/internal/repository"
)

// ModerationRecordInput 审核日志记录输入
type ModerationRecordInput struct {
	OperatorAdminID  uint
	OperatorUsername string
	Action           string
	TargetType       string
	TargetID         uint
	RequestID        string
	Detail           map[string]interface{}
}

// ModerationService 后台审核日志服务
type ModerationService struct {
	repo repository.ModerationLogRepository
}

// NewModerationService 创建审核日志服务
func NewModerationService(repo repository.ModerationLogRepository) *ModerationService {
	return &ModerationService{repo: repo}
}

// Record 记录审核日志；缺少操作人或动作时忽略
func (s *ModerationService) Record(input ModerationRecordInput) error {
	if s == nil || s.repo == nil {
		return nil
	}
	if input.OperatorAdminID == 0 || strings.TrimSpace(input.Action) == "" {
		return nil
	}
	detail := ""
	if len(input.Detail) > 0 {
		raw, err := json.Marshal(input.Detail)
		if err != nil {
			return err
		}
		detail = string(raw)
	}
	return s.repo.Create(&models.ModerationLog{
		OperatorAdminID:  input.OperatorAdminID,
		OperatorUsername: strings.TrimSpace(input.OperatorUsername),
		Action:           strings.TrimSpace(input.Action),
		TargetType:       strings.TrimSpace(input.TargetType),
		TargetID:         input.TargetID,
		RequestID:        strings.TrimSpace(input.RequestID),
		Detail:           detail,
		CreatedAt:        time.Now(),
	})
}

// RecordQuietly 记录审核日志，失败只写告警
func (s *ModerationService) RecordQuietly(input ModerationRecordInput) {
	if err := s.Record(input); err != nil {
		logger.Warnw("moderation_log_record_failed",
			"action", input.Action,
			"target_type", input.TargetType,
			"target_id", input.TargetID,
			"error", err,
		)
	}
}

// List 审核日志列表
func (s *ModerationService) List(filter repository.ModerationLogListFilter) ([]models.ModerationLog, int64, error) {
	if s == nil || s.repo == nil {
		return []models.ModerationLog{}, 0, nil
	}
	return s.repo.List(filter)
}
