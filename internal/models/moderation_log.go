package models

import "time"

// ModerationLog 后台审核操作日志
// 记录管理员对文章、评论、分类、地点以及权限策略的变更。
type ModerationLog struct {
	ID               uint      `gorm:"primarykey" json:"id"`
	OperatorAdminID  uint      `gorm:"index;not null" json:"operator_admin_id"`
	OperatorUsername string    `gorm:"type:varchar(100);index;not null;default:''" json:"operator_username"`
	Action           string    `gorm:"type:varchar(64);index;not null" json:"action"`
	TargetType       string    `gorm:"type:varchar(32);index;not null;default:''" json:"target_type"`
	TargetID         uint      `gorm:"index;not null;default:0" json:"target_id"`
	RequestID        string    `gorm:"type:varchar(64);index;not null;default:''" json:"request_id"`
	Detail           string    `gorm:"type:text;not null;default:''" json:"detail"`
	CreatedAt        time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (ModerationLog) TableName() string {
	return "moderation_logs"
}
