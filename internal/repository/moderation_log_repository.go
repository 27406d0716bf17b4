package repository

import (
	"github.com/blogicum/internal/models"

	"gorm.io/gorm"
)

// ModerationLogRepository 审核日志数据访问接口
type ModerationLogRepository interface {
	Create(log *models.ModerationLog) error
	List(filter ModerationLogListFilter) ([]models.ModerationLog, int64, error)
}

// GormModerationLogRepository GORM 实现
type GormModerationLogRepository struct {
	db *gorm.DB
}

// NewModerationLogRepository 创建审核日志仓库
func NewModerationLogRepository(db *gorm.DB) *GormModerationLogRepository {
	return &GormModerationLogRepository{db: db}
}

// Create 写入审核日志
func (r *GormModerationLogRepository) Create(log *models.ModerationLog) error {
	if log == nil {
		return nil
	}
	return r.db.Create(log).Error
}

// List 按条件查询审核日志，最新在前
func (r *GormModerationLogRepository) List(filter ModerationLogListFilter) ([]models.ModerationLog, int64, error) {
	query := r.db.Model(&models.ModerationLog{})
	if filter.OperatorAdminID != 0 {
		query = query.Where("operator_admin_id = ?", filter.OperatorAdminID)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.TargetType != "" {
		query = query.Where("target_type = ?", filter.TargetType)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	logs := make([]models.ModerationLog, 0)
	if err := query.Order("id DESC").Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
