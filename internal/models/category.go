package models

import "time"

// Category 文章分类
// Slug 全局唯一；一旦被文章引用便不可再修改。
type Category struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `gorm:"type:varchar(256);not null" json:"title"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`
	Slug        string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"slug"`
	IsPublished bool      `gorm:"not null;index" json:"is_published"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
