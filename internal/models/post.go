package models

import "time"

// Post 博客文章
type Post struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	Title        string     `gorm:"type:varchar(256);not null" json:"title"`
	Text         string     `gorm:"type:text;not null" json:"text"`
	PubDate      time.Time  `gorm:"not null;index" json:"pub_date"` // 未来时间表示定时发布
	AuthorID     uint       `gorm:"not null;index" json:"author_id"`
	Author       *User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	LocationID   *uint      `gorm:"index" json:"location_id"`
	Location     *Location  `gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL" json:"location,omitempty"`
	CategoryID   *uint      `gorm:"index" json:"category_id"`
	Category     *Category  `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
	Image        string     `gorm:"type:varchar(500);not null;default:''" json:"image"`
	IsPublished  bool       `gorm:"not null;index" json:"is_published"`
	CommentCount int64      `gorm:"not null;default:0" json:"comment_count"` // 评论数冗余缓存，由评论计数同步器维护
	Comments     []Comment  `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt    time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}
