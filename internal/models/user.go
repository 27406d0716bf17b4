package models

import "time"

// User 博客作者/读者账号
type User struct {
	ID                 uint       `gorm:"primarykey" json:"id"`
	Username           string     `gorm:"type:varchar(150);uniqueIndex;not null" json:"username"`
	Email              string     `gorm:"type:varchar(254);not null;default:''" json:"email"`
	FirstName          string     `gorm:"type:varchar(150);not null;default:''" json:"first_name"`
	LastName           string     `gorm:"type:varchar(150);not null;default:''" json:"last_name"`
	PasswordHash       string     `gorm:"not null" json:"-"`
	TokenVersion       uint64     `gorm:"not null;default:0" json:"-"` // 递增后旧 Token 全部失效
	TokenInvalidBefore *time.Time `gorm:"index" json:"-"`
	LastLoginAt        *time.Time `json:"last_login_at,omitempty"`
	CreatedAt          time.Time  `gorm:"index" json:"date_joined"`
	UpdatedAt          time.Time  `json:"-"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// FullName 返回 "名 姓"，为空时退回用户名
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Username
}
