package service

import "errors"

// 通用错误
var (
	ErrNotFound     = errors.New("resource not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("authentication required")
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token revoked")
)

// 账号相关
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidPassword    = errors.New("old password mismatch")
	ErrWeakPassword       = errors.New("password does not satisfy policy")
	ErrUsernameExists     = errors.New("username already taken")
	ErrUsernameInvalid    = errors.New("username invalid")
	ErrEmailInvalid       = errors.New("email invalid")
)

// 内容相关
var (
	ErrPostTitleRequired    = errors.New("post title required")
	ErrPostTextRequired     = errors.New("post text required")
	ErrCommentTextRequired  = errors.New("comment text required")
	ErrCategoryInvalid      = errors.New("category not found")
	ErrLocationInvalid      = errors.New("location not found")
	ErrSlugExists           = errors.New("slug already exists")
	ErrSlugInvalid          = errors.New("slug invalid")
	ErrSlugImmutable        = errors.New("slug is referenced by posts and cannot change")
	ErrCategoryTitleMissing = errors.New("category title required")
	ErrLocationNameMissing  = errors.New("location name required")
)

// 验证码与上传
var (
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
	ErrUploadRejected       = errors.New("upload rejected")
)

// 权限策略
var (
	ErrRoleInvalid   = errors.New("role invalid")
	ErrPolicyInvalid = errors.New("policy invalid")
)
