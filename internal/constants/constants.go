package constants

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 验证码校验场景常量
const (
	CaptchaSceneLogin    = "login"
	CaptchaSceneRegister = "register"
	CaptchaSceneComment  = "comment"
)

// 队列常量
const (
	QueueDefault               = "default"
	QueueCritical              = "critical"
	TaskCommentCountReconcile  = "comment:count_reconcile"
	TaskCommentCountSweep      = "comment:count_sweep"
	CommentReconcileUniqueTTLS = 60
)

// 上传场景常量
const (
	UploadScenePost   = "post"
	UploadSceneAvatar = "avatar"
	UploadSceneCommon = "common"
)

// 审核日志目标类型
const (
	ModerationTargetPost     = "post"
	ModerationTargetComment  = "comment"
	ModerationTargetCategory = "category"
	ModerationTargetLocation = "location"
	ModerationTargetPolicy   = "policy"
)

// 审核日志动作
const (
	ModerationActionCreate       = "create"
	ModerationActionUpdate       = "update"
	ModerationActionDelete       = "delete"
	ModerationActionPublish      = "publish"
	ModerationActionUnpublish    = "unpublish"
	ModerationActionRecount      = "recount"
	ModerationActionRoleGrant    = "role_grant"
	ModerationActionRoleRevoke   = "role_revoke"
	ModerationActionPolicyAdd    = "policy_add"
	ModerationActionPolicyRemove = "policy_remove"
)

// 静态页面
const (
	PageAbout = "about"
	PageRules = "rules"
)
