package public

import (
	"time"

	"github.com/blogicum/internal/constants"
	"github.com/blogicum/internal/http/handlers/shared"
	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/models"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

// UserRegisterRequest 注册请求
type UserRegisterRequest struct {
	Username       string                       `json:"username" binding:"required"`
	Password       string                       `json:"password" binding:"required"`
	Email          string                       `json:"email"`
	FirstName      string                       `json:"first_name"`
	LastName       string                       `json:"last_name"`
	CaptchaPayload shared.CaptchaPayloadRequest `json:"captcha_payload"`
}

// UserLoginRequest 登录请求
type UserLoginRequest struct {
	Username       string                       `json:"username" binding:"required"`
	Password       string                       `json:"password" binding:"required"`
	RememberMe     bool                         `json:"remember_me"`
	CaptchaPayload shared.CaptchaPayloadRequest `json:"captcha_payload"`
}

func authPayload(user *models.User, token string, expiresAt time.Time) gin.H {
	return gin.H{
		"user":       user,
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	}
}

// UserRegister 用户注册并直接登录
func (h *Handler) UserRegister(c *gin.Context) {
	var req UserRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !h.verifyCaptcha(c, constants.CaptchaSceneRegister, req.CaptchaPayload.ToServicePayload()) {
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Register(service.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondAccountError(c, err)
		return
	}
	handlerLog(c).Infow("user_registered", "user_id", user.ID, "username", user.Username)
	response.Created(c, authPayload(user, token, expiresAt))
}

// UserLogin 用户登录
func (h *Handler) UserLogin(c *gin.Context) {
	var req UserLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if !h.verifyCaptcha(c, constants.CaptchaSceneLogin, req.CaptchaPayload.ToServicePayload()) {
		return
	}

	user, token, expiresAt, err := h.UserAuthService.Login(req.Username, req.Password, req.RememberMe)
	if err != nil {
		respondAccountError(c, err)
		return
	}
	response.Success(c, authPayload(user, token, expiresAt))
}

// GetCurrentUser 当前登录用户
func (h *Handler) GetCurrentUser(c *gin.Context) {
	viewer := viewerOf(c)
	if !viewer.IsAuthenticated() {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return
	}
	user, err := h.UserAuthService.GetUserByID(viewer.ID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return
	}
	response.Success(c, user)
}
