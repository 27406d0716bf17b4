package public

import (
	"errors"

	"github.com/blogicum/internal/http/response"
	"github.com/blogicum/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var accessErrorRules = []mappedHandlerError{
	{target: service.ErrUnauthorized, code: response.CodeUnauthorized, key: "error.unauthorized"},
}

var postErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.post_not_found"},
	{target: service.ErrForbidden, code: response.CodeForbidden, key: "error.post_forbidden"},
}

var postFormErrorRules = []mappedHandlerError{
	{target: service.ErrPostTitleRequired, code: response.CodeBadRequest, key: "error.post_title_required"},
	{target: service.ErrPostTextRequired, code: response.CodeBadRequest, key: "error.post_text_required"},
	{target: service.ErrCategoryInvalid, code: response.CodeBadRequest, key: "error.category_invalid"},
	{target: service.ErrLocationInvalid, code: response.CodeBadRequest, key: "error.location_invalid"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
}

var commentErrorRules = []mappedHandlerError{
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.comment_not_found"},
	{target: service.ErrForbidden, code: response.CodeForbidden, key: "error.comment_forbidden"},
	{target: service.ErrCommentTextRequired, code: response.CodeBadRequest, key: "error.comment_text_required"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
}

var accountErrorRules = []mappedHandlerError{
	{target: service.ErrUsernameInvalid, code: response.CodeBadRequest, key: "error.username_invalid"},
	{target: service.ErrUsernameExists, code: response.CodeConflict, key: "error.username_exists"},
	{target: service.ErrEmailInvalid, code: response.CodeBadRequest, key: "error.email_invalid"},
	{target: service.ErrInvalidCredentials, code: response.CodeUnauthorized, key: "error.invalid_credentials"},
	{target: service.ErrInvalidPassword, code: response.CodeBadRequest, key: "error.password_invalid"},
	{target: service.ErrInvalidInput, code: response.CodeBadRequest, key: "error.bad_request"},
	{target: service.ErrNotFound, code: response.CodeNotFound, key: "error.profile_not_found"},
}

var captchaErrorRules = []mappedHandlerError{
	{target: service.ErrCaptchaRequired, code: response.CodeBadRequest, key: "error.captcha_required"},
	{target: service.ErrCaptchaInvalid, code: response.CodeBadRequest, key: "error.captcha_invalid"},
}

func respondPostError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(accessErrorRules, postErrorRules, postFormErrorRules), response.CodeInternal, "error.internal")
}

func respondCommentError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(accessErrorRules, commentErrorRules), response.CodeInternal, "error.internal")
}

func respondAccountError(c *gin.Context, err error) {
	// 密码策略错误带有具体规则，直接回显
	var policyErr service.PasswordPolicyError
	if errors.As(err, &policyErr) {
		respondWeakPassword(c, policyErr)
		return
	}
	respondWithMappedError(c, err, concatMappedHandlerErrors(accessErrorRules, accountErrorRules), response.CodeInternal, "error.internal")
}

func respondWeakPassword(c *gin.Context, err service.PasswordPolicyError) {
	response.ErrorWithData(c, response.CodeBadRequest, messageFor("error.password_weak"), gin.H{"rule": err.Rule, "min": err.Min})
}

// verifyCaptcha 校验场景验证码，失败时已写出响应
func (h *Handler) verifyCaptcha(c *gin.Context, scene string, payload service.CaptchaVerifyPayload) bool {
	if h.CaptchaService == nil {
		return true
	}
	err := h.CaptchaService.Verify(scene, payload)
	if err == nil {
		return true
	}
	respondWithMappedError(c, err, captchaErrorRules, response.CodeInternal, "error.captcha_config_invalid")
	return false
}
