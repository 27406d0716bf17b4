package response

// 业务状态码，错误码与 HTTP 状态一致
const (
	CodeOK              = 0
	CodeFound           = 302
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeTooManyRequests = 429
	CodeInternal        = 500
)

// HTTPStatus 业务码对应的 HTTP 状态，非错误码按 200 返回
func HTTPStatus(code int) int {
	if code >= 400 && code <= 599 {
		return code
	}
	return 200
}
