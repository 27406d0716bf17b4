package response

// AppError 接口错误：业务码、面向读者的文案及内部原因
// Key 为文案 key，便于日志按错误类型聚合；自定义文案时为空。
type AppError struct {
	Code    int
	Key     string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Internal 是否属于服务端故障
func (e *AppError) Internal() bool {
	return HTTPStatus(e.Code) >= 500
}

// LogFields 结构化日志字段
func (e *AppError) LogFields() []interface{} {
	fields := []interface{}{"code", e.Code, "message", e.Message}
	if e.Key != "" {
		fields = append(fields, "key", e.Key)
	}
	if e.Err != nil {
		fields = append(fields, "error", e.Err)
	}
	return fields
}

// NewError 按文案 key 构建错误
func NewError(code int, key, message string, err error) *AppError {
	return &AppError{Code: code, Key: key, Message: message, Err: err}
}

// WrapError 包装自定义文案的错误
func WrapError(code int, message string, err error) *AppError {
	return NewError(code, "", message, err)
}
