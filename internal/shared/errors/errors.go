package errors

import "errors"

// ErrorCode 业务错误码,直接出现在HTTP错误响应的code字段
type ErrorCode string

// 请求侧错误
const (
	ErrorCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	ErrorCodeNotFound       ErrorCode = "NOT_FOUND"
	ErrorCodeUnauthorized   ErrorCode = "UNAUTHORIZED"
	ErrorCodeForbidden      ErrorCode = "FORBIDDEN"
	ErrorCodeRateLimit      ErrorCode = "RATE_LIMIT"
)

// 服务端与上游错误
const (
	ErrorCodeInternalError      ErrorCode = "INTERNAL_ERROR"
	ErrorCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrorCodeTimeout            ErrorCode = "TIMEOUT"
	// ErrorCodeConfig 必需的凭据缺失,对调用方等同500
	ErrorCodeConfig ErrorCode = "CONFIG_ERROR"
	// ErrorCodeUpstream 上游API不可达或返回异常数据
	// 必须与"空结果"可区分:空文件夹列表不是错误
	ErrorCodeUpstream ErrorCode = "UPSTREAM_ERROR"
)

// ServiceError 业务错误,Details随错误响应一起输出
type ServiceError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

func (e *ServiceError) Error() string {
	return string(e.Code) + ": " + e.Message
}

// Unwrap 支持errors.Is/As沿Cause链匹配
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// WithCause 挂上底层原因,保持错误链可追溯
func (e *ServiceError) WithCause(cause error) *ServiceError {
	e.Cause = cause
	return e
}

// WithDetails 附加随响应输出的结构化细节
func (e *ServiceError) WithDetails(details map[string]interface{}) *ServiceError {
	e.Details = details
	return e
}

// NewServiceError 创建业务错误
func NewServiceError(code ErrorCode, message string) *ServiceError {
	return &ServiceError{
		Code:    code,
		Message: message,
	}
}

// NewConfigError 凭据缺失错误
func NewConfigError(message string) *ServiceError {
	return NewServiceError(ErrorCodeConfig, message)
}

// NewUpstreamError 上游API错误
func NewUpstreamError(message string, cause error) *ServiceError {
	return NewServiceError(ErrorCodeUpstream, message).WithCause(cause)
}

// CodeOf 提取错误链上的业务错误码，非业务错误返回INTERNAL_ERROR
func CodeOf(err error) ErrorCode {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Code
	}
	return ErrorCodeInternalError
}

// IsCode 判断错误链上是否存在指定业务错误码
func IsCode(err error, code ErrorCode) bool {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.Code == code
	}
	return false
}

// AsServiceError 提取错误链上的业务错误
func AsServiceError(err error) (*ServiceError, bool) {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr, true
	}
	return nil, false
}
