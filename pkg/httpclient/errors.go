package httpclient

import (
	"errors"
	"fmt"
)

// StatusError 非2xx响应,保留状态码和原始响应体供调用方归类
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP request failed with status %d: %s", e.StatusCode, e.Body)
}

// IsStatus 错误链上是否携带指定状态码
func IsStatus(err error, statusCode int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == statusCode
}
