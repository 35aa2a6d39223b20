package httputil

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope 成功响应的统一外层
// RequestID回显自X-Request-ID响应头,前端拿它和访问日志对账
type Envelope struct {
	Data      interface{} `json:"data"`
	RequestID string      `json:"request_id,omitempty"`
}

// Success 以200输出业务数据
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Data:      data,
		RequestID: c.Writer.Header().Get("X-Request-ID"),
	})
}

// ErrorWithStatus 参数绑定类错误的直接出口
// 输出形状与ErrorHandlerMiddleware保持一致,调用方只需认一种错误结构
func ErrorWithStatus(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, gin.H{
		"error": message,
		"code":  codeForStatus(httpStatus),
	})
}

// codeForStatus 绑定错误只会落在这几种状态上
func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "INVALID_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusNotFound:
		return "NOT_FOUND"
	default:
		return "INTERNAL_ERROR"
	}
}
