package middleware

import (
	"net/http"

	"github.com/ctcarper/cloudinary-search/internal/shared/errors"
	"github.com/ctcarper/cloudinary-search/pkg/logger"
	"github.com/gin-gonic/gin"
)

// ErrorHandlerMiddleware 集中处理handler经c.Error上报的错误
// 业务错误按错误码映射状态,其余一律500
func ErrorHandlerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		// handler已经写过响应时不再重复输出
		if c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		if serviceErr, ok := errors.AsServiceError(err); ok {
			statusCode := mapErrorCodeToHTTPStatus(serviceErr.Code)
			if statusCode >= http.StatusInternalServerError {
				logger.Error("Request failed", "path", c.Request.URL.Path, "code", serviceErr.Code, "error", err)
			}
			c.JSON(statusCode, gin.H{
				"error":   serviceErr.Message,
				"code":    serviceErr.Code,
				"details": serviceErr.Details,
			})
			return
		}

		logger.Error("Request failed with unexpected error", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
			"code":  errors.ErrorCodeInternalError,
		})
	}
}

// mapErrorCodeToHTTPStatus 业务错误码到HTTP状态码
func mapErrorCodeToHTTPStatus(code errors.ErrorCode) int {
	switch code {
	case errors.ErrorCodeInvalidRequest:
		return http.StatusBadRequest
	case errors.ErrorCodeNotFound:
		return http.StatusNotFound
	case errors.ErrorCodeUnauthorized:
		return http.StatusUnauthorized
	case errors.ErrorCodeForbidden:
		return http.StatusForbidden
	case errors.ErrorCodeServiceUnavailable:
		return http.StatusServiceUnavailable
	case errors.ErrorCodeTimeout:
		return http.StatusRequestTimeout
	case errors.ErrorCodeRateLimit:
		return http.StatusTooManyRequests
	case errors.ErrorCodeConfig:
		// 凭证缺失属于部署问题,对调用方表现为服务端错误
		return http.StatusInternalServerError
	case errors.ErrorCodeUpstream:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RecoverMiddleware 捕获panic,记录现场后以500收尾
func RecoverMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Recovered from panic", "path", c.Request.URL.Path, "panic", r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
					"code":  errors.ErrorCodeInternalError,
				})
			}
		}()
		c.Next()
	}
}
