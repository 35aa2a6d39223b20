package middleware

import (
	"net/http"
	"strings"

	"github.com/ctcarper/cloudinary-search/internal/infrastructure/config"
	"github.com/ctcarper/cloudinary-search/internal/shared/errors"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware 静态令牌认证中间件
// 支持Authorization: Bearer <token>或X-API-Token头,未启用认证时直接放行
func AuthMiddleware(cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !cfg.Enabled {
			c.Next()
			return
		}

		token := extractToken(c)
		if token == "" || token != cfg.Token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid or missing API token",
				"code":  errors.ErrorCodeUnauthorized,
			})
			return
		}

		c.Next()
	}
}

// extractToken 从请求头提取令牌
func extractToken(c *gin.Context) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return c.GetHeader("X-API-Token")
}
