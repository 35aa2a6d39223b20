package handlers

import (
	"net/http"

	"github.com/ctcarper/cloudinary-search/internal/infrastructure/config"
	"github.com/ctcarper/cloudinary-search/internal/interfaces/http/middleware"
	httputil "github.com/ctcarper/cloudinary-search/pkg/utils/http"
	"github.com/gin-gonic/gin"
)

// GetConfig 当前请求可见的全局配置
func GetConfig(c *gin.Context) *config.Config {
	return middleware.ContainerFrom(c).GetConfig()
}

// bindError 参数绑定失败的统一出口,直接写400结束请求
func bindError(c *gin.Context, err error) {
	httputil.ErrorWithStatus(c, http.StatusBadRequest, "Invalid request parameters: "+err.Error())
}
