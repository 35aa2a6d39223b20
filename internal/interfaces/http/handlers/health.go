package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

var startTime = time.Now()

// HealthCheck 健康检查
// @Summary 健康检查
// @Description 检查服务健康状态，返回服务面向的云名称
// @Tags 系统
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	cfg := GetConfig(c)

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Cloudinary search service is running",
		"cloud":   cfg.Cloudinary.CloudName,
		"uptime":  time.Since(startTime).String(),
	})
}
