package routes

import (
	"github.com/ctcarper/cloudinary-search/internal/application/services"
	"github.com/ctcarper/cloudinary-search/internal/infrastructure/config"
	"github.com/ctcarper/cloudinary-search/internal/interfaces/http/handlers"
	"github.com/ctcarper/cloudinary-search/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RoutesConfig 路由配置
type RoutesConfig struct {
	container *services.ServiceContainer
}

// NewRoutesConfig 创建路由配置
func NewRoutesConfig(container *services.ServiceContainer) *RoutesConfig {
	return &RoutesConfig{
		container: container,
	}
}

// SetupRoutes 注册API路由
func (rc *RoutesConfig) SetupRoutes(router *gin.Engine) {
	cfg := rc.container.GetConfig()

	folderHandler := handlers.NewFolderHandler(rc.container)
	assetHandler := handlers.NewAssetHandler(rc.container)
	documentHandler := handlers.NewDocumentHandler(rc.container)

	api := router.Group("/api/v1")

	// 健康检查不要求认证
	api.GET("/health", handlers.HealthCheck)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(&cfg.Auth))
	{
		// 文件夹相关路由
		folders := protected.Group("/folders")
		{
			folders.GET("", folderHandler.ListFolders)
		}

		// 资源相关路由
		assets := protected.Group("/assets")
		{
			assets.POST("/upload", assetHandler.Upload)
			assets.POST("/ocr", assetHandler.RunOCR)
		}

		// 页面直传签名
		upload := protected.Group("/upload")
		{
			upload.GET("/signature", assetHandler.CreateUploadSignature)
		}

		// 文档下载
		documents := protected.Group("/documents")
		{
			documents.GET("/pdf", documentHandler.Download)
		}
	}
}

// SetupRouter 构建带全部中间件的gin引擎
func SetupRouter(cfg *config.Config, container *services.ServiceContainer) *gin.Engine {
	router := gin.New()

	// 全局中间件
	router.Use(middleware.RecoverMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.ErrorHandlerMiddleware())
	router.Use(middleware.ContainerMiddleware(container))

	// Swagger文档路由
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routesConfig := NewRoutesConfig(container)
	routesConfig.SetupRoutes(router)

	return router
}
