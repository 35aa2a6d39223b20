package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/ctcarper/cloudinary-search/docs"
	"github.com/ctcarper/cloudinary-search/internal/application/services"
	"github.com/ctcarper/cloudinary-search/internal/infrastructure/config"
	"github.com/ctcarper/cloudinary-search/internal/interfaces/http/routes"
	"github.com/ctcarper/cloudinary-search/pkg/logger"
	"github.com/gin-gonic/gin"
)

// @title Cloudinary Search API
// @version 1.0
// @description 基于Gin框架的云端媒体资源检索与OCR标签服务

// @license.name MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	if err := run(); err != nil {
		logger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(logger.Options{
		Level:     cfg.Log.Level,
		Output:    cfg.Log.Output,
		Format:    cfg.Log.Format,
		FilePath:  cfg.Log.FilePath,
		Colorize:  cfg.Log.Colorize,
		AddSource: cfg.Log.AddSource,
	}); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	container, err := services.NewServiceContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to build service container: %w", err)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           routes.SetupRouter(cfg, container),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 监听失败(端口被占等)直接退出,不等信号
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting server", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("Shutdown signal received", "signal", sig.String())
	}

	// 停止后台任务并优雅关闭,给流式下载留出收尾时间
	container.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("Server stopped")
	return nil
}
