package services

import (
	"fmt"
	"time"

	"github.com/ctcarper/cloudinary-search/internal/application/contracts"
	"github.com/ctcarper/cloudinary-search/internal/infrastructure/cloudinary"
	"github.com/ctcarper/cloudinary-search/internal/infrastructure/config"
)

// ServiceContainer 应用服务容器 - 集中装配依赖
type ServiceContainer struct {
	config *config.Config

	// 基础设施
	cloudinaryClient *cloudinary.Client
	folderCache      *FolderCache

	// 应用服务
	folderService       contracts.FolderService
	assetService        contracts.AssetService
	documentService     contracts.DocumentService
	notificationService contracts.NotificationService
	schedulerService    *SchedulerService
}

// NewServiceContainer 创建服务容器并启动后台任务
func NewServiceContainer(cfg *config.Config) (*ServiceContainer, error) {
	container := &ServiceContainer{config: cfg}

	// 1. 基础设施层
	container.cloudinaryClient = cloudinary.NewClientWithQPS(
		cfg.Cloudinary.CloudName,
		cfg.Cloudinary.APIKey,
		cfg.Cloudinary.APISecret,
		cfg.Cloudinary.QPS,
	)
	container.folderCache = NewFolderCache(time.Duration(cfg.Cache.FolderTTLHours) * time.Hour)

	// 2. 应用服务，按依赖顺序装配
	notificationService := NewNotificationService(cfg)
	container.notificationService = notificationService
	container.folderService = NewFolderService(&cfg.Cloudinary, container.cloudinaryClient, container.folderCache)
	container.assetService = NewAssetService(&cfg.Cloudinary, container.cloudinaryClient, notificationService)
	container.documentService = NewDocumentService(&cfg.Cloudinary, container.cloudinaryClient)

	// 3. 调度器，配置未启用时Start为空操作
	container.schedulerService = NewSchedulerService(cfg, container.folderService)
	if err := container.schedulerService.Start(); err != nil {
		return nil, fmt.Errorf("failed to start scheduler: %w", err)
	}

	return container, nil
}

// GetFolderService 获取文件夹查询服务
func (c *ServiceContainer) GetFolderService() contracts.FolderService {
	return c.folderService
}

// GetAssetService 获取资源业务服务
func (c *ServiceContainer) GetAssetService() contracts.AssetService {
	return c.assetService
}

// GetDocumentService 获取文档下载服务
func (c *ServiceContainer) GetDocumentService() contracts.DocumentService {
	return c.documentService
}

// GetNotificationService 获取通知服务
func (c *ServiceContainer) GetNotificationService() contracts.NotificationService {
	return c.notificationService
}

// GetSchedulerService 获取调度服务
func (c *ServiceContainer) GetSchedulerService() *SchedulerService {
	return c.schedulerService
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	return c.config
}

// Close 停止容器持有的后台任务
func (c *ServiceContainer) Close() {
	if c.schedulerService != nil {
		c.schedulerService.Stop()
	}
}
