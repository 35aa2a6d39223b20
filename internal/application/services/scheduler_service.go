package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ctcarper/cloudinary-search/internal/application/contracts"
	"github.com/ctcarper/cloudinary-search/internal/infrastructure/config"
	"github.com/ctcarper/cloudinary-search/pkg/logger"
	"github.com/robfig/cron/v3"
)

// SchedulerService 定时任务服务 - 按计划预热文件夹缓存
// 避免TTL过期后的首个请求承担完整的递归拉取耗时
type SchedulerService struct {
	cron          *cron.Cron
	config        *config.Config
	folderService contracts.FolderService
	mu            sync.Mutex
	running       bool
}

// NewSchedulerService 创建定时任务服务
func NewSchedulerService(cfg *config.Config, folderService contracts.FolderService) *SchedulerService {
	return &SchedulerService{
		cron:          cron.New(), // 使用标准5字段格式（分 时 日 月 周）
		config:        cfg,
		folderService: folderService,
	}
}

// Start 注册预热任务并启动调度器，未启用时直接返回
func (s *SchedulerService) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	if !s.config.Scheduler.Enabled {
		logger.Info("Scheduler disabled, folder cache warms up on demand")
		return nil
	}

	if _, err := s.cron.AddFunc(s.config.Scheduler.WarmupCron, s.warmupFolderCache); err != nil {
		return fmt.Errorf("invalid warmup cron expression: %w", err)
	}

	s.cron.Start()
	s.running = true
	logger.Info("Scheduler service started", "warmupCron", s.config.Scheduler.WarmupCron)

	return nil
}

// Stop 停止调度器，已排队的预热任务执行完后退出
func (s *SchedulerService) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		s.cron.Stop()
		s.running = false
		logger.Info("Folder cache warmup scheduler stopped")
	}
}

// warmupFolderCache 预热文件夹缓存，缓存过期时触发一次完整刷新
func (s *SchedulerService) warmupFolderCache() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	resp, err := s.folderService.ListFolders(ctx)
	if err != nil {
		logger.Error("Folder cache warmup failed", "error", err)
		return
	}
	logger.Info("Folder cache warmup completed", "count", resp.Total, "cached", resp.Cached)
}
