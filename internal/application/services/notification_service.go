package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/ctcarper/cloudinary-search/internal/infrastructure/config"
	"github.com/ctcarper/cloudinary-search/internal/infrastructure/telegram"
	"github.com/ctcarper/cloudinary-search/pkg/logger"
)

// NotificationService 通知服务，所有通知尽力而为不阻塞主流程
type NotificationService struct {
	telegramClient *telegram.Client
	config         *config.Config
}

// NewNotificationService 创建通知服务
// Telegram未启用或连接失败时所有通知退化为空操作
func NewNotificationService(cfg *config.Config) *NotificationService {
	var telegramClient *telegram.Client
	if cfg.Telegram.Enabled {
		client, err := telegram.NewClient(&cfg.Telegram)
		if err != nil {
			logger.Error("Telegram notifications disabled", "error", err)
		} else {
			telegramClient = client
		}
	}

	return &NotificationService{
		telegramClient: telegramClient,
		config:         cfg,
	}
}

// NotifyUploadCompleted 上传成功通知
func (s *NotificationService) NotifyUploadCompleted(publicID string, tags []string) {
	content := ""
	if len(tags) > 0 {
		content = "标签: " + strings.Join(tags, ", ")
	}
	s.push(telegram.EventUploadCompleted, publicID, content)
}

// NotifyOCRCompleted 识别完成通知
func (s *NotificationService) NotifyOCRCompleted(publicID string, tagCount int) {
	s.push(telegram.EventOCRCompleted, publicID, fmt.Sprintf("提取标签数: %d", tagCount))
}

// NotifyTagFailed 标签写入失败通知
func (s *NotificationService) NotifyTagFailed(publicID, tag string, err error) {
	s.push(telegram.EventTagFailed, publicID, fmt.Sprintf("标签 %s 写入失败: %v", tag, err))
}

// push 构造事件消息并尽力推送,失败只记日志
func (s *NotificationService) push(event, publicID, content string) {
	if s.telegramClient == nil {
		return
	}

	msg := &telegram.NotificationMessage{
		Type:      event,
		Title:     publicID,
		Content:   content,
		Timestamp: time.Now(),
	}

	if err := s.telegramClient.Notify(msg); err != nil {
		logger.Error("Failed to send notification", "event", event, "publicID", publicID, "error", err)
	}
}

// IsEnabled 通知是否已启用
func (s *NotificationService) IsEnabled() bool {
	return s.telegramClient != nil && s.config.Telegram.Enabled
}
