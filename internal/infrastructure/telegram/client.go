package telegram

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ctcarper/cloudinary-search/internal/infrastructure/config"
	"github.com/ctcarper/cloudinary-search/pkg/logger"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const timeLayout = "2006-01-02 15:04:05"

// Client Telegram通知客户端
// 只做单向推送,把上传和识别事件送到管理员聊天,不接收任何命令
type Client struct {
	config *config.TelegramConfig
	bot    *tgbotapi.BotAPI
}

// NewClient 连接Bot API,token无效时返回错误,由调用方决定是否降级运行
func NewClient(cfg *config.TelegramConfig) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.Info("Telegram bot connected", "username", bot.Self.UserName)
	return &Client{config: cfg, bot: bot}, nil
}

// Notify 向所有配置的聊天推送一条事件消息
// 单个聊天失败只记日志,不影响其余聊天
func (c *Client) Notify(msg *NotificationMessage) error {
	if !c.config.Enabled || len(c.config.ChatIDs) == 0 {
		logger.Debug("Telegram disabled or no chat IDs configured")
		return nil
	}

	text := renderMessage(msg)

	for _, chatID := range c.config.ChatIDs {
		if err := c.send(chatID, text); err != nil {
			logger.Error("Failed to send notification", "chatID", chatID, "error", err)
			continue
		}
		logger.Info("Notification sent", "chatID", chatID, "event", msg.Type)
	}

	return nil
}

// send 单聊天发送,统一Markdown模式
func (c *Client) send(chatID int64, text string) error {
	if c.bot == nil {
		return fmt.Errorf("telegram bot not initialized")
	}

	m := tgbotapi.NewMessage(chatID, sanitizeUTF8(text))
	m.ParseMode = tgbotapi.ModeMarkdown
	if _, err := c.bot.Send(m); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

// renderMessage 按事件类型渲染消息文本,未知类型退化为通用格式
func renderMessage(msg *NotificationMessage) string {
	ts := msg.Timestamp.Format(timeLayout)

	style, known := eventStyles[msg.Type]
	if !known {
		return fmt.Sprintf("*%s*\n\n%s\n\n⏰ %s", msg.Title, msg.Content, ts)
	}

	var b strings.Builder
	b.WriteString(style.header)
	b.WriteString("\n\n🖼 资源: `")
	b.WriteString(msg.Title)
	b.WriteString("`\n⏰ 时间: ")
	b.WriteString(ts)
	if msg.Content != "" {
		b.WriteString("\n")
		fmt.Fprintf(&b, style.contentFmt, msg.Content)
	}
	return b.String()
}

// sanitizeUTF8 Bot API拒绝无效UTF-8,OCR原文偶尔携带坏字节
func sanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}
	return strings.ToValidUTF8(text, "?")
}
