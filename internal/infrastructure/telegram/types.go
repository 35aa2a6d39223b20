package telegram

import "time"

// 推送事件类型
const (
	EventUploadCompleted = "upload_completed"
	EventOCRCompleted    = "ocr_completed"
	EventTagFailed       = "tag_failed"
)

// NotificationMessage 推送给管理员的事件消息
type NotificationMessage struct {
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// eventStyles 每种事件的标题行和内容渲染格式
var eventStyles = map[string]struct {
	header     string
	contentFmt string
}{
	EventUploadCompleted: {"✅ *上传完成*", "%s"},
	EventOCRCompleted:    {"🔍 *识别完成*", "%s"},
	EventTagFailed:       {"⚠️ *标签写入失败*", "🚨 %s"},
}
