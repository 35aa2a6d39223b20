package contracts

// NotificationService 通知业务契约，所有方法尽力而为不阻塞主流程
type NotificationService interface {
	// NotifyUploadCompleted 上传成功通知
	NotifyUploadCompleted(publicID string, tags []string)
	// NotifyOCRCompleted 识别完成通知
	NotifyOCRCompleted(publicID string, tagCount int)
	// NotifyTagFailed 标签写入失败通知
	NotifyTagFailed(publicID, tag string, err error)
}
