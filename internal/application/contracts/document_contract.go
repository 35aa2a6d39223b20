package contracts

import (
	"context"
	"io"
)

// DocumentRequest PDF下载请求
type DocumentRequest struct {
	PublicID string `form:"public_id" binding:"required"`
	Filename string `form:"filename"`
}

// DocumentResponse PDF下载响应，Content由调用方负责关闭
type DocumentResponse struct {
	Content     io.ReadCloser
	Size        int64
	ContentType string
	Filename    string
}

// DocumentService 文档下载业务契约
type DocumentService interface {
	// FetchPDF 构建CDN交付地址并拉取PDF内容用于流式返回
	FetchPDF(ctx context.Context, req DocumentRequest) (*DocumentResponse, error)
}
