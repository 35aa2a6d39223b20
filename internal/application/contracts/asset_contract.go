package contracts

import (
	"context"
	"io"
)

// AssetUploadRequest 资源上传请求参数（文件本身走multipart）
type AssetUploadRequest struct {
	Folder string `form:"folder" json:"folder"`
	OCR    bool   `form:"ocr" json:"ocr"`
}

// AssetUploadResponse 上传响应
type AssetUploadResponse struct {
	PublicID  string   `json:"public_id"`
	Format    string   `json:"format"`
	Bytes     int64    `json:"bytes"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	SecureURL string   `json:"secure_url"`
	OCRText   string   `json:"ocr_text,omitempty"`
	Tags      []string `json:"tags,omitempty"` // OCR提取并成功写入的标签
}

// AssetOCRRequest 对已有资源执行OCR的请求
type AssetOCRRequest struct {
	PublicID string `json:"public_id" binding:"required"`
	Attach   bool   `json:"attach"` // 是否将提取的标签写回资源
}

// AssetOCRResponse OCR识别响应
type AssetOCRResponse struct {
	PublicID string   `json:"public_id"`
	RawText  string   `json:"raw_text"`
	Tags     []string `json:"tags"`
	Attached []string `json:"attached,omitempty"` // 成功写入的标签
}

// UploadSignatureRequest 页面直传签名请求
type UploadSignatureRequest struct {
	Folder   string `form:"folder" json:"folder"`
	PublicID string `form:"public_id" json:"public_id"`
	OCR      bool   `form:"ocr" json:"ocr"`
}

// UploadSignatureResponse 页面直传签名响应，前端用其直接上传到上游
type UploadSignatureResponse struct {
	Signature string `json:"signature"`
	Timestamp int64  `json:"timestamp"`
	APIKey    string `json:"api_key"`
	CloudName string `json:"cloud_name"`
	Folder    string `json:"folder,omitempty"`
	OCR       string `json:"ocr,omitempty"`
}

// AssetService 资源业务契约
type AssetService interface {
	// UploadAsset 代理上传，OCR开启时提取标签并逐个写回（单个失败不中断）
	UploadAsset(ctx context.Context, req AssetUploadRequest, file io.Reader, filename string) (*AssetUploadResponse, error)
	// RunOCR 对已有资源执行文本识别并提取标签
	RunOCR(ctx context.Context, req AssetOCRRequest) (*AssetOCRResponse, error)
	// CreateUploadSignature 生成页面直传所需的签名参数
	CreateUploadSignature(req UploadSignatureRequest) (*UploadSignatureResponse, error)
}
