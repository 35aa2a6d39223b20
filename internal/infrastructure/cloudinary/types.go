package cloudinary

import "strings"

// UploadParams 上传参数
type UploadParams struct {
	Folder   string   // 目标文件夹，空则上传到根目录
	PublicID string   // 指定公开ID，空则由上游生成
	Tags     []string // 初始标签
	OCR      bool     // 是否执行adv_ocr文本识别
}

// UploadResult 上传/Explicit接口响应
type UploadResult struct {
	PublicID     string     `json:"public_id"`
	Version      int64      `json:"version"`
	Format       string     `json:"format"`
	ResourceType string     `json:"resource_type"`
	Bytes        int64      `json:"bytes"`
	Width        int        `json:"width"`
	Height       int        `json:"height"`
	URL          string     `json:"url"`
	SecureURL    string     `json:"secure_url"`
	CreatedAt    string     `json:"created_at"`
	Tags         []string   `json:"tags"`
	Info         *AssetInfo `json:"info,omitempty"`
}

// AssetInfo 附加处理信息
type AssetInfo struct {
	OCR *OCRInfo `json:"ocr,omitempty"`
}

// OCRInfo OCR识别结果容器
type OCRInfo struct {
	AdvOCR *AdvOCRResult `json:"adv_ocr,omitempty"`
}

// AdvOCRResult adv_ocr插件的识别结果
type AdvOCRResult struct {
	Status string       `json:"status"`
	Data   []AdvOCRPage `json:"data"`
}

// AdvOCRPage 单页识别结果，首个annotation为整页文本
type AdvOCRPage struct {
	TextAnnotations []TextAnnotation `json:"textAnnotations"`
}

// TextAnnotation 文本识别条目
type TextAnnotation struct {
	Locale      string `json:"locale,omitempty"`
	Description string `json:"description"`
}

// OCRText 提取完整识别文本，多页时按页拼接
func (r *UploadResult) OCRText() string {
	if r.Info == nil || r.Info.OCR == nil || r.Info.OCR.AdvOCR == nil {
		return ""
	}

	var pages []string
	for _, page := range r.Info.OCR.AdvOCR.Data {
		if len(page.TextAnnotations) > 0 {
			pages = append(pages, page.TextAnnotations[0].Description)
		}
	}
	return strings.Join(pages, "\n")
}

// Folder 管理API返回的文件夹记录
type Folder struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// FolderListResponse 管理API文件夹列表响应
type FolderListResponse struct {
	Folders    []Folder `json:"folders"`
	TotalCount int      `json:"total_count"`
	NextCursor string   `json:"next_cursor,omitempty"`
}

// TagResponse 标签操作响应
type TagResponse struct {
	PublicIDs []string `json:"public_ids"`
}
