package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/ctcarper/cloudinary-search/internal/application/contracts"
	"github.com/ctcarper/cloudinary-search/internal/infrastructure/cloudinary"
	"github.com/ctcarper/cloudinary-search/internal/infrastructure/config"
	"github.com/ctcarper/cloudinary-search/internal/shared/errors"
	"github.com/ctcarper/cloudinary-search/pkg/httpclient"
	"github.com/ctcarper/cloudinary-search/pkg/logger"
)

// DocumentService 文档下载服务 - 构建CDN交付地址并拉取PDF内容
type DocumentService struct {
	config *config.CloudinaryConfig
	client *cloudinary.Client
}

// NewDocumentService 创建文档下载服务
func NewDocumentService(cfg *config.CloudinaryConfig, client *cloudinary.Client) *DocumentService {
	return &DocumentService{
		config: cfg,
		client: client,
	}
}

// FetchPDF 拉取PDF内容用于流式返回，Content由调用方负责关闭
func (s *DocumentService) FetchPDF(ctx context.Context, req contracts.DocumentRequest) (*contracts.DocumentResponse, error) {
	// 1. 凭证与参数检查
	if err := s.config.Validate(); err != nil {
		return nil, err
	}
	if req.PublicID == "" {
		return nil, errors.NewServiceError(errors.ErrorCodeInvalidRequest, "public_id is required")
	}

	// 2. 带下载标记的交付地址
	url := s.client.DeliveryURL(req.PublicID, "pdf", true)
	logger.Debug("Fetching PDF", "publicID", req.PublicID, "url", url)

	// 3. 拉取内容
	content, size, contentType, err := s.client.Download(ctx, url)
	if err != nil {
		if httpclient.IsStatus(err, http.StatusNotFound) {
			return nil, errors.NewServiceError(errors.ErrorCodeNotFound, "document not found").
				WithDetails(map[string]interface{}{"public_id": req.PublicID})
		}
		return nil, errors.NewUpstreamError("failed to fetch document", err)
	}

	if contentType == "" {
		contentType = "application/pdf"
	}

	return &contracts.DocumentResponse{
		Content:     content,
		Size:        size,
		ContentType: contentType,
		Filename:    resolveDocumentFilename(req),
	}, nil
}

// resolveDocumentFilename 确定下载文件名，未指定时取公开ID最后一段
func resolveDocumentFilename(req contracts.DocumentRequest) string {
	name := req.Filename
	if name == "" {
		name = req.PublicID
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			name = name[idx+1:]
		}
	}
	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name += ".pdf"
	}
	return name
}
