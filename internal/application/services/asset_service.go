package services

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ctcarper/cloudinary-search/internal/application/contracts"
	"github.com/ctcarper/cloudinary-search/internal/infrastructure/cloudinary"
	"github.com/ctcarper/cloudinary-search/internal/infrastructure/config"
	"github.com/ctcarper/cloudinary-search/internal/shared/errors"
	"github.com/ctcarper/cloudinary-search/internal/shared/utils"
	"github.com/ctcarper/cloudinary-search/pkg/httpclient"
	"github.com/ctcarper/cloudinary-search/pkg/logger"
)

// AssetService 资源业务服务 - 编排上传、OCR识别与标签写回
type AssetService struct {
	config   *config.CloudinaryConfig
	client   *cloudinary.Client
	notifier contracts.NotificationService
}

// NewAssetService 创建资源业务服务
func NewAssetService(cfg *config.CloudinaryConfig, client *cloudinary.Client, notifier contracts.NotificationService) *AssetService {
	return &AssetService{
		config:   cfg,
		client:   client,
		notifier: notifier,
	}
}

// UploadAsset 代理上传资源，OCR开启时从识别文本提取标签并逐个写回
func (s *AssetService) UploadAsset(ctx context.Context, req contracts.AssetUploadRequest, file io.Reader, filename string) (*contracts.AssetUploadResponse, error) {
	// 1. 凭证检查
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	// 2. 目标文件夹，未指定时使用配置的默认文件夹
	folder := req.Folder
	if folder == "" {
		folder = s.config.UploadFolder
	}

	logger.Info("Uploading asset", "filename", filename, "folder", folder, "ocr", req.OCR)

	// 3. 上传
	result, err := s.client.Upload(ctx, file, filename, cloudinary.UploadParams{
		Folder: folder,
		OCR:    req.OCR,
	})
	if err != nil {
		return nil, errors.NewUpstreamError("failed to upload asset", err)
	}

	response := &contracts.AssetUploadResponse{
		PublicID:  result.PublicID,
		Format:    result.Format,
		Bytes:     result.Bytes,
		Width:     result.Width,
		Height:    result.Height,
		SecureURL: result.SecureURL,
	}

	// 4. OCR文本提取标签并写回，单个失败不影响上传结果
	if req.OCR {
		rawText := result.OCRText()
		response.OCRText = rawText
		tags := utils.ExtractTags(rawText)
		if len(tags) > 0 {
			response.Tags = s.attachTags(ctx, result.PublicID, tags)
		}
	}

	if s.notifier != nil {
		s.notifier.NotifyUploadCompleted(result.PublicID, response.Tags)
	}

	logger.Info("Asset uploaded", "publicID", result.PublicID, "bytes", result.Bytes, "tags", len(response.Tags))
	return response, nil
}

// RunOCR 对已上传的资源执行文本识别并提取标签
func (s *AssetService) RunOCR(ctx context.Context, req contracts.AssetOCRRequest) (*contracts.AssetOCRResponse, error) {
	// 1. 凭证检查
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	logger.Info("Running OCR on asset", "publicID", req.PublicID, "attach", req.Attach)

	// 2. 触发识别
	result, err := s.client.Explicit(ctx, req.PublicID, true)
	if err != nil {
		if httpclient.IsStatus(err, http.StatusNotFound) {
			return nil, errors.NewServiceError(errors.ErrorCodeNotFound, "asset not found").
				WithDetails(map[string]interface{}{"public_id": req.PublicID})
		}
		return nil, errors.NewUpstreamError("failed to run ocr on asset", err)
	}

	// 3. 提取标签
	rawText := result.OCRText()
	tags := utils.ExtractTags(rawText)

	response := &contracts.AssetOCRResponse{
		PublicID: req.PublicID,
		RawText:  rawText,
		Tags:     tags,
	}

	// 4. 按需写回标签
	if req.Attach && len(tags) > 0 {
		response.Attached = s.attachTags(ctx, req.PublicID, tags)
	}

	if s.notifier != nil {
		s.notifier.NotifyOCRCompleted(req.PublicID, len(tags))
	}

	logger.Info("OCR completed", "publicID", req.PublicID, "textLength", len(rawText), "tags", len(tags))
	return response, nil
}

// CreateUploadSignature 生成页面直传所需的签名参数
// 前端携带返回的全部参数直接上传到上游，无需经过本服务中转文件内容
func (s *AssetService) CreateUploadSignature(req contracts.UploadSignatureRequest) (*contracts.UploadSignatureResponse, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	folder := req.Folder
	if folder == "" {
		folder = s.config.UploadFolder
	}

	ts := time.Now().Unix()
	params := map[string]string{
		"timestamp": strconv.FormatInt(ts, 10),
	}
	if folder != "" {
		params["folder"] = folder
	}
	if req.PublicID != "" {
		params["public_id"] = req.PublicID
	}

	var ocr string
	if req.OCR {
		ocr = "adv_ocr"
		params["ocr"] = ocr
	}

	return &contracts.UploadSignatureResponse{
		Signature: cloudinary.SignParams(params, s.config.APISecret),
		Timestamp: ts,
		APIKey:    s.config.APIKey,
		CloudName: s.config.CloudName,
		Folder:    folder,
		OCR:       ocr,
	}, nil
}

// attachTags 将标签逐个写回资源，单个失败记录日志并继续
func (s *AssetService) attachTags(ctx context.Context, publicID string, tags []string) []string {
	attached := make([]string, 0, len(tags))
	for _, tag := range tags {
		if err := s.client.AddTag(ctx, tag, publicID); err != nil {
			logger.Warn("Failed to attach tag, continuing", "publicID", publicID, "tag", tag, "error", err)
			if s.notifier != nil {
				s.notifier.NotifyTagFailed(publicID, tag, err)
			}
			continue
		}
		attached = append(attached, tag)
	}
	return attached
}
