package handlers

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/ctcarper/cloudinary-search/internal/infrastructure/config"
)

// validateUploadFile 校验上传文件大小与扩展名
func validateUploadFile(header *multipart.FileHeader, cfg *config.UploadConfig) error {
	maxBytes := cfg.MaxFileSizeMB << 20
	if maxBytes > 0 && header.Size > maxBytes {
		return fmt.Errorf("file size %d bytes exceeds limit of %dMB", header.Size, cfg.MaxFileSizeMB)
	}

	if len(cfg.AllowedExts) == 0 {
		return nil
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(header.Filename), "."))
	for _, allowed := range cfg.AllowedExts {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}
	return fmt.Errorf("file extension %q is not allowed", ext)
}
