package handlers

import (
	"fmt"
	"net/http"

	"github.com/ctcarper/cloudinary-search/internal/application/contracts"
	"github.com/ctcarper/cloudinary-search/internal/application/services"
	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	container *services.ServiceContainer
}

func NewDocumentHandler(container *services.ServiceContainer) *DocumentHandler {
	return &DocumentHandler{
		container: container,
	}
}

// Download 下载PDF文档
// @Summary 下载PDF文档
// @Description 经由CDN拉取PDF内容并以附件形式流式返回
// @Tags 文档管理
// @Produce application/pdf
// @Param public_id query string true "资源公开ID"
// @Param filename query string false "下载文件名(留空取公开ID最后一段)"
// @Success 200 {file} binary "PDF内容"
// @Failure 400 {object} map[string]interface{} "请求参数错误"
// @Failure 404 {object} map[string]interface{} "文档不存在"
// @Failure 502 {object} map[string]interface{} "上游API失败"
// @Router /documents/pdf [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	var req contracts.DocumentRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	doc, err := h.container.GetDocumentService().FetchPDF(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}
	defer doc.Content.Close()

	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", doc.Filename),
	}
	c.DataFromReader(http.StatusOK, doc.Size, doc.ContentType, doc.Content, extraHeaders)
}
