package handlers

import (
	"net/http"

	"github.com/ctcarper/cloudinary-search/internal/application/contracts"
	"github.com/ctcarper/cloudinary-search/internal/application/services"
	httputil "github.com/ctcarper/cloudinary-search/pkg/utils/http"
	"github.com/gin-gonic/gin"
)

type AssetHandler struct {
	container *services.ServiceContainer
}

func NewAssetHandler(container *services.ServiceContainer) *AssetHandler {
	return &AssetHandler{
		container: container,
	}
}

// Upload 上传资源
// @Summary 上传资源
// @Description 代理上传文件到云端,ocr=true时同步执行文本识别并将提取的人名写回为标签
// @Tags 资源管理
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "待上传文件"
// @Param folder formData string false "目标文件夹(留空使用配置的默认文件夹)"
// @Param ocr formData bool false "是否执行OCR识别" default(false)
// @Success 200 {object} map[string]interface{} "上传结果"
// @Failure 400 {object} map[string]interface{} "请求参数错误"
// @Failure 502 {object} map[string]interface{} "上游API失败"
// @Router /assets/upload [post]
func (h *AssetHandler) Upload(c *gin.Context) {
	var req contracts.AssetUploadRequest
	if err := c.ShouldBind(&req); err != nil {
		bindError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httputil.ErrorWithStatus(c, http.StatusBadRequest, "Missing upload file: "+err.Error())
		return
	}

	cfg := h.container.GetConfig()
	if err := validateUploadFile(fileHeader, &cfg.Upload); err != nil {
		httputil.ErrorWithStatus(c, http.StatusBadRequest, err.Error())
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httputil.ErrorWithStatus(c, http.StatusBadRequest, "Failed to open upload file: "+err.Error())
		return
	}
	defer file.Close()

	resp, err := h.container.GetAssetService().UploadAsset(c.Request.Context(), req, file, fileHeader.Filename)
	if err != nil {
		c.Error(err)
		return
	}

	httputil.Success(c, resp)
}

// RunOCR 识别资源文本
// @Summary 识别资源文本
// @Description 对已上传的资源触发OCR识别并提取人名标签,attach=true时将标签写回资源
// @Tags 资源管理
// @Accept json
// @Produce json
// @Param request body contracts.AssetOCRRequest true "识别参数"
// @Success 200 {object} map[string]interface{} "识别结果"
// @Failure 400 {object} map[string]interface{} "请求参数错误"
// @Failure 404 {object} map[string]interface{} "资源不存在"
// @Failure 502 {object} map[string]interface{} "上游API失败"
// @Router /assets/ocr [post]
func (h *AssetHandler) RunOCR(c *gin.Context) {
	var req contracts.AssetOCRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.container.GetAssetService().RunOCR(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	httputil.Success(c, resp)
}

// CreateUploadSignature 生成直传签名
// @Summary 生成直传签名
// @Description 生成页面直传所需的签名参数,前端携带返回参数直接上传到云端
// @Tags 资源管理
// @Produce json
// @Param folder query string false "目标文件夹(留空使用配置的默认文件夹)"
// @Param public_id query string false "指定公开ID"
// @Param ocr query bool false "是否执行OCR识别" default(false)
// @Success 200 {object} map[string]interface{} "签名参数"
// @Failure 500 {object} map[string]interface{} "服务端凭证缺失"
// @Router /upload/signature [get]
func (h *AssetHandler) CreateUploadSignature(c *gin.Context) {
	var req contracts.UploadSignatureRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	resp, err := h.container.GetAssetService().CreateUploadSignature(req)
	if err != nil {
		c.Error(err)
		return
	}

	httputil.Success(c, resp)
}
