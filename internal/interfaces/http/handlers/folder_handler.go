package handlers

import (
	"github.com/ctcarper/cloudinary-search/internal/application/services"
	httputil "github.com/ctcarper/cloudinary-search/pkg/utils/http"
	"github.com/gin-gonic/gin"
)

type FolderHandler struct {
	container *services.ServiceContainer
}

func NewFolderHandler(container *services.ServiceContainer) *FolderHandler {
	return &FolderHandler{
		container: container,
	}
}

// ListFolders 获取文件夹列表
// @Summary 获取文件夹列表
// @Description 递归获取全部文件夹并按显示名排序,结果缓存24小时
// @Tags 文件夹管理
// @Produce json
// @Success 200 {object} map[string]interface{} "文件夹列表"
// @Failure 500 {object} map[string]interface{} "服务端凭证缺失"
// @Failure 502 {object} map[string]interface{} "上游API失败"
// @Router /folders [get]
func (h *FolderHandler) ListFolders(c *gin.Context) {
	resp, err := h.container.GetFolderService().ListFolders(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	httputil.Success(c, resp)
}
