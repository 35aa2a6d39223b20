package contracts

import "context"

// FolderEntry 文件夹记录，Path为完整层级路径，DisplayName为末级名称
type FolderEntry struct {
	Path        string `json:"path"`
	DisplayName string `json:"display_name"`
}

// FolderListResponse 文件夹列表响应
type FolderListResponse struct {
	Folders []FolderEntry `json:"folders"`
	Total   int           `json:"total"`
	Cached  bool          `json:"cached"`
}

// FolderService 文件夹查询业务契约
type FolderService interface {
	// ListFolders 返回扁平化去重后的全部文件夹，按显示名排序
	// 缓存未过期时直接返回缓存结果，不发起上游调用
	ListFolders(ctx context.Context) (*FolderListResponse, error)
}
