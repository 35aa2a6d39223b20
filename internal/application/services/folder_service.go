package services

import (
	"context"
	"sort"
	"strings"

	"github.com/ctcarper/cloudinary-search/internal/application/contracts"
	"github.com/ctcarper/cloudinary-search/internal/infrastructure/cloudinary"
	"github.com/ctcarper/cloudinary-search/internal/infrastructure/config"
	"github.com/ctcarper/cloudinary-search/internal/shared/errors"
	"github.com/ctcarper/cloudinary-search/pkg/logger"
	"golang.org/x/sync/singleflight"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FolderService 文件夹查询服务 - 递归拉取上游文件夹层级并做TTL缓存
type FolderService struct {
	config *config.CloudinaryConfig
	client *cloudinary.Client
	cache  *FolderCache
	group  singleflight.Group
}

// NewFolderService 创建文件夹查询服务
func NewFolderService(cfg *config.CloudinaryConfig, client *cloudinary.Client, cache *FolderCache) *FolderService {
	return &FolderService{
		config: cfg,
		client: client,
		cache:  cache,
	}
}

// ListFolders 返回扁平化去重后的全部文件夹
// 缓存未过期时直接返回；过期时并发请求合并为一次上游刷新
func (s *FolderService) ListFolders(ctx context.Context) (*contracts.FolderListResponse, error) {
	// 1. 凭证检查，缺失时不发起任何网络调用
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	// 2. 缓存命中直接返回
	if entry, ok := s.cache.Get(); ok {
		logger.Debug("Folder cache hit", "count", len(entry.Folders), "fetchedAt", entry.FetchedAt)
		return &contracts.FolderListResponse{
			Folders: entry.Folders,
			Total:   len(entry.Folders),
			Cached:  true,
		}, nil
	}

	// 3. 并发刷新合并：同一时刻只有一个调用方真正执行刷新
	result, err, shared := s.group.Do("folders", func() (interface{}, error) {
		// 排队期间缓存可能已被前一次刷新填充
		if entry, ok := s.cache.Get(); ok {
			return entry.Folders, nil
		}
		return s.refreshFolders(ctx)
	})
	if err != nil {
		return nil, err
	}

	folders := result.([]contracts.FolderEntry)
	if shared {
		logger.Debug("Folder refresh shared with concurrent caller", "count", len(folders))
	}

	return &contracts.FolderListResponse{
		Folders: folders,
		Total:   len(folders),
		Cached:  false,
	}, nil
}

// refreshFolders 全量拉取文件夹层级并重建缓存
func (s *FolderService) refreshFolders(ctx context.Context) ([]contracts.FolderEntry, error) {
	// 1. 根层级拉取失败则整体失败，不缓存任何结果
	roots, err := s.client.ListRootFolders(ctx)
	if err != nil {
		return nil, errors.NewUpstreamError("failed to list root folders", err)
	}

	// 2. 递归收集完整路径，set天然去重
	pathSet := make(map[string]bool)
	for _, root := range roots {
		path := root.Path
		if path == "" {
			path = root.Name
		}
		if path == "" || pathSet[path] {
			continue
		}
		pathSet[path] = true
		s.collectSubFolders(ctx, path, pathSet)
	}

	// 3. 展平排序
	folders := flattenFolderPaths(pathSet)

	// 4. 整体写入缓存
	s.cache.Set(folders)
	logger.Info("Folder cache refreshed", "count", len(folders))

	return folders, nil
}

// collectSubFolders 递归拉取子文件夹
// 单个层级失败只记录日志并继续，保留已收集的部分结果
func (s *FolderService) collectSubFolders(ctx context.Context, path string, pathSet map[string]bool) {
	subs, err := s.client.ListSubFolders(ctx, path)
	if err != nil {
		logger.Warn("Failed to list subfolders, keeping partial results", "path", path, "error", err)
		return
	}

	for _, sub := range subs {
		subPath := sub.Path
		if subPath == "" {
			subPath = path + "/" + sub.Name
		}
		// 已收集的路径跳过，同时防止上游返回环状层级导致无限递归
		if pathSet[subPath] {
			continue
		}
		pathSet[subPath] = true
		s.collectSubFolders(ctx, subPath, pathSet)
	}
}

// flattenFolderPaths 将路径集合展平为展示顺序的列表
// 先按完整路径字典序排序，再按显示名做稳定的区域感知重排，显示名相同时保持路径序
func flattenFolderPaths(pathSet map[string]bool) []contracts.FolderEntry {
	paths := make([]string, 0, len(pathSet))
	for path := range pathSet {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	folders := make([]contracts.FolderEntry, 0, len(paths))
	for _, path := range paths {
		folders = append(folders, contracts.FolderEntry{
			Path:        path,
			DisplayName: folderDisplayName(path),
		})
	}

	collator := collate.New(language.English)
	sort.SliceStable(folders, func(i, j int) bool {
		return collator.CompareString(folders[i].DisplayName, folders[j].DisplayName) < 0
	})

	return folders
}

// folderDisplayName 取路径最后一段作为显示名
func folderDisplayName(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}
