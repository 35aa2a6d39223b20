package services

import (
	"sync"
	"time"

	"github.com/ctcarper/cloudinary-search/internal/application/contracts"
)

// FolderCacheEntry 文件夹列表缓存条目
type FolderCacheEntry struct {
	Folders   []contracts.FolderEntry
	FetchedAt time.Time
}

// FolderCache 文件夹列表TTL缓存
// 进程启动时构造一次并注入使用方；条目要么为空要么完整，不缓存部分状态
type FolderCache struct {
	mu    sync.RWMutex
	entry *FolderCacheEntry
	ttl   time.Duration
	now   func() time.Time
}

// NewFolderCache 创建文件夹缓存
func NewFolderCache(ttl time.Duration) *FolderCache {
	return NewFolderCacheWithClock(ttl, time.Now)
}

// NewFolderCacheWithClock 创建带自定义时钟的文件夹缓存
func NewFolderCacheWithClock(ttl time.Duration, now func() time.Time) *FolderCache {
	return &FolderCache{
		ttl: ttl,
		now: now,
	}
}

// Get 返回未过期的缓存条目，未填充或已过期时返回false
func (c *FolderCache) Get() (*FolderCacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.entry == nil {
		return nil, false
	}
	if c.now().Sub(c.entry.FetchedAt) >= c.ttl {
		return nil, false
	}
	return c.entry, true
}

// Set 整体替换缓存条目并记录填充时间
func (c *FolderCache) Set(folders []contracts.FolderEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entry = &FolderCacheEntry{
		Folders:   folders,
		FetchedAt: c.now(),
	}
}
