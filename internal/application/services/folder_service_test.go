package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ctcarper/cloudinary-search/internal/infrastructure/cloudinary"
	"github.com/ctcarper/cloudinary-search/internal/infrastructure/config"
	"github.com/ctcarper/cloudinary-search/internal/shared/errors"
)

// folderUpstream 模拟上游文件夹接口，带调用计数
type folderUpstream struct {
	mu        sync.Mutex
	rootCalls int
	subCalls  int
	roots     []cloudinary.Folder
	subs      map[string][]cloudinary.Folder
	failRoot  bool
	failPaths map[string]bool
	delay     time.Duration
}

func (u *folderUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1_1/demo/folders")
	path = strings.TrimPrefix(path, "/")

	u.mu.Lock()
	if path == "" {
		u.rootCalls++
	} else {
		u.subCalls++
	}
	failRoot := u.failRoot
	failPath := u.failPaths[path]
	delay := u.delay
	u.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	if path == "" {
		if failRoot {
			http.Error(w, `{"error":{"message":"upstream down"}}`, http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(cloudinary.FolderListResponse{Folders: u.roots, TotalCount: len(u.roots)})
		return
	}

	if failPath {
		http.Error(w, `{"error":{"message":"upstream down"}}`, http.StatusInternalServerError)
		return
	}
	folders := u.subs[path]
	json.NewEncoder(w).Encode(cloudinary.FolderListResponse{Folders: folders, TotalCount: len(folders)})
}

func (u *folderUpstream) rootCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.rootCalls
}

func (u *folderUpstream) subCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.subCalls
}

func (u *folderUpstream) setFailRoot(fail bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.failRoot = fail
}

func newFolderTestService(t *testing.T, upstream *folderUpstream, clock *fakeClock) (*FolderService, *FolderCache) {
	t.Helper()

	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	client := cloudinary.NewClientWithQPS("demo", "key123", "secret456", 0)
	client.APIBaseURL = server.URL

	cfg := &config.CloudinaryConfig{
		CloudName: "demo",
		APIKey:    "key123",
		APISecret: "secret456",
	}
	cache := NewFolderCacheWithClock(24*time.Hour, clock.Now)
	return NewFolderService(cfg, client, cache), cache
}

func assertFolderPaths(t *testing.T, got []string, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d folders %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("folder[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFolderServiceListFolders_CacheIdempotence(t *testing.T) {
	upstream := &folderUpstream{
		roots: []cloudinary.Folder{
			{Name: "events", Path: "events"},
			{Name: "teams", Path: "teams"},
		},
		subs: map[string][]cloudinary.Folder{
			"events": {{Name: "archive", Path: "events/archive"}},
		},
	}
	service, _ := newFolderTestService(t, upstream, newFakeClock())

	first, err := service.ListFolders(context.Background())
	if err != nil {
		t.Fatalf("first ListFolders failed: %v", err)
	}
	if first.Cached {
		t.Error("first call should not be served from cache")
	}

	second, err := service.ListFolders(context.Background())
	if err != nil {
		t.Fatalf("second ListFolders failed: %v", err)
	}
	if !second.Cached {
		t.Error("second call within TTL should be served from cache")
	}

	if upstream.rootCount() != 1 {
		t.Errorf("root folder endpoint called %d times, want 1", upstream.rootCount())
	}

	if len(first.Folders) != len(second.Folders) {
		t.Fatalf("cached result has %d folders, fresh result had %d", len(second.Folders), len(first.Folders))
	}
	for i := range first.Folders {
		if first.Folders[i] != second.Folders[i] {
			t.Errorf("folder[%d] differs between calls: %v vs %v", i, first.Folders[i], second.Folders[i])
		}
	}
}

func TestFolderServiceListFolders_CacheExpiry(t *testing.T) {
	clock := newFakeClock()
	upstream := &folderUpstream{
		roots: []cloudinary.Folder{{Name: "events", Path: "events"}},
	}
	service, _ := newFolderTestService(t, upstream, clock)

	if _, err := service.ListFolders(context.Background()); err != nil {
		t.Fatalf("initial ListFolders failed: %v", err)
	}

	// TTL内仍走缓存
	clock.Advance(12 * time.Hour)
	resp, err := service.ListFolders(context.Background())
	if err != nil {
		t.Fatalf("ListFolders within TTL failed: %v", err)
	}
	if !resp.Cached || upstream.rootCount() != 1 {
		t.Errorf("within TTL: cached = %v, root calls = %d, want true and 1", resp.Cached, upstream.rootCount())
	}

	// 超过TTL后重新拉取
	clock.Advance(12 * time.Hour)
	resp, err = service.ListFolders(context.Background())
	if err != nil {
		t.Fatalf("ListFolders after TTL failed: %v", err)
	}
	if resp.Cached {
		t.Error("call after TTL should trigger a fresh fetch")
	}
	if upstream.rootCount() != 2 {
		t.Errorf("root folder endpoint called %d times after expiry, want 2", upstream.rootCount())
	}
}

func TestFolderServiceListFolders_DeduplicatesPaths(t *testing.T) {
	// 上游返回重复条目，结果中每个路径只出现一次且不重复遍历
	upstream := &folderUpstream{
		roots: []cloudinary.Folder{
			{Name: "events", Path: "events"},
			{Name: "events", Path: "events"},
		},
		subs: map[string][]cloudinary.Folder{
			"events": {
				{Name: "archive", Path: "events/archive"},
				{Name: "archive", Path: "events/archive"},
			},
		},
	}
	service, _ := newFolderTestService(t, upstream, newFakeClock())

	resp, err := service.ListFolders(context.Background())
	if err != nil {
		t.Fatalf("ListFolders failed: %v", err)
	}

	got := make([]string, 0, len(resp.Folders))
	for _, folder := range resp.Folders {
		got = append(got, folder.Path)
	}
	assertFolderPaths(t, got, []string{"events/archive", "events"})

	if upstream.subCount() != 2 {
		t.Errorf("subfolder endpoint called %d times, want 2 (events and events/archive once each)", upstream.subCount())
	}
}

func TestFolderServiceListFolders_SortByDisplayName(t *testing.T) {
	upstream := &folderUpstream{
		roots: []cloudinary.Folder{
			{Name: "zebra", Path: "zebra"},
			{Name: "apple", Path: "apple"},
		},
		subs: map[string][]cloudinary.Folder{
			"zebra": {{Name: "sub", Path: "zebra/sub"}},
		},
	}
	service, _ := newFolderTestService(t, upstream, newFakeClock())

	resp, err := service.ListFolders(context.Background())
	if err != nil {
		t.Fatalf("ListFolders failed: %v", err)
	}

	names := make([]string, 0, len(resp.Folders))
	for _, folder := range resp.Folders {
		names = append(names, folder.DisplayName)
	}
	// 按显示名排序，zebra/sub的显示名sub排在zebra前
	assertFolderPaths(t, names, []string{"apple", "sub", "zebra"})
}

func TestFolderServiceListFolders_PartialFailure(t *testing.T) {
	// 单个子层级失败不影响整体结果
	upstream := &folderUpstream{
		roots: []cloudinary.Folder{
			{Name: "events", Path: "events"},
			{Name: "teams", Path: "teams"},
			{Name: "misc", Path: "misc"},
		},
		subs: map[string][]cloudinary.Folder{
			"events": {{Name: "archive", Path: "events/archive"}},
		},
		failPaths: map[string]bool{"teams": true},
	}
	service, _ := newFolderTestService(t, upstream, newFakeClock())

	resp, err := service.ListFolders(context.Background())
	if err != nil {
		t.Fatalf("ListFolders should keep partial results, got error: %v", err)
	}

	got := make([]string, 0, len(resp.Folders))
	for _, folder := range resp.Folders {
		got = append(got, folder.Path)
	}
	assertFolderPaths(t, got, []string{"events/archive", "events", "misc", "teams"})
}

func TestFolderServiceListFolders_RootFailure(t *testing.T) {
	upstream := &folderUpstream{
		roots:    []cloudinary.Folder{{Name: "events", Path: "events"}},
		failRoot: true,
	}
	service, cache := newFolderTestService(t, upstream, newFakeClock())

	_, err := service.ListFolders(context.Background())
	if err == nil {
		t.Fatal("ListFolders should fail when the root listing fails")
	}
	if !errors.IsCode(err, errors.ErrorCodeUpstream) {
		t.Errorf("error code = %v, want %v", errors.CodeOf(err), errors.ErrorCodeUpstream)
	}
	if _, ok := cache.Get(); ok {
		t.Error("failed refresh must not populate the cache")
	}

	// 上游恢复后重新拉取成功
	upstream.setFailRoot(false)
	resp, err := service.ListFolders(context.Background())
	if err != nil {
		t.Fatalf("ListFolders after upstream recovery failed: %v", err)
	}
	if len(resp.Folders) != 1 {
		t.Errorf("got %d folders after recovery, want 1", len(resp.Folders))
	}
}

func TestFolderServiceListFolders_MissingCredentials(t *testing.T) {
	upstream := &folderUpstream{
		roots: []cloudinary.Folder{{Name: "events", Path: "events"}},
	}
	server := httptest.NewServer(upstream)
	defer server.Close()

	client := cloudinary.NewClientWithQPS("demo", "key123", "secret456", 0)
	client.APIBaseURL = server.URL

	cfg := &config.CloudinaryConfig{CloudName: "demo", APIKey: "", APISecret: "secret456"}
	service := NewFolderService(cfg, client, NewFolderCache(24*time.Hour))

	_, err := service.ListFolders(context.Background())
	if err == nil {
		t.Fatal("ListFolders should fail when credentials are missing")
	}
	if !errors.IsCode(err, errors.ErrorCodeConfig) {
		t.Errorf("error code = %v, want %v", errors.CodeOf(err), errors.ErrorCodeConfig)
	}
	if upstream.rootCount() != 0 {
		t.Errorf("upstream called %d times with missing credentials, want 0", upstream.rootCount())
	}
}

func TestFolderServiceListFolders_ConcurrentRefreshCollapsed(t *testing.T) {
	upstream := &folderUpstream{
		roots: []cloudinary.Folder{{Name: "events", Path: "events"}},
		delay: 50 * time.Millisecond,
	}
	service, _ := newFolderTestService(t, upstream, newFakeClock())

	const callers = 5
	var wg sync.WaitGroup
	errs := make([]error, callers)
	totals := make([]int, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			resp, err := service.ListFolders(context.Background())
			errs[idx] = err
			if err == nil {
				totals[idx] = resp.Total
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		if errs[i] != nil {
			t.Fatalf("caller %d failed: %v", i, errs[i])
		}
		if totals[i] != 1 {
			t.Errorf("caller %d got %d folders, want 1", i, totals[i])
		}
	}

	if upstream.rootCount() != 1 {
		t.Errorf("concurrent callers triggered %d upstream fetches, want 1", upstream.rootCount())
	}
}
