package cloudinary

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ctcarper/cloudinary-search/pkg/httpclient"
)

func newTestClient(baseURL string) *Client {
	client := NewClient("demo", "key123", "secret456")
	client.APIBaseURL = baseURL
	client.CDNBaseURL = baseURL
	return client
}

func TestClientQPS(t *testing.T) {
	client := NewClient("demo", "key123", "secret456")

	if got := client.GetQPS(); got != 10 {
		t.Errorf("GetQPS() = %d, want default 10", got)
	}

	client.SetQPS(25)
	if got := client.GetQPS(); got != 25 {
		t.Errorf("GetQPS() after SetQPS(25) = %d, want 25", got)
	}

	client.SetQPS(0)
	if got := client.GetQPS(); got != 0 {
		t.Errorf("GetQPS() after SetQPS(0) = %d, want 0 (unlimited)", got)
	}
}

func TestClientUpload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1_1/demo/image/upload" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			t.Fatalf("failed to parse multipart form: %v", err)
		}

		if r.FormValue("api_key") != "key123" {
			t.Errorf("api_key = %q, want %q", r.FormValue("api_key"), "key123")
		}
		if r.FormValue("folder") != "photos" {
			t.Errorf("folder = %q, want %q", r.FormValue("folder"), "photos")
		}
		if r.FormValue("ocr") != "adv_ocr" {
			t.Errorf("ocr = %q, want %q", r.FormValue("ocr"), "adv_ocr")
		}
		if r.FormValue("timestamp") == "" {
			t.Error("timestamp should not be empty")
		}

		// 服务端按同样规则重算签名
		signed := map[string]string{
			"folder":    r.FormValue("folder"),
			"ocr":       r.FormValue("ocr"),
			"timestamp": r.FormValue("timestamp"),
		}
		if r.FormValue("signature") != SignParams(signed, "secret456") {
			t.Errorf("signature mismatch: got %q", r.FormValue("signature"))
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("failed to read file part: %v", err)
		}
		defer file.Close()
		content, _ := io.ReadAll(file)
		if string(content) != "fake image data" {
			t.Errorf("file content = %q, want %q", string(content), "fake image data")
		}

		json.NewEncoder(w).Encode(UploadResult{
			PublicID: "photos/abc123",
			Format:   "jpg",
			Bytes:    15,
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.Upload(context.Background(), strings.NewReader("fake image data"), "team.jpg", UploadParams{
		Folder: "photos",
		OCR:    true,
	})
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}
	if result.PublicID != "photos/abc123" {
		t.Errorf("PublicID = %q, want %q", result.PublicID, "photos/abc123")
	}
}

func TestClientExplicit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1_1/demo/image/explicit" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}

		if r.FormValue("public_id") != "photos/abc123" {
			t.Errorf("public_id = %q, want %q", r.FormValue("public_id"), "photos/abc123")
		}
		if r.FormValue("type") != "upload" {
			t.Errorf("type = %q, want %q", r.FormValue("type"), "upload")
		}
		if r.FormValue("ocr") != "adv_ocr" {
			t.Errorf("ocr = %q, want %q", r.FormValue("ocr"), "adv_ocr")
		}

		signed := map[string]string{
			"public_id": r.FormValue("public_id"),
			"timestamp": r.FormValue("timestamp"),
			"type":      r.FormValue("type"),
			"ocr":       r.FormValue("ocr"),
		}
		if r.FormValue("signature") != SignParams(signed, "secret456") {
			t.Errorf("signature mismatch: got %q", r.FormValue("signature"))
		}

		json.NewEncoder(w).Encode(UploadResult{
			PublicID: "photos/abc123",
			Info: &AssetInfo{
				OCR: &OCRInfo{
					AdvOCR: &AdvOCRResult{
						Status: "complete",
						Data: []AdvOCRPage{
							{TextAnnotations: []TextAnnotation{{Description: "John Smith, Jane Doe"}}},
						},
					},
				},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	result, err := client.Explicit(context.Background(), "photos/abc123", true)
	if err != nil {
		t.Fatalf("Explicit() error: %v", err)
	}
	if text := result.OCRText(); text != "John Smith, Jane Doe" {
		t.Errorf("OCRText() = %q, want %q", text, "John Smith, Jane Doe")
	}
}

func TestClientAddTag(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1_1/demo/image/tags" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("failed to parse form: %v", err)
		}

		if r.FormValue("command") != "add" {
			t.Errorf("command = %q, want %q", r.FormValue("command"), "add")
		}
		if r.FormValue("tag") != "John Smith" {
			t.Errorf("tag = %q, want %q", r.FormValue("tag"), "John Smith")
		}
		if r.FormValue("public_ids") != "photos/abc123" {
			t.Errorf("public_ids = %q, want %q", r.FormValue("public_ids"), "photos/abc123")
		}

		json.NewEncoder(w).Encode(TagResponse{PublicIDs: []string{"photos/abc123"}})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if err := client.AddTag(context.Background(), "John Smith", "photos/abc123"); err != nil {
		t.Fatalf("AddTag() error: %v", err)
	}
}

func TestClientListRootFolders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1_1/demo/folders" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		user, pass, ok := r.BasicAuth()
		if !ok || user != "key123" || pass != "secret456" {
			t.Errorf("basic auth = %q/%q, want key123/secret456", user, pass)
		}

		json.NewEncoder(w).Encode(FolderListResponse{
			Folders: []Folder{
				{Name: "events", Path: "events"},
				{Name: "teams", Path: "teams"},
			},
			TotalCount: 2,
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	folders, err := client.ListRootFolders(context.Background())
	if err != nil {
		t.Fatalf("ListRootFolders() error: %v", err)
	}
	if len(folders) != 2 {
		t.Fatalf("ListRootFolders() returned %d folders, want 2", len(folders))
	}
	if folders[0].Path != "events" {
		t.Errorf("folders[0].Path = %q, want %q", folders[0].Path, "events")
	}
}

func TestClientListSubFolders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1_1/demo/folders/events" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		json.NewEncoder(w).Encode(FolderListResponse{
			Folders:    []Folder{{Name: "2024", Path: "events/2024"}},
			TotalCount: 1,
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	folders, err := client.ListSubFolders(context.Background(), "events")
	if err != nil {
		t.Fatalf("ListSubFolders() error: %v", err)
	}
	if len(folders) != 1 || folders[0].Path != "events/2024" {
		t.Errorf("ListSubFolders() = %v, want single events/2024", folders)
	}
}

func TestClientListFoldersUnauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"unknown api_key"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ListRootFolders(context.Background())
	if err == nil {
		t.Fatal("ListRootFolders() should fail on 401")
	}

	var statusErr *httpclient.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error should wrap StatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, http.StatusUnauthorized)
	}
}

func TestDeliveryURL(t *testing.T) {
	client := NewClient("demo", "key123", "secret456")

	tests := []struct {
		name       string
		publicID   string
		format     string
		attachment bool
		expected   string
	}{
		{
			name:       "PDF附件下载",
			publicID:   "docs/report",
			format:     "pdf",
			attachment: true,
			expected:   "https://res.cloudinary.com/demo/image/upload/fl_attachment/docs/report.pdf",
		},
		{
			name:       "普通图片地址",
			publicID:   "photos/team",
			format:     "jpg",
			attachment: false,
			expected:   "https://res.cloudinary.com/demo/image/upload/photos/team.jpg",
		},
		{
			name:       "路径含空格时转义",
			publicID:   "my docs/annual report",
			format:     "pdf",
			attachment: true,
			expected:   "https://res.cloudinary.com/demo/image/upload/fl_attachment/my%20docs/annual%20report.pdf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := client.DeliveryURL(tt.publicID, tt.format, tt.attachment)
			if result != tt.expected {
				t.Errorf("DeliveryURL() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestClientDownload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Write([]byte("%PDF-1.4 fake content"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	body, size, contentType, err := client.Download(context.Background(), server.URL+"/demo/image/upload/fl_attachment/doc.pdf")
	if err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	defer body.Close()

	content, _ := io.ReadAll(body)
	if string(content) != "%PDF-1.4 fake content" {
		t.Errorf("content = %q, want pdf bytes", string(content))
	}
	if size != int64(len("%PDF-1.4 fake content")) {
		t.Errorf("size = %d, want %d", size, len("%PDF-1.4 fake content"))
	}
	if contentType != "application/pdf" {
		t.Errorf("contentType = %q, want application/pdf", contentType)
	}
}

func TestClientDownloadNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, _, _, err := client.Download(context.Background(), server.URL+"/missing.pdf")
	if err == nil {
		t.Fatal("Download() should fail on 404")
	}

	var statusErr *httpclient.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error should wrap StatusError, got %T: %v", err, err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want %d", statusErr.StatusCode, http.StatusNotFound)
	}
}
