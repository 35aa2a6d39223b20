package cloudinary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ctcarper/cloudinary-search/internal/infrastructure/ratelimit"
	"github.com/ctcarper/cloudinary-search/pkg/httpclient"
)

const (
	defaultAPIBaseURL = "https://api.cloudinary.com"
	defaultCDNBaseURL = "https://res.cloudinary.com"
)

// Client Cloudinary客户端，覆盖上传API、管理API和CDN下载
type Client struct {
	CloudName   string
	APIKey      string
	APISecret   string
	APIBaseURL  string
	CDNBaseURL  string
	httpClient  *http.Client
	rateLimiter *ratelimit.Limiter
}

// NewClient 创建新的Cloudinary客户端
func NewClient(cloudName, apiKey, apiSecret string) *Client {
	return NewClientWithQPS(cloudName, apiKey, apiSecret, 10)
}

// NewClientWithQPS 创建带QPS限制的Cloudinary客户端
func NewClientWithQPS(cloudName, apiKey, apiSecret string, qps int) *Client {
	return &Client{
		CloudName:  cloudName,
		APIKey:     apiKey,
		APISecret:  apiSecret,
		APIBaseURL: defaultAPIBaseURL,
		CDNBaseURL: defaultCDNBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		rateLimiter: ratelimit.New(qps),
	}
}

// SetQPS 设置QPS限制
func (c *Client) SetQPS(qps int) {
	if c.rateLimiter != nil {
		c.rateLimiter.SetQPS(qps)
	}
}

// GetQPS 获取当前QPS限制
func (c *Client) GetQPS() int {
	if c.rateLimiter != nil {
		return c.rateLimiter.QPS()
	}
	return 0
}

// Upload 上传文件到Cloudinary，按需开启adv_ocr识别
func (c *Client) Upload(ctx context.Context, file io.Reader, filename string, params UploadParams) (*UploadResult, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	// 构建签名参数集
	signed := map[string]string{
		"timestamp": c.timestamp(),
	}
	if params.Folder != "" {
		signed["folder"] = params.Folder
	}
	if params.PublicID != "" {
		signed["public_id"] = params.PublicID
	}
	if len(params.Tags) > 0 {
		signed["tags"] = strings.Join(params.Tags, ",")
	}
	if params.OCR {
		signed["ocr"] = "adv_ocr"
	}

	fields := map[string]string{
		"api_key":   c.APIKey,
		"signature": SignParams(signed, c.APISecret),
	}
	for key, value := range signed {
		fields[key] = value
	}

	opts := httpclient.DefaultOptions().
		WithContext(ctx).
		WithClient(c.httpClient)

	var result UploadResult
	uploadFile := &httpclient.MultipartFile{
		FieldName: "file",
		FileName:  filename,
		Reader:    file,
	}
	if err := httpclient.DoMultipartRequest("POST", c.apiURL("image/upload"), fields, uploadFile, &result, opts); err != nil {
		return nil, fmt.Errorf("failed to upload asset: %w", err)
	}

	return &result, nil
}

// Explicit 对已上传的资源执行处理，目前用于触发adv_ocr文本识别
func (c *Client) Explicit(ctx context.Context, publicID string, runOCR bool) (*UploadResult, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	signed := map[string]string{
		"public_id": publicID,
		"timestamp": c.timestamp(),
		"type":      "upload",
	}
	if runOCR {
		signed["ocr"] = "adv_ocr"
	}

	form := url.Values{}
	for key, value := range signed {
		form.Set(key, value)
	}
	form.Set("api_key", c.APIKey)
	form.Set("signature", SignParams(signed, c.APISecret))

	opts := httpclient.DefaultOptions().
		WithContext(ctx).
		WithClient(c.httpClient)

	var result UploadResult
	if err := httpclient.DoFormRequest("POST", c.apiURL("image/explicit"), form, &result, opts); err != nil {
		return nil, fmt.Errorf("failed to run explicit on asset: %w", err)
	}

	return &result, nil
}

// AddTag 为一个或多个资源追加标签
func (c *Client) AddTag(ctx context.Context, tag string, publicIDs ...string) error {
	if err := c.wait(ctx); err != nil {
		return err
	}

	signed := map[string]string{
		"command":    "add",
		"public_ids": strings.Join(publicIDs, ","),
		"tag":        tag,
		"timestamp":  c.timestamp(),
	}

	form := url.Values{}
	for key, value := range signed {
		form.Set(key, value)
	}
	form.Set("api_key", c.APIKey)
	form.Set("signature", SignParams(signed, c.APISecret))

	opts := httpclient.DefaultOptions().
		WithContext(ctx).
		WithClient(c.httpClient)

	var result TagResponse
	if err := httpclient.DoFormRequest("POST", c.apiURL("image/tags"), form, &result, opts); err != nil {
		return fmt.Errorf("failed to add tag %s: %w", tag, err)
	}

	return nil
}

// ListRootFolders 获取根级文件夹列表
func (c *Client) ListRootFolders(ctx context.Context) ([]Folder, error) {
	return c.listFolders(ctx, c.apiURL("folders"))
}

// ListSubFolders 获取指定路径下的子文件夹列表
func (c *Client) ListSubFolders(ctx context.Context, path string) ([]Folder, error) {
	return c.listFolders(ctx, c.apiURL("folders/"+escapePath(path)))
}

// listFolders 调用管理API文件夹接口，使用Basic认证
func (c *Client) listFolders(ctx context.Context, urlStr string) ([]Folder, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	opts := httpclient.DefaultOptions().
		WithContext(ctx).
		WithClient(c.httpClient).
		WithBasicAuth(c.APIKey, c.APISecret)

	var resp FolderListResponse
	if err := httpclient.GetJSON(urlStr, &resp, opts); err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}

	return resp.Folders, nil
}

// DeliveryURL 构建CDN交付地址，attachment为true时带下载标记
func (c *Client) DeliveryURL(publicID, format string, attachment bool) string {
	base := c.CDNBaseURL + "/" + c.CloudName + "/image/upload/"
	if attachment {
		base += "fl_attachment/"
	}

	name := publicID
	if format != "" {
		name += "." + format
	}
	return base + escapePath(name)
}

// Download 下载CDN资源，调用方负责关闭返回的Body
func (c *Client) Download(ctx context.Context, urlStr string) (io.ReadCloser, int64, string, error) {
	if err := c.wait(ctx); err != nil {
		return nil, 0, "", err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", urlStr, nil)
	if err != nil {
		return nil, 0, "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, "", fmt.Errorf("failed to download resource: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, 0, "", &httpclient.StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return resp.Body, resp.ContentLength, resp.Header.Get("Content-Type"), nil
}

// apiURL 拼接API地址
func (c *Client) apiURL(endpoint string) string {
	return c.APIBaseURL + "/v1_1/" + c.CloudName + "/" + endpoint
}

// timestamp 当前Unix时间戳字符串，用于签名
func (c *Client) timestamp() string {
	return strconv.FormatInt(time.Now().Unix(), 10)
}

// wait 等待速率限制令牌
func (c *Client) wait(ctx context.Context) error {
	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit exceeded: %w", err)
		}
	}
	return nil
}

// escapePath 对路径做URL转义，保留层级分隔符
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}
