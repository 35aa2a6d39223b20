// Package httpclient 出站HTTP调用的公共封装
// 统一JSON/表单/multipart编码、超时、认证与非2xx错误归一
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// defaultUserAgent 出站请求的默认标识
const defaultUserAgent = "cloudinary-search/1.0"

// defaultClient 包级共享客户端,跨请求复用连接池,30秒兜底超时
var defaultClient = &http.Client{Timeout: 30 * time.Second}

// Options 单次请求的可选项
type Options struct {
	// 显式超时,零值时由客户端自身的超时兜底
	Timeout time.Duration
	// 附加请求头
	Headers map[string]string
	// Admin API使用的Basic认证,留空不设置
	BasicAuthUser string
	BasicAuthPass string
	// 控制取消与截止时间
	Context context.Context
	// 注入的HTTP客户端,nil时用包级共享客户端
	Client *http.Client
}

// DefaultOptions 返回背景context的空白选项
func DefaultOptions() *Options {
	return &Options{
		Headers: make(map[string]string),
		Context: context.Background(),
	}
}

// WithTimeout 设置本次请求的显式超时
func (o *Options) WithTimeout(timeout time.Duration) *Options {
	o.Timeout = timeout
	return o
}

// WithHeader 添加请求头
func (o *Options) WithHeader(key, value string) *Options {
	if o.Headers == nil {
		o.Headers = make(map[string]string)
	}
	o.Headers[key] = value
	return o
}

// WithBasicAuth 设置Basic认证
func (o *Options) WithBasicAuth(user, pass string) *Options {
	o.BasicAuthUser = user
	o.BasicAuthPass = pass
	return o
}

// WithContext 设置上下文
func (o *Options) WithContext(ctx context.Context) *Options {
	o.Context = ctx
	return o
}

// WithClient 注入HTTP客户端
func (o *Options) WithClient(client *http.Client) *Options {
	o.Client = client
	return o
}

// DoJSONRequest 发送JSON请求并解析JSON响应
// reqBody和respBody均可为nil,分别表示无请求体和丢弃响应体
func DoJSONRequest(method, url string, reqBody, respBody interface{}, opts ...*Options) error {
	options := pickOptions(opts)

	var reqReader io.Reader
	if reqBody != nil {
		jsonData, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(options.Context, method, url, reqReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return send(req, respBody, options)
}

// DoFormRequest 发送表单编码请求(application/x-www-form-urlencoded)
func DoFormRequest(method, urlStr string, form url.Values, respBody interface{}, opts ...*Options) error {
	options := pickOptions(opts)

	req, err := http.NewRequestWithContext(options.Context, method, urlStr, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return send(req, respBody, options)
}

// MultipartFile multipart请求中的文件部分
type MultipartFile struct {
	FieldName string
	FileName  string
	Reader    io.Reader
}

// DoMultipartRequest 发送multipart/form-data请求,用于文件上传
// fields为普通表单字段,file可为nil表示纯表单multipart
func DoMultipartRequest(method, urlStr string, fields map[string]string, file *MultipartFile, respBody interface{}, opts ...*Options) error {
	options := pickOptions(opts)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to write form field %s: %w", key, err)
		}
	}

	if file != nil {
		part, err := writer.CreateFormFile(file.FieldName, file.FileName)
		if err != nil {
			return fmt.Errorf("failed to create form file: %w", err)
		}
		if _, err := io.Copy(part, file.Reader); err != nil {
			return fmt.Errorf("failed to copy file content: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(options.Context, method, urlStr, &buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return send(req, respBody, options)
}

// PostJSON 发送POST JSON请求的便捷方法
func PostJSON(url string, reqBody, respBody interface{}, opts ...*Options) error {
	return DoJSONRequest(http.MethodPost, url, reqBody, respBody, opts...)
}

// GetJSON 发送GET JSON请求的便捷方法
func GetJSON(url string, respBody interface{}, opts ...*Options) error {
	return DoJSONRequest(http.MethodGet, url, nil, respBody, opts...)
}

// pickOptions 获取选项,未提供时使用默认值
func pickOptions(opts []*Options) *Options {
	if len(opts) > 0 && opts[0] != nil {
		return opts[0]
	}
	return DefaultOptions()
}

// send 发送请求,读取并按需解析JSON响应
func send(req *http.Request, respBody interface{}, options *Options) error {
	for key, value := range options.Headers {
		req.Header.Set(key, value)
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", defaultUserAgent)
	}
	if options.BasicAuthUser != "" || options.BasicAuthPass != "" {
		req.SetBasicAuth(options.BasicAuthUser, options.BasicAuthPass)
	}

	// 显式超时经context下发,注入客户端自身的超时仍然有效,较短者生效
	if options.Timeout > 0 {
		ctx, cancel := context.WithTimeout(req.Context(), options.Timeout)
		defer cancel()
		req = req.WithContext(ctx)
	}

	client := options.Client
	if client == nil {
		client = defaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode/100 != 2 {
		return &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if respBody == nil {
		return nil
	}
	if err := json.Unmarshal(body, respBody); err != nil {
		return fmt.Errorf("failed to unmarshal response body: %w", err)
	}
	return nil
}
