package exchanges

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"cbat/pkg/exchanges/types"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

// ========== 配置和常量 ==========

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "cbat/1.0.0"
)

// BaseExchange 基础交易所实现：共享的 HTTP 客户端、请求分发和响应解码。
// http.Client 是唯一的共享资源，可被任意数量的调用方并发使用。
type BaseExchange struct {
	// ========== 基础配置 ==========
	id      string
	name    string
	version string

	// ========== 网络配置 ==========
	timeout   time.Duration
	userAgent string
	headers   map[string]string

	// ========== 运行时状态 ==========
	httpClient *http.Client
	validate   *validator.Validate
	log        *logrus.Entry
}

// userAgentTransport 为每个请求设置 User-Agent
type userAgentTransport struct {
	agent string
	base  http.RoundTripper
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.agent)
	return t.base.RoundTrip(req)
}

// ========== 构造函数 ==========

// NewBaseExchange 创建基础交易所实例
func NewBaseExchange(id, name, version string) *BaseExchange {
	base := &BaseExchange{
		id:        id,
		name:      name,
		version:   version,
		timeout:   DefaultTimeout,
		userAgent: DefaultUserAgent,
		headers:   make(map[string]string),
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		log:       logrus.WithField("exchange", id),
	}
	base.httpClient = base.newHTTPClient(http.DefaultTransport)
	return base
}

func (b *BaseExchange) newHTTPClient(rt http.RoundTripper) *http.Client {
	return &http.Client{
		Timeout:   b.timeout,
		Transport: userAgentTransport{agent: b.userAgent, base: rt},
	}
}

// ========== 基础信息方法 ==========

func (b *BaseExchange) GetID() string             { return b.id }
func (b *BaseExchange) GetName() string           { return b.name }
func (b *BaseExchange) GetVersion() string        { return b.version }
func (b *BaseExchange) GetUserAgent() string      { return b.userAgent }
func (b *BaseExchange) GetTimeout() time.Duration { return b.timeout }

// ========== 配置更新方法 ==========

// SetTimeout 设置请求超时，0 表示不限制
func (b *BaseExchange) SetTimeout(timeout time.Duration) {
	b.timeout = timeout
	b.httpClient.Timeout = timeout
}

// SetUserAgent 设置 User-Agent
func (b *BaseExchange) SetUserAgent(agent string) {
	if agent == "" {
		return
	}
	b.userAgent = agent
	if t, ok := b.httpClient.Transport.(userAgentTransport); ok {
		b.httpClient.Transport = userAgentTransport{agent: agent, base: t.base}
	}
}

// SetTransport 替换底层传输层，保留 User-Agent 处理
func (b *BaseExchange) SetTransport(rt http.RoundTripper) {
	if rt == nil {
		rt = http.DefaultTransport
	}
	b.httpClient = b.newHTTPClient(rt)
}

// SetHeader 设置每个请求都携带的头部
func (b *BaseExchange) SetHeader(key, value string) {
	b.headers[key] = value
}

// ========== HTTP 请求方法 ==========

// Request 发送HTTP请求。非 2xx 时同时返回响应和 *HTTPError，便于调用方检查。
func (b *BaseExchange) Request(ctx context.Context, method, url string, headers map[string]string) (*types.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, NewNetworkError("failed to build request", err)
	}

	req.Header.Set("Accept", "application/json")
	for key, value := range b.headers {
		req.Header.Set(key, value)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	httpResp, err := b.httpClient.Do(req)
	if err != nil {
		b.log.WithFields(logrus.Fields{
			"method": method,
			"path":   req.URL.Path,
		}).Errorf("Failed to get response: %v", err)
		return nil, NewNetworkError("HTTP request failed", err)
	}
	defer httpResp.Body.Close()

	response := &types.Response{
		StatusCode: httpResp.StatusCode,
		Headers:    make(map[string]string),
	}
	for k, v := range httpResp.Header {
		if len(v) > 0 {
			response.Headers[k] = v[0]
		}
	}

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, NewNetworkError("failed to read response body", err)
	}
	response.Body = bodyBytes

	if !response.IsSuccess() {
		b.log.WithFields(logrus.Fields{
			"method": method,
			"path":   req.URL.Path,
			"status": response.StatusCode,
		}).Warnf("Failed: %d %s", response.StatusCode, http.StatusText(response.StatusCode))
		return response, NewHTTPError(response.StatusCode, response.Body, response.Headers)
	}

	return response, nil
}

// Get 发送 GET 请求
func (b *BaseExchange) Get(ctx context.Context, url string, headers map[string]string) (*types.Response, error) {
	return b.Request(ctx, http.MethodGet, url, headers)
}

// ========== 响应解码 ==========

// Decode 将响应体解码到 out 并校验必需字段。缺少必需字段时返回 *DecodeError，不会返回部分填充的结果。
func (b *BaseExchange) Decode(resp *types.Response, out interface{}) error {
	target := fmt.Sprintf("%T", out)
	if resp == nil {
		return NewDecodeError(target, nil, fmt.Errorf("empty response"))
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return NewDecodeError(target, resp.Body, err)
	}
	if err := b.validate.Struct(out); err != nil {
		return NewDecodeError(target, resp.Body, err)
	}
	return nil
}
