package types

import (
	"net/http"
	"strings"
)

// Response HTTP响应
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// IsSuccess 状态码是否为 2xx
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= http.StatusOK && r.StatusCode < http.StatusMultipleChoices
}

// Endpoint 端点描述：基础URL、路径和已编码的查询串
type Endpoint struct {
	BaseURL string
	Path    string
	Query   string // 包含前导 "?"，为空时省略
}

// URL 完整请求地址
func (e Endpoint) URL() string {
	return strings.TrimRight(e.BaseURL, "/") + e.Path + e.Query
}

func (e Endpoint) String() string {
	return e.URL()
}
