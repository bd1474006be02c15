package coinbase

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Config Coinbase 客户端配置
type Config struct {
	BaseURL   string        `json:"baseURL"`   // 请求地址，测试时指向本地服务
	Host      string        `json:"host"`      // 签名 uri 中使用的主机名
	Timeout   time.Duration `json:"timeout"`   // 0 表示不限制
	UserAgent string        `json:"userAgent"` // 为空时使用默认值
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		BaseURL: BaseURL,
		Host:    Host,
		Timeout: 30 * time.Second,
	}
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base url is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid base url: %s", c.BaseURL)
	}
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout: %s", c.Timeout)
	}
	return nil
}

// Clone 克隆配置
func (c *Config) Clone() *Config {
	clone := *c
	clone.BaseURL = strings.TrimRight(clone.BaseURL, "/")
	return &clone
}
