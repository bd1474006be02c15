package exchanges

import (
	"errors"
	"fmt"
	"net/http"
)

// ========== 错误类型层次结构 ==========

// Error 基础错误接口
type Error interface {
	error
	GetType() string
	GetCode() int
	GetDetails() string
}

// BaseError 基础错误结构
type BaseError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	Details string `json:"details"`
	Code    int    `json:"code"`
}

func (e *BaseError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

func (e *BaseError) GetType() string {
	return e.Type
}

func (e *BaseError) GetCode() int {
	return e.Code
}

func (e *BaseError) GetDetails() string {
	return e.Details
}

// ========== 配置和密钥错误 ==========

// ConfigurationError 缺少必需的凭证配置，发生在任何网络请求之前
type ConfigurationError struct {
	*BaseError
	Variable string
}

func NewConfigurationError(variable string) *ConfigurationError {
	return &ConfigurationError{
		BaseError: &BaseError{
			Type:    "ConfigurationError",
			Message: fmt.Sprintf("%s is not set", variable),
		},
		Variable: variable,
	}
}

// KeyFormatError 私钥不是有效的 SEC1 EC 密钥，或无法转换为 PKCS8
type KeyFormatError struct {
	*BaseError
	cause error
}

func NewKeyFormatError(message string, cause error) *KeyFormatError {
	e := &KeyFormatError{
		BaseError: &BaseError{
			Type:    "KeyFormatError",
			Message: message,
		},
		cause: cause,
	}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

func (e *KeyFormatError) Unwrap() error { return e.cause }

// SigningError 密钥结构有效但签名失败
type SigningError struct {
	*BaseError
	cause error
}

func NewSigningError(cause error) *SigningError {
	e := &SigningError{
		BaseError: &BaseError{
			Type:    "SigningError",
			Message: "failed to sign request token",
		},
		cause: cause,
	}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

func (e *SigningError) Unwrap() error { return e.cause }

// ========== 网络和连接错误 ==========

// NetworkError 网络错误，保留底层传输错误
type NetworkError struct {
	*BaseError
	cause error
}

func NewNetworkError(message string, cause error) *NetworkError {
	e := &NetworkError{
		BaseError: &BaseError{
			Type:    "NetworkError",
			Message: message,
		},
		cause: cause,
	}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

func (e *NetworkError) Unwrap() error { return e.cause }

// ========== HTTP 状态错误 ==========

// HTTPError 交易所返回非 2xx 状态码。响应体和头部保留给调用方检查。
type HTTPError struct {
	*BaseError
	body   []byte
	header map[string]string
}

func NewHTTPError(statusCode int, body []byte, header map[string]string) *HTTPError {
	return &HTTPError{
		BaseError: &BaseError{
			Type:    "HTTPError",
			Message: fmt.Sprintf("server responded with a %d status code", statusCode),
			Details: http.StatusText(statusCode),
			Code:    statusCode,
		},
		body:   body,
		header: header,
	}
}

func (e *HTTPError) StatusCode() int { return e.Code }

func (e *HTTPError) Body() []byte { return e.body }

func (e *HTTPError) Header() map[string]string { return e.header }

// ========== 解码错误 ==========

// DecodeError 响应体与期望的结构不匹配
type DecodeError struct {
	*BaseError
	body  []byte
	cause error
}

func NewDecodeError(target string, body []byte, cause error) *DecodeError {
	e := &DecodeError{
		BaseError: &BaseError{
			Type:    "DecodeError",
			Message: fmt.Sprintf("failed to decode %s", target),
		},
		body:  body,
		cause: cause,
	}
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

func (e *DecodeError) Body() []byte { return e.body }

func (e *DecodeError) Unwrap() error { return e.cause }

// ========== 辅助函数 ==========

// IsHTTPError 判断是否为 HTTP 状态错误
func IsHTTPError(err error) (*HTTPError, bool) {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr, true
	}
	return nil, false
}

// IsNetworkError 判断是否为网络错误
func IsNetworkError(err error) bool {
	var netErr *NetworkError
	return errors.As(err, &netErr)
}

// IsDecodeError 判断是否为解码错误
func IsDecodeError(err error) bool {
	var decErr *DecodeError
	return errors.As(err, &decErr)
}

// IsKeyFormatError 判断是否为密钥格式错误
func IsKeyFormatError(err error) bool {
	var keyErr *KeyFormatError
	return errors.As(err, &keyErr)
}

// IsConfigurationError 判断是否为配置错误
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
