package auth

import (
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"cbat/pkg/exchanges"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// Issuer 交易所验证服务要求的固定签发方
	Issuer = "cdp"
	// TokenLifetime token 有效期，不可配置
	TokenLifetime = 60 * time.Second
	// NonceLength nonce 长度
	NonceLength = 16

	DefaultHost = "api.coinbase.com"

	KeyNameVariable   = "CBAT_KEY_NAME"
	KeySecretVariable = "CBAT_KEY_SECRET"
)

const nonceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Credentials API 密钥标识和 SEC1 EC 私钥
type Credentials struct {
	KeyName   string
	KeySecret string
}

// Validate 两个字段都必须存在
func (c Credentials) Validate() error {
	if c.KeyName == "" {
		return exchanges.NewConfigurationError(KeyNameVariable)
	}
	if c.KeySecret == "" {
		return exchanges.NewConfigurationError(KeySecretVariable)
	}
	return nil
}

// Claims 签入 token 的字段。字段名由交易所验证服务固定，不能改名。
type Claims struct {
	URI   string `json:"uri"`
	KID   string `json:"kid"`
	Nonce string `json:"nonce"`
	jwt.RegisteredClaims
}

// Signer 为单个 (method, path) 请求生成短期 bearer token。
// 私钥在构造时解析一次；每次调用都会生成新的 nonce 和时间窗口，并发调用之间没有共享的可变状态。
type Signer struct {
	keyName    string
	host       string
	privateKey *ecdsa.PrivateKey
	now        func() time.Time
	nonce      func() string
}

// Option Signer 配置项
type Option func(*Signer)

// WithClock 注入时钟
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		if now != nil {
			s.now = now
		}
	}
}

// WithNonce 注入 nonce 生成器
func WithNonce(nonce func() string) Option {
	return func(s *Signer) {
		if nonce != nil {
			s.nonce = nonce
		}
	}
}

// WithHost 覆盖 uri 中使用的主机名
func WithHost(host string) Option {
	return func(s *Signer) {
		if host != "" {
			s.host = host
		}
	}
}

// NewSigner 校验凭证并解析私钥。缺少凭证返回 *exchanges.ConfigurationError，
// 私钥格式错误返回 *exchanges.KeyFormatError。
func NewSigner(creds Credentials, opts ...Option) (*Signer, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	pkcs8PEM, err := SEC1ToPKCS8(NormalizeSecret(creds.KeySecret))
	if err != nil {
		return nil, err
	}
	privateKey, err := jwt.ParseECPrivateKeyFromPEM([]byte(pkcs8PEM))
	if err != nil {
		return nil, exchanges.NewKeyFormatError("invalid PKCS8 EC private key", err)
	}

	s := &Signer{
		keyName:    creds.KeyName,
		host:       DefaultHost,
		privateKey: privateKey,
		now:        time.Now,
		nonce:      RandomNonce,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// KeyName 返回 token 中使用的密钥标识
func (s *Signer) KeyName() string {
	return s.keyName
}

// CreateCredential 为 (method, path) 生成 token，必须在发送请求前立即调用，不能缓存。
func (s *Signer) CreateCredential(method, path string) (string, error) {
	return s.Sign(method, path, s.now(), s.nonce())
}

// Sign 使用给定的时间和 nonce 签名，除此之外没有副作用。
func (s *Signer) Sign(method, path string, now time.Time, nonce string) (string, error) {
	claims := NewClaims(s.keyName, s.host, method, path, now, nonce)

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	token.Header["kid"] = s.keyName

	signed, err := token.SignedString(s.privateKey)
	if err != nil {
		return "", exchanges.NewSigningError(err)
	}
	return signed, nil
}

// NewClaims 构造 claims：nbf = now，exp = now + 60s，uri = "METHOD host+path"
func NewClaims(keyName, host, method, path string, now time.Time, nonce string) *Claims {
	now = now.Truncate(time.Second)
	return &Claims{
		URI:   FormatURI(method, host, path),
		KID:   keyName,
		Nonce: nonce,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   keyName,
			Issuer:    Issuer,
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	}
}

// FormatURI 生成 uri claim，path 只包含路径部分，不带查询串
func FormatURI(method, host, path string) string {
	return fmt.Sprintf("%s %s%s", strings.ToUpper(method), host, path)
}

// NormalizeSecret 将单行环境变量中的字面 "\n" 转换为换行符
func NormalizeSecret(secret string) string {
	return strings.ReplaceAll(secret, `\n`, "\n")
}

// SEC1ToPKCS8 将 SEC1 PEM ("EC PRIVATE KEY") 重新编码为 PKCS8 PEM ("PRIVATE KEY")
func SEC1ToPKCS8(sec1PEM string) (string, error) {
	block, _ := pem.Decode([]byte(sec1PEM))
	if block == nil {
		return "", exchanges.NewKeyFormatError("failed to decode PEM block", nil)
	}

	key, err := x509.ParseECPrivateKey(block.Bytes)
	if err != nil {
		return "", exchanges.NewKeyFormatError("invalid SEC1 EC private key", err)
	}

	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return "", exchanges.NewKeyFormatError("failed to encode PKCS8 private key", err)
	}

	return string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})), nil
}

// RandomNonce 16 个字母数字字符。用途是唯一性，不需要保密。
func RandomNonce() string {
	b := make([]byte, NonceLength)
	for i := range b {
		b[i] = nonceAlphabet[rand.Intn(len(nonceAlphabet))]
	}
	return string(b)
}

// ParseClaims 用公钥验证 token 并返回 claims，供调试和测试使用
func ParseClaims(tokenString string, publicKey *ecdsa.PublicKey, opts ...jwt.ParserOption) (*Claims, error) {
	opts = append([]jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()})}, opts...)
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return publicKey, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("解析token失败: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("无效的token")
}

// PublicKey 返回签名私钥对应的公钥
func (s *Signer) PublicKey() *ecdsa.PublicKey {
	return &s.privateKey.PublicKey
}
