package coinbase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"cbat/pkg/auth"
	"cbat/pkg/exchanges"
	"cbat/pkg/exchanges/types"

	"github.com/google/uuid"
)

// Authenticator 为 (method, path) 生成单次使用的 bearer token
type Authenticator interface {
	CreateCredential(method, path string) (string, error)
}

// Coinbase Advanced Trade REST 客户端。所有方法都可以并发调用。
type Coinbase struct {
	*exchanges.BaseExchange
	config *Config
	signer Authenticator
}

// New 创建新的 Coinbase 实例。signer 为 nil 时只能调用公共接口。
func New(config *Config, signer Authenticator) (*Coinbase, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	base := exchanges.NewBaseExchange("coinbase", "Coinbase Advanced Trade", "v3")
	base.SetTimeout(config.Timeout)
	base.SetUserAgent(config.UserAgent)

	return &Coinbase{
		BaseExchange: base,
		config:       config.Clone(),
		signer:       signer,
	}, nil
}

// NewWithCredentials 用凭证创建签名器和客户端
func NewWithCredentials(config *Config, creds auth.Credentials) (*Coinbase, error) {
	if config == nil {
		config = DefaultConfig()
	}
	signer, err := auth.NewSigner(creds, auth.WithHost(config.Host))
	if err != nil {
		return nil, err
	}
	return New(config, signer)
}

// GetConfig 获取配置副本
func (c *Coinbase) GetConfig() *Config {
	return c.config.Clone()
}

// HasCredentials 是否可以调用私有接口
func (c *Coinbase) HasCredentials() bool {
	return c.signer != nil
}

// ========== 请求分发 ==========

func (c *Coinbase) endpoint(path string, params interface{}) (types.Endpoint, error) {
	q, err := BuildQuery(params)
	if err != nil {
		return types.Endpoint{}, fmt.Errorf("build query for %s: %w", path, err)
	}
	return types.Endpoint{BaseURL: c.config.BaseURL, Path: path, Query: q}, nil
}

// publicGet 无认证 GET
func (c *Coinbase) publicGet(ctx context.Context, ep types.Endpoint, out interface{}) error {
	resp, err := c.Get(ctx, ep.URL(), nil)
	if err != nil {
		return err
	}
	return c.Decode(resp, out)
}

// authenticatedGet 签名的 GET。token 的 uri 只绑定路径，不含查询串。
func (c *Coinbase) authenticatedGet(ctx context.Context, ep types.Endpoint, out interface{}) error {
	if c.signer == nil {
		return exchanges.NewConfigurationError(auth.KeyNameVariable)
	}
	token, err := c.signer.CreateCredential(http.MethodGet, ep.Path)
	if err != nil {
		return err
	}

	resp, err := c.Get(ctx, ep.URL(), map[string]string{
		"Authorization": "Bearer " + token,
	})
	if err != nil {
		return err
	}
	return c.Decode(resp, out)
}

// ========== 账户 ==========

// ListAccounts 列出账户
func (c *Coinbase) ListAccounts(ctx context.Context, params *ListAccountsParams) (*Accounts, error) {
	ep, err := c.endpoint(EndpointAccounts, params)
	if err != nil {
		return nil, err
	}
	var accounts Accounts
	if err := c.authenticatedGet(ctx, ep, &accounts); err != nil {
		return nil, err
	}
	return &accounts, nil
}

// GetAccount 获取单个账户
func (c *Coinbase) GetAccount(ctx context.Context, accountUUID string) (*Account, error) {
	if _, err := uuid.Parse(accountUUID); err != nil {
		return nil, fmt.Errorf("invalid account uuid %q: %w", accountUUID, err)
	}
	ep, err := c.endpoint(EndpointAccounts+"/"+accountUUID, nil)
	if err != nil {
		return nil, err
	}
	var resp AccountResponse
	if err := c.authenticatedGet(ctx, ep, &resp); err != nil {
		return nil, err
	}
	return &resp.Account, nil
}

// ========== 市场数据 ==========

// GetBestBidAsk 获取最优买卖价，productIDs 为空时返回全部
func (c *Coinbase) GetBestBidAsk(ctx context.Context, productIDs []string) (*PriceBooks, error) {
	ep, err := c.endpoint(EndpointBestBidAsk, &BestBidAskParams{ProductIDs: productIDs})
	if err != nil {
		return nil, err
	}
	var books PriceBooks
	if err := c.authenticatedGet(ctx, ep, &books); err != nil {
		return nil, err
	}
	return &books, nil
}

// GetPublicMarketTrades 获取最近成交
func (c *Coinbase) GetPublicMarketTrades(ctx context.Context, productID string, params MarketTradesParams) (*MarketTrades, error) {
	path, err := productPath(productID, "ticker")
	if err != nil {
		return nil, err
	}
	ep, err := c.endpoint(path, &params)
	if err != nil {
		return nil, err
	}
	var trades MarketTrades
	if err := c.publicGet(ctx, ep, &trades); err != nil {
		return nil, err
	}
	return &trades, nil
}

// GetPublicProductBook 获取订单簿
func (c *Coinbase) GetPublicProductBook(ctx context.Context, params ProductBookParams) (*ProductBook, error) {
	if params.ProductID == "" {
		return nil, errProductIDEmpty
	}
	ep, err := c.endpoint(EndpointProductBook, &params)
	if err != nil {
		return nil, err
	}
	var book ProductBook
	if err := c.publicGet(ctx, ep, &book); err != nil {
		return nil, err
	}
	return &book, nil
}

// GetPublicProductCandles 获取K线
func (c *Coinbase) GetPublicProductCandles(ctx context.Context, productID string, params ProductCandlesParams) (*ProductCandles, error) {
	if !params.Granularity.Valid() {
		return nil, fmt.Errorf("invalid granularity: %q", params.Granularity)
	}
	path, err := productPath(productID, "candles")
	if err != nil {
		return nil, err
	}
	ep, err := c.endpoint(path, &params)
	if err != nil {
		return nil, err
	}
	var candles ProductCandles
	if err := c.publicGet(ctx, ep, &candles); err != nil {
		return nil, err
	}
	return &candles, nil
}

// GetPublicProduct 获取单个产品
func (c *Coinbase) GetPublicProduct(ctx context.Context, productID string) (*Product, error) {
	path, err := productPath(productID, "")
	if err != nil {
		return nil, err
	}
	ep, err := c.endpoint(path, nil)
	if err != nil {
		return nil, err
	}
	var product Product
	if err := c.publicGet(ctx, ep, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ListPublicProducts 列出产品
func (c *Coinbase) ListPublicProducts(ctx context.Context, params *ListProductsParams) (*Products, error) {
	ep, err := c.endpoint(EndpointMarketProduct, params)
	if err != nil {
		return nil, err
	}
	var products Products
	if err := c.publicGet(ctx, ep, &products); err != nil {
		return nil, err
	}
	return &products, nil
}

// GetPublicServerTime 获取服务器时间
func (c *Coinbase) GetPublicServerTime(ctx context.Context) (*ServerTime, error) {
	ep, err := c.endpoint(EndpointServerTime, nil)
	if err != nil {
		return nil, err
	}
	var serverTime ServerTime
	if err := c.publicGet(ctx, ep, &serverTime); err != nil {
		return nil, err
	}
	return &serverTime, nil
}

// ========== 辅助函数 ==========

var errProductIDEmpty = errors.New("product id cannot be empty")

// productPath 生成 /market/products/{id}[/suffix]
func productPath(productID, suffix string) (string, error) {
	if productID == "" {
		return "", errProductIDEmpty
	}
	path := EndpointMarketProduct + "/" + url.PathEscape(productID)
	if suffix != "" {
		path += "/" + suffix
	}
	return path, nil
}
