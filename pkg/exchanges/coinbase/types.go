package coinbase

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ========== 账户 ==========

// Balance 余额
type Balance struct {
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency"`
}

// Account 账户
type Account struct {
	UUID              string  `json:"uuid" validate:"required"`
	Name              string  `json:"name"`
	Currency          string  `json:"currency"`
	AvailableBalance  Balance `json:"available_balance"`
	Default           bool    `json:"default"`
	Active            bool    `json:"active"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
	DeletedAt         string  `json:"deleted_at,omitempty"`
	Type              string  `json:"type"`
	Ready             bool    `json:"ready"`
	Hold              Balance `json:"hold"`
	RetailPortfolioID string  `json:"retail_portfolio_id"`
	Platform          string  `json:"platform,omitempty"`
}

// Accounts 账户列表
type Accounts struct {
	Accounts []Account `json:"accounts" validate:"required,dive"`
	HasNext  bool      `json:"has_next"`
	Cursor   string    `json:"cursor"`
	Size     int       `json:"size"`
}

// AccountResponse 单个账户
type AccountResponse struct {
	Account Account `json:"account"`
}

// ========== 成交 ==========

// Trade 成交记录
type Trade struct {
	TradeID   string          `json:"trade_id" validate:"required"`
	ProductID string          `json:"product_id" validate:"required"`
	Price     decimal.Decimal `json:"price"`
	Size      decimal.Decimal `json:"size"`
	Time      time.Time       `json:"time"`
	Side      string          `json:"side"`
	Bid       string          `json:"bid,omitempty"`
	Ask       string          `json:"ask,omitempty"`
	Exchange  string          `json:"exchange,omitempty"`
}

// MarketTrades 市场成交和最优报价
type MarketTrades struct {
	Trades  []Trade `json:"trades" validate:"required,dive"`
	BestBid string  `json:"best_bid"`
	BestAsk string  `json:"best_ask"`
}

// ========== 订单簿 ==========

// BookLevel 价格档位
type BookLevel struct {
	Price decimal.Decimal `json:"price"`
	Size  decimal.Decimal `json:"size"`
}

// PriceBook 单个产品的买卖盘
type PriceBook struct {
	ProductID string      `json:"product_id" validate:"required"`
	Bids      []BookLevel `json:"bids"`
	Asks      []BookLevel `json:"asks"`
	Time      time.Time   `json:"time"`
}

// BestBid 最优买价，没有买盘时 ok 为 false
func (p *PriceBook) BestBid() (BookLevel, bool) {
	if len(p.Bids) == 0 {
		return BookLevel{}, false
	}
	return p.Bids[0], true
}

// BestAsk 最优卖价，没有卖盘时 ok 为 false
func (p *PriceBook) BestAsk() (BookLevel, bool) {
	if len(p.Asks) == 0 {
		return BookLevel{}, false
	}
	return p.Asks[0], true
}

// PriceBooks 多个产品的最优买卖价
type PriceBooks struct {
	PriceBooks []PriceBook `json:"pricebooks" validate:"required,dive"`
}

// ProductBook 公共订单簿
type ProductBook struct {
	PriceBook      PriceBook `json:"pricebook"`
	Last           string    `json:"last,omitempty"`
	MidMarket      string    `json:"mid_market,omitempty"`
	SpreadBPS      string    `json:"spread_bps,omitempty"`
	SpreadAbsolute string    `json:"spread_absolute,omitempty"`
}

// ========== K线 ==========

// Candle K线，start 为 UNIX 秒
type Candle struct {
	Start  string          `json:"start" validate:"required"`
	Low    decimal.Decimal `json:"low"`
	High   decimal.Decimal `json:"high"`
	Open   decimal.Decimal `json:"open"`
	Close  decimal.Decimal `json:"close"`
	Volume decimal.Decimal `json:"volume"`
}

// StartTime 开盘时间
func (c *Candle) StartTime() time.Time {
	sec, err := strconv.ParseInt(c.Start, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

// ProductCandles K线列表
type ProductCandles struct {
	Candles []Candle `json:"candles" validate:"required,dive"`
}

// ========== 产品 ==========

// Maintenance 维护窗口
type Maintenance struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// FcmTradingSessionDetails 期货交易时段
type FcmTradingSessionDetails struct {
	IsSessionOpen                bool         `json:"is_session_open"`
	OpenTime                     string       `json:"open_time"`
	CloseTime                    string       `json:"close_time"`
	SessionState                 string       `json:"session_state,omitempty"`
	AfterHoursOrderEntryDisabled bool         `json:"after_hours_order_entry_disabled"`
	ClosedReason                 string       `json:"closed_reason,omitempty"`
	Maintenance                  *Maintenance `json:"maintenance,omitempty"`
}

// PerpetualDetails 永续合约信息
type PerpetualDetails struct {
	OpenInterest   string `json:"open_interest"`
	FundingRate    string `json:"funding_rate"`
	FundingTime    string `json:"funding_time"`
	MaxLeverage    string `json:"max_leverage"`
	BaseAssetUUID  string `json:"base_asset_uuid"`
	UnderlyingType string `json:"underlying_type"`
}

// FutureProductDetails 期货产品信息
type FutureProductDetails struct {
	Venue                  string             `json:"venue"`
	ContractCode           string             `json:"contract_code"`
	ContractExpiry         string             `json:"contract_expiry"`
	ContractSize           string             `json:"contract_size"`
	ContractRootUnit       string             `json:"contract_root_unit"`
	GroupDescription       string             `json:"group_description"`
	ContractExpiryTimezone string             `json:"contract_expiry_timezone"`
	GroupShortDescription  string             `json:"group_short_description"`
	RiskManagedBy          string             `json:"risk_managed_by"`
	ContractExpiryType     ContractExpiryType `json:"contract_expiry_type"`
	PerpetualDetails       *PerpetualDetails  `json:"perpetual_details,omitempty"`
	ContractDisplayName    string             `json:"contract_display_name"`
	TimeToExpiryMs         string             `json:"time_to_expiry_ms"`
	NonCrypto              bool               `json:"non_crypto"`
	ContractExpiryName     string             `json:"contract_expiry_name"`
}

// Product 产品。价格字段在交易所侧可能为空串，因此保留字符串。
type Product struct {
	ProductID                 string                    `json:"product_id" validate:"required"`
	Price                     string                    `json:"price"`
	PricePercentageChange24h  string                    `json:"price_percentage_change_24h"`
	Volume24h                 string                    `json:"volume_24h"`
	VolumePercentageChange24h string                    `json:"volume_percentage_change_24h"`
	BaseIncrement             string                    `json:"base_increment"`
	QuoteIncrement            string                    `json:"quote_increment"`
	QuoteMinSize              string                    `json:"quote_min_size"`
	QuoteMaxSize              string                    `json:"quote_max_size"`
	BaseMinSize               string                    `json:"base_min_size"`
	BaseMaxSize               string                    `json:"base_max_size"`
	BaseName                  string                    `json:"base_name"`
	QuoteName                 string                    `json:"quote_name"`
	Watched                   bool                      `json:"watched"`
	IsDisabled                bool                      `json:"is_disabled"`
	New                       bool                      `json:"new"`
	Status                    string                    `json:"status"`
	CancelOnly                bool                      `json:"cancel_only"`
	LimitOnly                 bool                      `json:"limit_only"`
	PostOnly                  bool                      `json:"post_only"`
	TradingDisabled           bool                      `json:"trading_disabled"`
	AuctionMode               bool                      `json:"auction_mode"`
	ProductType               ProductType               `json:"product_type"`
	QuoteCurrencyID           string                    `json:"quote_currency_id"`
	BaseCurrencyID            string                    `json:"base_currency_id"`
	FcmTradingSessionDetails  *FcmTradingSessionDetails `json:"fcm_trading_session_details,omitempty"`
	MidMarketPrice            string                    `json:"mid_market_price"`
	Alias                     string                    `json:"alias"`
	AliasTo                   []string                  `json:"alias_to"`
	BaseDisplaySymbol         string                    `json:"base_display_symbol"`
	QuoteDisplaySymbol        string                    `json:"quote_display_symbol"`
	ViewOnly                  bool                      `json:"view_only"`
	PriceIncrement            string                    `json:"price_increment"`
	DisplayName               string                    `json:"display_name,omitempty"`
	ProductVenue              string                    `json:"product_venue,omitempty"`
	ApproximateQuote24hVolume string                    `json:"approximate_quote_24h_volume,omitempty"`
	FutureProductDetails      *FutureProductDetails     `json:"future_product_details,omitempty"`
}

// Products 产品列表
type Products struct {
	Products    []Product `json:"products" validate:"required,dive"`
	NumProducts int       `json:"num_products"`
}

// ========== 服务器时间 ==========

// ServerTime 服务器时间
type ServerTime struct {
	ISO          string `json:"iso" validate:"required"`
	EpochSeconds string `json:"epochSeconds"`
	EpochMillis  string `json:"epochMillis"`
}

// Time 服务器时间，解析失败时为零值
func (s *ServerTime) Time() time.Time {
	t, err := time.Parse(time.RFC3339Nano, s.ISO)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ========== 订单修改 ==========

// EditOrderError 订单修改失败原因
type EditOrderError struct {
	EditFailureReason    string `json:"edit_failure_reason,omitempty"`
	PreviewFailureReason string `json:"preview_failure_reason,omitempty"`
}

// EditOrder 订单修改结果
type EditOrder struct {
	Success bool             `json:"success"`
	Errors  []EditOrderError `json:"errors"`
}
