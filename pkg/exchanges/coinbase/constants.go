package coinbase

// ========== Coinbase API 基础URL ==========

const (
	Host    = "api.coinbase.com"
	BaseURL = "https://" + Host
)

// ========== Coinbase Advanced Trade 端点 ==========

const (
	EndpointAccounts      = "/api/v3/brokerage/accounts"
	EndpointBestBidAsk    = "/api/v3/brokerage/best_bid_ask"
	EndpointMarketProduct = "/api/v3/brokerage/market/products"
	EndpointProductBook   = "/api/v3/brokerage/market/product_book"
	EndpointServerTime    = "/api/v3/brokerage/time"
)

// ========== 时间周期 ==========

// Granularity K线时间周期
type Granularity string

const (
	GranularityUnknown       Granularity = "UNKNOWN_GRANULARITY"
	GranularityOneMinute     Granularity = "ONE_MINUTE"
	GranularityFiveMinute    Granularity = "FIVE_MINUTE"
	GranularityFifteenMinute Granularity = "FIFTEEN_MINUTE"
	GranularityThirtyMinute  Granularity = "THIRTY_MINUTE"
	GranularityOneHour       Granularity = "ONE_HOUR"
	GranularityTwoHour       Granularity = "TWO_HOUR"
	GranularitySixHour       Granularity = "SIX_HOUR"
	GranularityOneDay        Granularity = "ONE_DAY"
)

func (g Granularity) String() string { return string(g) }

// Valid 是否为交易所接受的时间周期
func (g Granularity) Valid() bool {
	switch g {
	case GranularityOneMinute, GranularityFiveMinute, GranularityFifteenMinute, GranularityThirtyMinute,
		GranularityOneHour, GranularityTwoHour, GranularitySixHour, GranularityOneDay:
		return true
	}
	return false
}

// ParseGranularity 支持 "1m" 这样的简写和交易所原始值
func ParseGranularity(s string) (Granularity, bool) {
	switch s {
	case "1m":
		return GranularityOneMinute, true
	case "5m":
		return GranularityFiveMinute, true
	case "15m":
		return GranularityFifteenMinute, true
	case "30m":
		return GranularityThirtyMinute, true
	case "1h":
		return GranularityOneHour, true
	case "2h":
		return GranularityTwoHour, true
	case "6h":
		return GranularitySixHour, true
	case "1d":
		return GranularityOneDay, true
	}
	g := Granularity(s)
	return g, g.Valid()
}

// ========== 产品类型常数 ==========

// ProductType 产品类型
type ProductType string

const (
	ProductTypeUnknown ProductType = "UNKNOWN_PRODUCT_TYPE"
	ProductTypeSpot    ProductType = "SPOT"
	ProductTypeFuture  ProductType = "FUTURE"
)

func (p ProductType) String() string { return string(p) }

// ContractExpiryType 合约到期类型
type ContractExpiryType string

const (
	ContractExpiryTypeUnknown   ContractExpiryType = "UNKNOWN_CONTRACT_EXPIRY_TYPE"
	ContractExpiryTypeExpiring  ContractExpiryType = "EXPIRING"
	ContractExpiryTypePerpetual ContractExpiryType = "PERPETUAL"
)

func (c ContractExpiryType) String() string { return string(c) }

// ExpiringContractStatus 到期合约状态
type ExpiringContractStatus string

const (
	ExpiringContractStatusUnknown   ExpiringContractStatus = "UNKNOWN_EXPIRING_CONTRACT_STATUS"
	ExpiringContractStatusUnexpired ExpiringContractStatus = "STATUS_UNEXPIRED"
	ExpiringContractStatusExpired   ExpiringContractStatus = "STATUS_EXPIRED"
	ExpiringContractStatusAll       ExpiringContractStatus = "STATUS_ALL"
)

func (e ExpiringContractStatus) String() string { return string(e) }
