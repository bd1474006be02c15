package coinbase

import (
	"github.com/google/go-querystring/query"
)

// ========== 查询参数 ==========
// 可选的标量参数使用指针，nil 时不序列化；切片参数按元素重复同一个键。

// ListAccountsParams 账户列表分页参数
type ListAccountsParams struct {
	Limit  *int   `url:"limit,omitempty"`
	Cursor string `url:"cursor,omitempty"`
}

// MarketTradesParams 市场成交参数
type MarketTradesParams struct {
	Limit int    `url:"limit"`
	Start string `url:"start,omitempty"`
	End   string `url:"end,omitempty"`
}

// BestBidAskParams 最优买卖价参数
type BestBidAskParams struct {
	ProductIDs []string `url:"product_ids,omitempty"`
}

// ProductBookParams 订单簿参数
type ProductBookParams struct {
	ProductID                 string `url:"product_id"`
	Limit                     *int   `url:"limit,omitempty"`
	AggregationPriceIncrement string `url:"aggregation_price_increment,omitempty"`
}

// ProductCandlesParams K线参数，start/end 为 UNIX 秒
type ProductCandlesParams struct {
	Start       string      `url:"start"`
	End         string      `url:"end"`
	Granularity Granularity `url:"granularity"`
	Limit       *int        `url:"limit,omitempty"`
}

// ListProductsParams 产品列表参数，全部可选
type ListProductsParams struct {
	Limit                  *int                   `url:"limit,omitempty"`
	Offset                 *int                   `url:"offset,omitempty"`
	ProductType            ProductType            `url:"product_type,omitempty"`
	ProductIDs             []string               `url:"product_ids,omitempty"`
	ContractExpiryType     ContractExpiryType     `url:"contract_expiry_type,omitempty"`
	ExpiringContractStatus ExpiringContractStatus `url:"expiring_contract_status,omitempty"`
	GetAllProducts         *bool                  `url:"get_all_products,omitempty"`
}

// BuildQuery 构建查询字符串。非空时带前导 "?"，否则返回空串。
func BuildQuery(params interface{}) (string, error) {
	if params == nil {
		return "", nil
	}
	values, err := query.Values(params)
	if err != nil {
		return "", err
	}
	encoded := values.Encode()
	if encoded == "" {
		return "", nil
	}
	return "?" + encoded, nil
}

// Int 返回 n 的指针
func Int(n int) *int { return &n }

// Bool 返回 b 的指针
func Bool(b bool) *bool { return &b }
