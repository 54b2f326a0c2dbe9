package model

import (
	"github.com/shopspring/decimal"
)

type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

type OrderType string

const (
	OrderTypeMarket          OrderType = "MARKET"
	OrderTypeLimit           OrderType = "LIMIT"
	OrderTypeStopLoss        OrderType = "STOP_LOSS"
	OrderTypeStopLossLimit   OrderType = "STOP_LOSS_LIMIT"
	OrderTypeTakeProfit      OrderType = "TAKE_PROFIT"
	OrderTypeTakeProfitLimit OrderType = "TAKE_PROFIT_LIMIT"
	OrderTypeLimitMaker      OrderType = "LIMIT_MAKER"
)

type TimeInForce string

const (
	TimeInForceGTC TimeInForce = "GTC"
	TimeInForceIOC TimeInForce = "IOC"
	TimeInForceFOK TimeInForce = "FOK"
)

const ExchangeOrderStatusNew = "NEW"
const ExchangeOrderStatusFilled = "FILLED"
const ExchangeOrderStatusCanceled = "CANCELED"

type OrderRequest struct {
	Symbol      string
	Side        OrderSide
	Type        OrderType
	Quantity    decimal.Decimal
	Price       *decimal.Decimal
	TimeInForce TimeInForce
	StopPrice   *decimal.Decimal
}

func NewMarketOrder(symbol string, side OrderSide, quantity decimal.Decimal) OrderRequest {
	return OrderRequest{
		Symbol:   symbol,
		Side:     side,
		Type:     OrderTypeMarket,
		Quantity: quantity,
	}
}

func NewLimitOrder(symbol string, side OrderSide, quantity decimal.Decimal, price decimal.Decimal) OrderRequest {
	return OrderRequest{
		Symbol:      symbol,
		Side:        side,
		Type:        OrderTypeLimit,
		Quantity:    quantity,
		Price:       &price,
		TimeInForce: TimeInForceGTC,
	}
}

type BinanceOrder struct {
	Symbol              string          `json:"symbol"`
	OrderId             int64           `json:"orderId"`
	ClientOrderId       string          `json:"clientOrderId"`
	TransactTime        TimestampMilli  `json:"transactTime"`
	Price               decimal.Decimal `json:"price"`
	OrigQty             decimal.Decimal `json:"origQty"`
	ExecutedQty         decimal.Decimal `json:"executedQty"`
	CummulativeQuoteQty decimal.Decimal `json:"cummulativeQuoteQty"`
	Status              string          `json:"status"`
	TimeInForce         string          `json:"timeInForce"`
	Type                string          `json:"type"`
	Side                string          `json:"side"`
}

func (b *BinanceOrder) IsBuy() bool {
	return b.Side == string(OrderSideBuy)
}

func (b *BinanceOrder) IsSell() bool {
	return b.Side == string(OrderSideSell)
}

func (b *BinanceOrder) IsNew() bool {
	return b.Status == ExchangeOrderStatusNew
}

func (b *BinanceOrder) IsFilled() bool {
	return b.Status == ExchangeOrderStatusFilled
}

type OpenOrder struct {
	Symbol        string          `json:"symbol"`
	OrderId       int64           `json:"orderId"`
	ClientOrderId string          `json:"clientOrderId"`
	Price         decimal.Decimal `json:"price"`
	OrigQty       decimal.Decimal `json:"origQty"`
	ExecutedQty   decimal.Decimal `json:"executedQty"`
	Status        string          `json:"status"`
	TimeInForce   string          `json:"timeInForce"`
	Type          string          `json:"type"`
	Side          string          `json:"side"`
	Time          TimestampMilli  `json:"time"`
	UpdateTime    TimestampMilli  `json:"updateTime"`
}

type CancelOrderResponse struct {
	Symbol        string `json:"symbol"`
	OrderId       int64  `json:"orderId"`
	ClientOrderId string `json:"clientOrderId"`
	Status        string `json:"status"`
}

type ExchangeInfo struct {
	Timezone   string       `json:"timezone"`
	ServerTime int64        `json:"serverTime"`
	Symbols    []SymbolInfo `json:"symbols"`
}

type SymbolInfo struct {
	Symbol             string `json:"symbol"`
	Status             string `json:"status"`
	BaseAsset          string `json:"baseAsset"`
	QuoteAsset         string `json:"quoteAsset"`
	BaseAssetPrecision int64  `json:"baseAssetPrecision"`
	QuotePrecision     int64  `json:"quotePrecision"`
}
