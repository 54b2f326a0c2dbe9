package client

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	uuid2 "github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gitlab.com/open-soft/go-spot-bot/src/model"
)

type ExchangePriceAPIInterface interface {
	GetTickerPrice(symbol string) (model.TickerPrice, error)
	GetKLines(symbol string, interval string, limit int64) ([]model.KLineHistory, error)
	GetKLinesCached(symbol string, interval string, limit int64) ([]model.KLineHistory, error)
	GetMarketData(symbol string, limit int64) (model.MarketData, error)
	GetExchangeData(symbols []string) (*model.ExchangeInfo, error)
}

type ExchangeOrderAPIInterface interface {
	PlaceOrder(order model.OrderRequest) (model.BinanceOrder, error)
	CancelOrder(symbol string, orderId int64) (model.CancelOrderResponse, error)
	GetOpenedOrders(symbol string) ([]model.OpenOrder, error)
}

type ExchangeAccountAPIInterface interface {
	GetAccountStatus() (*model.AccountStatus, error)
}

type ExchangeAPIInterface interface {
	ExchangePriceAPIInterface
	ExchangeOrderAPIInterface
	ExchangeAccountAPIInterface
}

const KLineInterval = "1h"

type Binance struct {
	ApiKey         string
	ApiSecret      string
	DestinationURI string

	HttpClient *http.Client
	RDB        *redis.Client
	Ctx        *context.Context
}

func (b *Binance) GetAccountStatus() (*model.AccountStatus, error) {
	query := b.signedQuery(nil)
	body, err := b.request("GET", fmt.Sprintf("%s/api/v3/account?%s", b.DestinationURI, query), true)
	if err != nil {
		return nil, err
	}

	var account model.AccountStatus
	if err = json.Unmarshal(body, &account); err != nil {
		return nil, err
	}

	return &account, nil
}

func (b *Binance) GetTickerPrice(symbol string) (model.TickerPrice, error) {
	url := fmt.Sprintf("%s/api/v3/ticker/price?symbol=%s", b.DestinationURI, symbol)
	body, err := b.request("GET", url, false)

	var ticker model.TickerPrice
	if err != nil {
		return ticker, err
	}

	if err = json.Unmarshal(body, &ticker); err != nil {
		return ticker, err
	}

	return ticker, nil
}

func (b *Binance) GetKLines(symbol string, interval string, limit int64) ([]model.KLineHistory, error) {
	url := fmt.Sprintf(
		"%s/api/v3/klines?symbol=%s&interval=%s&limit=%d",
		b.DestinationURI,
		symbol,
		interval,
		limit,
	)
	body, err := b.request("GET", url, false)
	if err != nil {
		return nil, err
	}

	kLines := make([]model.KLineHistory, 0)
	if err = json.Unmarshal(body, &kLines); err != nil {
		return nil, err
	}

	return kLines, nil
}

// GetKLinesCached serves kline history from Redis for one minute to keep
// request weight low. Without a Redis client it falls through to the API.
func (b *Binance) GetKLinesCached(symbol string, interval string, limit int64) ([]model.KLineHistory, error) {
	if b.RDB == nil {
		return b.GetKLines(symbol, interval, limit)
	}

	cacheKey := fmt.Sprintf("interval-kline-history-%s-%s-%d", symbol, interval, limit)
	res := b.RDB.Get(*b.Ctx, cacheKey).Val()

	if len(res) > 0 {
		var kLines []model.KLineHistory
		if err := json.Unmarshal([]byte(res), &kLines); err == nil && int64(len(kLines)) >= limit {
			return kLines, nil
		}

		log.Printf("[%s] kline[%s] history cache invalid, refetching", symbol, interval)
		b.RDB.Del(*b.Ctx, cacheKey)
	}

	kLines, err := b.GetKLines(symbol, interval, limit)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(kLines); err == nil {
		b.RDB.Set(*b.Ctx, cacheKey, string(encoded), time.Minute*1)
	}

	return kLines, nil
}

func (b *Binance) GetMarketData(symbol string, limit int64) (model.MarketData, error) {
	ticker, err := b.GetTickerPrice(symbol)
	if err != nil {
		return model.MarketData{}, err
	}

	kLines, err := b.GetKLinesCached(symbol, KLineInterval, limit)
	if err != nil {
		return model.MarketData{}, err
	}

	return model.MarketData{
		Symbol:       symbol,
		CurrentPrice: ticker.GetPrice(),
		KLines:       kLines,
		Timestamp:    model.NowTimestampMilli(),
	}, nil
}

func (b *Binance) GetExchangeData(symbols []string) (*model.ExchangeInfo, error) {
	url := fmt.Sprintf("%s/api/v3/exchangeInfo", b.DestinationURI)
	if len(symbols) > 0 {
		encoded, _ := json.Marshal(symbols)
		url = fmt.Sprintf("%s?symbols=%s", url, string(encoded))
	}

	body, err := b.request("GET", url, false)
	if err != nil {
		return nil, err
	}

	var exchangeInfo model.ExchangeInfo
	if err = json.Unmarshal(body, &exchangeInfo); err != nil {
		return nil, err
	}

	return &exchangeInfo, nil
}

func (b *Binance) PlaceOrder(order model.OrderRequest) (model.BinanceOrder, error) {
	params := [][2]string{
		{"symbol", order.Symbol},
		{"side", string(order.Side)},
		{"type", string(order.Type)},
		{"quantity", order.Quantity.String()},
	}

	if order.Price != nil {
		params = append(params, [2]string{"price", order.Price.String()})
	}

	if order.TimeInForce != "" {
		params = append(params, [2]string{"timeInForce", string(order.TimeInForce)})
	}

	if order.StopPrice != nil {
		params = append(params, [2]string{"stopPrice", order.StopPrice.String()})
	}

	params = append(params, [2]string{"newClientOrderId", uuid2.New().String()})

	query := b.signedQuery(params)
	body, err := b.request("POST", fmt.Sprintf("%s/api/v3/order?%s", b.DestinationURI, query), true)

	var binanceOrder model.BinanceOrder
	if err != nil {
		return binanceOrder, err
	}

	if err = json.Unmarshal(body, &binanceOrder); err != nil {
		return binanceOrder, err
	}

	return binanceOrder, nil
}

func (b *Binance) CancelOrder(symbol string, orderId int64) (model.CancelOrderResponse, error) {
	params := [][2]string{
		{"symbol", symbol},
		{"orderId", fmt.Sprintf("%d", orderId)},
	}

	query := b.signedQuery(params)
	body, err := b.request("DELETE", fmt.Sprintf("%s/api/v3/order?%s", b.DestinationURI, query), true)

	var response model.CancelOrderResponse
	if err != nil {
		return response, err
	}

	if err = json.Unmarshal(body, &response); err != nil {
		return response, err
	}

	return response, nil
}

func (b *Binance) GetOpenedOrders(symbol string) ([]model.OpenOrder, error) {
	params := make([][2]string, 0)
	if symbol != "" {
		params = append(params, [2]string{"symbol", symbol})
	}

	query := b.signedQuery(params)
	body, err := b.request("GET", fmt.Sprintf("%s/api/v3/openOrders?%s", b.DestinationURI, query), true)
	if err != nil {
		return nil, err
	}

	openOrders := make([]model.OpenOrder, 0)
	if err = json.Unmarshal(body, &openOrders); err != nil {
		return nil, err
	}

	return openOrders, nil
}

// signedQuery joins params in insertion order, appends the millisecond
// timestamp and the HMAC-SHA256 signature of the whole query string.
func (b *Binance) signedQuery(params [][2]string) string {
	parts := make([]string, 0, len(params)+2)

	for _, param := range params {
		parts = append(parts, fmt.Sprintf("%s=%s", param[0], param[1]))
	}

	parts = append(parts, fmt.Sprintf("timestamp=%d", time.Now().UnixMilli()))
	query := strings.Join(parts, "&")

	return fmt.Sprintf("%s&signature=%s", query, b.sign(query))
}

func (b *Binance) sign(payload string) string {
	mac := hmac.New(sha256.New, []byte(b.ApiSecret))
	mac.Write([]byte(payload))

	return fmt.Sprintf("%x", mac.Sum(nil))
}

func (b *Binance) request(method string, url string, signed bool) ([]byte, error) {
	request, err := http.NewRequest(method, url, nil)
	if err != nil {
		return nil, err
	}

	request.Header.Set("Content-Type", "application/json; charset=UTF-8")
	if signed {
		request.Header.Set("X-MBX-APIKEY", b.ApiKey)
	}

	response, err := b.HttpClient.Do(request)
	if err != nil {
		return nil, err
	}

	defer response.Body.Close()
	body, err := io.ReadAll(response.Body)

	if err != nil {
		return nil, err
	}

	if response.StatusCode != 200 {
		return nil, errors.New(string(body))
	}

	return body, nil
}
