package client

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gitlab.com/open-soft/go-spot-bot/src/model"
)

func TestSign(t *testing.T) {
	assertion := assert.New(t)

	binance := Binance{ApiSecret: "test-secret-key"}

	signature := binance.sign("symbol=BTCUSDT&side=BUY&timestamp=1672531200000")
	assertion.Equal("010a1bee260c8e57573e4c82b10c0a002486e4b1a193276444c426dfd422349c", signature)
}

func TestSignedQueryShape(t *testing.T) {
	assertion := assert.New(t)

	binance := Binance{ApiSecret: "test-secret-key"}

	query := binance.signedQuery([][2]string{
		{"symbol", "BTCUSDT"},
		{"side", "BUY"},
	})

	assertion.True(strings.HasPrefix(query, "symbol=BTCUSDT&side=BUY&timestamp="), query)
	assertion.Contains(query, "&signature=")

	// the signature covers everything before it
	parts := strings.SplitN(query, "&signature=", 2)
	assertion.Len(parts, 2)
	assertion.Equal(binance.sign(parts[0]), parts[1])
	assertion.Len(parts[1], 64)
}

func TestGetTickerPrice(t *testing.T) {
	assertion := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assertion.Equal("/api/v3/ticker/price", r.URL.Path)
		assertion.Equal("BTCUSDT", r.URL.Query().Get("symbol"))
		assertion.Empty(r.Header.Get("X-MBX-APIKEY"))

		fmt.Fprint(w, `{"symbol":"BTCUSDT","price":"16700.25"}`)
	}))
	defer server.Close()

	binance := Binance{
		DestinationURI: server.URL,
		HttpClient:     server.Client(),
	}

	ticker, err := binance.GetTickerPrice("BTCUSDT")
	assertion.NoError(err)
	assertion.Equal("BTCUSDT", ticker.Symbol)
	assertion.True(ticker.GetPrice().Equal(decimal.NewFromFloat(16700.25)))
}

func TestGetAccountStatusSignedRequest(t *testing.T) {
	assertion := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assertion.Equal("/api/v3/account", r.URL.Path)
		assertion.Equal("test-api-key", r.Header.Get("X-MBX-APIKEY"))
		assertion.NotEmpty(r.URL.Query().Get("timestamp"))
		assertion.Len(r.URL.Query().Get("signature"), 64)

		fmt.Fprint(w, `{"canTrade":true,"balances":[{"asset":"USDT","free":"100.0","locked":"0"}]}`)
	}))
	defer server.Close()

	binance := Binance{
		ApiKey:         "test-api-key",
		ApiSecret:      "test-secret-key",
		DestinationURI: server.URL,
		HttpClient:     server.Client(),
	}

	account, err := binance.GetAccountStatus()
	assertion.NoError(err)
	assertion.True(account.CanTrade)
	assertion.NotNil(account.GetBalance("USDT"))
}

func TestPlaceOrderParams(t *testing.T) {
	assertion := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assertion.Equal("POST", r.Method)
		assertion.Equal("/api/v3/order", r.URL.Path)

		query := r.URL.Query()
		assertion.Equal("BTCUSDT", query.Get("symbol"))
		assertion.Equal("BUY", query.Get("side"))
		assertion.Equal("MARKET", query.Get("type"))
		assertion.Equal("0.4", query.Get("quantity"))
		assertion.Empty(query.Get("price"))
		assertion.NotEmpty(query.Get("newClientOrderId"))

		fmt.Fprint(w, `{"symbol":"BTCUSDT","orderId":42,"origQty":"0.4","status":"FILLED","side":"BUY"}`)
	}))
	defer server.Close()

	binance := Binance{
		ApiKey:         "test-api-key",
		ApiSecret:      "test-secret-key",
		DestinationURI: server.URL,
		HttpClient:     server.Client(),
	}

	order, err := binance.PlaceOrder(model.NewMarketOrder("BTCUSDT", model.OrderSideBuy, decimal.NewFromFloat(0.4)))
	assertion.NoError(err)
	assertion.Equal(int64(42), order.OrderId)
	assertion.True(order.IsFilled())
	assertion.True(order.IsBuy())
}

func TestRequestErrorBody(t *testing.T) {
	assertion := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"code":-1121,"msg":"Invalid symbol."}`)
	}))
	defer server.Close()

	binance := Binance{
		DestinationURI: server.URL,
		HttpClient:     server.Client(),
	}

	_, err := binance.GetTickerPrice("NOPE")
	assertion.Error(err)
	assertion.Contains(err.Error(), "Invalid symbol")
}

func TestTickerStreamURL(t *testing.T) {
	assertion := assert.New(t)

	url := TickerStreamURL("wss://stream.binance.com:9443", []string{"BTCUSDT", "ETHUSDT"})
	assertion.Equal("wss://stream.binance.com:9443/stream?streams=btcusdt@ticker/ethusdt@ticker", url)
}
