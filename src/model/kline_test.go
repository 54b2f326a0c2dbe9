package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestKLineHistoryUnmarshal(t *testing.T) {
	assertion := assert.New(t)

	payload := `[
		[1672531200000, "16500.00", "16750.50", "16400.10", "16700.25", "1234.567", 1672534799999, "20500000.00", 54321, "600.1", "9900000.0", "0"]
	]`

	var kLines []KLineHistory
	err := json.Unmarshal([]byte(payload), &kLines)

	assertion.NoError(err)
	assertion.Len(kLines, 1)

	kLine := kLines[0]
	assertion.Equal(int64(1672531200000), kLine.OpenTime.Value())
	assertion.True(kLine.GetOpenPrice().Equal(decimal.NewFromFloat(16500.00)))
	assertion.True(kLine.GetHighPrice().Equal(decimal.NewFromFloat(16750.50)))
	assertion.True(kLine.GetLowPrice().Equal(decimal.NewFromFloat(16400.10)))
	assertion.True(kLine.GetClosePrice().Equal(decimal.NewFromFloat(16700.25)))
	assertion.True(kLine.GetVolume().Equal(decimal.NewFromFloat(1234.567)))
	assertion.Equal(int64(1672534799999), kLine.CloseTime.Value())
	assertion.Equal(int64(54321), kLine.TradesNumber)
	assertion.True(kLine.IsPositive())
	assertion.False(kLine.IsNegative())
}

func TestMarketDataClosePrices(t *testing.T) {
	assertion := assert.New(t)

	marketData := MarketData{
		Symbol: "ETHUSDT",
		KLines: []KLineHistory{
			{Close: "100.5"},
			{Close: "101.0"},
			{Close: "99.9"},
		},
	}

	prices := marketData.ClosePrices()
	assertion.Len(prices, 3)
	assertion.True(prices[0].Equal(decimal.NewFromFloat(100.5)))
	assertion.True(prices[2].Equal(decimal.NewFromFloat(99.9)))
}

func TestWSTickerEventUnmarshal(t *testing.T) {
	assertion := assert.New(t)

	payload := `{"e":"24hrTicker","E":1672531200000,"s":"BTCUSDT","c":"16700.25"}`

	var event WSTickerEvent
	err := json.Unmarshal([]byte(payload), &event)

	assertion.NoError(err)
	assertion.Equal("BTCUSDT", event.Symbol)
	assertion.True(event.GetClosePrice().Equal(decimal.NewFromFloat(16700.25)))
}

func TestStreamEnvelopeUnmarshal(t *testing.T) {
	assertion := assert.New(t)

	payload := `{"stream":"btcusdt@ticker","data":{"e":"24hrTicker","E":1,"s":"BTCUSDT","c":"100"}}`

	var envelope StreamEnvelope
	err := json.Unmarshal([]byte(payload), &envelope)

	assertion.NoError(err)
	assertion.Equal("btcusdt@ticker", envelope.Stream)

	var event WSTickerEvent
	assertion.NoError(json.Unmarshal(envelope.Data, &event))
	assertion.Equal("BTCUSDT", event.Symbol)
}

func TestAccountStatusGetBalance(t *testing.T) {
	assertion := assert.New(t)

	payload := `{
		"canTrade": true,
		"accountType": "SPOT",
		"balances": [
			{"asset": "BTC", "free": "0.5", "locked": "0.1"},
			{"asset": "USDT", "free": "1000.00", "locked": "0"}
		]
	}`

	var account AccountStatus
	assertion.NoError(json.Unmarshal([]byte(payload), &account))
	assertion.True(account.CanTrade)

	btc := account.GetBalance("BTC")
	assertion.NotNil(btc)
	assertion.True(btc.Free.Equal(decimal.NewFromFloat(0.5)))
	assertion.True(btc.Total().Equal(decimal.NewFromFloat(0.6)))

	assertion.Nil(account.GetBalance("ETH"))
}

func TestSignalActionable(t *testing.T) {
	assertion := assert.New(t)

	assertion.True(BuySignal(0.7).IsActionable(0.5))
	assertion.False(BuySignal(0.4).IsActionable(0.5))
	assertion.True(SellSignal(0.5).IsActionable(0.5))
	assertion.False(HoldSignal().IsActionable(0.0))
}

func TestTimestampMilliFlexibleUnmarshal(t *testing.T) {
	assertion := assert.New(t)

	var fromNumber TimestampMilli
	assertion.NoError(json.Unmarshal([]byte(`1672531200000`), &fromNumber))
	assertion.Equal(int64(1672531200000), fromNumber.Value())

	var fromString TimestampMilli
	assertion.NoError(json.Unmarshal([]byte(`"1672531200000"`), &fromString))
	assertion.Equal(int64(1672531200000), fromString.Value())
}
