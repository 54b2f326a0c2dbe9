package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// KLineHistory is one candle as returned by the klines endpoint.
// Binance serializes candles as arrays with fixed positions:
// [openTime, open, high, low, close, volume, closeTime, quoteVolume, trades, takerBuyBase, takerBuyQuote, unused]
type KLineHistory struct {
	OpenTime                 TimestampMilli `json:"openTime"`
	Open                     string         `json:"open"`
	High                     string         `json:"high"`
	Low                      string         `json:"low"`
	Close                    string         `json:"close"`
	Volume                   string         `json:"volume"`
	CloseTime                TimestampMilli `json:"closeTime"`
	QuoteAssetVolume         string         `json:"quoteAssetVolume"`
	TradesNumber             int64          `json:"tradesNumber"`
	TakerBuyBaseAssetVolume  string         `json:"takerBuyBaseAssetVolume"`
	TakerBuyQuoteAssetVolume string         `json:"takerBuyQuoteAssetVolume"`
	UnusedField              string         `json:"_"`
}

func (k *KLineHistory) UnmarshalJSON(data []byte) error {
	var s []json.RawMessage
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	dest := []interface{}{
		&k.OpenTime,
		&k.Open,
		&k.High,
		&k.Low,
		&k.Close,
		&k.Volume,
		&k.CloseTime,
		&k.QuoteAssetVolume,
		&k.TradesNumber,
		&k.TakerBuyBaseAssetVolume,
		&k.TakerBuyQuoteAssetVolume,
		&k.UnusedField,
	}

	for i, item := range dest {
		if i >= len(s) {
			break
		}

		if err := json.Unmarshal(s[i], item); err != nil {
			return err
		}
	}

	return nil
}

func (k *KLineHistory) GetOpenPrice() decimal.Decimal {
	value, _ := decimal.NewFromString(k.Open)

	return value
}

func (k *KLineHistory) GetClosePrice() decimal.Decimal {
	value, _ := decimal.NewFromString(k.Close)

	return value
}

func (k *KLineHistory) GetHighPrice() decimal.Decimal {
	value, _ := decimal.NewFromString(k.High)

	return value
}

func (k *KLineHistory) GetLowPrice() decimal.Decimal {
	value, _ := decimal.NewFromString(k.Low)

	return value
}

func (k *KLineHistory) GetVolume() decimal.Decimal {
	value, _ := decimal.NewFromString(k.Volume)

	return value
}

func (k *KLineHistory) IsPositive() bool {
	return k.GetClosePrice().GreaterThan(k.GetOpenPrice())
}

func (k *KLineHistory) IsNegative() bool {
	return k.GetClosePrice().LessThan(k.GetOpenPrice())
}

type MarketData struct {
	Symbol       string          `json:"symbol"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	KLines       []KLineHistory  `json:"kLines"`
	Timestamp    TimestampMilli  `json:"timestamp"`
}

// ClosePrices returns close prices ordered oldest to newest.
func (m *MarketData) ClosePrices() []decimal.Decimal {
	prices := make([]decimal.Decimal, 0, len(m.KLines))

	for i := range m.KLines {
		prices = append(prices, m.KLines[i].GetClosePrice())
	}

	return prices
}
