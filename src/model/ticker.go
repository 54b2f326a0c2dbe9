package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type TickerPrice struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

func (t *TickerPrice) GetPrice() decimal.Decimal {
	value, _ := decimal.NewFromString(t.Price)

	return value
}

// WSTickerEvent is a 24hr ticker frame from the <symbol>@ticker stream.
type WSTickerEvent struct {
	EventType  string         `json:"e"`
	EventTime  TimestampMilli `json:"E"`
	Symbol     string         `json:"s"`
	ClosePrice string         `json:"c"`
}

func (w *WSTickerEvent) GetClosePrice() decimal.Decimal {
	value, _ := decimal.NewFromString(w.ClosePrice)

	return value
}

// StreamEnvelope wraps combined-stream messages: {"stream": "...", "data": {...}}
type StreamEnvelope struct {
	Stream string          `json:"stream"`
	Data   json.RawMessage `json:"data"`
}
