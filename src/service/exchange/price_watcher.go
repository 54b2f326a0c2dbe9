package exchange

import (
	"log"
	"sync"

	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-spot-bot/src/client"
	"gitlab.com/open-soft/go-spot-bot/src/model"
)

// PriceWatcher keeps the latest stream price per symbol. The engine uses
// it as a cross-check against the REST snapshot before live submissions.
type PriceWatcher struct {
	lock   sync.RWMutex
	prices map[string]decimal.Decimal
}

func NewPriceWatcher() *PriceWatcher {
	return &PriceWatcher{
		prices: make(map[string]decimal.Decimal),
	}
}

// Start consumes ticker and status events until both channels close.
func (w *PriceWatcher) Start(tickerChannel <-chan model.WSTickerEvent, statusChannel <-chan client.StreamStatus) {
	go func() {
		for ticker := range tickerChannel {
			w.lock.Lock()
			w.prices[ticker.Symbol] = ticker.GetClosePrice()
			w.lock.Unlock()
		}
	}()

	go func() {
		for status := range statusChannel {
			switch status.State {
			case client.StreamStateConnected:
				log.Printf("Ticker stream connected")
			case client.StreamStateDisconnected:
				log.Printf("Ticker stream disconnected")
			case client.StreamStateError:
				log.Printf("Ticker stream error: %s", status.Error)
			}
		}
	}()
}

func (w *PriceWatcher) GetLastPrice(symbol string) (decimal.Decimal, bool) {
	w.lock.RLock()
	defer w.lock.RUnlock()

	price, ok := w.prices[symbol]

	return price, ok
}
