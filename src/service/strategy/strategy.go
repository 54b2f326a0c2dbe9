package strategy

import (
	"gitlab.com/open-soft/go-spot-bot/src/model"
)

// Strategy maps market data to a trading signal. Implementations are
// stateless with respect to positions and safe to share across
// goroutines.
type Strategy interface {
	Name() string
	RequiredHistory() int
	Analyze(marketData model.MarketData) model.Signal
}
