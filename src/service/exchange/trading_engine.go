package exchange

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-spot-bot/src/client"
	"gitlab.com/open-soft/go-spot-bot/src/model"
	"gitlab.com/open-soft/go-spot-bot/src/service/strategy"
	"gitlab.com/open-soft/go-spot-bot/src/utils"
)

// MinKLineHistory pads short strategy lookbacks so the kline request is
// never smaller than a useful chart window.
const MinKLineHistory = 50

// TradingEngine drives the trade cycle: fetch market data per symbol,
// ask the strategy for a signal, size the order through the risk manager
// and either log it (paper) or submit it to the exchange (live).
type TradingEngine struct {
	Binance        client.ExchangeAPIInterface
	RiskManager    *RiskManager
	Strategy       strategy.Strategy
	PriceWatcher   *PriceWatcher
	BalanceService BalanceServiceInterface
	Formatter      *utils.Formatter
	TimeService    utils.TimeServiceInterface

	Symbols           []string
	PaperTrading      bool
	SlippageTolerance float64
	SymbolPauseMs     int64
}

// Run executes trade cycles on a fixed interval until the context is
// cancelled. Daily loss counters reset at the UTC day rollover.
func (e *TradingEngine) Run(ctx context.Context, intervalMs int64) {
	log.Printf(
		"Trading engine started: strategy=%s, symbols=%v, paper=%t",
		e.Strategy.Name(),
		e.Symbols,
		e.PaperTrading,
	)

	ticker := time.NewTicker(time.Duration(intervalMs) * time.Millisecond)
	defer ticker.Stop()

	currentDay := time.Now().UTC().Day()

	e.RunOnce()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Trading engine stopped")
			return
		case <-ticker.C:
			if day := time.Now().UTC().Day(); day != currentDay {
				currentDay = day
				e.RiskManager.ResetDailyStats()
				log.Printf("New trading day, daily loss counter reset")
			}

			e.RunOnce()
		}
	}
}

// RunOnce performs a single trade cycle over all configured symbols.
// A failing symbol is logged and skipped, never aborts the cycle.
func (e *TradingEngine) RunOnce() {
	if !e.RiskManager.CanTrade() {
		log.Printf(
			"Trading halted by risk limits: daily loss %s%%, open positions %d",
			e.RiskManager.CurrentDailyLoss().String(),
			e.RiskManager.OpenPositionsCount(),
		)
		return
	}

	account, err := e.BalanceService.GetAccountStatus(false)
	if err != nil {
		log.Printf("Account status request failed: %s", err.Error())
		return
	}

	for i, symbol := range e.Symbols {
		// pace the REST calls to stay clear of request weight limits
		if i > 0 && e.TimeService != nil && e.SymbolPauseMs > 0 {
			e.TimeService.WaitMilliseconds(e.SymbolPauseMs)
		}

		if err := e.ProcessSymbol(symbol, account); err != nil {
			log.Printf("[%s] Symbol processing failed: %s", symbol, err.Error())
		}
	}
}

// ProcessSymbol fetches market data, evaluates the strategy and routes
// the resulting signal.
func (e *TradingEngine) ProcessSymbol(symbol string, account *model.AccountStatus) error {
	historyLimit := int64(e.Strategy.RequiredHistory())
	if historyLimit < MinKLineHistory {
		historyLimit = MinKLineHistory
	}

	marketData, err := e.Binance.GetMarketData(symbol, historyLimit)
	if err != nil {
		return err
	}

	signal := e.Strategy.Analyze(marketData)

	switch {
	case signal.IsBuy():
		return e.ExecuteBuy(marketData, signal, account)
	case signal.IsSell():
		return e.ExecuteSell(marketData, signal, account)
	default:
		log.Printf("[%s] No signal at %s", symbol, marketData.CurrentPrice.String())
		return nil
	}
}

// ExecuteBuy sizes a market buy from the quote balance and the signal
// strength. Risk rejections are logged and swallowed: a rejected order
// is a normal outcome of a cycle, not an engine failure.
func (e *TradingEngine) ExecuteBuy(marketData model.MarketData, signal model.Signal, account *model.AccountStatus) error {
	symbol := marketData.Symbol
	quoteAsset := model.QuoteAsset(symbol)

	quoteBalance := account.GetBalance(quoteAsset)
	if quoteBalance == nil {
		return errors.New(fmt.Sprintf("No %s balance found for %s", quoteAsset, symbol))
	}

	// A stronger signal commits a larger share: 1% base plus up to 1%.
	riskPct := decimal.NewFromInt(1).Add(decimal.NewFromFloat(signal.Strength))

	quantity := e.RiskManager.CalculatePositionSize(quoteBalance.Free, riskPct, marketData.CurrentPrice)
	quantity = e.Formatter.RoundQuantity(symbol, quantity)

	if quantity.LessThanOrEqual(decimal.Zero) {
		log.Printf("[%s] Calculated buy quantity is zero, skipping", symbol)
		return nil
	}

	order := model.NewMarketOrder(symbol, model.OrderSideBuy, quantity)

	if err := e.RiskManager.ValidateOrder(order, *quoteBalance, marketData.CurrentPrice); err != nil {
		log.Printf("[%s] Buy rejected: %s", symbol, err.Error())
		return nil
	}

	if e.PaperTrading {
		log.Printf(
			"[PAPER] Would BUY %s %s at %s (strength %.2f)",
			quantity.String(),
			symbol,
			marketData.CurrentPrice.String(),
			signal.Strength,
		)
		return nil
	}

	if err := e.checkSlippage(symbol, marketData.CurrentPrice); err != nil {
		log.Printf("[%s] Buy skipped: %s", symbol, err.Error())
		return nil
	}

	binanceOrder, err := e.Binance.PlaceOrder(order)
	if err != nil {
		return err
	}

	e.RiskManager.IncrementPositions()
	e.BalanceService.InvalidateBalanceCache()

	log.Printf(
		"[%s] BUY order %d placed: qty %s, status %s",
		symbol,
		binanceOrder.OrderId,
		binanceOrder.OrigQty.String(),
		binanceOrder.Status,
	)

	return nil
}

// ExecuteSell liquidates a strength-scaled share of the free base asset
// balance. Nothing held means nothing to do.
func (e *TradingEngine) ExecuteSell(marketData model.MarketData, signal model.Signal, account *model.AccountStatus) error {
	symbol := marketData.Symbol
	baseAsset := model.BaseAsset(symbol)

	baseBalance := account.GetBalance(baseAsset)
	if baseBalance == nil || baseBalance.Free.LessThanOrEqual(decimal.Zero) {
		log.Printf("[%s] No %s balance to sell", symbol, baseAsset)
		return nil
	}

	quantity := baseBalance.Free.Mul(decimal.NewFromFloat(signal.Strength))
	quantity = e.Formatter.RoundQuantity(symbol, quantity)

	if quantity.LessThanOrEqual(decimal.Zero) {
		log.Printf("[%s] Calculated sell quantity is zero, skipping", symbol)
		return nil
	}

	order := model.NewMarketOrder(symbol, model.OrderSideSell, quantity)

	// Sells spend the base asset, so the quote balance gates do not
	// apply; validation still runs the state and shape checks.
	syntheticQuote := model.Balance{Asset: model.QuoteAsset(symbol)}

	if err := e.RiskManager.ValidateOrder(order, syntheticQuote, marketData.CurrentPrice); err != nil {
		log.Printf("[%s] Sell rejected: %s", symbol, err.Error())
		return nil
	}

	if e.PaperTrading {
		log.Printf(
			"[PAPER] Would SELL %s %s at %s (strength %.2f)",
			quantity.String(),
			symbol,
			marketData.CurrentPrice.String(),
			signal.Strength,
		)
		return nil
	}

	if err := e.checkSlippage(symbol, marketData.CurrentPrice); err != nil {
		log.Printf("[%s] Sell skipped: %s", symbol, err.Error())
		return nil
	}

	binanceOrder, err := e.Binance.PlaceOrder(order)
	if err != nil {
		return err
	}

	e.RiskManager.DecrementPositions()
	e.BalanceService.InvalidateBalanceCache()

	log.Printf(
		"[%s] SELL order %d placed: qty %s, status %s",
		symbol,
		binanceOrder.OrderId,
		binanceOrder.OrigQty.String(),
		binanceOrder.Status,
	)

	return nil
}

// checkSlippage compares the REST snapshot price to the latest stream
// price. No stream price yet means no objection.
func (e *TradingEngine) checkSlippage(symbol string, snapshotPrice decimal.Decimal) error {
	if e.PriceWatcher == nil || e.SlippageTolerance <= 0 {
		return nil
	}

	streamPrice, ok := e.PriceWatcher.GetLastPrice(symbol)
	if !ok || snapshotPrice.IsZero() {
		return nil
	}

	drift := streamPrice.Sub(snapshotPrice).Abs().Div(snapshotPrice)

	if drift.GreaterThan(decimal.NewFromFloat(e.SlippageTolerance)) {
		return errors.New(fmt.Sprintf(
			"Price drifted %s%% between snapshot %s and stream %s",
			drift.Mul(decimal.NewFromInt(100)).Round(4).String(),
			snapshotPrice.String(),
			streamPrice.String(),
		))
	}

	return nil
}
