package exchange

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-spot-bot/src/model"
)

type PositionTooLargeError struct {
	Requested  decimal.Decimal
	MaxAllowed decimal.Decimal
	MaxPct     decimal.Decimal
}

func (e PositionTooLargeError) Error() string {
	return fmt.Sprintf(
		"Position size %s exceeds maximum allowed %s (%s%% of balance)",
		e.Requested.String(),
		e.MaxAllowed.String(),
		e.MaxPct.String(),
	)
}

type InsufficientBalanceError struct {
	Available decimal.Decimal
	Required  decimal.Decimal
}

func (e InsufficientBalanceError) Error() string {
	return fmt.Sprintf("Insufficient balance: have %s, need %s", e.Available.String(), e.Required.String())
}

type DailyLossExceededError struct {
	CurrentLoss decimal.Decimal
	MaxLoss     decimal.Decimal
}

func (e DailyLossExceededError) Error() string {
	return fmt.Sprintf(
		"Daily loss limit exceeded: current loss %s%% exceeds max %s%%",
		e.CurrentLoss.String(),
		e.MaxLoss.String(),
	)
}

type MaxPositionsReachedError struct {
	Max int64
}

func (e MaxPositionsReachedError) Error() string {
	return fmt.Sprintf("Maximum open positions (%d) reached", e.Max)
}

type InvalidOrderError struct {
	Reason string
}

func (e InvalidOrderError) Error() string {
	return fmt.Sprintf("Invalid order: %s", e.Reason)
}

// RiskManager owns the pre-trade gates. Limits are immutable after
// construction; the open-position counter is atomic and the daily-loss
// scalar sits behind a read-write lock so CanTrade stays cheap.
type RiskManager struct {
	maxPositionPct   decimal.Decimal
	maxDailyLossPct  decimal.Decimal
	maxOpenPositions int64

	dailyLossLock       sync.RWMutex
	currentDailyLossPct decimal.Decimal

	currentOpenPositions atomic.Int64
}

func NewRiskManager(maxPositionPct decimal.Decimal, maxDailyLossPct decimal.Decimal, maxOpenPositions int64) *RiskManager {
	return &RiskManager{
		maxPositionPct:      maxPositionPct,
		maxDailyLossPct:     maxDailyLossPct,
		maxOpenPositions:    maxOpenPositions,
		currentDailyLossPct: decimal.Zero,
	}
}

// CanTrade is a snapshot, not a reservation.
func (r *RiskManager) CanTrade() bool {
	r.dailyLossLock.RLock()
	dailyLoss := r.currentDailyLossPct
	r.dailyLossLock.RUnlock()

	return dailyLoss.LessThan(r.maxDailyLossPct) && r.currentOpenPositions.Load() < r.maxOpenPositions
}

// ValidateOrder runs the ordered pre-trade checks and returns the first
// failure: state gates before money gates before shape gates.
func (r *RiskManager) ValidateOrder(order model.OrderRequest, quoteBalance model.Balance, currentPrice decimal.Decimal) error {
	r.dailyLossLock.RLock()
	dailyLoss := r.currentDailyLossPct
	r.dailyLossLock.RUnlock()

	if dailyLoss.GreaterThanOrEqual(r.maxDailyLossPct) {
		return DailyLossExceededError{CurrentLoss: dailyLoss, MaxLoss: r.maxDailyLossPct}
	}

	if r.currentOpenPositions.Load() >= r.maxOpenPositions {
		return MaxPositionsReachedError{Max: r.maxOpenPositions}
	}

	if order.Side == model.OrderSideBuy {
		orderValue := order.Quantity.Mul(currentPrice)
		available := quoteBalance.Free
		maxPositionValue := available.Mul(r.maxPositionPct).Div(decimal.NewFromInt(100))

		if orderValue.GreaterThan(maxPositionValue) {
			return PositionTooLargeError{
				Requested:  orderValue,
				MaxAllowed: maxPositionValue,
				MaxPct:     r.maxPositionPct,
			}
		}

		if orderValue.GreaterThan(available) {
			return InsufficientBalanceError{Available: available, Required: orderValue}
		}
	}

	if order.Quantity.LessThanOrEqual(decimal.Zero) {
		return InvalidOrderError{Reason: "Quantity must be positive"}
	}

	if order.Type == model.OrderTypeLimit && order.Price == nil {
		return InvalidOrderError{Reason: "Limit orders must have a price"}
	}

	return nil
}

// CalculatePositionSize converts a risk percentage of the balance into a
// base quantity at the given price. Rounding is the caller's job.
func (r *RiskManager) CalculatePositionSize(balance decimal.Decimal, riskPct decimal.Decimal, price decimal.Decimal) decimal.Decimal {
	if price.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	effectiveRiskPct := riskPct
	if effectiveRiskPct.GreaterThan(r.maxPositionPct) {
		effectiveRiskPct = r.maxPositionPct
	}

	positionValue := balance.Mul(effectiveRiskPct).Div(decimal.NewFromInt(100))

	return positionValue.Div(price)
}

// RecordTradeResult accumulates realized losses; profit never reduces
// the daily loss counter.
func (r *RiskManager) RecordTradeResult(pnlPct decimal.Decimal) {
	if pnlPct.GreaterThanOrEqual(decimal.Zero) {
		return
	}

	r.dailyLossLock.Lock()
	r.currentDailyLossPct = r.currentDailyLossPct.Add(pnlPct.Abs())
	r.dailyLossLock.Unlock()
}

func (r *RiskManager) IncrementPositions() {
	r.currentOpenPositions.Add(1)
}

// DecrementPositions saturates at zero: a sell without a tracked open
// position must not underflow the counter.
func (r *RiskManager) DecrementPositions() {
	for {
		current := r.currentOpenPositions.Load()
		if current <= 0 {
			return
		}

		if r.currentOpenPositions.CompareAndSwap(current, current-1) {
			return
		}
	}
}

func (r *RiskManager) ResetDailyStats() {
	r.dailyLossLock.Lock()
	r.currentDailyLossPct = decimal.Zero
	r.dailyLossLock.Unlock()
}

func (r *RiskManager) CurrentDailyLoss() decimal.Decimal {
	r.dailyLossLock.RLock()
	defer r.dailyLossLock.RUnlock()

	return r.currentDailyLossPct
}

func (r *RiskManager) OpenPositionsCount() int64 {
	return r.currentOpenPositions.Load()
}
