package strategy

import (
	"github.com/shopspring/decimal"
)

// CalculateSMA returns the arithmetic mean of the last period prices.
// Prices are ordered oldest to newest. ok is false when the input is
// too short.
func CalculateSMA(prices []decimal.Decimal, period int) (decimal.Decimal, bool) {
	if period < 1 || len(prices) < period {
		return decimal.Zero, false
	}

	sum := decimal.Zero
	for _, price := range prices[len(prices)-period:] {
		sum = sum.Add(price)
	}

	return sum.Div(decimal.NewFromInt(int64(period))), true
}

// CalculateEMA seeds with the SMA of the first period prices, then
// applies the standard multiplier recurrence over the remainder.
func CalculateEMA(prices []decimal.Decimal, period int) (decimal.Decimal, bool) {
	if period < 1 || len(prices) < period {
		return decimal.Zero, false
	}

	multiplier := decimal.NewFromInt(2).Div(decimal.NewFromInt(int64(period + 1)))

	ema, _ := CalculateSMA(prices[:period], period)

	for _, price := range prices[period:] {
		ema = price.Sub(ema).Mul(multiplier).Add(ema)
	}

	return ema, true
}

// CalculateRSI averages the last period gains and losses (plain average,
// not Wilder smoothing). All-gain windows return 100.
func CalculateRSI(prices []decimal.Decimal, period int) (float64, bool) {
	if period < 1 || len(prices) < period+1 {
		return 0, false
	}

	gains := make([]decimal.Decimal, 0, len(prices)-1)
	losses := make([]decimal.Decimal, 0, len(prices)-1)

	for i := 1; i < len(prices); i++ {
		change := prices[i].Sub(prices[i-1])
		if change.GreaterThan(decimal.Zero) {
			gains = append(gains, change)
			losses = append(losses, decimal.Zero)
		} else {
			gains = append(gains, decimal.Zero)
			losses = append(losses, change.Abs())
		}
	}

	avgGain := averageOfLast(gains, period)
	avgLoss := averageOfLast(losses, period)

	if avgLoss.IsZero() {
		return 100.0, true
	}

	rs := avgGain.Div(avgLoss).InexactFloat64()

	return 100.0 - (100.0 / (1.0 + rs)), true
}

func averageOfLast(values []decimal.Decimal, period int) decimal.Decimal {
	sum := decimal.Zero
	for _, value := range values[len(values)-period:] {
		sum = sum.Add(value)
	}

	return sum.Div(decimal.NewFromInt(int64(period)))
}
