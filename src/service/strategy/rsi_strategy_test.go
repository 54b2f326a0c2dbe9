package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRsiConstructorValidation(t *testing.T) {
	assertion := assert.New(t)

	_, err := NewRsiStrategy(0, 30, 70, 0.5)
	assertion.Error(err)

	_, err = NewRsiStrategy(14, 70, 30, 0.5)
	assertion.Error(err)

	strategy, err := NewRsiStrategy(14, 30, 70, 0.5)
	assertion.NoError(err)
	assertion.Equal("RSI", strategy.Name())
	assertion.Equal(15, strategy.RequiredHistory())
}

func TestRsiOversoldEmitsBuy(t *testing.T) {
	assertion := assert.New(t)

	strategy, _ := NewRsiStrategy(4, 30, 70, 0.0)

	// monotonic decline drives RSI to 0, deep under the threshold
	signal := strategy.Analyze(createMarketData(14, 13, 12, 11, 10))

	assertion.True(signal.IsBuy())
	assertion.GreaterOrEqual(signal.Strength, 0.5)
	assertion.LessOrEqual(signal.Strength, 1.0)
}

func TestRsiOverboughtEmitsSell(t *testing.T) {
	assertion := assert.New(t)

	strategy, _ := NewRsiStrategy(4, 30, 70, 0.0)

	signal := strategy.Analyze(createMarketData(10, 11, 12, 13, 14))

	assertion.True(signal.IsSell())
	assertion.GreaterOrEqual(signal.Strength, 0.5)
	assertion.LessOrEqual(signal.Strength, 1.0)
}

func TestRsiNeutralHolds(t *testing.T) {
	assertion := assert.New(t)

	strategy, _ := NewRsiStrategy(4, 30, 70, 0.0)

	// alternating steps keep RSI at 50
	signal := strategy.Analyze(createMarketData(10, 11, 10, 11, 10))

	assertion.True(signal.IsHold())
}

func TestRsiInsufficientData(t *testing.T) {
	assertion := assert.New(t)

	strategy, _ := NewRsiStrategy(14, 30, 70, 0.0)

	signal := strategy.Analyze(createMarketData(10, 11, 12))

	assertion.True(signal.IsHold())
}
