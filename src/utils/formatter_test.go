package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundQuantity(t *testing.T) {
	assertion := assert.New(t)

	formatter := Formatter{}
	quantity := decimal.NewFromFloat(0.123456789)

	assertion.Equal("0.12346", formatter.RoundQuantity("BTCUSDT", quantity).String())
	assertion.Equal("0.1235", formatter.RoundQuantity("ETHUSDT", quantity).String())
	assertion.Equal("0.123", formatter.RoundQuantity("SOLUSDT", quantity).String())
}

func TestComparePercentage(t *testing.T) {
	assertion := assert.New(t)

	formatter := Formatter{}

	result := formatter.ComparePercentage(decimal.NewFromInt(200), decimal.NewFromInt(50))
	assertion.True(result.Equal(decimal.NewFromInt(25)))

	assertion.True(formatter.ComparePercentage(decimal.Zero, decimal.NewFromInt(50)).IsZero())
}
