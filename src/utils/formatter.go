package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Formatter struct {
}

// RoundQuantity rounds an order quantity by symbol family. Lot-size
// filters from exchangeInfo are not consulted; BTC pairs get 5 decimal
// places, ETH pairs 4, everything else 3.
func (m *Formatter) RoundQuantity(symbol string, quantity decimal.Decimal) decimal.Decimal {
	precision := int32(3)

	if strings.HasPrefix(symbol, "BTC") {
		precision = 5
	} else if strings.HasPrefix(symbol, "ETH") {
		precision = 4
	}

	return quantity.Round(precision)
}

func (m *Formatter) FormatDecimal(value decimal.Decimal) string {
	return value.String()
}

func (m *Formatter) ComparePercentage(first decimal.Decimal, second decimal.Decimal) decimal.Decimal {
	if first.IsZero() {
		return decimal.Zero
	}

	return second.Mul(decimal.NewFromInt(100)).Div(first)
}
