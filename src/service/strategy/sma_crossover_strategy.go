package strategy

import (
	"errors"
	"log"
	"math"

	"gitlab.com/open-soft/go-spot-bot/src/model"
)

const SmaCrossoverStrategyName = "SMA Crossover"

type SmaCrossoverStrategy struct {
	shortPeriod       int
	longPeriod        int
	minSignalStrength float64
}

func NewSmaCrossoverStrategy(shortPeriod int, longPeriod int, minSignalStrength float64) (*SmaCrossoverStrategy, error) {
	if shortPeriod < 1 {
		return nil, errors.New("Short period must be positive")
	}

	if shortPeriod >= longPeriod {
		return nil, errors.New("Short period must be less than long period")
	}

	return &SmaCrossoverStrategy{
		shortPeriod:       shortPeriod,
		longPeriod:        longPeriod,
		minSignalStrength: minSignalStrength,
	}, nil
}

func (s *SmaCrossoverStrategy) Name() string {
	return SmaCrossoverStrategyName
}

func (s *SmaCrossoverStrategy) RequiredHistory() int {
	return s.longPeriod + 1
}

func (s *SmaCrossoverStrategy) Analyze(marketData model.MarketData) model.Signal {
	prices := marketData.ClosePrices()

	if len(prices) < s.longPeriod+1 {
		log.Printf(
			"[%s] Insufficient data for SMA analysis: have %d, need %d",
			marketData.Symbol,
			len(prices),
			s.longPeriod+1,
		)
		return model.HoldSignal()
	}

	shortSma, ok := CalculateSMA(prices, s.shortPeriod)
	if !ok {
		return model.HoldSignal()
	}

	longSma, ok := CalculateSMA(prices, s.longPeriod)
	if !ok {
		return model.HoldSignal()
	}

	// SMAs as of the previous candle
	prevPrices := prices[:len(prices)-1]

	prevShortSma, ok := CalculateSMA(prevPrices, s.shortPeriod)
	if !ok {
		return model.HoldSignal()
	}

	prevLongSma, ok := CalculateSMA(prevPrices, s.longPeriod)
	if !ok {
		return model.HoldSignal()
	}

	wasBelow := prevShortSma.LessThan(prevLongSma)
	isAbove := shortSma.GreaterThan(longSma)
	wasAbove := prevShortSma.GreaterThan(prevLongSma)
	isBelow := shortSma.LessThan(longSma)

	// A 1% separation between the SMAs already saturates the score
	separation := 0.0
	if !longSma.IsZero() {
		separation = shortSma.Sub(longSma).Abs().Div(longSma).InexactFloat64()
		separation = math.Min(separation*100.0, 1.0)
	}

	strength := math.Min(0.5+separation, 1.0)

	if wasBelow && isAbove {
		log.Printf("[%s] Golden cross detected! Strength: %.2f", marketData.Symbol, strength)

		if strength >= s.minSignalStrength {
			return model.BuySignal(strength)
		}
	}

	if wasAbove && isBelow {
		log.Printf("[%s] Death cross detected! Strength: %.2f", marketData.Symbol, strength)

		if strength >= s.minSignalStrength {
			return model.SellSignal(strength)
		}
	}

	return model.HoldSignal()
}
