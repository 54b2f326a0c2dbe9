package strategy

import (
	"errors"
	"log"
	"math"

	"gitlab.com/open-soft/go-spot-bot/src/model"
)

const RsiStrategyName = "RSI"

type RsiStrategy struct {
	period            int
	oversold          float64
	overbought        float64
	minSignalStrength float64
}

func NewRsiStrategy(period int, oversold float64, overbought float64, minSignalStrength float64) (*RsiStrategy, error) {
	if period < 1 {
		return nil, errors.New("Period must be positive")
	}

	if oversold >= overbought {
		return nil, errors.New("Oversold threshold must be less than overbought threshold")
	}

	return &RsiStrategy{
		period:            period,
		oversold:          oversold,
		overbought:        overbought,
		minSignalStrength: minSignalStrength,
	}, nil
}

func (s *RsiStrategy) Name() string {
	return RsiStrategyName
}

func (s *RsiStrategy) RequiredHistory() int {
	return s.period + 1
}

func (s *RsiStrategy) Analyze(marketData model.MarketData) model.Signal {
	prices := marketData.ClosePrices()

	if len(prices) < s.period+1 {
		log.Printf(
			"[%s] Insufficient data for RSI analysis: have %d, need %d",
			marketData.Symbol,
			len(prices),
			s.period+1,
		)
		return model.HoldSignal()
	}

	rsi, ok := CalculateRSI(prices, s.period)
	if !ok {
		return model.HoldSignal()
	}

	if rsi < s.oversold {
		strength := math.Min(0.5+(s.oversold-rsi)/100.0, 1.0)
		log.Printf("[%s] RSI oversold at %.2f, strength: %.2f", marketData.Symbol, rsi, strength)

		if strength >= s.minSignalStrength {
			return model.BuySignal(strength)
		}
	}

	if rsi > s.overbought {
		strength := math.Min(0.5+(rsi-s.overbought)/100.0, 1.0)
		log.Printf("[%s] RSI overbought at %.2f, strength: %.2f", marketData.Symbol, rsi, strength)

		if strength >= s.minSignalStrength {
			return model.SellSignal(strength)
		}
	}

	return model.HoldSignal()
}
