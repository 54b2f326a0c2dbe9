package config

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-spot-bot/src/client"
	"gitlab.com/open-soft/go-spot-bot/src/model"
	"gitlab.com/open-soft/go-spot-bot/src/service/exchange"
	"gitlab.com/open-soft/go-spot-bot/src/service/strategy"
	"gitlab.com/open-soft/go-spot-bot/src/utils"
)

const StrategySmaCrossover = "sma_crossover"
const StrategyRsi = "rsi"

type Container struct {
	Binance        *client.Binance
	RiskManager    *exchange.RiskManager
	Strategy       strategy.Strategy
	PriceWatcher   *exchange.PriceWatcher
	BalanceService *exchange.BalanceService
	TradingEngine  *exchange.TradingEngine
	RDB            *redis.Client
}

// InitServiceContainer wires the object graph: exchange client, strategy,
// risk manager, price stream and the trading engine. The Redis cache is
// optional and only attached when REDIS_DSN is set.
func InitServiceContainer(cfg *AppConfig, credentials ExchangeCredentials, paperTrading bool) (*Container, error) {
	ctx := context.Background()

	var rdb *redis.Client
	if dsn := os.Getenv("REDIS_DSN"); dsn != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     dsn,
			Password: "",
			DB:       0,
		})
	}

	httpClient := &http.Client{
		Timeout: time.Second * 30,
	}

	binance := &client.Binance{
		ApiKey:         credentials.ApiKey,
		ApiSecret:      credentials.SecretKey,
		DestinationURI: credentials.Environment.BaseURL(),
		HttpClient:     httpClient,
		RDB:            rdb,
		Ctx:            &ctx,
	}

	tradeStrategy, err := resolveStrategy(cfg)
	if err != nil {
		return nil, err
	}

	riskManager := exchange.NewRiskManager(
		decimal.NewFromFloat(cfg.Risk.MaxPositionPct),
		decimal.NewFromFloat(cfg.Risk.MaxDailyLossPct),
		cfg.Risk.MaxOpenPositions,
	)

	priceWatcher := exchange.NewPriceWatcher()

	tickerChannel := make(chan model.WSTickerEvent, 256)
	statusChannel := make(chan client.StreamStatus, 8)
	priceWatcher.Start(tickerChannel, statusChannel)

	streamURL := client.TickerStreamURL(credentials.Environment.WsURL(), cfg.Exchange.Symbols)
	go client.ListenTickerStream(streamURL, tickerChannel, statusChannel)

	balanceService := &exchange.BalanceService{
		Binance:     binance,
		RDB:         rdb,
		Ctx:         &ctx,
		Environment: string(credentials.Environment),
	}

	tradingEngine := &exchange.TradingEngine{
		Binance:           binance,
		RiskManager:       riskManager,
		Strategy:          tradeStrategy,
		PriceWatcher:      priceWatcher,
		BalanceService:    balanceService,
		Formatter:         &utils.Formatter{},
		TimeService:       &utils.TimeHelper{},
		Symbols:           cfg.Exchange.Symbols,
		PaperTrading:      paperTrading,
		SlippageTolerance: cfg.Trading.SlippageTolerance,
		SymbolPauseMs:     250,
	}

	log.Printf(
		"Service container initialized: environment=%s, strategy=%s",
		credentials.Environment,
		tradeStrategy.Name(),
	)

	return &Container{
		Binance:        binance,
		RiskManager:    riskManager,
		Strategy:       tradeStrategy,
		PriceWatcher:   priceWatcher,
		BalanceService: balanceService,
		TradingEngine:  tradingEngine,
		RDB:            rdb,
	}, nil
}

func resolveStrategy(cfg *AppConfig) (strategy.Strategy, error) {
	switch cfg.Strategy.Default {
	case StrategySmaCrossover, "":
		return strategy.NewSmaCrossoverStrategy(
			cfg.Strategy.SmaCrossover.ShortPeriod,
			cfg.Strategy.SmaCrossover.LongPeriod,
			cfg.Strategy.SmaCrossover.MinSignalStrength,
		)
	case StrategyRsi:
		// threshold-triggered signals always score at least 0.5
		return strategy.NewRsiStrategy(
			cfg.Strategy.Rsi.Period,
			cfg.Strategy.Rsi.OversoldThreshold,
			cfg.Strategy.Rsi.OverboughtThreshold,
			0.5,
		)
	default:
		return nil, errors.New(fmt.Sprintf("Unknown strategy: %s", cfg.Strategy.Default))
	}
}
