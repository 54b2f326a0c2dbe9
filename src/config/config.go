package config

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type AppConfig struct {
	Exchange ExchangeConfig `toml:"exchange"`
	Trading  TradingConfig  `toml:"trading"`
	Risk     RiskConfig     `toml:"risk"`
	Strategy StrategyConfig `toml:"strategy"`
	Logging  LoggingConfig  `toml:"logging"`
}

type ExchangeConfig struct {
	Name             string   `toml:"name"`
	Symbols          []string `toml:"symbols"`
	UpdateIntervalMs int64    `toml:"update_interval_ms"`
}

type TradingConfig struct {
	PaperTrading      bool    `toml:"paper_trading"`
	DefaultOrderType  string  `toml:"default_order_type"`
	SlippageTolerance float64 `toml:"slippage_tolerance"`
}

type RiskConfig struct {
	MaxPositionPct       float64 `toml:"max_position_pct"`
	MaxDailyLossPct      float64 `toml:"max_daily_loss_pct"`
	MaxOpenPositions     int64   `toml:"max_open_positions"`
	DefaultStopLossPct   float64 `toml:"default_stop_loss_pct"`
	DefaultTakeProfitPct float64 `toml:"default_take_profit_pct"`
}

type StrategyConfig struct {
	Default      string             `toml:"default"`
	SmaCrossover SmaCrossoverConfig `toml:"sma_crossover"`
	Rsi          RsiConfig          `toml:"rsi"`
	Grid         GridConfig         `toml:"grid"`
}

type SmaCrossoverConfig struct {
	ShortPeriod       int     `toml:"short_period"`
	LongPeriod        int     `toml:"long_period"`
	MinSignalStrength float64 `toml:"min_signal_strength"`
}

type RsiConfig struct {
	Period              int     `toml:"period"`
	OversoldThreshold   float64 `toml:"oversold_threshold"`
	OverboughtThreshold float64 `toml:"overbought_threshold"`
}

type GridConfig struct {
	GridLevels     int64   `toml:"grid_levels"`
	GridSpacingPct float64 `toml:"grid_spacing_pct"`
	OrderSizePct   float64 `toml:"order_size_pct"`
}

type LoggingConfig struct {
	Level       string `toml:"level"`
	FileEnabled bool   `toml:"file_enabled"`
	FilePath    string `toml:"file_path"`
}

func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file failed (%s): %w", path, err)
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "toml"
	}); err != nil {
		return nil, fmt.Errorf("parsing config failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validateConfig(cfg *AppConfig) error {
	if len(cfg.Exchange.Symbols) == 0 {
		return errors.New("exchange.symbols must not be empty")
	}

	if cfg.Exchange.UpdateIntervalMs <= 0 {
		return errors.New("exchange.update_interval_ms must be positive")
	}

	if cfg.Risk.MaxPositionPct <= 0 || cfg.Risk.MaxPositionPct > 100 {
		return errors.New("risk.max_position_pct must be in (0, 100]")
	}

	if cfg.Risk.MaxDailyLossPct <= 0 {
		return errors.New("risk.max_daily_loss_pct must be positive")
	}

	if cfg.Risk.MaxOpenPositions <= 0 {
		return errors.New("risk.max_open_positions must be positive")
	}

	return nil
}
