package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	return path
}

const validConfig = `
[exchange]
name = "binance"
symbols = ["BTCUSDT", "ETHUSDT"]
update_interval_ms = 60000

[trading]
paper_trading = true
default_order_type = "MARKET"
slippage_tolerance = 0.002

[risk]
max_position_pct = 2.0
max_daily_loss_pct = 5.0
max_open_positions = 3
default_stop_loss_pct = 2.0
default_take_profit_pct = 4.0

[strategy]
default = "sma_crossover"

[strategy.sma_crossover]
short_period = 10
long_period = 30
min_signal_strength = 0.5

[strategy.rsi]
period = 14
oversold_threshold = 30.0
overbought_threshold = 70.0

[strategy.grid]
grid_levels = 10
grid_spacing_pct = 1.0
order_size_pct = 5.0

[logging]
level = "info"
file_enabled = false
file_path = "bot.log"
`

func TestLoadConfig(t *testing.T) {
	assertion := assert.New(t)

	cfg, err := LoadConfig(writeConfigFile(t, validConfig))
	assertion.NoError(err)

	assertion.Equal("binance", cfg.Exchange.Name)
	assertion.Equal([]string{"BTCUSDT", "ETHUSDT"}, cfg.Exchange.Symbols)
	assertion.Equal(int64(60000), cfg.Exchange.UpdateIntervalMs)
	assertion.True(cfg.Trading.PaperTrading)
	assertion.Equal(0.002, cfg.Trading.SlippageTolerance)
	assertion.Equal(2.0, cfg.Risk.MaxPositionPct)
	assertion.Equal(int64(3), cfg.Risk.MaxOpenPositions)
	assertion.Equal("sma_crossover", cfg.Strategy.Default)
	assertion.Equal(10, cfg.Strategy.SmaCrossover.ShortPeriod)
	assertion.Equal(30, cfg.Strategy.SmaCrossover.LongPeriod)
	assertion.Equal(14, cfg.Strategy.Rsi.Period)
	assertion.Equal(int64(10), cfg.Strategy.Grid.GridLevels)
	assertion.Equal("info", cfg.Logging.Level)
}

func TestLoadConfigMissingFile(t *testing.T) {
	assertion := assert.New(t)

	_, err := LoadConfig("does/not/exist.toml")
	assertion.Error(err)
}

func TestLoadConfigRejectsEmptySymbols(t *testing.T) {
	assertion := assert.New(t)

	content := `
[exchange]
symbols = []
update_interval_ms = 60000

[risk]
max_position_pct = 2.0
max_daily_loss_pct = 5.0
max_open_positions = 3
`

	_, err := LoadConfig(writeConfigFile(t, content))
	assertion.Error(err)
	assertion.Contains(err.Error(), "symbols")
}

func TestLoadConfigRejectsBadPositionPct(t *testing.T) {
	assertion := assert.New(t)

	content := `
[exchange]
symbols = ["BTCUSDT"]
update_interval_ms = 60000

[risk]
max_position_pct = 150.0
max_daily_loss_pct = 5.0
max_open_positions = 3
`

	_, err := LoadConfig(writeConfigFile(t, content))
	assertion.Error(err)
	assertion.Contains(err.Error(), "max_position_pct")
}

func TestParseEnvironment(t *testing.T) {
	assertion := assert.New(t)

	assertion.Equal(EnvironmentMainnet, ParseEnvironment("mainnet"))
	assertion.Equal(EnvironmentMainnet, ParseEnvironment("production"))
	assertion.Equal(EnvironmentMainnet, ParseEnvironment("prod"))
	assertion.Equal(EnvironmentTestnet, ParseEnvironment("testnet"))
	assertion.Equal(EnvironmentTestnet, ParseEnvironment(""))
	assertion.Equal(EnvironmentTestnet, ParseEnvironment("garbage"))
}

func TestEnvironmentURLs(t *testing.T) {
	assertion := assert.New(t)

	assertion.Equal("https://testnet.binance.vision", EnvironmentTestnet.BaseURL())
	assertion.Equal("https://api.binance.com", EnvironmentMainnet.BaseURL())
	assertion.Equal("wss://testnet.binance.vision", EnvironmentTestnet.WsURL())
	assertion.Equal("wss://stream.binance.com:9443", EnvironmentMainnet.WsURL())
}

func TestLoadCredentials(t *testing.T) {
	assertion := assert.New(t)

	t.Setenv("BINANCE_API_KEY", "key")
	t.Setenv("BINANCE_SECRET_KEY", "secret")
	t.Setenv("BINANCE_ENVIRONMENT", "testnet")

	credentials, err := LoadCredentials()
	assertion.NoError(err)
	assertion.Equal("key", credentials.ApiKey)
	assertion.Equal("secret", credentials.SecretKey)
	assertion.Equal(EnvironmentTestnet, credentials.Environment)
}

func TestLoadCredentialsMissingKey(t *testing.T) {
	assertion := assert.New(t)

	t.Setenv("BINANCE_API_KEY", "")
	t.Setenv("BINANCE_SECRET_KEY", "secret")

	_, err := LoadCredentials()
	assertion.Error(err)
	assertion.Contains(err.Error(), "BINANCE_API_KEY")
}

func TestResolveStrategy(t *testing.T) {
	assertion := assert.New(t)

	cfg, err := LoadConfig(writeConfigFile(t, validConfig))
	assertion.NoError(err)

	smaStrategy, err := resolveStrategy(cfg)
	assertion.NoError(err)
	assertion.Equal("SMA Crossover", smaStrategy.Name())

	cfg.Strategy.Default = "rsi"
	rsiStrategy, err := resolveStrategy(cfg)
	assertion.NoError(err)
	assertion.Equal("RSI", rsiStrategy.Name())

	cfg.Strategy.Default = "martingale"
	_, err = resolveStrategy(cfg)
	assertion.Error(err)
}
