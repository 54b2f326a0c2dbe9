package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/open-soft/go-spot-bot/src/config"
)

func main() {
	testnet := flag.Bool("testnet", false, "Force the Binance testnet regardless of BINANCE_ENVIRONMENT")
	paper := flag.Bool("paper", false, "Log orders instead of submitting them")
	configPath := flag.String("config", "config/default.toml", "Path to the TOML configuration file")
	once := flag.Bool("once", false, "Run a single trade cycle and exit")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Config error: %s", err.Error())
	}

	if cfg.Logging.FileEnabled && cfg.Logging.FilePath != "" {
		logFile, err := os.OpenFile(cfg.Logging.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatalf("Log file error: %s", err.Error())
		}

		defer logFile.Close()
		log.SetOutput(logFile)
	}

	credentials, err := config.LoadCredentials()
	if err != nil {
		log.Fatalf("Credentials error: %s", err.Error())
	}

	if *testnet {
		credentials.Environment = config.EnvironmentTestnet
	}

	paperTrading := *paper || cfg.Trading.PaperTrading

	container, err := config.InitServiceContainer(cfg, credentials, paperTrading)
	if err != nil {
		log.Fatalf("Initialization error: %s", err.Error())
	}

	// fail fast when the credentials cannot sign a request
	account, err := container.Binance.GetAccountStatus()
	if err != nil {
		log.Fatalf("Exchange connection test failed: %s", err.Error())
	}

	log.Printf(
		"Connected to Binance %s, account can trade: %t",
		credentials.Environment,
		account.CanTrade,
	)

	if *once {
		container.TradingEngine.RunOnce()
		return
	}

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		sigChannel := make(chan os.Signal, 1)
		signal.Notify(sigChannel, syscall.SIGINT, syscall.SIGTERM)
		<-sigChannel
		log.Printf("Shutdown signal received")
		cancel()
	}()

	container.TradingEngine.Run(ctx, cfg.Exchange.UpdateIntervalMs)
}
