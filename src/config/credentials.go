package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Environment string

const (
	EnvironmentTestnet Environment = "testnet"
	EnvironmentMainnet Environment = "mainnet"
)

func (e Environment) BaseURL() string {
	if e == EnvironmentMainnet {
		return "https://api.binance.com"
	}

	return "https://testnet.binance.vision"
}

func (e Environment) WsURL() string {
	if e == EnvironmentMainnet {
		return "wss://stream.binance.com:9443"
	}

	return "wss://testnet.binance.vision"
}

type ExchangeCredentials struct {
	ApiKey      string
	SecretKey   string
	Environment Environment
}

// LoadCredentials reads API credentials from the environment. A .env file
// next to the binary is loaded first when present, but is not mandatory.
func LoadCredentials() (ExchangeCredentials, error) {
	pwd, _ := os.Getwd()
	if _, err := os.Stat(fmt.Sprintf("%s/.env", pwd)); err == nil {
		log.Println(".env is found, loading variables...")
		if err = godotenv.Load(); err != nil {
			log.Println(err)
		}
	}

	apiKey := os.Getenv("BINANCE_API_KEY")
	if apiKey == "" {
		return ExchangeCredentials{}, errors.New("BINANCE_API_KEY environment variable not set")
	}

	secretKey := os.Getenv("BINANCE_SECRET_KEY")
	if secretKey == "" {
		return ExchangeCredentials{}, errors.New("BINANCE_SECRET_KEY environment variable not set")
	}

	return ExchangeCredentials{
		ApiKey:      apiKey,
		SecretKey:   secretKey,
		Environment: ParseEnvironment(os.Getenv("BINANCE_ENVIRONMENT")),
	}, nil
}

// ParseEnvironment maps the BINANCE_ENVIRONMENT value to an Environment.
// Anything unrecognized falls back to testnet.
func ParseEnvironment(value string) Environment {
	switch strings.ToLower(value) {
	case "mainnet", "production", "prod":
		return EnvironmentMainnet
	default:
		return EnvironmentTestnet
	}
}
