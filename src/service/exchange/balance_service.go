package exchange

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"gitlab.com/open-soft/go-spot-bot/src/client"
	"gitlab.com/open-soft/go-spot-bot/src/model"
)

type BalanceServiceInterface interface {
	GetAccountStatus(cache bool) (*model.AccountStatus, error)
	GetAssetBalance(asset string, cache bool) (decimal.Decimal, error)
	InvalidateBalanceCache()
}

// BalanceService fronts the account endpoint with an optional one minute
// Redis cache. The trading engine always bypasses the cache: the balance
// snapshot driving order sizing has to be authoritative.
type BalanceService struct {
	Binance     client.ExchangeAccountAPIInterface
	RDB         *redis.Client
	Ctx         *context.Context
	Environment string
}

func (b *BalanceService) GetAccountStatus(cache bool) (*model.AccountStatus, error) {
	if cache && b.RDB != nil {
		cached := b.RDB.Get(*b.Ctx, b.getAccountCacheKey()).Val()

		if len(cached) > 0 {
			var account model.AccountStatus
			if err := json.Unmarshal([]byte(cached), &account); err == nil {
				return &account, nil
			}
		}
	}

	account, err := b.Binance.GetAccountStatus()
	if err != nil {
		return nil, err
	}

	if b.RDB != nil {
		if encoded, err := json.Marshal(account); err == nil {
			b.RDB.Set(*b.Ctx, b.getAccountCacheKey(), encoded, time.Minute)
		}
	}

	return account, nil
}

func (b *BalanceService) GetAssetBalance(asset string, cache bool) (decimal.Decimal, error) {
	account, err := b.GetAccountStatus(cache)
	if err != nil {
		return decimal.Zero, err
	}

	balance := account.GetBalance(asset)
	if balance == nil {
		return decimal.Zero, errors.New(fmt.Sprintf("No %s balance found", asset))
	}

	return balance.Free, nil
}

func (b *BalanceService) InvalidateBalanceCache() {
	if b.RDB == nil {
		return
	}

	b.RDB.Del(*b.Ctx, b.getAccountCacheKey())
}

func (b *BalanceService) getAccountCacheKey() string {
	return fmt.Sprintf("account-status-%s", b.Environment)
}
