package bithumb

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/apd/v3"
	"github.com/rs/zerolog"

	"bithumbkit/internal/pricecache"
	"bithumbkit/pkg/core"
)

// Account reads account balances. It owns a price cache that remembers the
// last positive average buy price per currency across calls; the cache is
// cleared only by an explicit reset.
type Account struct {
	client     *Client
	normalizer *Normalizer
	cache      *pricecache.Cache
	logger     zerolog.Logger
}

// AccountOption is a functional option for configuring the Account reader.
type AccountOption func(*Account)

// WithPriceCache injects a shared price cache instead of the reader
// creating its own.
func WithPriceCache(cache *pricecache.Cache) AccountOption {
	return func(a *Account) {
		a.cache = cache
	}
}

// NewAccount creates an account reader on top of the client.
func NewAccount(client *Client, opts ...AccountOption) *Account {
	a := &Account{
		client:     client,
		normalizer: NewNormalizer(),
		logger:     client.logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.cache == nil {
		a.cache = pricecache.New(client.logger)
	}
	return a
}

// PriceCache returns the average buy price cache owned by this reader.
func (a *Account) PriceCache() *pricecache.Cache {
	return a.cache
}

// Accounts returns the raw balance records from the accounts endpoint.
func (a *Account) Accounts(ctx context.Context) ([]bithumbBalance, error) {
	body, err := a.client.get(ctx, "/v1/accounts", nil, true)
	if err != nil {
		a.logger.Error().Err(err).Msg("account lookup failed")
		return nil, err
	}

	var balances []bithumbBalance
	if err := sonic.Unmarshal(body, &balances); err != nil {
		return nil, core.NewExchangeError(core.ErrorTypeShape, 0, fmt.Sprintf("unmarshal accounts: %v", err))
	}

	return balances, nil
}

// KRWBalance returns the available KRW balance, or zero if the account has
// no KRW line. Lookup failures are reported through the error return rather
// than collapsed into zero.
func (a *Account) KRWBalance(ctx context.Context) (apd.Decimal, error) {
	balances, err := a.Accounts(ctx)
	if err != nil {
		return apd.Decimal{}, err
	}

	for _, b := range balances {
		if b.Currency == "KRW" {
			var amount apd.Decimal
			if err := parseDecimal(&amount, b.Balance); err != nil {
				return apd.Decimal{}, fmt.Errorf("parse KRW balance: %w", err)
			}
			return amount, nil
		}
	}

	return apd.Decimal{}, nil
}

// CoinBalance returns the held amount and average buy price for one
// currency. The three outcomes are kept distinct: a non-nil error means the
// lookup failed, Held == false means the account simply does not hold the
// currency, and Held == true carries the position. A positive average price
// on a positive balance is recorded in the price cache.
func (a *Account) CoinBalance(ctx context.Context, currency string) (core.Holding, error) {
	holding := core.Holding{Currency: currency}

	balances, err := a.Accounts(ctx)
	if err != nil {
		return holding, err
	}

	for _, b := range balances {
		if b.Currency != currency {
			continue
		}

		if err := parseDecimal(&holding.Balance, b.Balance); err != nil {
			return core.Holding{Currency: currency}, fmt.Errorf("parse balance: %w", err)
		}
		if err := parseDecimal(&holding.AvgBuyPrice, b.AvgBuyPrice); err != nil {
			return core.Holding{Currency: currency}, fmt.Errorf("parse avg_buy_price: %w", err)
		}
		holding.Held = true

		if holding.AvgBuyPrice.Sign() > 0 && holding.Balance.Sign() > 0 {
			a.cache.Update(currency, &holding.AvgBuyPrice)
		}

		return holding, nil
	}

	return holding, nil
}

// AllBalances returns every asset with a strictly positive balance.
func (a *Account) AllBalances(ctx context.Context) ([]core.Balance, error) {
	raw, err := a.Accounts(ctx)
	if err != nil {
		return nil, err
	}

	balances := make([]core.Balance, 0, len(raw))
	for _, r := range raw {
		balance, err := a.normalizer.NormalizeBalance(&r)
		if err != nil {
			return nil, fmt.Errorf("normalize balance %s: %w", r.Currency, err)
		}
		if balance.Balance.Sign() > 0 {
			balances = append(balances, *balance)
		}
	}

	return balances, nil
}
