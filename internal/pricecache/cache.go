// Package pricecache keeps the last known average buy price per currency.
package pricecache

import (
	"sync"

	"github.com/cockroachdb/apd/v3"
	"github.com/rs/zerolog"
)

// Cache is a mutex-guarded map of currency code to average buy price.
// It lives for the lifetime of the account reader that owns it and is
// cleared only by an explicit Reset; entries never expire on their own.
type Cache struct {
	mu     sync.RWMutex
	prices map[string]apd.Decimal
	logger zerolog.Logger
}

// New creates an empty cache.
func New(logger zerolog.Logger) *Cache {
	return &Cache{
		prices: make(map[string]apd.Decimal),
		logger: logger,
	}
}

// Update stores the average buy price for a currency. Non-positive prices
// are ignored so that stale zero data from the exchange never overwrites a
// previously known average.
func (c *Cache) Update(currency string, price *apd.Decimal) {
	if price == nil || price.Sign() <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.prices[currency] = *price
	c.logger.Debug().
		Str("currency", currency).
		Str("avg_buy_price", price.String()).
		Msg("average buy price updated")
}

// Get returns the cached average buy price for a currency.
func (c *Cache) Get(currency string) (apd.Decimal, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	price, ok := c.prices[currency]
	return price, ok
}

// Len returns the number of cached currencies.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.prices)
}

// Reset drops all cached prices.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.prices = make(map[string]apd.Decimal)
}
