package pricecache

import (
	"sync"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_UpdateAndGet(t *testing.T) {
	cache := New(zerolog.Nop())

	price, _, err := apd.NewFromString("30000000")
	require.NoError(t, err)

	cache.Update("BTC", price)

	got, ok := cache.Get("BTC")
	require.True(t, ok)
	assert.Equal(t, "30000000", got.String())
	assert.Equal(t, 1, cache.Len())
}

func TestCache_Get_Missing(t *testing.T) {
	cache := New(zerolog.Nop())

	_, ok := cache.Get("ETH")
	assert.False(t, ok)
}

func TestCache_Update_IgnoresNilAndNonPositive(t *testing.T) {
	cache := New(zerolog.Nop())

	cache.Update("BTC", nil)
	cache.Update("BTC", apd.New(0, 0))
	cache.Update("BTC", apd.New(-1, 0))

	_, ok := cache.Get("BTC")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestCache_Update_ZeroDoesNotOverwrite(t *testing.T) {
	cache := New(zerolog.Nop())

	cache.Update("BTC", apd.New(30000000, 0))
	cache.Update("BTC", apd.New(0, 0))

	got, ok := cache.Get("BTC")
	require.True(t, ok)
	assert.Equal(t, "30000000", got.String())
}

func TestCache_Update_PositiveOverwrites(t *testing.T) {
	cache := New(zerolog.Nop())

	cache.Update("BTC", apd.New(30000000, 0))
	cache.Update("BTC", apd.New(31000000, 0))

	got, ok := cache.Get("BTC")
	require.True(t, ok)
	assert.Equal(t, "31000000", got.String())
}

func TestCache_Reset(t *testing.T) {
	cache := New(zerolog.Nop())

	cache.Update("BTC", apd.New(1, 0))
	cache.Update("ETH", apd.New(2, 0))
	require.Equal(t, 2, cache.Len())

	cache.Reset()

	assert.Equal(t, 0, cache.Len())
	_, ok := cache.Get("BTC")
	assert.False(t, ok)
}

func TestCache_ConcurrentAccess(t *testing.T) {
	cache := New(zerolog.Nop())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			cache.Update("BTC", apd.New(n+1, 0))
			cache.Get("BTC")
			cache.Len()
		}(int64(i))
	}
	wg.Wait()

	_, ok := cache.Get("BTC")
	assert.True(t, ok)
}
