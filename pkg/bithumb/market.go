package bithumb

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/apd/v3"

	"bithumbkit/pkg/core"
)

// minuteUnits are the candle units the minute endpoint accepts.
var minuteUnits = map[int]bool{1: true, 3: true, 5: true, 10: true, 15: true, 30: true, 60: true, 240: true}

// Market reads public market data endpoints. No credentials are required.
type Market struct {
	client     *Client
	normalizer *Normalizer
}

// NewMarket creates a market data reader on top of the client.
func NewMarket(client *Client) *Market {
	return &Market{
		client:     client,
		normalizer: NewNormalizer(),
	}
}

// Markets returns the verbatim JSON listing of all tradable market codes.
func (m *Market) Markets(ctx context.Context) ([]byte, error) {
	return m.client.get(ctx, "/v1/market/all", core.Params{"isDetails": false}, false)
}

// MarketCodes returns the tradable markets decoded into typed records.
func (m *Market) MarketCodes(ctx context.Context) ([]core.MarketInfo, error) {
	body, err := m.Markets(ctx)
	if err != nil {
		return nil, err
	}

	var markets []core.MarketInfo
	if err := sonic.Unmarshal(body, &markets); err != nil {
		return nil, core.NewExchangeError(core.ErrorTypeShape, 0, fmt.Sprintf("unmarshal markets: %v", err))
	}

	return markets, nil
}

// CurrentPrice returns the last trade price for one market code. An empty
// ticker list yields a descriptive API error rather than an index fault.
func (m *Market) CurrentPrice(ctx context.Context, market string) (apd.Decimal, error) {
	params := core.Params{"markets": strings.ToUpper(market)}

	body, err := m.client.get(ctx, "/v1/ticker", params, false)
	if err != nil {
		return apd.Decimal{}, err
	}

	var tickers []bithumbTicker
	if err := sonic.Unmarshal(body, &tickers); err != nil {
		return apd.Decimal{}, core.NewExchangeError(core.ErrorTypeShape, 0, fmt.Sprintf("unmarshal ticker: %v", err))
	}
	if len(tickers) == 0 {
		return apd.Decimal{}, core.NewExchangeError(core.ErrorTypeAPI, 0,
			fmt.Sprintf("no ticker data for market %s", strings.ToUpper(market)))
	}

	var price apd.Decimal
	if err := parseDecimal(&price, tickers[0].TradePrice.String()); err != nil {
		return apd.Decimal{}, fmt.Errorf("parse trade price: %w", err)
	}

	return price, nil
}

// MinuteCandles returns minute candles for the given unit
// (1/3/5/10/15/30/60/240), sorted ascending by date.
func (m *Market) MinuteCandles(ctx context.Context, market string, unit, count int) ([]core.Candle, error) {
	if !minuteUnits[unit] {
		return nil, core.NewExchangeError(core.ErrorTypeBadRequest, 0,
			fmt.Sprintf("unsupported minute unit: %d", unit))
	}
	return m.candles(ctx, fmt.Sprintf("/v1/candles/minutes/%d", unit), market, count)
}

// DailyCandles returns daily candles sorted ascending by date.
func (m *Market) DailyCandles(ctx context.Context, market string, count int) ([]core.Candle, error) {
	return m.candles(ctx, "/v1/candles/days", market, count)
}

// WeeklyCandles returns weekly candles sorted ascending by date.
func (m *Market) WeeklyCandles(ctx context.Context, market string, count int) ([]core.Candle, error) {
	return m.candles(ctx, "/v1/candles/weeks", market, count)
}

// MonthlyCandles returns monthly candles sorted ascending by date.
func (m *Market) MonthlyCandles(ctx context.Context, market string, count int) ([]core.Candle, error) {
	return m.candles(ctx, "/v1/candles/months", market, count)
}

// Candles dispatches to the endpoint for the given period. Unit is only
// consulted for PeriodMinutes.
func (m *Market) Candles(ctx context.Context, period core.CandlePeriod, market string, unit, count int) ([]core.Candle, error) {
	switch period {
	case core.PeriodMinutes:
		return m.MinuteCandles(ctx, market, unit, count)
	case core.PeriodDays:
		return m.DailyCandles(ctx, market, count)
	case core.PeriodWeeks:
		return m.WeeklyCandles(ctx, market, count)
	case core.PeriodMonths:
		return m.MonthlyCandles(ctx, market, count)
	default:
		return nil, core.NewExchangeError(core.ErrorTypeBadRequest, 0,
			fmt.Sprintf("unsupported candle period: %d", period))
	}
}

func (m *Market) candles(ctx context.Context, endpoint, market string, count int) ([]core.Candle, error) {
	params := core.Params{
		"market": strings.ToUpper(market),
		"count":  count,
	}

	body, err := m.client.get(ctx, endpoint, params, false)
	if err != nil {
		return nil, err
	}

	return m.normalizer.NormalizeCandles(body)
}
