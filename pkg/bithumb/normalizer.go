package bithumb

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/apd/v3"

	"bithumbkit/pkg/core"
)

// candleSuccessStatus is the sentinel the exchange reports on candle
// endpoints when the request succeeded. Error responses replace the list
// payload with an object carrying a different status and a message.
const candleSuccessStatus = "0000"

// candleTimeLayout is the zone-less KST timestamp format of candle rows.
const candleTimeLayout = "2006-01-02T15:04:05"

// bithumbCandle is one raw candle row. The exchange's field names are
// verbose and differ across granularities; normalization renames them into
// the stable Candle schema. Numbers decode as json.Number so decimal
// values survive untouched, and optional fields are pointers so that
// columns absent from a granularity's response stay absent after
// normalization.
type bithumbCandle struct {
	Market       string       `json:"market"`
	DateTimeKST  string       `json:"candle_date_time_kst"`
	OpeningPrice json.Number  `json:"opening_price"`
	TradePrice   json.Number  `json:"trade_price"`
	HighPrice    json.Number  `json:"high_price"`
	LowPrice     json.Number  `json:"low_price"`
	ChangeRate   *json.Number `json:"change_rate,omitempty"`
	AccVolume    *json.Number `json:"candle_acc_trade_volume,omitempty"`
	AccPrice     *json.Number `json:"candle_acc_trade_price,omitempty"`
}

// bithumbCandleStatus is the error envelope candle endpoints return in
// place of a list.
type bithumbCandleStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// bithumbTicker is one raw ticker row.
type bithumbTicker struct {
	Market     string      `json:"market"`
	TradePrice json.Number `json:"trade_price"`
}

// bithumbBalance is one raw account balance record.
type bithumbBalance struct {
	Currency     string `json:"currency"`
	Balance      string `json:"balance"`
	Locked       string `json:"locked"`
	AvgBuyPrice  string `json:"avg_buy_price"`
	UnitCurrency string `json:"unit_currency"`
}

// bithumbOrder is one raw order record from the orders endpoints.
type bithumbOrder struct {
	UUID            string `json:"uuid"`
	Side            string `json:"side"`
	OrdType         string `json:"ord_type"`
	Price           string `json:"price"`
	State           string `json:"state"`
	Market          string `json:"market"`
	CreatedAt       string `json:"created_at"`
	Volume          string `json:"volume"`
	RemainingVolume string `json:"remaining_volume"`
	Locked          string `json:"locked"`
	ExecutedVolume  string `json:"executed_volume"`
	PaidFee         string `json:"paid_fee"`
	TradesCount     int    `json:"trades_count"`
}

// bithumbOrderChance is the raw order eligibility response.
type bithumbOrderChance struct {
	BidFee string `json:"bid_fee"`
	AskFee string `json:"ask_fee"`
	Market struct {
		ID         string   `json:"id"`
		Name       string   `json:"name"`
		OrderSides []string `json:"order_sides"`
		MaxTotal   string   `json:"max_total"`
		State      string   `json:"state"`
	} `json:"market"`
}

// Normalizer converts raw exchange responses to canonical core types.
type Normalizer struct{}

// NewNormalizer creates a new Normalizer instance.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// NormalizeCandles decodes a raw candle response body into Candle records
// sorted ascending by date.
//
// A successful response is a JSON list. The exchange signals candle errors
// by substituting an object with a non-success status code, which becomes
// an API error carrying the server's code and message; any other non-list
// body becomes a shape error. Raw faults (index or key errors) never escape.
func (n *Normalizer) NormalizeCandles(body []byte) ([]core.Candle, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, core.NewExchangeError(core.ErrorTypeShape, 0, "empty candle response")
	}

	if trimmed[0] != '[' {
		var status bithumbCandleStatus
		if err := sonic.Unmarshal(trimmed, &status); err == nil && status.Status != "" && status.Status != candleSuccessStatus {
			return nil, core.NewExchangeErrorWithCode(core.ErrorTypeAPI, 0, status.Status, status.Message)
		}
		return nil, core.NewExchangeError(core.ErrorTypeShape, 0,
			fmt.Sprintf("candle response is not a list: %s", snippet(trimmed)))
	}

	var raw []bithumbCandle
	if err := sonic.Unmarshal(trimmed, &raw); err != nil {
		return nil, core.NewExchangeError(core.ErrorTypeShape, 0, fmt.Sprintf("unmarshal candles: %v", err))
	}

	candles := make([]core.Candle, 0, len(raw))
	for _, r := range raw {
		candle, err := n.normalizeCandle(&r)
		if err != nil {
			return nil, fmt.Errorf("normalize candle: %w", err)
		}
		candles = append(candles, *candle)
	}

	sort.Slice(candles, func(i, j int) bool {
		return candles[i].Date.Before(candles[j].Date)
	})

	return candles, nil
}

func (n *Normalizer) normalizeCandle(data *bithumbCandle) (*core.Candle, error) {
	date, err := time.Parse(candleTimeLayout, data.DateTimeKST)
	if err != nil {
		return nil, fmt.Errorf("parse candle date %q: %w", data.DateTimeKST, err)
	}

	candle := &core.Candle{Date: date}

	if err := parseDecimal(&candle.Open, data.OpeningPrice.String()); err != nil {
		return nil, fmt.Errorf("parse open: %w", err)
	}
	if err := parseDecimal(&candle.Close, data.TradePrice.String()); err != nil {
		return nil, fmt.Errorf("parse close: %w", err)
	}
	if err := parseDecimal(&candle.High, data.HighPrice.String()); err != nil {
		return nil, fmt.Errorf("parse high: %w", err)
	}
	if err := parseDecimal(&candle.Low, data.LowPrice.String()); err != nil {
		return nil, fmt.Errorf("parse low: %w", err)
	}

	if candle.ChangeRate, err = optionalDecimal(data.ChangeRate); err != nil {
		return nil, fmt.Errorf("parse change_rate: %w", err)
	}
	if candle.Volume, err = optionalDecimal(data.AccVolume); err != nil {
		return nil, fmt.Errorf("parse volume: %w", err)
	}
	if candle.Value, err = optionalDecimal(data.AccPrice); err != nil {
		return nil, fmt.Errorf("parse value: %w", err)
	}

	return candle, nil
}

// NormalizeBalance converts a raw balance record to a canonical Balance.
func (n *Normalizer) NormalizeBalance(data *bithumbBalance) (*core.Balance, error) {
	balance := &core.Balance{Currency: data.Currency}

	if err := parseDecimal(&balance.Balance, data.Balance); err != nil {
		return nil, fmt.Errorf("parse balance: %w", err)
	}
	if err := parseDecimal(&balance.Locked, data.Locked); err != nil {
		return nil, fmt.Errorf("parse locked: %w", err)
	}
	if err := parseDecimal(&balance.AvgBuyPrice, data.AvgBuyPrice); err != nil {
		return nil, fmt.Errorf("parse avg_buy_price: %w", err)
	}

	return balance, nil
}

// NormalizeOrder converts a raw order record to a canonical Order.
func (n *Normalizer) NormalizeOrder(data *bithumbOrder) (*core.Order, error) {
	order := &core.Order{
		UUID:        data.UUID,
		Market:      data.Market,
		Side:        parseOrderSide(data.Side),
		OrdType:     parseOrdType(data.OrdType),
		State:       core.ParseOrderState(data.State),
		TradesCount: data.TradesCount,
	}

	if err := parseDecimal(&order.Price, data.Price); err != nil {
		return nil, fmt.Errorf("parse price: %w", err)
	}
	if err := parseDecimal(&order.Volume, data.Volume); err != nil {
		return nil, fmt.Errorf("parse volume: %w", err)
	}
	if err := parseDecimal(&order.RemainingVolume, data.RemainingVolume); err != nil {
		return nil, fmt.Errorf("parse remaining_volume: %w", err)
	}
	if err := parseDecimal(&order.ExecutedVolume, data.ExecutedVolume); err != nil {
		return nil, fmt.Errorf("parse executed_volume: %w", err)
	}
	if err := parseDecimal(&order.Locked, data.Locked); err != nil {
		return nil, fmt.Errorf("parse locked: %w", err)
	}
	if err := parseDecimal(&order.PaidFee, data.PaidFee); err != nil {
		return nil, fmt.Errorf("parse paid_fee: %w", err)
	}

	if data.CreatedAt != "" {
		if ts, err := time.Parse(time.RFC3339, data.CreatedAt); err == nil {
			order.CreatedAt = ts
		}
	}

	return order, nil
}

// NormalizeOrders converts multiple raw orders to canonical Orders.
func (n *Normalizer) NormalizeOrders(data []bithumbOrder) ([]core.Order, error) {
	orders := make([]core.Order, 0, len(data))
	for _, o := range data {
		order, err := n.NormalizeOrder(&o)
		if err != nil {
			return nil, fmt.Errorf("normalize order: %w", err)
		}
		orders = append(orders, *order)
	}
	return orders, nil
}

// NormalizeOrderChance converts a raw order chance response to a canonical
// OrderChance.
func (n *Normalizer) NormalizeOrderChance(data *bithumbOrderChance) (*core.OrderChance, error) {
	chance := &core.OrderChance{
		Market: core.OrderChanceMarket{
			ID:         data.Market.ID,
			Name:       data.Market.Name,
			OrderSides: data.Market.OrderSides,
			State:      data.Market.State,
		},
	}

	if err := parseDecimal(&chance.BidFee, data.BidFee); err != nil {
		return nil, fmt.Errorf("parse bid_fee: %w", err)
	}
	if err := parseDecimal(&chance.AskFee, data.AskFee); err != nil {
		return nil, fmt.Errorf("parse ask_fee: %w", err)
	}
	if err := parseDecimal(&chance.Market.MaxTotal, data.Market.MaxTotal); err != nil {
		return nil, fmt.Errorf("parse max_total: %w", err)
	}

	return chance, nil
}

func parseDecimal(dest *apd.Decimal, s string) error {
	if s == "" {
		*dest = apd.Decimal{}
		return nil
	}

	_, _, err := apd.BaseContext.SetString(dest, s)
	if err != nil {
		return fmt.Errorf("set decimal from string: %w", err)
	}

	return nil
}

func optionalDecimal(num *json.Number) (*apd.Decimal, error) {
	if num == nil {
		return nil, nil
	}
	var d apd.Decimal
	if err := parseDecimal(&d, num.String()); err != nil {
		return nil, err
	}
	return &d, nil
}

func parseOrderSide(s string) core.OrderSide {
	if s == "ask" {
		return core.SideAsk
	}
	return core.SideBid
}

func parseOrdType(s string) core.OrdType {
	switch s {
	case "price":
		return core.OrdTypePrice
	case "market":
		return core.OrdTypeMarket
	default:
		return core.OrdTypeLimit
	}
}

// snippet truncates a body for inclusion in error messages.
func snippet(b []byte) string {
	const max = 120
	if len(b) > max {
		return string(b[:max]) + "..."
	}
	return string(b)
}
