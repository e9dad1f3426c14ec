package core

import (
	"time"

	"github.com/cockroachdb/apd/v3"
)

// OrderSide represents the direction of an order (bid or ask).
type OrderSide int

// Order side constants define the direction of a trade.
const (
	// SideBid indicates an order to purchase an asset.
	SideBid OrderSide = iota
	// SideAsk indicates an order to sell an asset.
	SideAsk
)

// String returns the wire representation of the order side ("bid" or "ask").
func (s OrderSide) String() string {
	return [...]string{"bid", "ask"}[s]
}

// MarshalJSON implements json.Marshaler for OrderSide.
func (s OrderSide) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for OrderSide.
func (s *OrderSide) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"bid"`, `"BID"`:
		*s = SideBid
	case `"ask"`, `"ASK"`:
		*s = SideAsk
	}
	return nil
}

// OrdType represents how an order executes.
type OrdType int

// Order type constants mirror the exchange's ord_type field.
const (
	// OrdTypeLimit executes at a specified price or better. Requires
	// both volume and price.
	OrdTypeLimit OrdType = iota
	// OrdTypePrice is a market buy by notional amount. Requires price
	// (the total spend); volume is omitted.
	OrdTypePrice
	// OrdTypeMarket is a market sell by volume. Requires volume; price
	// is omitted.
	OrdTypeMarket
)

// String returns the wire representation of the order type.
func (t OrdType) String() string {
	return [...]string{"limit", "price", "market"}[t]
}

// MarshalJSON implements json.Marshaler for OrdType.
func (t OrdType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for OrdType.
func (t *OrdType) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"limit"`:
		*t = OrdTypeLimit
	case `"price"`:
		*t = OrdTypePrice
	case `"market"`:
		*t = OrdTypeMarket
	}
	return nil
}

// OrderState represents the lifecycle state of an order as reported by the
// exchange, plus the two client-side outcomes of a status lookup.
type OrderState int

const (
	// StateWait indicates an open, unfilled order.
	StateWait OrderState = iota
	// StateDone indicates a completely filled order.
	StateDone
	// StateCancel indicates a canceled order.
	StateCancel
	// StateError indicates the status lookup itself failed.
	StateError
	// StateUnknown indicates the exchange response carried no
	// recognizable state field.
	StateUnknown
)

// String returns the string representation of the order state.
func (s OrderState) String() string {
	return [...]string{"wait", "done", "cancel", "error", "unknown"}[s]
}

// ParseOrderState maps an exchange state string to an OrderState,
// falling back to StateUnknown for anything unrecognized.
func ParseOrderState(s string) OrderState {
	switch s {
	case "wait":
		return StateWait
	case "done":
		return StateDone
	case "cancel":
		return StateCancel
	default:
		return StateUnknown
	}
}

// MarshalJSON implements json.Marshaler for OrderState.
func (s OrderState) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for OrderState.
func (s *OrderState) UnmarshalJSON(data []byte) error {
	if len(data) >= 2 {
		*s = ParseOrderState(string(data[1 : len(data)-1]))
	}
	return nil
}

// CandlePeriod selects the candle granularity for market data queries.
type CandlePeriod int

const (
	// PeriodMinutes selects minute candles; the unit (1/3/5/10/15/30/60/240)
	// is supplied alongside.
	PeriodMinutes CandlePeriod = iota
	// PeriodDays selects daily candles.
	PeriodDays
	// PeriodWeeks selects weekly candles.
	PeriodWeeks
	// PeriodMonths selects monthly candles.
	PeriodMonths
)

// String returns the period segment used in candle endpoint paths.
func (p CandlePeriod) String() string {
	return [...]string{"minutes", "days", "weeks", "months"}[p]
}

// Candle is one OHLC(V) row of normalized candle data. Optional fields are
// nil when the endpoint for the requested granularity does not report them.
type Candle struct {
	// Date is the opening time of the bucket in exchange-local (KST) time.
	Date time.Time `json:"date"`
	// Open is the price at the start of the bucket.
	Open apd.Decimal `json:"open"`
	// Close is the last trade price of the bucket.
	Close apd.Decimal `json:"close"`
	// High is the highest price during the bucket.
	High apd.Decimal `json:"high"`
	// Low is the lowest price during the bucket.
	Low apd.Decimal `json:"low"`
	// ChangeRate is the rate of change against the previous close;
	// reported on daily candles only.
	ChangeRate *apd.Decimal `json:"change_rate,omitempty"`
	// Volume is the accumulated trade volume of the bucket.
	Volume *apd.Decimal `json:"volume,omitempty"`
	// Value is the accumulated trade value in quote currency.
	Value *apd.Decimal `json:"value,omitempty"`
}

// Balance represents a held asset with a strictly positive balance.
type Balance struct {
	// Currency is the asset symbol (e.g. "BTC", "KRW").
	Currency string `json:"currency"`
	// Balance is the available amount.
	Balance apd.Decimal `json:"balance"`
	// Locked is the amount reserved in open orders.
	Locked apd.Decimal `json:"locked"`
	// AvgBuyPrice is the exchange-reported average purchase price.
	AvgBuyPrice apd.Decimal `json:"avg_buy_price"`
}

// Holding is the three-state result of a coin balance lookup. A lookup
// returns (Holding, error); a non-nil error means the API call failed,
// Held == false means the account simply does not hold the currency, and
// Held == true carries the actual position. The zero-vs-nil ambiguity of
// the error case never reaches callers.
type Holding struct {
	// Currency is the asset symbol queried.
	Currency string `json:"currency"`
	// Held reports whether the account holds any of the currency.
	Held bool `json:"held"`
	// Balance is the held amount; zero when Held is false.
	Balance apd.Decimal `json:"balance"`
	// AvgBuyPrice is the average purchase price; zero when Held is false.
	AvgBuyPrice apd.Decimal `json:"avg_buy_price"`
}

// Order represents an exchange order as returned by the orders endpoints.
type Order struct {
	// UUID is the exchange-assigned order identifier.
	UUID string `json:"uuid"`
	// Market is the trading pair, e.g. "KRW-BTC".
	Market string `json:"market"`
	// Side indicates whether this is a bid or an ask.
	Side OrderSide `json:"side"`
	// OrdType defines how the order executes.
	OrdType OrdType `json:"ord_type"`
	// State is the current lifecycle state.
	State OrderState `json:"state"`
	// Price is the limit price, or the notional amount for price orders.
	Price apd.Decimal `json:"price"`
	// Volume is the total order volume; zero for price orders.
	Volume apd.Decimal `json:"volume"`
	// RemainingVolume is the unfilled portion.
	RemainingVolume apd.Decimal `json:"remaining_volume"`
	// ExecutedVolume is the filled portion.
	ExecutedVolume apd.Decimal `json:"executed_volume"`
	// Locked is the amount reserved for this order.
	Locked apd.Decimal `json:"locked"`
	// PaidFee is the fee charged so far.
	PaidFee apd.Decimal `json:"paid_fee"`
	// TradesCount is the number of fills.
	TradesCount int `json:"trades_count"`
	// CreatedAt is when the order was accepted.
	CreatedAt time.Time `json:"created_at"`
}

// MarketInfo describes one tradable market from the market listing.
type MarketInfo struct {
	// Market is the pair code, e.g. "KRW-BTC".
	Market string `json:"market"`
	// KoreanName is the localized asset name.
	KoreanName string `json:"korean_name"`
	// EnglishName is the English asset name.
	EnglishName string `json:"english_name"`
}

// OrderChance describes order eligibility and fee rates for one market.
type OrderChance struct {
	// BidFee is the fee rate applied to buy orders.
	BidFee apd.Decimal `json:"bid_fee"`
	// AskFee is the fee rate applied to sell orders.
	AskFee apd.Decimal `json:"ask_fee"`
	// Market carries the per-market order constraints.
	Market OrderChanceMarket `json:"market"`
}

// OrderChanceMarket holds the per-market constraints of an order chance
// response.
type OrderChanceMarket struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	OrderSides []string    `json:"order_sides"`
	MaxTotal   apd.Decimal `json:"max_total"`
	State      string      `json:"state"`
}
