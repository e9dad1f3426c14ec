package bithumb

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/apd/v3"
	"github.com/rs/zerolog"

	"bithumbkit/pkg/core"
)

// OrderSpec describes an order to place. Which fields are required depends
// on the order kind:
//
//   - OrdTypeLimit: Volume and Price (price per unit)
//   - OrdTypePrice: Price only (total spend, market buy)
//   - OrdTypeMarket: Volume only (market sell)
type OrderSpec struct {
	// Market is the pair code, e.g. "KRW-BTC".
	Market string
	// Volume is the order quantity.
	Volume *apd.Decimal
	// Price is the per-unit price for limit orders, or the total notional
	// for price orders.
	Price *apd.Decimal
	// OrdType selects the execution mode.
	OrdType core.OrdType
}

// Trading places, cancels, and inspects orders. All operations require
// credentials.
type Trading struct {
	client     *Client
	normalizer *Normalizer
	logger     zerolog.Logger
}

// NewTrading creates an order manager on top of the client.
func NewTrading(client *Client) *Trading {
	return &Trading{
		client:     client,
		normalizer: NewNormalizer(),
		logger:     client.logger,
	}
}

// PlaceBuy submits a buy order.
func (t *Trading) PlaceBuy(ctx context.Context, spec OrderSpec) (*core.Order, error) {
	return t.sendOrder(ctx, core.SideBid, spec)
}

// PlaceSell submits a sell order.
func (t *Trading) PlaceSell(ctx context.Context, spec OrderSpec) (*core.Order, error) {
	return t.sendOrder(ctx, core.SideAsk, spec)
}

func (t *Trading) sendOrder(ctx context.Context, side core.OrderSide, spec OrderSpec) (*core.Order, error) {
	if err := validateSpec(side, spec); err != nil {
		return nil, err
	}

	params := core.Params{
		"market":   spec.Market,
		"side":     side.String(),
		"ord_type": spec.OrdType.String(),
	}

	switch spec.OrdType {
	case core.OrdTypeLimit:
		params["volume"] = spec.Volume.String()
		params["price"] = spec.Price.String()
	case core.OrdTypePrice:
		params["price"] = spec.Price.String()
	case core.OrdTypeMarket:
		params["volume"] = spec.Volume.String()
	}

	body, err := t.client.post(ctx, "/v1/orders", params)
	if err != nil {
		t.logger.Error().Err(err).
			Str("market", spec.Market).
			Str("side", side.String()).
			Msg("order submission failed")
		return nil, err
	}

	return t.decodeOrder(body)
}

func validateSpec(side core.OrderSide, spec OrderSpec) error {
	if spec.Market == "" {
		return core.NewExchangeError(core.ErrorTypeInvalidOrder, 0, "market is required")
	}

	switch spec.OrdType {
	case core.OrdTypeLimit:
		if spec.Volume == nil || spec.Price == nil {
			return core.NewExchangeError(core.ErrorTypeInvalidOrder, 0,
				"limit orders require both volume and price")
		}
	case core.OrdTypePrice:
		if side != core.SideBid {
			return core.NewExchangeError(core.ErrorTypeInvalidOrder, 0,
				"price orders are market buys and must be bids")
		}
		if spec.Price == nil {
			return core.NewExchangeError(core.ErrorTypeInvalidOrder, 0,
				"price orders require a total spend price")
		}
	case core.OrdTypeMarket:
		if side != core.SideAsk {
			return core.NewExchangeError(core.ErrorTypeInvalidOrder, 0,
				"market orders are volume sells and must be asks")
		}
		if spec.Volume == nil {
			return core.NewExchangeError(core.ErrorTypeInvalidOrder, 0,
				"market orders require a volume")
		}
	default:
		return core.NewExchangeError(core.ErrorTypeInvalidOrder, 0,
			fmt.Sprintf("unsupported ord_type: %d", spec.OrdType))
	}

	return nil
}

// Cancel cancels an order by its UUID.
func (t *Trading) Cancel(ctx context.Context, orderUUID string) (*core.Order, error) {
	body, err := t.client.delete(ctx, "/v1/order", core.Params{"uuid": orderUUID})
	if err != nil {
		return nil, err
	}

	return t.decodeOrder(body)
}

// Order returns the full typed order for a UUID.
func (t *Trading) Order(ctx context.Context, orderUUID string) (*core.Order, error) {
	body, err := t.client.get(ctx, "/v1/order", core.Params{"uuid": orderUUID}, true)
	if err != nil {
		return nil, err
	}

	return t.decodeOrder(body)
}

// Status returns the lifecycle state of an order. A failed lookup maps to
// StateError and a response without a recognizable state maps to
// StateUnknown, so callers always get a usable state value.
func (t *Trading) Status(ctx context.Context, orderUUID string) core.OrderState {
	body, err := t.client.get(ctx, "/v1/order", core.Params{"uuid": orderUUID}, true)
	if err != nil {
		t.logger.Error().Err(err).Str("uuid", orderUUID).Msg("order status lookup failed")
		return core.StateError
	}

	var raw bithumbOrder
	if err := sonic.Unmarshal(body, &raw); err != nil {
		return core.StateUnknown
	}

	return core.ParseOrderState(raw.State)
}

// Orders lists orders filtered server-side by state (default "wait") and,
// when market is non-empty, by market.
func (t *Trading) Orders(ctx context.Context, market string, state core.OrderState) ([]core.Order, error) {
	params := core.Params{"state": state.String()}
	if market != "" {
		params["market"] = market
	}

	body, err := t.client.get(ctx, "/v1/orders", params, true)
	if err != nil {
		return nil, err
	}

	var raw []bithumbOrder
	if err := sonic.Unmarshal(body, &raw); err != nil {
		return nil, core.NewExchangeError(core.ErrorTypeShape, 0, fmt.Sprintf("unmarshal orders: %v", err))
	}

	return t.normalizer.NormalizeOrders(raw)
}

// OpenOrders lists orders waiting to be filled, optionally for one market.
func (t *Trading) OpenOrders(ctx context.Context, market string) ([]core.Order, error) {
	return t.Orders(ctx, market, core.StateWait)
}

// OrderChance returns the fee rates and order constraints for one market.
func (t *Trading) OrderChance(ctx context.Context, market string) (*core.OrderChance, error) {
	body, err := t.client.get(ctx, "/v1/orders/chance", core.Params{"market": market}, true)
	if err != nil {
		return nil, err
	}

	var raw bithumbOrderChance
	if err := sonic.Unmarshal(body, &raw); err != nil {
		return nil, core.NewExchangeError(core.ErrorTypeShape, 0, fmt.Sprintf("unmarshal order chance: %v", err))
	}

	return t.normalizer.NormalizeOrderChance(&raw)
}

func (t *Trading) decodeOrder(body []byte) (*core.Order, error) {
	var raw bithumbOrder
	if err := sonic.Unmarshal(body, &raw); err != nil {
		return nil, core.NewExchangeError(core.ErrorTypeShape, 0, fmt.Sprintf("unmarshal order: %v", err))
	}

	return t.normalizer.NormalizeOrder(&raw)
}
