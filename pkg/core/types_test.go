package core

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderSide_String(t *testing.T) {
	assert.Equal(t, "bid", SideBid.String())
	assert.Equal(t, "ask", SideAsk.String())
}

func TestOrderSide_JSON(t *testing.T) {
	data, err := sonic.Marshal(SideAsk)
	require.NoError(t, err)
	assert.Equal(t, `"ask"`, string(data))

	var side OrderSide
	require.NoError(t, sonic.Unmarshal([]byte(`"ask"`), &side))
	assert.Equal(t, SideAsk, side)
}

func TestOrdType_String(t *testing.T) {
	assert.Equal(t, "limit", OrdTypeLimit.String())
	assert.Equal(t, "price", OrdTypePrice.String())
	assert.Equal(t, "market", OrdTypeMarket.String())
}

func TestOrdType_JSON(t *testing.T) {
	var ordType OrdType
	require.NoError(t, sonic.Unmarshal([]byte(`"price"`), &ordType))
	assert.Equal(t, OrdTypePrice, ordType)
}

func TestParseOrderState(t *testing.T) {
	assert.Equal(t, StateWait, ParseOrderState("wait"))
	assert.Equal(t, StateDone, ParseOrderState("done"))
	assert.Equal(t, StateCancel, ParseOrderState("cancel"))
	assert.Equal(t, StateUnknown, ParseOrderState(""))
	assert.Equal(t, StateUnknown, ParseOrderState("exploded"))
}

func TestOrderState_String(t *testing.T) {
	assert.Equal(t, "wait", StateWait.String())
	assert.Equal(t, "error", StateError.String())
	assert.Equal(t, "unknown", StateUnknown.String())
}

func TestCandlePeriod_String(t *testing.T) {
	assert.Equal(t, "minutes", PeriodMinutes.String())
	assert.Equal(t, "days", PeriodDays.String())
	assert.Equal(t, "weeks", PeriodWeeks.String())
	assert.Equal(t, "months", PeriodMonths.String())
}
