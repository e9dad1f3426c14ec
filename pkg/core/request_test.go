package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParams_Encode_SortsKeys(t *testing.T) {
	params := Params{
		"state":  "wait",
		"market": "KRW-BTC",
		"count":  30,
	}

	assert.Equal(t, "count=30&market=KRW-BTC&state=wait", params.Encode())
}

func TestParams_Encode_InsertionOrderIndependent(t *testing.T) {
	first := Params{}
	first["b"] = 2
	first["a"] = 1

	second := Params{}
	second["a"] = 1
	second["b"] = 2

	assert.Equal(t, first.Encode(), second.Encode())
}

func TestParams_Encode_Escaping(t *testing.T) {
	params := Params{"q": "a b&c"}

	assert.Equal(t, "q=a+b%26c", params.Encode())
}

func TestParams_StringMap(t *testing.T) {
	params := Params{
		"market":    "KRW-BTC",
		"count":     30,
		"isDetails": false,
		"rate":      0.5,
	}

	m := params.StringMap()
	assert.Equal(t, "KRW-BTC", m["market"])
	assert.Equal(t, "30", m["count"])
	assert.Equal(t, "false", m["isDetails"])
	assert.Equal(t, "0.5", m["rate"])
}

func TestParams_Clone(t *testing.T) {
	params := Params{"market": "KRW-BTC"}

	clone := params.Clone()
	clone["market"] = "KRW-ETH"

	assert.Equal(t, "KRW-BTC", params["market"])

	assert.Nil(t, Params(nil).Clone())
}
