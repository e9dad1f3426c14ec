package core

import (
	"fmt"
	"maps"
	"net/url"
	"strconv"
)

// Params holds request parameters for query strings and order payloads.
type Params map[string]any

// Clone returns a shallow copy of the parameter set.
func (p Params) Clone() Params {
	if p == nil {
		return nil
	}
	out := make(Params, len(p))
	maps.Copy(out, p)
	return out
}

// StringMap converts the parameter values to their wire string forms.
func (p Params) StringMap() map[string]string {
	result := make(map[string]string, len(p))
	for k, v := range p {
		result[k] = paramString(v)
	}
	return result
}

// Encode produces the canonical query-string encoding of the parameter set.
// Keys are sorted, so two sets with the same key/value pairs encode
// identically regardless of insertion order. This is the exact byte string
// the server hashes when verifying a signed request, so the transport must
// send parameters in this same encoding.
func (p Params) Encode() string {
	values := url.Values{}
	for k, v := range p {
		values.Set(k, paramString(v))
	}
	return values.Encode()
}

func paramString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}
