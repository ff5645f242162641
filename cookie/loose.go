package cookie

import (
	"math"
	"strconv"
	"strings"
)

// Truthy follows the loose truth of imported JSON values: nil, false, empty
// strings, zero and NaN are false, everything else is true.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	default:
		return true
	}
}

// LooseFlag reads a boolean attribute by truthiness, so a decoded `"httpOnly": 1`
// counts as set. Typed records answer from their fields.
func (c Cookie) LooseFlag(key string) bool {
	v, _ := c.Field(key)
	return Truthy(v)
}

// LooseExpiration reads the expiration the way exporters always have: numbers
// and numeric strings are accepted, true counts as 1. Falsy or non-numeric
// values report no expiration.
func (c Cookie) LooseExpiration() (float64, bool) {
	v, _ := c.Field("expirationDate")
	if !Truthy(v) {
		return 0, false
	}

	var exp float64
	switch t := v.(type) {
	case float64:
		exp = t
	case bool:
		exp = 1
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		exp = n
	default:
		return 0, false
	}

	if exp == 0 || math.IsNaN(exp) {
		return 0, false
	}
	return exp, true
}
