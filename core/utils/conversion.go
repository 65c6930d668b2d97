package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// ToFloat converts numbers and numeric strings to float64.
// Strings may carry thousands separators ("1,234") and surrounding spaces.
// Anything that does not parse converts to 0.
func ToFloat(val any) float64 {
	switch v := val.(type) {
	case nil:
		return 0
	case float64:
		if math.IsNaN(v) {
			return 0
		}
		return v
	case float32:
		return float64(v)
	case string:
		return parseFloat(v)
	case []byte:
		return parseFloat(string(v))
	default:
		f, err := cast.ToFloat64E(v)
		if err != nil {
			return 0
		}
		return f
	}
}

func parseFloat(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0
	}
	return f
}

// ToString converts various types to string. Whole floats print without a
// fractional part and nil prints as the empty string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		s, err := cast.ToStringE(v)
		if err != nil {
			return ""
		}
		return s
	}
}

// IsMissing reports whether a value is one of the null representations that
// sources produce: nil or a NaN float.
func IsMissing(val any) bool {
	switch v := val.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(v)
	case float32:
		return math.IsNaN(float64(v))
	default:
		return false
	}
}
