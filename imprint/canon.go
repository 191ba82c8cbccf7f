package imprint

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Canon converts a scalar value into the string that gets hashed into
// a leaf imprint.
//
// nil becomes "", booleans become "true" or "false" and strings are kept
// as they are. Numbers are printed in decimal without padding, following
// the ECMAScript Number to String shape (1e+21, 1.5e-7); integers that fit
// into 64 bits are printed exactly. NaN and infinities fail with
// ErrInvalidValue, as does any non-scalar type.
//
// Values of different types may canonicalize identically: the number 1
// and the string "1" yield the same leaf imprint.
func Canon(v interface{}) (string, error) {
	switch x := v.(type) {
	case nil:
		return "", nil
	case bool:
		return strconv.FormatBool(x), nil
	case string:
		return x, nil
	case int:
		return strconv.FormatInt(int64(x), 10), nil
	case int8:
		return strconv.FormatInt(int64(x), 10), nil
	case int16:
		return strconv.FormatInt(int64(x), 10), nil
	case int32:
		return strconv.FormatInt(int64(x), 10), nil
	case int64:
		return strconv.FormatInt(x, 10), nil
	case uint:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(x), 10), nil
	case uint64:
		return strconv.FormatUint(x, 10), nil
	case float32:
		return formatFloat(float64(x))
	case float64:
		return formatFloat(x)
	case json.Number:
		return canonNumber(x)
	default:
		return "", fmt.Errorf("%w: unsupported type %T", ErrInvalidValue, v)
	}
}

func canonNumber(n json.Number) (string, error) {
	if i, err := strconv.ParseInt(string(n), 10, 64); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	if u, err := strconv.ParseUint(string(n), 10, 64); err == nil {
		return strconv.FormatUint(u, 10), nil
	}
	f, err := n.Float64()
	if err != nil {
		return "", fmt.Errorf("%w: number %q", ErrInvalidValue, string(n))
	}
	return formatFloat(f)
}

func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: non-finite number %v", ErrInvalidValue, f)
	}
	if f == 0 {
		// -0 prints as 0
		return "0", nil
	}
	if abs := math.Abs(f); abs < 1e-6 || abs >= 1e21 {
		s := strconv.FormatFloat(f, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		return mant + "e" + exp[:1] + strings.TrimLeft(exp[1:], "0"), nil
	}
	return strconv.FormatFloat(f, 'f', -1, 64), nil
}
