// Package decimalx converts the numeric representations that reach the service
// (JSON numbers, strings, storage-engine decimal wrappers) into one canonical
// shopspring decimal.
package decimalx

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotDecimal is returned when a value cannot be read as a decimal.
var ErrNotDecimal = errors.New("value is not a decimal")

// extendedJSONKey is the MongoDB extended JSON wrapper for Decimal128 values.
const extendedJSONKey = "$numberDecimal"

// Normalize returns the canonical decimal for v.
//
// Strings, json.Number and the storage wrappers (primitive.Decimal128,
// big.Rat, spanner.NullNumeric) are parsed from their exact textual form.
// Floats are formatted with the shortest representation that round-trips, so
// Normalize(10.50) equals Normalize("10.50").
func Normalize(v any) (decimal.Decimal, error) {
	switch val := v.(type) {
	case decimal.Decimal:
		return val, nil
	case *decimal.Decimal:
		if val == nil {
			return decimal.Decimal{}, fmt.Errorf("%w: nil", ErrNotDecimal)
		}
		return *val, nil
	case decimal.NullDecimal:
		if !val.Valid {
			return decimal.Decimal{}, fmt.Errorf("%w: null", ErrNotDecimal)
		}
		return val.Decimal, nil
	case primitive.Decimal128:
		return fromDecimal128(val)
	case *primitive.Decimal128:
		if val == nil {
			return decimal.Decimal{}, fmt.Errorf("%w: nil", ErrNotDecimal)
		}
		return fromDecimal128(*val)
	case big.Rat:
		return FromRat(&val)
	case *big.Rat:
		return FromRat(val)
	case spanner.NullNumeric:
		if !val.Valid {
			return decimal.Decimal{}, fmt.Errorf("%w: null", ErrNotDecimal)
		}
		return FromRat(&val.Numeric)
	case string:
		return parseString(val)
	case json.Number:
		return parseString(val.String())
	case map[string]any:
		raw, ok := val[extendedJSONKey]
		if !ok || len(val) != 1 {
			return decimal.Decimal{}, fmt.Errorf("%w: object", ErrNotDecimal)
		}
		s, ok := raw.(string)
		if !ok {
			return decimal.Decimal{}, fmt.Errorf("%w: %s must be a string", ErrNotDecimal, extendedJSONKey)
		}
		d128, err := primitive.ParseDecimal128(s)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrNotDecimal, err)
		}
		return fromDecimal128(d128)
	case int:
		return decimal.NewFromInt(int64(val)), nil
	case int8:
		return decimal.NewFromInt(int64(val)), nil
	case int16:
		return decimal.NewFromInt(int64(val)), nil
	case int32:
		return decimal.NewFromInt32(val), nil
	case int64:
		return decimal.NewFromInt(val), nil
	case uint:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(val)), 0), nil
	case uint8:
		return decimal.NewFromInt(int64(val)), nil
	case uint16:
		return decimal.NewFromInt(int64(val)), nil
	case uint32:
		return decimal.NewFromInt(int64(val)), nil
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(val), 0), nil
	case float32:
		return parseString(strconv.FormatFloat(float64(val), 'f', -1, 32))
	case float64:
		return parseString(strconv.FormatFloat(val, 'f', -1, 64))
	case nil:
		return decimal.Decimal{}, fmt.Errorf("%w: nil", ErrNotDecimal)
	default:
		return decimal.Decimal{}, fmt.Errorf("%w: unsupported type %T", ErrNotDecimal, v)
	}
}

// FromRat converts an exact rational into a decimal. Rationals without a
// terminating decimal expansion (1/3) are rejected.
func FromRat(r *big.Rat) (decimal.Decimal, error) {
	if r == nil {
		return decimal.Decimal{}, fmt.Errorf("%w: nil", ErrNotDecimal)
	}
	if r.IsInt() {
		return decimal.NewFromBigInt(new(big.Int).Set(r.Num()), 0), nil
	}
	prec, exact := r.FloatPrec()
	if !exact {
		return decimal.Decimal{}, fmt.Errorf("%w: %s has no finite decimal form", ErrNotDecimal, r.String())
	}
	return parseString(r.FloatString(prec))
}

// Rat returns the exact rational form of d, as Spanner NUMERIC columns expect.
func Rat(d decimal.Decimal) *big.Rat {
	return d.Rat()
}

func fromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	if d.IsNaN() || d.IsInf() != 0 {
		return decimal.Decimal{}, fmt.Errorf("%w: %s", ErrNotDecimal, d.String())
	}
	return parseString(d.String())
}

func parseString(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: empty string", ErrNotDecimal)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrNotDecimal, s)
	}
	if err := checkExponent(d); err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %w", ErrNotDecimal, err)
	}
	return d, nil
}
