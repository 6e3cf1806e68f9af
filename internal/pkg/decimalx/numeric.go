package decimalx

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Limits of a Spanner NUMERIC column.
const (
	NumericScale         = 9
	NumericIntegerDigits = 29
)

// MaxExponent bounds the base-10 exponent of any parsed decimal. Rendering
// costs grow with the exponent, so "1e20000000" must never get past parsing.
const MaxExponent = 2 * (NumericIntegerDigits + NumericScale)

// ErrOutOfRange is returned when a decimal does not fit a NUMERIC column.
var ErrOutOfRange = errors.New("decimal exceeds NUMERIC range")

// CheckNumeric reports whether d can be stored in a NUMERIC column without
// rounding.
func CheckNumeric(d decimal.Decimal) error {
	if err := checkExponent(d); err != nil {
		return err
	}
	scale := int32(0)
	if exp := d.Exponent(); exp < 0 {
		scale = -exp
	}
	// Trailing zeros do not count against the scale.
	if scale > NumericScale && !d.Equal(d.Truncate(NumericScale)) {
		return fmt.Errorf("%w: %s has more than %d fractional digits", ErrOutOfRange, d.String(), NumericScale)
	}
	intDigits := len(d.Abs().Truncate(0).BigInt().String())
	if intDigits > NumericIntegerDigits {
		return fmt.Errorf("%w: %s has more than %d integer digits", ErrOutOfRange, d.String(), NumericIntegerDigits)
	}
	return nil
}

func checkExponent(d decimal.Decimal) error {
	if exp := d.Exponent(); exp > MaxExponent || exp < -MaxExponent {
		return fmt.Errorf("%w: exponent %d is outside [-%d, %d]", ErrOutOfRange, exp, MaxExponent, MaxExponent)
	}
	return nil
}
