package decimalx

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Amount is the wire form of a decimal field. It accepts JSON numbers, numeric
// strings and {"$numberDecimal": "..."} objects, normalizing while decoding.
type Amount struct {
	decimal.Decimal
}

// NewAmount wraps d.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("%w: %v", ErrNotDecimal, err)
	}

	d, err := Normalize(raw)
	if err != nil {
		return err
	}
	a.Decimal = d
	return nil
}

// MarshalJSON renders the amount as a JSON string so no float conversion happens
// on the client side.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Decimal.String())
}
