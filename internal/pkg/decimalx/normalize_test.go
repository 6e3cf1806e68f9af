package decimalx

import (
	"encoding/json"
	"math/big"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestNormalize_EquivalentRepresentations(t *testing.T) {
	d128, err := primitive.ParseDecimal128("10.50")
	require.NoError(t, err)

	inputs := map[string]any{
		"string":          "10.50",
		"float64":         10.50,
		"float32":         float32(10.5),
		"json number":     json.Number("10.5"),
		"decimal128":      d128,
		"extended json":   map[string]any{"$numberDecimal": "10.50"},
		"big.Rat":         big.NewRat(21, 2),
		"spanner numeric": spanner.NullNumeric{Numeric: *big.NewRat(1050, 100), Valid: true},
		"decimal":         decimal.RequireFromString("10.5"),
	}

	want := decimal.RequireFromString("10.5")
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			got, err := Normalize(in)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
		})
	}
}

func TestNormalize_KeepsPrecision(t *testing.T) {
	t.Run("long string is not rounded through float", func(t *testing.T) {
		got, err := Normalize("0.10000000000000000000000001")
		require.NoError(t, err)
		assert.Equal(t, "0.10000000000000000000000001", got.String())
	})

	t.Run("decimal128 keeps all digits", func(t *testing.T) {
		d128, err := primitive.ParseDecimal128("12345678901234567890.123456789")
		require.NoError(t, err)

		got, err := Normalize(d128)
		require.NoError(t, err)
		assert.Equal(t, "12345678901234567890.123456789", got.String())
	})

	t.Run("float uses shortest round-trip form", func(t *testing.T) {
		got, err := Normalize(0.1)
		require.NoError(t, err)
		assert.Equal(t, "0.1", got.String())
	})
}

func TestNormalize_Integers(t *testing.T) {
	for _, in := range []any{int(3), int8(3), int16(3), int32(3), int64(3), uint(3), uint8(3), uint16(3), uint32(3), uint64(3)} {
		got, err := Normalize(in)
		require.NoError(t, err)
		assert.Equal(t, "3", got.String())
	}
}

func TestNormalize_Errors(t *testing.T) {
	cases := map[string]any{
		"garbage string":      "ten",
		"empty string":        "  ",
		"nil":                 nil,
		"bool":                true,
		"non terminating rat": big.NewRat(1, 3),
		"null numeric":        spanner.NullNumeric{},
		"plain object":        map[string]any{"amount": "1"},
		"non string wrapper":  map[string]any{"$numberDecimal": 1},
		"decimal128 NaN":      primitive.NewDecimal128(0x7c00000000000000, 0),
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Normalize(in)
			assert.ErrorIs(t, err, ErrNotDecimal)
		})
	}
}

func TestNormalize_ExponentBound(t *testing.T) {
	for _, in := range []any{"1e20000000", "1e-20000000", json.Number("9E+77"), map[string]any{"$numberDecimal": "1E+6000"}} {
		_, err := Normalize(in)
		assert.ErrorIs(t, err, ErrNotDecimal, "%v", in)
		assert.ErrorIs(t, err, ErrOutOfRange, "%v", in)
	}

	got, err := Normalize("1e76")
	require.NoError(t, err)
	assert.Equal(t, int32(76), got.Exponent())

	t.Run("amount rejects before rendering", func(t *testing.T) {
		var a Amount
		err := json.Unmarshal([]byte(`"1e20000000"`), &a)
		assert.ErrorIs(t, err, ErrOutOfRange)
	})
}

func TestFromRat(t *testing.T) {
	got, err := FromRat(big.NewRat(999, 100))
	require.NoError(t, err)
	assert.Equal(t, "9.99", got.String())

	got, err = FromRat(big.NewRat(-4, 1))
	require.NoError(t, err)
	assert.Equal(t, "-4", got.String())

	assert.Equal(t, 0, Rat(got).Cmp(big.NewRat(-4, 1)))
}

func TestAmount_JSON(t *testing.T) {
	t.Run("accepts number string and wrapper", func(t *testing.T) {
		var payload struct {
			A Amount `json:"a"`
			B Amount `json:"b"`
			C Amount `json:"c"`
		}
		err := json.Unmarshal([]byte(`{"a": 9.99, "b": "9.99", "c": {"$numberDecimal": "9.990"}}`), &payload)
		require.NoError(t, err)

		assert.True(t, payload.A.Equal(payload.B.Decimal))
		assert.True(t, payload.B.Equal(payload.C.Decimal))
	})

	t.Run("rejects non numeric", func(t *testing.T) {
		var a Amount
		err := json.Unmarshal([]byte(`"abc"`), &a)
		assert.ErrorIs(t, err, ErrNotDecimal)
	})

	t.Run("marshals as string", func(t *testing.T) {
		out, err := json.Marshal(NewAmount(decimal.RequireFromString("1.25")))
		require.NoError(t, err)
		assert.JSONEq(t, `"1.25"`, string(out))
	})
}
