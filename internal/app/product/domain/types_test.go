package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariant_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Variant
	}{
		{"object", `{"size":"L","color":"red"}`, Variant{"size": "L", "color": "red"}},
		{"bare string", `"large"`, Variant{VariantValueKey: "large"}},
		{"empty string", `""`, nil},
		{"null", `null`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v Variant
			require.NoError(t, json.Unmarshal([]byte(tt.in), &v))
			assert.Equal(t, tt.want, v)
		})
	}

	t.Run("non-string values are rejected", func(t *testing.T) {
		var v Variant
		assert.Error(t, json.Unmarshal([]byte(`{"size": 3}`), &v))
	})
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("trial")
	require.NoError(t, err)
	assert.Equal(t, StatusTrial, st)

	_, err = ParseStatus("archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestParseItemType(t *testing.T) {
	it, err := ParseItemType("")
	require.NoError(t, err)
	assert.Equal(t, ItemTypeRetailProduct, it)

	it, err = ParseItemType("saas_package")
	require.NoError(t, err)
	assert.Equal(t, ItemTypeSaaSPackage, it)

	_, err = ParseItemType("gift")
	assert.ErrorIs(t, err, ErrInvalidItemType)
}

func TestNewBundle(t *testing.T) {
	t.Run("defaults order and unit", func(t *testing.T) {
		b, err := NewBundle("api_calls", decimal.NewFromInt(1000), nil, "", nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultBundleOrder, b.Order)
		assert.Equal(t, DefaultBundleUnit, b.Unit)
	})

	t.Run("accepts ranks 0 through 2", func(t *testing.T) {
		for order := 0; order <= 2; order++ {
			o := order
			b, err := NewBundle("seats", decimal.NewFromInt(1), &o, "seat", nil)
			require.NoError(t, err)
			assert.Equal(t, order, b.Order)
		}
	})

	t.Run("rejects any other rank", func(t *testing.T) {
		for _, order := range []int{-1, 3, 10} {
			o := order
			_, err := NewBundle("seats", decimal.NewFromInt(1), &o, "", nil)
			assert.ErrorIs(t, err, ErrInvalidBundleOrder, "order %d", order)
		}
	})

	t.Run("requires an asset", func(t *testing.T) {
		_, err := NewBundle(" ", decimal.NewFromInt(1), nil, "", nil)
		assert.ErrorIs(t, err, ErrInvalidBundle)
	})

	t.Run("rejects negative quota", func(t *testing.T) {
		_, err := NewBundle("seats", decimal.NewFromInt(-1), nil, "", nil)
		assert.ErrorIs(t, err, ErrInvalidBundleQuota)
	})
}

func TestChangeTracker_DirtyFieldsSorted(t *testing.T) {
	ct := NewChangeTracker()
	ct.MarkDirty(FieldStatus)
	ct.MarkDirty(FieldName)
	ct.MarkDirty(FieldCurrency)

	assert.Equal(t, []string{FieldCurrency, FieldName, FieldStatus}, ct.DirtyFields())

	ct.Clear()
	assert.False(t, ct.HasChanges())
}
