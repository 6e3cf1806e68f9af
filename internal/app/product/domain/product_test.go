package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/product-catalog/internal/pkg/clock"
	"github.com/light-bringer/product-catalog/internal/pkg/ownership"
)

var testOwner = ownership.Owner{TenantID: "tenant-1", BusinessID: "biz-1"}

func strPtr(s string) *string { return &s }

func newTestProduct(t *testing.T, in NewProductInput) *Product {
	t.Helper()
	if in.Name == "" {
		in.Name = "Widget"
	}
	p, err := NewProduct("id-1", testOwner, in, Defaults{Currency: "EUR"}, clock.NewMockClock(time.Now()))
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	clk := clock.NewMockClock(now)

	t.Run("valid product creation applies defaults", func(t *testing.T) {
		p, err := NewProduct("id-1", testOwner, NewProductInput{
			Name:      "Test Product",
			UnitPrice: decimal.RequireFromString("9.99"),
		}, Defaults{Currency: "EUR"}, clk)
		require.NoError(t, err)

		assert.Equal(t, "id-1", p.ID())
		assert.Equal(t, "Test Product", p.Name())
		assert.Equal(t, "EUR", p.Currency())
		assert.True(t, p.Quantity().Equal(decimal.NewFromInt(1)))
		assert.Equal(t, ItemTypeRetailProduct, p.ItemType())
		assert.Equal(t, StatusActive, p.Status())
		assert.Equal(t, testOwner, p.Owner())
		assert.Equal(t, now, p.CreatedAt())
		assert.Equal(t, now, p.UpdatedAt())
		assert.True(t, p.Changes().HasChanges())
	})

	t.Run("falls back to USD without a configured currency", func(t *testing.T) {
		p, err := NewProduct("id-1", testOwner, NewProductInput{Name: "x"}, Defaults{}, clk)
		require.NoError(t, err)
		assert.Equal(t, DefaultCurrency, p.Currency())
	})

	t.Run("currency is upper-cased", func(t *testing.T) {
		p := newTestProduct(t, NewProductInput{Currency: "gbp"})
		assert.Equal(t, "GBP", p.Currency())
	})

	t.Run("zero price is allowed", func(t *testing.T) {
		p := newTestProduct(t, NewProductInput{UnitPrice: decimal.Zero})
		assert.True(t, p.UnitPrice().IsZero())
	})

	t.Run("empty name returns error", func(t *testing.T) {
		_, err := NewProduct("id-1", testOwner, NewProductInput{Name: "   "}, Defaults{}, clk)
		assert.ErrorIs(t, err, ErrEmptyName)

		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, FieldName, fe.Field)
	})

	t.Run("negative price returns error", func(t *testing.T) {
		_, err := NewProduct("id-1", testOwner, NewProductInput{
			Name:      "x",
			UnitPrice: decimal.NewFromInt(-1),
		}, Defaults{}, clk)
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("negative quantity returns error", func(t *testing.T) {
		q := decimal.NewFromInt(-3)
		_, err := NewProduct("id-1", testOwner, NewProductInput{Name: "x", Quantity: &q}, Defaults{}, clk)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("invalid currency returns error", func(t *testing.T) {
		_, err := NewProduct("id-1", testOwner, NewProductInput{Name: "x", Currency: "EURO"}, Defaults{}, clk)
		assert.ErrorIs(t, err, ErrInvalidCurrency)
	})

	t.Run("unknown item type returns error", func(t *testing.T) {
		_, err := NewProduct("id-1", testOwner, NewProductInput{Name: "x", ItemType: "service"}, Defaults{}, clk)
		assert.ErrorIs(t, err, ErrInvalidItemType)
	})

	t.Run("relative url returns error", func(t *testing.T) {
		_, err := NewProduct("id-1", testOwner, NewProductInput{Name: "x", WebhookURL: strPtr("/hook")}, Defaults{}, clk)
		assert.ErrorIs(t, err, ErrInvalidURL)

		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, FieldWebhookURL, fe.Field)
	})

	t.Run("blank url is treated as unset", func(t *testing.T) {
		p := newTestProduct(t, NewProductInput{ReserveURL: strPtr("  ")})
		assert.Nil(t, p.ReserveURL())
	})

	t.Run("revenue share id must be a uuid", func(t *testing.T) {
		_, err := NewProduct("id-1", testOwner, NewProductInput{Name: "x", RevenueShareID: strPtr("nope")}, Defaults{}, clk)
		assert.ErrorIs(t, err, ErrInvalidRevenueShare)
	})

	t.Run("negative plan duration returns error", func(t *testing.T) {
		d := int64(-1)
		_, err := NewProduct("id-1", testOwner, NewProductInput{Name: "x", PlanDuration: &d}, Defaults{}, clk)
		assert.ErrorIs(t, err, ErrInvalidPlanDuration)
	})

	t.Run("bundle with order out of range returns error", func(t *testing.T) {
		_, err := NewProduct("id-1", testOwner, NewProductInput{
			Name:    "x",
			Bundles: []Bundle{{Asset: "seats", Quota: decimal.NewFromInt(5), Order: 3, Unit: "unit"}},
		}, Defaults{}, clk)
		assert.ErrorIs(t, err, ErrInvalidBundleOrder)
	})

	t.Run("missing tenant returns error", func(t *testing.T) {
		_, err := NewProduct("id-1", ownership.Owner{BusinessID: "biz-1"}, NewProductInput{Name: "x"}, Defaults{}, clk)
		assert.ErrorIs(t, err, ErrOwnershipRequired)
	})
}

func TestProduct_Setters(t *testing.T) {
	p := newTestProduct(t, NewProductInput{})
	p.Changes().Clear()

	require.NoError(t, p.SetName("Renamed"))
	require.NoError(t, p.SetUnitPrice(decimal.RequireFromString("12.30")))

	assert.Equal(t, "Renamed", p.Name())
	assert.True(t, p.UnitPrice().Equal(decimal.RequireFromString("12.3")))
	assert.Equal(t, []string{FieldName, FieldUnitPrice}, p.Changes().DirtyFields())
	assert.False(t, p.Changes().Dirty(FieldCurrency))
}

func TestProduct_SetStatus(t *testing.T) {
	t.Run("any status but deleted", func(t *testing.T) {
		for _, st := range []Status{StatusInactive, StatusExpired, StatusTrial, StatusActive} {
			p := newTestProduct(t, NewProductInput{})
			require.NoError(t, p.SetStatus(st))
			assert.Equal(t, st, p.Status())
		}
	})

	t.Run("deleted is rejected", func(t *testing.T) {
		p := newTestProduct(t, NewProductInput{})
		err := p.SetStatus(StatusDeleted)
		assert.ErrorIs(t, err, ErrDeleteThroughUpdate)
		assert.Equal(t, StatusActive, p.Status())
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		p := newTestProduct(t, NewProductInput{})
		assert.ErrorIs(t, p.SetStatus("archived"), ErrInvalidStatus)
	})
}

func TestProduct_Delete(t *testing.T) {
	p := newTestProduct(t, NewProductInput{})
	p.Changes().Clear()
	later := p.CreatedAt().Add(time.Hour)

	require.NoError(t, p.Delete(later))
	assert.True(t, p.IsDeleted())
	assert.Equal(t, later, p.UpdatedAt())
	assert.True(t, p.Changes().Dirty(FieldStatus))

	assert.ErrorIs(t, p.Delete(later), ErrAlreadyDeleted)
	assert.ErrorIs(t, p.SetName("again"), ErrCannotModifyDeleted)
	assert.ErrorIs(t, p.SetStatus(StatusActive), ErrCannotModifyDeleted)
}

func TestProduct_MarkUpdated(t *testing.T) {
	p := newTestProduct(t, NewProductInput{})
	created := p.UpdatedAt()
	p.Changes().Clear()

	p.MarkUpdated(created.Add(time.Minute))
	assert.Equal(t, created, p.UpdatedAt(), "no changes, no new timestamp")

	require.NoError(t, p.SetMerchant(strPtr("Acme")))
	p.MarkUpdated(created.Add(time.Minute))
	assert.Equal(t, created.Add(time.Minute), p.UpdatedAt())
}

func TestProduct_SnapshotRoundTrip(t *testing.T) {
	q := decimal.RequireFromString("2.5")
	d := int64(30)
	in := NewProductInput{
		Name:          "Pro plan",
		UnitPrice:     decimal.RequireFromString("10.50"),
		Quantity:      &q,
		ItemType:      ItemTypeSaaSPackage,
		Variant:       Variant{"tier": "pro"},
		ValidationURL: strPtr("https://stock.example.com/check"),
		PlanDuration:  &d,
		Bundles:       []Bundle{{Asset: "seats", Quota: decimal.NewFromInt(10), Order: 0, Unit: "seat"}},
		ExtraData:     map[string]any{"k": "v"},
	}
	p := newTestProduct(t, in)

	s := p.Snapshot()
	back := ReconstructProduct(s, clock.NewRealClock())

	assert.Equal(t, s, back.Snapshot())
	assert.False(t, back.Changes().HasChanges())

	s.Variant["tier"] = "mutated"
	assert.Equal(t, "pro", p.Variant()["tier"], "snapshot must not alias product state")
}
