package m_product

import (
	"math/big"
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the products table.
// NUMERIC columns map to big.Rat so prices never pass through float64.
type Data struct {
	ProductID      string             `spanner:"product_id"`
	TenantID       string             `spanner:"tenant_id"`
	BusinessID     spanner.NullString `spanner:"business_id"`
	UserID         spanner.NullString `spanner:"user_id"`
	Name           string             `spanner:"name"`
	Description    spanner.NullString `spanner:"description"`
	UnitPrice      big.Rat            `spanner:"unit_price"`
	Currency       string             `spanner:"currency"`
	Quantity       big.Rat            `spanner:"quantity"`
	ItemType       string             `spanner:"item_type"`
	Status         string             `spanner:"status"`
	Variant        spanner.NullJSON   `spanner:"variant"`
	ProductURL     spanner.NullString `spanner:"product_url"`
	WebhookURL     spanner.NullString `spanner:"webhook_url"`
	ReserveURL     spanner.NullString `spanner:"reserve_url"`
	ValidationURL  spanner.NullString `spanner:"validation_url"`
	RevenueShareID spanner.NullString `spanner:"revenue_share_id"`
	TaxID          spanner.NullString `spanner:"tax_id"`
	Merchant       spanner.NullString `spanner:"merchant"`
	PlanDuration   spanner.NullInt64  `spanner:"plan_duration"`
	Bundles        spanner.NullJSON   `spanner:"bundles"`
	ExtraData      spanner.NullJSON   `spanner:"extra_data"`
	MetaData       spanner.NullJSON   `spanner:"meta_data"`
	CreatedAt      time.Time          `spanner:"created_at"`
	UpdatedAt      time.Time          `spanner:"updated_at"`
}
