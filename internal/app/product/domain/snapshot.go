package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/product-catalog/internal/pkg/clock"
	"github.com/light-bringer/product-catalog/internal/pkg/ownership"
)

// Snapshot is the full serialized state of a product. It is what reserve and
// webhook URLs receive, what the API returns and what stores load from.
type Snapshot struct {
	ID             string          `json:"id"`
	TenantID       string          `json:"tenant_id"`
	BusinessID     string          `json:"business_id,omitempty"`
	UserID         string          `json:"user_id,omitempty"`
	Name           string          `json:"name"`
	Description    *string         `json:"description"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Currency       string          `json:"currency"`
	Quantity       decimal.Decimal `json:"quantity"`
	ItemType       ItemType        `json:"item_type"`
	Status         Status          `json:"status"`
	Variant        Variant         `json:"variant,omitempty"`
	ProductURL     *string         `json:"product_url"`
	WebhookURL     *string         `json:"webhook_url"`
	ReserveURL     *string         `json:"reserve_url"`
	ValidationURL  *string         `json:"validation_url"`
	RevenueShareID *string         `json:"revenue_share_id"`
	TaxID          *string         `json:"tax_id"`
	Merchant       *string         `json:"merchant"`
	PlanDuration   *int64          `json:"plan_duration"`
	Bundles        []Bundle        `json:"bundles,omitempty"`
	ExtraData      map[string]any  `json:"extra_data,omitempty"`
	MetaData       map[string]any  `json:"meta_data,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// Snapshot returns the current state of the product.
func (p *Product) Snapshot() Snapshot {
	return Snapshot{
		ID:             p.id,
		TenantID:       p.owner.TenantID,
		BusinessID:     p.owner.BusinessID,
		UserID:         p.owner.UserID,
		Name:           p.name,
		Description:    p.description,
		UnitPrice:      p.unitPrice,
		Currency:       p.currency,
		Quantity:       p.quantity,
		ItemType:       p.itemType,
		Status:         p.status,
		Variant:        p.variant.Clone(),
		ProductURL:     p.productURL,
		WebhookURL:     p.webhookURL,
		ReserveURL:     p.reserveURL,
		ValidationURL:  p.validationURL,
		RevenueShareID: p.revenueShareID,
		TaxID:          p.taxID,
		Merchant:       p.merchant,
		PlanDuration:   p.planDuration,
		Bundles:        cloneBundles(p.bundles),
		ExtraData:      cloneMap(p.extraData),
		MetaData:       cloneMap(p.metaData),
		CreatedAt:      p.createdAt,
		UpdatedAt:      p.updatedAt,
	}
}

// ReconstructProduct reconstitutes a Product from stored state.
// Stored state is trusted; no validation runs.
func ReconstructProduct(s Snapshot, clk clock.Clock) *Product {
	return &Product{
		id: s.ID,
		owner: ownership.Owner{
			TenantID:   s.TenantID,
			BusinessID: s.BusinessID,
			UserID:     s.UserID,
		},
		name:           s.Name,
		description:    s.Description,
		unitPrice:      s.UnitPrice,
		currency:       s.Currency,
		quantity:       s.Quantity,
		itemType:       s.ItemType,
		status:         s.Status,
		variant:        s.Variant.Clone(),
		productURL:     s.ProductURL,
		webhookURL:     s.WebhookURL,
		reserveURL:     s.ReserveURL,
		validationURL:  s.ValidationURL,
		revenueShareID: s.RevenueShareID,
		taxID:          s.TaxID,
		merchant:       s.Merchant,
		planDuration:   s.PlanDuration,
		bundles:        cloneBundles(s.Bundles),
		extraData:      cloneMap(s.ExtraData),
		metaData:       cloneMap(s.MetaData),
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
		clock:          clk,
		changes:        NewChangeTracker(), // Start with clean slate
	}
}
