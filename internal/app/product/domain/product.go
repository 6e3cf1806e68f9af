package domain

import (
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/product-catalog/internal/pkg/clock"
	"github.com/light-bringer/product-catalog/internal/pkg/ownership"
)

// Field names for change tracking. They double as storage column names.
const (
	FieldName           = "name"
	FieldDescription    = "description"
	FieldUnitPrice      = "unit_price"
	FieldCurrency       = "currency"
	FieldQuantity       = "quantity"
	FieldItemType       = "item_type"
	FieldStatus         = "status"
	FieldVariant        = "variant"
	FieldProductURL     = "product_url"
	FieldWebhookURL     = "webhook_url"
	FieldReserveURL     = "reserve_url"
	FieldValidationURL  = "validation_url"
	FieldRevenueShareID = "revenue_share_id"
	FieldTaxID          = "tax_id"
	FieldMerchant       = "merchant"
	FieldPlanDuration   = "plan_duration"
	FieldBundles        = "bundles"
	FieldExtraData      = "extra_data"
	FieldMetaData       = "meta_data"
)

// DefaultCurrency is used when neither the payload nor Defaults name one.
const DefaultCurrency = "USD"

// Defaults are deployment-wide values applied when a product is created.
type Defaults struct {
	Currency string
}

func (d Defaults) currency() string {
	if d.Currency == "" {
		return DefaultCurrency
	}
	return d.Currency
}

// Product is the aggregate root of the catalog.
type Product struct {
	id    string
	owner ownership.Owner

	name           string
	description    *string
	unitPrice      decimal.Decimal
	currency       string
	quantity       decimal.Decimal
	itemType       ItemType
	status         Status
	variant        Variant
	productURL     *string
	webhookURL     *string
	reserveURL     *string
	validationURL  *string
	revenueShareID *string
	taxID          *string
	merchant       *string
	planDuration   *int64
	bundles        []Bundle
	extraData      map[string]any
	metaData       map[string]any

	createdAt time.Time
	updatedAt time.Time

	// Clock for time operations (injected for testability)
	clock clock.Clock

	// Change tracking for optimized repository updates
	changes *ChangeTracker
}

// NewProductInput holds the client-settable fields of a new product.
// Identity, ownership and status are never part of it.
type NewProductInput struct {
	Name           string
	Description    *string
	UnitPrice      decimal.Decimal
	Currency       string
	Quantity       *decimal.Decimal
	ItemType       ItemType
	Variant        Variant
	ProductURL     *string
	WebhookURL     *string
	ReserveURL     *string
	ValidationURL  *string
	RevenueShareID *string
	TaxID          *string
	Merchant       *string
	PlanDuration   *int64
	Bundles        []Bundle
	ExtraData      map[string]any
	MetaData       map[string]any
}

// NewProduct creates a new Product aggregate owned by owner.
func NewProduct(id string, owner ownership.Owner, in NewProductInput, defaults Defaults, clk clock.Clock) (*Product, error) {
	if owner.TenantID == "" {
		return nil, ErrOwnershipRequired
	}

	now := clk.Now()
	p := &Product{
		id:        id,
		owner:     owner,
		quantity:  decimal.NewFromInt(1),
		itemType:  ItemTypeRetailProduct,
		status:    StatusActive,
		createdAt: now,
		updatedAt: now,
		clock:     clk,
		changes:   NewChangeTracker(),
	}

	currency := in.Currency
	if strings.TrimSpace(currency) == "" {
		currency = defaults.currency()
	}
	itemType := in.ItemType
	if itemType == "" {
		itemType = ItemTypeRetailProduct
	}

	steps := []func() error{
		func() error { return p.SetName(in.Name) },
		func() error { return p.SetDescription(in.Description) },
		func() error { return p.SetUnitPrice(in.UnitPrice) },
		func() error { return p.SetCurrency(currency) },
		func() error { return p.SetItemType(itemType) },
		func() error { return p.SetVariant(in.Variant) },
		func() error { return p.SetProductURL(in.ProductURL) },
		func() error { return p.SetWebhookURL(in.WebhookURL) },
		func() error { return p.SetReserveURL(in.ReserveURL) },
		func() error { return p.SetValidationURL(in.ValidationURL) },
		func() error { return p.SetRevenueShareID(in.RevenueShareID) },
		func() error { return p.SetTaxID(in.TaxID) },
		func() error { return p.SetMerchant(in.Merchant) },
		func() error { return p.SetPlanDuration(in.PlanDuration) },
		func() error { return p.SetBundles(in.Bundles) },
		func() error { return p.SetExtraData(in.ExtraData) },
		func() error { return p.SetMetaData(in.MetaData) },
	}
	if in.Quantity != nil {
		steps = append(steps, func() error { return p.SetQuantity(*in.Quantity) })
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}

	// Mark all fields as dirty for new product
	p.changes.MarkDirty(FieldQuantity)
	p.changes.MarkDirty(FieldStatus)

	return p, nil
}

// Getters
func (p *Product) ID() string                 { return p.id }
func (p *Product) Owner() ownership.Owner     { return p.owner }
func (p *Product) Name() string               { return p.name }
func (p *Product) Description() *string       { return p.description }
func (p *Product) UnitPrice() decimal.Decimal { return p.unitPrice }
func (p *Product) Currency() string           { return p.currency }
func (p *Product) Quantity() decimal.Decimal  { return p.quantity }
func (p *Product) ItemType() ItemType         { return p.itemType }
func (p *Product) Status() Status             { return p.status }
func (p *Product) Variant() Variant           { return p.variant.Clone() }
func (p *Product) ProductURL() *string        { return p.productURL }
func (p *Product) WebhookURL() *string        { return p.webhookURL }
func (p *Product) ReserveURL() *string        { return p.reserveURL }
func (p *Product) ValidationURL() *string     { return p.validationURL }
func (p *Product) RevenueShareID() *string    { return p.revenueShareID }
func (p *Product) TaxID() *string             { return p.taxID }
func (p *Product) Merchant() *string          { return p.merchant }
func (p *Product) PlanDuration() *int64       { return p.planDuration }
func (p *Product) Bundles() []Bundle          { return cloneBundles(p.bundles) }
func (p *Product) ExtraData() map[string]any  { return cloneMap(p.extraData) }
func (p *Product) MetaData() map[string]any   { return cloneMap(p.metaData) }
func (p *Product) CreatedAt() time.Time       { return p.createdAt }
func (p *Product) UpdatedAt() time.Time       { return p.updatedAt }
func (p *Product) Changes() *ChangeTracker    { return p.changes }

// IsDeleted returns true if the product carries the soft-delete marker.
func (p *Product) IsDeleted() bool {
	return p.status == StatusDeleted
}

// SetName updates the product name.
func (p *Product) SetName(name string) error {
	if err := p.checkNotDeleted(); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return invalid(FieldName, ErrEmptyName)
	}
	p.name = name
	p.changes.MarkDirty(FieldName)
	return nil
}

// SetDescription updates the product description. Nil clears it.
func (p *Product) SetDescription(description *string) error {
	if err := p.checkNotDeleted(); err != nil {
		return err
	}
	p.description = description
	p.changes.MarkDirty(FieldDescription)
	return nil
}

// SetUnitPrice updates the unit price.
func (p *Product) SetUnitPrice(price decimal.Decimal) error {
	if err := p.checkNotDeleted(); err != nil {
		return err
	}
	if price.IsNegative() {
		return invalid(FieldUnitPrice, ErrInvalidPrice)
	}
	p.unitPrice = price
	p.changes.MarkDirty(FieldUnitPrice)
	return nil
}

// SetCurrency updates the currency, upper-casing it.
func (p *Product) SetCurrency(currency string) error {
	if err := p.checkNotDeleted(); err != nil {
		return err
	}
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if !isCurrencyCode(currency) {
		return invalid(FieldCurrency, ErrInvalidCurrency)
	}
	p.currency = currency
	p.changes.MarkDirty(FieldCurrency)
	return nil
}

// SetQuantity updates the stock quantity.
func (p *Product) SetQuantity(quantity decimal.Decimal) error {
	if err := p.checkNotDeleted(); err != nil {
		return err
	}
	if quantity.IsNegative() {
		return invalid(FieldQuantity, ErrInvalidQuantity)
	}
	p.quantity = quantity
	p.changes.MarkDirty(FieldQuantity)
	return nil
}

// SetItemType updates the item type.
func (p *Product) SetItemType(itemType ItemType) error {
	if err := p.checkNotDeleted(); err != nil {
		return err
	}
	t, err := ParseItemType(string(itemType))
	if err != nil {
		return invalid(FieldItemType, err)
	}
	p.itemType = t
	p.changes.MarkDirty(FieldItemType)
	return nil
}

// SetStatus updates the lifecycle status. Deletion goes through Delete.
func (p *Product) SetStatus(status Status) error {
	if err := p.checkNotDeleted(); err != nil {
		return err
	}
	st, err := ParseStatus(string(status))
	if err != nil {
		return invalid(FieldStatus, err)
	}
	if st == StatusDeleted {
		return invalid(FieldStatus, ErrDeleteThroughUpdate)
	}
	p.status = st
	p.changes.MarkDirty(FieldStatus)
	return nil
}

// SetVariant replaces the variant attributes.
func (p *Product) SetVariant(variant Variant) error {
	if err := p.checkNotDeleted(); err != nil {
		return err
	}
	p.variant = variant.Clone()
	p.changes.MarkDirty(FieldVariant)
	return nil
}

// SetProductURL updates the public product page URL.
func (p *Product) SetProductURL(u *string) error {
	return p.setURL(FieldProductURL, &p.productURL, u)
}

// SetWebhookURL updates the URL notified after changes.
func (p *Product) SetWebhookURL(u *string) error {
	return p.setURL(FieldWebhookURL, &p.webhookURL, u)
}

// SetReserveURL updates the URL called to reserve stock.
func (p *Product) SetReserveURL(u *string) error {
	return p.setURL(FieldReserveURL, &p.reserveURL, u)
}

// SetValidationURL updates the URL consulted before purchase.
func (p *Product) SetValidationURL(u *string) error {
	return p.setURL(FieldValidationURL, &p.validationURL, u)
}

// SetRevenueShareID updates the revenue share reference.
func (p *Product) SetRevenueShareID(id *string) error {
	if err := p.checkNotDeleted(); err != nil {
		return err
	}
	id = trimmed(id)
	if id != nil {
		parsed, err := uuid.Parse(*id)
		if err != nil {
			return invalid(FieldRevenueShareID, ErrInvalidRevenueShare)
		}
		canonical := parsed.String()
		id = &canonical
	}
	p.revenueShareID = id
	p.changes.MarkDirty(FieldRevenueShareID)
	return nil
}

// SetTaxID updates the tax reference.
func (p *Product) SetTaxID(taxID *string) error {
	if err := p.checkNotDeleted(); err != nil {
		return err
	}
	p.taxID = trimmed(taxID)
	p.changes.MarkDirty(FieldTaxID)
	return nil
}

// SetMerchant updates the merchant name.
func (p *Product) SetMerchant(merchant *string) error {
	if err := p.checkNotDeleted(); err != nil {
		return err
	}
	p.merchant = trimmed(merchant)
	p.changes.MarkDirty(FieldMerchant)
	return nil
}

// SetPlanDuration updates the SaaS plan duration.
func (p *Product) SetPlanDuration(d *int64) error {
	if err := p.checkNotDeleted(); err != nil {
		return err
	}
	if d != nil && *d < 0 {
		return invalid(FieldPlanDuration, ErrInvalidPlanDuration)
	}
	p.planDuration = d
	p.changes.MarkDirty(FieldPlanDuration)
	return nil
}

// SetBundles replaces the SaaS bundles.
func (p *Product) SetBundles(bundles []Bundle) error {
	if err := p.checkNotDeleted(); err != nil {
		return err
	}
	for _, b := range bundles {
		if err := b.Validate(); err != nil {
			return invalid(FieldBundles, err)
		}
	}
	p.bundles = cloneBundles(bundles)
	p.changes.MarkDirty(FieldBundles)
	return nil
}

// SetExtraData replaces the caller extension data.
func (p *Product) SetExtraData(data map[string]any) error {
	if err := p.checkNotDeleted(); err != nil {
		return err
	}
	p.extraData = cloneMap(data)
	p.changes.MarkDirty(FieldExtraData)
	return nil
}

// SetMetaData replaces the caller metadata.
func (p *Product) SetMetaData(data map[string]any) error {
	if err := p.checkNotDeleted(); err != nil {
		return err
	}
	p.metaData = cloneMap(data)
	p.changes.MarkDirty(FieldMetaData)
	return nil
}

// Delete marks the product deleted (soft delete).
func (p *Product) Delete(now time.Time) error {
	if p.status == StatusDeleted {
		return ErrAlreadyDeleted
	}
	p.status = StatusDeleted
	p.updatedAt = now
	p.changes.MarkDirty(FieldStatus)
	return nil
}

// MarkUpdated stamps the modification time when there are pending changes.
func (p *Product) MarkUpdated(now time.Time) {
	if p.changes.HasChanges() {
		p.updatedAt = now
	}
}

func (p *Product) setURL(field string, dst **string, u *string) error {
	if err := p.checkNotDeleted(); err != nil {
		return err
	}
	u = trimmed(u)
	if u != nil && !isAbsoluteURL(*u) {
		return invalid(field, ErrInvalidURL)
	}
	*dst = u
	p.changes.MarkDirty(field)
	return nil
}

// checkNotDeleted returns an error if the product is deleted.
func (p *Product) checkNotDeleted() error {
	if p.status == StatusDeleted {
		return ErrCannotModifyDeleted
	}
	return nil
}

func isCurrencyCode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func isAbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func cloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
