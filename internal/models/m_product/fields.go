package m_product

// Field name constants for the products table.
// These provide type-safe field references and prevent typos.
const (
	TableName = "products"

	ProductID      = "product_id"
	TenantID       = "tenant_id"
	BusinessID     = "business_id"
	UserID         = "user_id"
	Name           = "name"
	Description    = "description"
	UnitPrice      = "unit_price"
	Currency       = "currency"
	Quantity       = "quantity"
	ItemType       = "item_type"
	Status         = "status"
	Variant        = "variant"
	ProductURL     = "product_url"
	WebhookURL     = "webhook_url"
	ReserveURL     = "reserve_url"
	ValidationURL  = "validation_url"
	RevenueShareID = "revenue_share_id"
	TaxID          = "tax_id"
	Merchant       = "merchant"
	PlanDuration   = "plan_duration"
	Bundles        = "bundles"
	ExtraData      = "extra_data"
	MetaData       = "meta_data"
	CreatedAt      = "created_at"
	UpdatedAt      = "updated_at"
)

// Columns lists every column of the products table in schema order.
var Columns = []string{
	ProductID,
	TenantID,
	BusinessID,
	UserID,
	Name,
	Description,
	UnitPrice,
	Currency,
	Quantity,
	ItemType,
	Status,
	Variant,
	ProductURL,
	WebhookURL,
	ReserveURL,
	ValidationURL,
	RevenueShareID,
	TaxID,
	Merchant,
	PlanDuration,
	Bundles,
	ExtraData,
	MetaData,
	CreatedAt,
	UpdatedAt,
}
