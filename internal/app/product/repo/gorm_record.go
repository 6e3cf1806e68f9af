package repo

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/light-bringer/product-catalog/internal/app/product/domain"
	"github.com/light-bringer/product-catalog/internal/models/m_product"
)

// productRecord is the GORM model of the products table. Decimals are stored
// as TEXT so SQLite never coerces them to REAL.
type productRecord struct {
	ProductID      string          `gorm:"column:product_id;primaryKey;size:36"`
	TenantID       string          `gorm:"column:tenant_id;size:64;not null;index:idx_products_owner,priority:1"`
	BusinessID     *string         `gorm:"column:business_id;size:64;index:idx_products_owner,priority:2"`
	UserID         *string         `gorm:"column:user_id;size:64;index"`
	Name           string          `gorm:"column:name;not null"`
	Description    *string         `gorm:"column:description"`
	UnitPrice      decimal.Decimal `gorm:"column:unit_price;type:text;not null"`
	Currency       string          `gorm:"column:currency;size:3;not null"`
	Quantity       decimal.Decimal `gorm:"column:quantity;type:text;not null"`
	ItemType       string          `gorm:"column:item_type;size:32;not null"`
	Status         string          `gorm:"column:status;size:16;not null;index"`
	Variant        datatypes.JSON  `gorm:"column:variant"`
	ProductURL     *string         `gorm:"column:product_url"`
	WebhookURL     *string         `gorm:"column:webhook_url"`
	ReserveURL     *string         `gorm:"column:reserve_url"`
	ValidationURL  *string         `gorm:"column:validation_url"`
	RevenueShareID *string         `gorm:"column:revenue_share_id;size:36"`
	TaxID          *string         `gorm:"column:tax_id"`
	Merchant       *string         `gorm:"column:merchant"`
	PlanDuration   *int64          `gorm:"column:plan_duration"`
	Bundles        datatypes.JSON  `gorm:"column:bundles"`
	ExtraData      datatypes.JSON  `gorm:"column:extra_data"`
	MetaData       datatypes.JSON  `gorm:"column:meta_data"`
	CreatedAt      time.Time       `gorm:"column:created_at;not null;index;autoCreateTime:false"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;not null;autoUpdateTime:false"`
}

// TableName returns the table name for the product record.
func (productRecord) TableName() string {
	return m_product.TableName
}

// AutoMigrate creates or updates the products table for GORM-backed stores.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&productRecord{}); err != nil {
		return fmt.Errorf("failed to migrate products table: %w", err)
	}
	return nil
}

func snapshotToRecord(s domain.Snapshot) (*productRecord, error) {
	rec := &productRecord{
		ProductID:      s.ID,
		TenantID:       s.TenantID,
		BusinessID:     optional(s.BusinessID),
		UserID:         optional(s.UserID),
		Name:           s.Name,
		Description:    s.Description,
		UnitPrice:      s.UnitPrice,
		Currency:       s.Currency,
		Quantity:       s.Quantity,
		ItemType:       string(s.ItemType),
		Status:         string(s.Status),
		ProductURL:     s.ProductURL,
		WebhookURL:     s.WebhookURL,
		ReserveURL:     s.ReserveURL,
		ValidationURL:  s.ValidationURL,
		RevenueShareID: s.RevenueShareID,
		TaxID:          s.TaxID,
		Merchant:       s.Merchant,
		PlanDuration:   s.PlanDuration,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}

	var err error
	if rec.Variant, err = jsonColumn(len(s.Variant) > 0, s.Variant); err != nil {
		return nil, err
	}
	if rec.Bundles, err = jsonColumn(len(s.Bundles) > 0, s.Bundles); err != nil {
		return nil, err
	}
	if rec.ExtraData, err = jsonColumn(s.ExtraData != nil, s.ExtraData); err != nil {
		return nil, err
	}
	if rec.MetaData, err = jsonColumn(s.MetaData != nil, s.MetaData); err != nil {
		return nil, err
	}
	return rec, nil
}

func recordToSnapshot(rec *productRecord) (domain.Snapshot, error) {
	s := domain.Snapshot{
		ID:             rec.ProductID,
		TenantID:       rec.TenantID,
		BusinessID:     deref(rec.BusinessID),
		UserID:         deref(rec.UserID),
		Name:           rec.Name,
		Description:    rec.Description,
		UnitPrice:      rec.UnitPrice,
		Currency:       rec.Currency,
		Quantity:       rec.Quantity,
		ItemType:       domain.ItemType(rec.ItemType),
		Status:         domain.Status(rec.Status),
		ProductURL:     rec.ProductURL,
		WebhookURL:     rec.WebhookURL,
		ReserveURL:     rec.ReserveURL,
		ValidationURL:  rec.ValidationURL,
		RevenueShareID: rec.RevenueShareID,
		TaxID:          rec.TaxID,
		Merchant:       rec.Merchant,
		PlanDuration:   rec.PlanDuration,
		CreatedAt:      rec.CreatedAt,
		UpdatedAt:      rec.UpdatedAt,
	}

	columns := []struct {
		name string
		raw  datatypes.JSON
		out  any
	}{
		{m_product.Variant, rec.Variant, &s.Variant},
		{m_product.Bundles, rec.Bundles, &s.Bundles},
		{m_product.ExtraData, rec.ExtraData, &s.ExtraData},
		{m_product.MetaData, rec.MetaData, &s.MetaData},
	}
	for _, c := range columns {
		if len(c.raw) == 0 {
			continue
		}
		if err := decodeJSON(c.raw, c.out); err != nil {
			return domain.Snapshot{}, fmt.Errorf("invalid %s: %w", c.name, err)
		}
	}
	return s, nil
}

func jsonColumn(valid bool, v any) (datatypes.JSON, error) {
	if !valid {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode json column: %w", err)
	}
	return datatypes.JSON(raw), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
