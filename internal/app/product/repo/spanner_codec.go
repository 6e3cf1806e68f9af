package repo

import (
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/product-catalog/internal/app/product/domain"
	"github.com/light-bringer/product-catalog/internal/models/m_product"
	"github.com/light-bringer/product-catalog/internal/pkg/decimalx"
)

// snapshotToData converts a product snapshot to database Data.
func snapshotToData(s domain.Snapshot) (*m_product.Data, error) {
	if err := decimalx.CheckNumeric(s.UnitPrice); err != nil {
		return nil, fmt.Errorf("unit price: %w", err)
	}
	if err := decimalx.CheckNumeric(s.Quantity); err != nil {
		return nil, fmt.Errorf("quantity: %w", err)
	}

	data := &m_product.Data{
		ProductID:      s.ID,
		TenantID:       s.TenantID,
		BusinessID:     nullString(&s.BusinessID),
		UserID:         nullString(&s.UserID),
		Name:           s.Name,
		Description:    nullString(s.Description),
		Currency:       s.Currency,
		ItemType:       string(s.ItemType),
		Status:         string(s.Status),
		Variant:        nullJSON(len(s.Variant) > 0, s.Variant),
		ProductURL:     nullString(s.ProductURL),
		WebhookURL:     nullString(s.WebhookURL),
		ReserveURL:     nullString(s.ReserveURL),
		ValidationURL:  nullString(s.ValidationURL),
		RevenueShareID: nullString(s.RevenueShareID),
		TaxID:          nullString(s.TaxID),
		Merchant:       nullString(s.Merchant),
		Bundles:        nullJSON(len(s.Bundles) > 0, s.Bundles),
		ExtraData:      nullJSON(s.ExtraData != nil, s.ExtraData),
		MetaData:       nullJSON(s.MetaData != nil, s.MetaData),
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
	data.UnitPrice.Set(decimalx.Rat(s.UnitPrice))
	data.Quantity.Set(decimalx.Rat(s.Quantity))
	if s.PlanDuration != nil {
		data.PlanDuration = spanner.NullInt64{Int64: *s.PlanDuration, Valid: true}
	}
	return data, nil
}

// dataToSnapshot converts database Data to a product snapshot.
func dataToSnapshot(data *m_product.Data) (domain.Snapshot, error) {
	unitPrice, err := decimalx.FromRat(&data.UnitPrice)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("invalid unit price: %w", err)
	}
	quantity, err := decimalx.FromRat(&data.Quantity)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("invalid quantity: %w", err)
	}

	s := domain.Snapshot{
		ID:             data.ProductID,
		TenantID:       data.TenantID,
		BusinessID:     data.BusinessID.StringVal,
		UserID:         data.UserID.StringVal,
		Name:           data.Name,
		Description:    stringPtr(data.Description),
		UnitPrice:      unitPrice,
		Currency:       data.Currency,
		Quantity:       quantity,
		ItemType:       domain.ItemType(data.ItemType),
		Status:         domain.Status(data.Status),
		ProductURL:     stringPtr(data.ProductURL),
		WebhookURL:     stringPtr(data.WebhookURL),
		ReserveURL:     stringPtr(data.ReserveURL),
		ValidationURL:  stringPtr(data.ValidationURL),
		RevenueShareID: stringPtr(data.RevenueShareID),
		TaxID:          stringPtr(data.TaxID),
		Merchant:       stringPtr(data.Merchant),
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
	if data.PlanDuration.Valid {
		d := data.PlanDuration.Int64
		s.PlanDuration = &d
	}

	columns := []struct {
		name string
		col  spanner.NullJSON
		out  any
	}{
		{m_product.Variant, data.Variant, &s.Variant},
		{m_product.Bundles, data.Bundles, &s.Bundles},
		{m_product.ExtraData, data.ExtraData, &s.ExtraData},
		{m_product.MetaData, data.MetaData, &s.MetaData},
	}
	for _, c := range columns {
		if !c.col.Valid {
			continue
		}
		if err := reencodeJSON(c.col.Value, c.out); err != nil {
			return domain.Snapshot{}, fmt.Errorf("invalid %s: %w", c.name, err)
		}
	}

	return s, nil
}

// columnValue returns the value written for a product column.
func columnValue(data *m_product.Data, column string) (interface{}, bool) {
	switch column {
	case m_product.Name:
		return data.Name, true
	case m_product.Description:
		return data.Description, true
	case m_product.UnitPrice:
		return &data.UnitPrice, true
	case m_product.Currency:
		return data.Currency, true
	case m_product.Quantity:
		return &data.Quantity, true
	case m_product.ItemType:
		return data.ItemType, true
	case m_product.Status:
		return data.Status, true
	case m_product.Variant:
		return data.Variant, true
	case m_product.ProductURL:
		return data.ProductURL, true
	case m_product.WebhookURL:
		return data.WebhookURL, true
	case m_product.ReserveURL:
		return data.ReserveURL, true
	case m_product.ValidationURL:
		return data.ValidationURL, true
	case m_product.RevenueShareID:
		return data.RevenueShareID, true
	case m_product.TaxID:
		return data.TaxID, true
	case m_product.Merchant:
		return data.Merchant, true
	case m_product.PlanDuration:
		return data.PlanDuration, true
	case m_product.Bundles:
		return data.Bundles, true
	case m_product.ExtraData:
		return data.ExtraData, true
	case m_product.MetaData:
		return data.MetaData, true
	case m_product.UpdatedAt:
		return data.UpdatedAt, true
	}
	return nil, false
}

func nullString(s *string) spanner.NullString {
	if s == nil || *s == "" {
		return spanner.NullString{}
	}
	return spanner.NullString{StringVal: *s, Valid: true}
}

func stringPtr(ns spanner.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.StringVal
	return &v
}

func nullJSON(valid bool, v interface{}) spanner.NullJSON {
	if !valid {
		return spanner.NullJSON{}
	}
	return spanner.NullJSON{Value: v, Valid: true}
}
