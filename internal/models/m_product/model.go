package m_product

import (
	"sort"

	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the products table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a Spanner mutation for inserting a product.
// Timestamps come from the data so the returned product and the stored row agree.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(TableName, Columns, []interface{}{
		data.ProductID,
		data.TenantID,
		data.BusinessID,
		data.UserID,
		data.Name,
		data.Description,
		&data.UnitPrice,
		data.Currency,
		&data.Quantity,
		data.ItemType,
		data.Status,
		data.Variant,
		data.ProductURL,
		data.WebhookURL,
		data.ReserveURL,
		data.ValidationURL,
		data.RevenueShareID,
		data.TaxID,
		data.Merchant,
		data.PlanDuration,
		data.Bundles,
		data.ExtraData,
		data.MetaData,
		data.CreatedAt,
		data.UpdatedAt,
	})
}

// UpdateMut creates a Spanner mutation for updating specific product fields.
// The updates map should contain column names as keys and new values.
// Columns are written in lexical order so mutations are deterministic.
func (m *Model) UpdateMut(productID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}

	names := make([]string, 0, len(updates))
	for col := range updates {
		names = append(names, col)
	}
	sort.Strings(names)

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)

	// Add product ID first
	columns = append(columns, ProductID)
	values = append(values, productID)

	for _, col := range names {
		columns = append(columns, col)
		values = append(values, updates[col])
	}

	return spanner.Update(TableName, columns, values)
}
