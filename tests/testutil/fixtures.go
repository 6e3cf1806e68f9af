package testutil

import (
	"context"
	"math/big"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/product-catalog/internal/models/m_product"
)

// CreateTestProduct creates a test product row directly in Spanner and
// returns its id.
func CreateTestProduct(t *testing.T, client *spanner.Client, tenantID, businessID, name, status string) string {
	t.Helper()

	productID := uuid.New().String()
	now := time.Now().UTC()

	data := &m_product.Data{
		ProductID:  productID,
		TenantID:   tenantID,
		BusinessID: spanner.NullString{StringVal: businessID, Valid: businessID != ""},
		Name:       name,
		Currency:   "USD",
		ItemType:   "retail_product",
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	data.UnitPrice.Set(big.NewRat(1999, 100))
	data.Quantity.SetInt64(1)

	_, err := client.Apply(context.Background(), []*spanner.Mutation{m_product.NewModel().InsertMut(data)})
	require.NoError(t, err, "failed to create test product")

	return productID
}

// GetProductByID reads a product row for verification.
func GetProductByID(t *testing.T, client *spanner.Client, productID string) *m_product.Data {
	t.Helper()

	row, err := client.Single().ReadRow(context.Background(), m_product.TableName, spanner.Key{productID}, m_product.Columns)
	require.NoError(t, err, "failed to get product by id")

	var data m_product.Data
	require.NoError(t, row.ToStruct(&data), "failed to parse product data")
	return &data
}
