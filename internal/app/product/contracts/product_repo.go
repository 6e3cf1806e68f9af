package contracts

import (
	"context"

	"github.com/light-bringer/product-catalog/internal/app/product/domain"
	"github.com/light-bringer/product-catalog/internal/pkg/query"
)

// ProductRepository defines the interface for product persistence.
// Products are never removed; deletion is a status change written by Update.
type ProductRepository interface {
	// Insert stores a new product.
	Insert(ctx context.Context, product *domain.Product) error

	// Update writes the product's dirty fields and clears its change tracker.
	// A product without changes is a no-op.
	Update(ctx context.Context, product *domain.Product) error

	// GetByID loads a product that matches scope, reconstructing the aggregate.
	// Products outside scope are reported as domain.ErrProductNotFound.
	GetByID(ctx context.Context, productID string, scope []query.Condition) (*domain.Product, error)
}
