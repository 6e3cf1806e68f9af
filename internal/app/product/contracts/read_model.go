package contracts

import (
	"context"

	"github.com/light-bringer/product-catalog/internal/app/product/domain"
	"github.com/light-bringer/product-catalog/internal/pkg/query"
)

// ListFilter defines filtering options for listing products.
type ListFilter struct {
	Scope  []query.Condition
	Offset int64
	Limit  int64
}

// ListResult contains paginated product list results.
type ListResult struct {
	Products []domain.Snapshot
	Total    int64
	Offset   int64
	Limit    int64
}

// ReadModel defines the interface for product queries.
// Read models bypass the aggregate and return snapshots directly.
type ReadModel interface {
	// GetProductByID retrieves a product snapshot inside scope.
	GetProductByID(ctx context.Context, productID string, scope []query.Condition) (*domain.Snapshot, error)

	// ListProducts retrieves one page of products, newest first.
	ListProducts(ctx context.Context, filter *ListFilter) (*ListResult, error)
}
