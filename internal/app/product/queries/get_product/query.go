package get_product

import (
	"context"

	"github.com/light-bringer/product-catalog/internal/app/product/contracts"
	"github.com/light-bringer/product-catalog/internal/app/product/domain"
	"github.com/light-bringer/product-catalog/internal/app/product/scope"
)

// Request contains the product ID to retrieve and the caller's scope.
type Request struct {
	ProductID string
	Filter    scope.Filter
}

// Query handles the get product query use case.
type Query struct {
	readModel contracts.ReadModel
	scope     scope.Options
}

// NewQuery creates a new get product query.
func NewQuery(readModel contracts.ReadModel, opts scope.Options) *Query {
	return &Query{
		readModel: readModel,
		scope:     opts,
	}
}

// Execute retrieves a product by ID. Products outside the scope are not found.
func (q *Query) Execute(ctx context.Context, req *Request) (*domain.Snapshot, error) {
	return q.readModel.GetProductByID(ctx, req.ProductID, scope.Visible(req.Filter, q.scope))
}
