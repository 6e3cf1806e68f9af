package list_products

import (
	"context"

	"github.com/light-bringer/product-catalog/internal/app/product/contracts"
	"github.com/light-bringer/product-catalog/internal/app/product/scope"
)

// Request contains filtering and pagination parameters.
// Offset and Limit are taken as given; the caller applies its paging policy.
type Request struct {
	Filter scope.Filter
	Offset int64
	Limit  int64
}

// Query handles the list products query use case.
type Query struct {
	readModel contracts.ReadModel
	scope     scope.Options
}

// NewQuery creates a new list products query.
func NewQuery(readModel contracts.ReadModel, opts scope.Options) *Query {
	return &Query{
		readModel: readModel,
		scope:     opts,
	}
}

// Execute retrieves one page of products in the caller's scope.
func (q *Query) Execute(ctx context.Context, req *Request) (*contracts.ListResult, error) {
	return q.readModel.ListProducts(ctx, &contracts.ListFilter{
		Scope:  scope.Visible(req.Filter, q.scope),
		Offset: req.Offset,
		Limit:  req.Limit,
	})
}
