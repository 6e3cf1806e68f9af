package delete_product

import (
	"context"
	"fmt"

	"github.com/light-bringer/product-catalog/internal/app/product/contracts"
	"github.com/light-bringer/product-catalog/internal/app/product/domain"
	"github.com/light-bringer/product-catalog/internal/app/product/scope"
	"github.com/light-bringer/product-catalog/internal/app/product/usecases"
	"github.com/light-bringer/product-catalog/internal/pkg/clock"
)

// Request contains the product to delete and the caller's scope.
type Request struct {
	ProductID string
	Filter    scope.Filter
}

// Interactor handles the soft delete use case.
type Interactor struct {
	repo     contracts.ProductRepository
	notifier *usecases.WriteNotifier
	clock    clock.Clock
	scope    scope.Options
}

// NewInteractor creates a new delete product interactor.
func NewInteractor(
	repo contracts.ProductRepository,
	notifier *usecases.WriteNotifier,
	clock clock.Clock,
	opts scope.Options,
) *Interactor {
	return &Interactor{
		repo:     repo,
		notifier: notifier,
		clock:    clock,
		scope:    opts,
	}
}

// Execute marks the product deleted and returns its final state.
// Deleting an already deleted product reports it as not found.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Snapshot, error) {
	conds, err := scope.Owned(req.Filter, i.scope)
	if err != nil {
		return nil, err
	}
	product, err := i.repo.GetByID(ctx, req.ProductID, conds)
	if err != nil {
		return nil, err
	}

	if err := product.Delete(i.clock.Now()); err != nil {
		return nil, err
	}

	if err := i.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	i.notifier.After(ctx, product, "delete")

	s := product.Snapshot()
	return &s, nil
}
