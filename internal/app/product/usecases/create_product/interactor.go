package create_product

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/light-bringer/product-catalog/internal/app/product/contracts"
	"github.com/light-bringer/product-catalog/internal/app/product/domain"
	"github.com/light-bringer/product-catalog/internal/app/product/usecases"
	"github.com/light-bringer/product-catalog/internal/pkg/clock"
	"github.com/light-bringer/product-catalog/internal/pkg/ownership"
)

// Request contains the data needed to create a product.
type Request struct {
	// Owner is the authenticated caller; it is never read from the payload.
	Owner ownership.Owner
	Input domain.NewProductInput
}

// Interactor handles the create product use case.
type Interactor struct {
	repo     contracts.ProductRepository
	notifier *usecases.WriteNotifier
	clock    clock.Clock
	defaults domain.Defaults
	axis     ownership.Axis
}

// NewInteractor creates a new create product interactor.
func NewInteractor(
	repo contracts.ProductRepository,
	notifier *usecases.WriteNotifier,
	clock clock.Clock,
	defaults domain.Defaults,
	axis ownership.Axis,
) *Interactor {
	return &Interactor{
		repo:     repo,
		notifier: notifier,
		clock:    clock,
		defaults: defaults,
		axis:     axis,
	}
}

// Execute creates a new product owned by the caller.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Snapshot, error) {
	// 1. Stamp ownership from the caller, keeping only the active axis
	if !req.Owner.Complete(i.axis) {
		return nil, domain.ErrOwnershipRequired
	}
	owner := req.Owner.Project(i.axis)

	// 2. Create domain aggregate (new product)
	product, err := domain.NewProduct(uuid.New().String(), owner, req.Input, i.defaults, i.clock)
	if err != nil {
		return nil, err
	}

	// 3. Persist
	if err := i.repo.Insert(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	// 4. Notify after commit
	i.notifier.After(ctx, product, "create")

	s := product.Snapshot()
	return &s, nil
}
