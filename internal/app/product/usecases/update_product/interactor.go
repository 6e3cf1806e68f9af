package update_product

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/light-bringer/product-catalog/internal/app/product/contracts"
	"github.com/light-bringer/product-catalog/internal/app/product/domain"
	"github.com/light-bringer/product-catalog/internal/app/product/scope"
	"github.com/light-bringer/product-catalog/internal/app/product/usecases"
	"github.com/light-bringer/product-catalog/internal/pkg/clock"
)

// Request contains the data to update a product.
// Nil fields are left unchanged; id and ownership cannot be updated.
type Request struct {
	ProductID string
	Filter    scope.Filter

	Name           *string
	Description    *string
	UnitPrice      *decimal.Decimal
	Currency       *string
	Quantity       *decimal.Decimal
	ItemType       *domain.ItemType
	Status         *domain.Status
	Variant        domain.Variant
	ProductURL     *string
	WebhookURL     *string
	ReserveURL     *string
	ValidationURL  *string
	RevenueShareID *string
	TaxID          *string
	Merchant       *string
	PlanDuration   *int64
	Bundles        *[]domain.Bundle
	ExtraData      map[string]any
	MetaData       map[string]any
}

// Interactor handles the update product use case.
type Interactor struct {
	repo     contracts.ProductRepository
	notifier *usecases.WriteNotifier
	clock    clock.Clock
	scope    scope.Options
}

// NewInteractor creates a new update product interactor.
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

// Execute applies the partial update and returns the resulting product.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*domain.Snapshot, error) {
	// 1. Load aggregate inside the caller's scope; deleted products are not updatable
	conds, err := scope.Owned(req.Filter, i.scope)
	if err != nil {
		return nil, err
	}
	product, err := i.repo.GetByID(ctx, req.ProductID, conds)
	if err != nil {
		return nil, err
	}

	// 2. Call domain methods
	if err := apply(product, req); err != nil {
		return nil, err
	}

	if !product.Changes().HasChanges() {
		s := product.Snapshot()
		return &s, nil
	}
	product.MarkUpdated(i.clock.Now())

	// 3. Persist dirty fields
	if err := i.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	// 4. Notify after commit
	i.notifier.After(ctx, product, "update")

	s := product.Snapshot()
	return &s, nil
}

func apply(p *domain.Product, req *Request) error {
	var steps []func() error

	if req.Name != nil {
		steps = append(steps, func() error { return p.SetName(*req.Name) })
	}
	if req.Description != nil {
		steps = append(steps, func() error { return p.SetDescription(req.Description) })
	}
	if req.UnitPrice != nil {
		steps = append(steps, func() error { return p.SetUnitPrice(*req.UnitPrice) })
	}
	if req.Currency != nil {
		steps = append(steps, func() error { return p.SetCurrency(*req.Currency) })
	}
	if req.Quantity != nil {
		steps = append(steps, func() error { return p.SetQuantity(*req.Quantity) })
	}
	if req.ItemType != nil {
		steps = append(steps, func() error { return p.SetItemType(*req.ItemType) })
	}
	if req.Status != nil {
		steps = append(steps, func() error { return p.SetStatus(*req.Status) })
	}
	if req.Variant != nil {
		steps = append(steps, func() error { return p.SetVariant(req.Variant) })
	}
	if req.ProductURL != nil {
		steps = append(steps, func() error { return p.SetProductURL(req.ProductURL) })
	}
	if req.WebhookURL != nil {
		steps = append(steps, func() error { return p.SetWebhookURL(req.WebhookURL) })
	}
	if req.ReserveURL != nil {
		steps = append(steps, func() error { return p.SetReserveURL(req.ReserveURL) })
	}
	if req.ValidationURL != nil {
		steps = append(steps, func() error { return p.SetValidationURL(req.ValidationURL) })
	}
	if req.RevenueShareID != nil {
		steps = append(steps, func() error { return p.SetRevenueShareID(req.RevenueShareID) })
	}
	if req.TaxID != nil {
		steps = append(steps, func() error { return p.SetTaxID(req.TaxID) })
	}
	if req.Merchant != nil {
		steps = append(steps, func() error { return p.SetMerchant(req.Merchant) })
	}
	if req.PlanDuration != nil {
		steps = append(steps, func() error { return p.SetPlanDuration(req.PlanDuration) })
	}
	if req.Bundles != nil {
		steps = append(steps, func() error { return p.SetBundles(*req.Bundles) })
	}
	if req.ExtraData != nil {
		steps = append(steps, func() error { return p.SetExtraData(req.ExtraData) })
	}
	if req.MetaData != nil {
		steps = append(steps, func() error { return p.SetMetaData(req.MetaData) })
	}

	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
