package reserve_product

import (
	"context"

	"go.uber.org/zap"

	"github.com/light-bringer/product-catalog/internal/app/product/contracts"
	"github.com/light-bringer/product-catalog/internal/app/product/domain"
	"github.com/light-bringer/product-catalog/internal/app/product/scope"
	"github.com/light-bringer/product-catalog/internal/pkg/outbound"
)

// Request names the product to reserve.
type Request struct {
	ProductID string
	Filter    scope.Filter
}

// Result reports each step of the reservation flow.
type Result struct {
	Product      domain.Snapshot  `json:"product"`
	Valid        bool             `json:"valid"`
	Reservation  outbound.Outcome `json:"reservation"`
	Notification outbound.Outcome `json:"notification"`
}

// Interactor composes validate, reserve and webhook, strictly in that order.
type Interactor struct {
	repo    contracts.ProductRepository
	fetcher domain.Fetcher
	poster  domain.Poster
	scope   scope.Options
	logger  *zap.Logger
}

// NewInteractor creates a new reserve product interactor.
func NewInteractor(
	repo contracts.ProductRepository,
	fetcher domain.Fetcher,
	poster domain.Poster,
	opts scope.Options,
	logger *zap.Logger,
) *Interactor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Interactor{
		repo:    repo,
		fetcher: fetcher,
		poster:  poster,
		scope:   opts,
		logger:  logger,
	}
}

// Execute runs the flow.
//
// A validator that cannot be reached fails the flow with
// domain.ErrUpstreamUnavailable. A validator that says no stops the flow
// with Valid false and nothing reserved. Reservation and webhook failures
// are reported in the result. The webhook is skipped when the reservation
// failed, since there is nothing new to announce.
func (i *Interactor) Execute(ctx context.Context, req *Request) (*Result, error) {
	conds, err := scope.Owned(req.Filter, i.scope)
	if err != nil {
		return nil, err
	}
	product, err := i.repo.GetByID(ctx, req.ProductID, conds)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Product:      product.Snapshot(),
		Reservation:  outbound.Skipped(),
		Notification: outbound.Skipped(),
	}

	valid, err := product.Validate(ctx, i.fetcher)
	if err != nil {
		i.logger.Warn("product validation unavailable",
			zap.String("product_id", product.ID()),
			zap.Error(err),
		)
		return nil, err
	}
	res.Valid = valid
	if !valid {
		return res, nil
	}

	res.Reservation = product.Reserve(ctx, i.poster)
	if res.Reservation.Failed() {
		i.logger.Warn("product reservation failed",
			zap.String("product_id", product.ID()),
			zap.String("outcome", string(res.Reservation.Kind)),
			zap.Int("status", res.Reservation.StatusCode),
			zap.String("error", res.Reservation.Error),
		)
		return res, nil
	}

	res.Notification = product.Notify(ctx, i.poster)
	return res, nil
}
