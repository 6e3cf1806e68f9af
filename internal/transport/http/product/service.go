package product

import (
	"context"
	"strconv"

	"github.com/light-bringer/product-catalog/internal/app/product/domain"
	"github.com/light-bringer/product-catalog/internal/app/product/queries/get_product"
	"github.com/light-bringer/product-catalog/internal/app/product/queries/list_products"
	"github.com/light-bringer/product-catalog/internal/app/product/scope"
	"github.com/light-bringer/product-catalog/internal/app/product/usecases/create_product"
	"github.com/light-bringer/product-catalog/internal/app/product/usecases/delete_product"
	"github.com/light-bringer/product-catalog/internal/app/product/usecases/reserve_product"
	"github.com/light-bringer/product-catalog/internal/app/product/usecases/update_product"
	"github.com/light-bringer/product-catalog/internal/pkg/auth"
	"github.com/light-bringer/product-catalog/internal/transport/http/crud"
)

// Service adapts the product use cases and queries to crud.Service. It is a
// thin coordinator: it maps payloads and derives the caller's scope.
type Service struct {
	// Commands
	createProduct  *create_product.Interactor
	updateProduct  *update_product.Interactor
	deleteProduct  *delete_product.Interactor
	reserveProduct *reserve_product.Interactor

	// Queries
	getProduct   *get_product.Query
	listProducts *list_products.Query
}

var _ crud.Service[domain.Snapshot, CreatePayload, UpdatePayload] = (*Service)(nil)

// NewService creates a new product service adapter.
func NewService(
	createProduct *create_product.Interactor,
	updateProduct *update_product.Interactor,
	deleteProduct *delete_product.Interactor,
	reserveProduct *reserve_product.Interactor,
	getProduct *get_product.Query,
	listProducts *list_products.Query,
) *Service {
	return &Service{
		createProduct:  createProduct,
		updateProduct:  updateProduct,
		deleteProduct:  deleteProduct,
		reserveProduct: reserveProduct,
		getProduct:     getProduct,
		listProducts:   listProducts,
	}
}

func (s *Service) Get(ctx context.Context, iss auth.Issuer, id string) (domain.Snapshot, error) {
	p, err := s.getProduct.Execute(ctx, &get_product.Request{
		ProductID: id,
		Filter:    scope.FromOwner(iss.Owner(), false),
	})
	if err != nil {
		return domain.Snapshot{}, err
	}
	return *p, nil
}

func (s *Service) List(ctx context.Context, iss auth.Issuer, q crud.ListQuery) (crud.Page[domain.Snapshot], error) {
	includeDeleted := false
	if v := q.Params.Get("is_deleted"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return crud.Page[domain.Snapshot]{}, crud.Validation("invalid query", crud.Detail{
				Field:  "is_deleted",
				Reason: "must be a boolean",
			})
		}
		// Deleted products are never part of the public catalog.
		includeDeleted = b && !iss.IsAnonymous()
	}

	res, err := s.listProducts.Execute(ctx, &list_products.Request{
		Filter: scope.FromOwner(iss.Owner(), includeDeleted),
		Offset: int64(q.Offset),
		Limit:  int64(q.Limit),
	})
	if err != nil {
		return crud.Page[domain.Snapshot]{}, err
	}
	return crud.Page[domain.Snapshot]{
		Items:  res.Products,
		Total:  res.Total,
		Offset: q.Offset,
		Limit:  q.Limit,
	}, nil
}

func (s *Service) Create(ctx context.Context, iss auth.Issuer, payload *CreatePayload) (domain.Snapshot, error) {
	in, err := payload.toInput()
	if err != nil {
		return domain.Snapshot{}, err
	}
	p, err := s.createProduct.Execute(ctx, &create_product.Request{
		Owner: iss.Owner(),
		Input: in,
	})
	if err != nil {
		return domain.Snapshot{}, err
	}
	return *p, nil
}

func (s *Service) Update(ctx context.Context, iss auth.Issuer, id string, payload *UpdatePayload) (domain.Snapshot, error) {
	req, err := payload.toRequest(id)
	if err != nil {
		return domain.Snapshot{}, err
	}
	req.Filter = scope.FromOwner(iss.Owner(), false)

	p, err := s.updateProduct.Execute(ctx, req)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return *p, nil
}

func (s *Service) Delete(ctx context.Context, iss auth.Issuer, id string) (domain.Snapshot, error) {
	p, err := s.deleteProduct.Execute(ctx, &delete_product.Request{
		ProductID: id,
		Filter:    scope.FromOwner(iss.Owner(), false),
	})
	if err != nil {
		return domain.Snapshot{}, err
	}
	return *p, nil
}

// Reserve runs the validate, reserve and webhook flow for one product.
func (s *Service) Reserve(ctx context.Context, iss auth.Issuer, id string) (*reserve_product.Result, error) {
	return s.reserveProduct.Execute(ctx, &reserve_product.Request{
		ProductID: id,
		Filter:    scope.FromOwner(iss.Owner(), false),
	})
}
