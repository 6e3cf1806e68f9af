package repo

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/product-catalog/internal/app/product/contracts"
	"github.com/light-bringer/product-catalog/internal/app/product/domain"
	"github.com/light-bringer/product-catalog/internal/models/m_product"
	"github.com/light-bringer/product-catalog/internal/pkg/clock"
	"github.com/light-bringer/product-catalog/internal/pkg/committer"
	"github.com/light-bringer/product-catalog/internal/pkg/query"
)

// ProductRepo implements ProductRepository for Spanner.
type ProductRepo struct {
	client    *spanner.Client
	committer *committer.Committer
	model     *m_product.Model
	clock     clock.Clock
}

var _ contracts.ProductRepository = (*ProductRepo)(nil)

// NewProductRepo creates a new ProductRepo.
func NewProductRepo(client *spanner.Client, c *committer.Committer, clk clock.Clock) *ProductRepo {
	return &ProductRepo{
		client:    client,
		committer: c,
		model:     m_product.NewModel(),
		clock:     clk,
	}
}

// Insert stores a new product.
func (r *ProductRepo) Insert(ctx context.Context, product *domain.Product) error {
	mut, err := r.InsertMut(product)
	if err != nil {
		return err
	}

	plan := committer.NewPlan()
	plan.Add(mut)
	if err := r.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}

	product.Changes().Clear()
	return nil
}

// Update writes the product's dirty fields.
func (r *ProductRepo) Update(ctx context.Context, product *domain.Product) error {
	mut, err := r.UpdateMut(product)
	if err != nil {
		return err
	}

	plan := committer.NewPlan()
	plan.Add(mut)
	if plan.IsEmpty() {
		return nil // No changes
	}

	if err := r.committer.ApplyIf(ctx, plan, liveProduct(product.ID())); err != nil {
		if errors.Is(err, domain.ErrProductNotFound) || spanner.ErrCode(err) == codes.NotFound {
			return domain.ErrProductNotFound
		}
		return fmt.Errorf("failed to update product: %w", err)
	}

	product.Changes().Clear()
	return nil
}

// liveProduct rejects the write when the row is gone or was soft-deleted
// since it was loaded.
func liveProduct(productID string) committer.Guard {
	return func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		row, err := txn.ReadRow(ctx, m_product.TableName, spanner.Key{productID}, []string{m_product.Status})
		if err != nil {
			if spanner.ErrCode(err) == codes.NotFound {
				return domain.ErrProductNotFound
			}
			return err
		}
		var status string
		if err := row.Column(0, &status); err != nil {
			return err
		}
		if domain.Status(status) == domain.StatusDeleted {
			return domain.ErrProductNotFound
		}
		return nil
	}
}

// InsertMut creates a mutation for inserting a new product.
func (r *ProductRepo) InsertMut(product *domain.Product) (*spanner.Mutation, error) {
	data, err := snapshotToData(product.Snapshot())
	if err != nil {
		return nil, err
	}
	return r.model.InsertMut(data), nil
}

// UpdateMut creates a mutation for updating a product (only dirty fields).
func (r *ProductRepo) UpdateMut(product *domain.Product) (*spanner.Mutation, error) {
	changes := product.Changes()
	if !changes.HasChanges() {
		return nil, nil
	}

	data, err := snapshotToData(product.Snapshot())
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	for _, field := range changes.DirtyFields() {
		if v, ok := columnValue(data, field); ok {
			updates[field] = v
		}
	}
	if len(updates) == 0 {
		return nil, nil
	}

	// Always update the updated_at timestamp when any field changes
	updates[m_product.UpdatedAt] = data.UpdatedAt

	return r.model.UpdateMut(product.ID(), updates), nil
}

// GetByID retrieves a product by ID inside scope, reconstructing the domain aggregate.
func (r *ProductRepo) GetByID(ctx context.Context, productID string, scope []query.Condition) (*domain.Product, error) {
	s, err := getSnapshot(ctx, r.client, productID, scope)
	if err != nil {
		return nil, err
	}
	// Use injected clock for reconstructed products
	return domain.ReconstructProduct(*s, r.clock), nil
}

// getSnapshot reads one row by key plus scope.
func getSnapshot(ctx context.Context, client *spanner.Client, productID string, scope []query.Condition) (*domain.Snapshot, error) {
	stmt := query.From(m_product.TableName).
		Select(m_product.Columns...).
		Where(query.Eq(m_product.ProductID, productID)).
		WhereAll(scope).
		Limit(1).
		Build()

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err == iterator.Done {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}

	s, err := dataToSnapshot(&data)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
