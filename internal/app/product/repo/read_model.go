package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/light-bringer/product-catalog/internal/app/product/contracts"
	"github.com/light-bringer/product-catalog/internal/app/product/domain"
	"github.com/light-bringer/product-catalog/internal/models/m_product"
	"github.com/light-bringer/product-catalog/internal/pkg/query"
)

// ReadModelImpl implements ReadModel for Spanner.
type ReadModelImpl struct {
	client *spanner.Client
}

var _ contracts.ReadModel = (*ReadModelImpl)(nil)

// NewReadModel creates a new ReadModel implementation.
func NewReadModel(client *spanner.Client) *ReadModelImpl {
	return &ReadModelImpl{
		client: client,
	}
}

// GetProductByID retrieves a product snapshot by ID inside scope.
func (rm *ReadModelImpl) GetProductByID(ctx context.Context, productID string, scope []query.Condition) (*domain.Snapshot, error) {
	return getSnapshot(ctx, rm.client, productID, scope)
}

// ListProducts retrieves one page of products in scope, newest first.
func (rm *ReadModelImpl) ListProducts(ctx context.Context, filter *contracts.ListFilter) (*contracts.ListResult, error) {
	base := query.From(m_product.TableName).WhereAll(filter.Scope)

	// Use a read-only transaction so the count and the page see the same snapshot
	txn := rm.client.ReadOnlyTransaction()
	defer txn.Close()

	total, err := rm.count(ctx, txn, base.Count().Build())
	if err != nil {
		return nil, err
	}

	// A zero limit asks for the total only.
	if filter.Limit == 0 {
		return &contracts.ListResult{Products: []domain.Snapshot{}, Total: total, Offset: filter.Offset}, nil
	}

	stmt := base.
		Select(m_product.Columns...).
		OrderBy(m_product.CreatedAt, query.Desc).
		Limit(filter.Limit).
		Offset(filter.Offset).
		Build()

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	products := make([]domain.Snapshot, 0, filter.Limit)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate products: %w", err)
		}

		var data m_product.Data
		if err := row.ToStruct(&data); err != nil {
			return nil, fmt.Errorf("failed to parse product: %w", err)
		}

		s, err := dataToSnapshot(&data)
		if err != nil {
			return nil, fmt.Errorf("failed to convert product: %w", err)
		}
		products = append(products, s)
	}

	return &contracts.ListResult{
		Products: products,
		Total:    total,
		Offset:   filter.Offset,
		Limit:    filter.Limit,
	}, nil
}

func (rm *ReadModelImpl) count(ctx context.Context, txn *spanner.ReadOnlyTransaction, stmt spanner.Statement) (int64, error) {
	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	var total int64
	if err := row.Column(0, &total); err != nil {
		return 0, fmt.Errorf("failed to parse count: %w", err)
	}
	return total, nil
}
