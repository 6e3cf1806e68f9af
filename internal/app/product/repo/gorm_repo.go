package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/light-bringer/product-catalog/internal/app/product/contracts"
	"github.com/light-bringer/product-catalog/internal/app/product/domain"
	"github.com/light-bringer/product-catalog/internal/models/m_product"
	"github.com/light-bringer/product-catalog/internal/pkg/clock"
	"github.com/light-bringer/product-catalog/internal/pkg/query"
)

// GormProductRepo implements ProductRepository on any GORM dialect.
// It backs local runs and tests with SQLite.
type GormProductRepo struct {
	db    *gorm.DB
	clock clock.Clock
}

var _ contracts.ProductRepository = (*GormProductRepo)(nil)

// NewGormProductRepo creates a new GormProductRepo.
func NewGormProductRepo(db *gorm.DB, clk clock.Clock) *GormProductRepo {
	return &GormProductRepo{db: db, clock: clk}
}

// Insert stores a new product.
func (r *GormProductRepo) Insert(ctx context.Context, product *domain.Product) error {
	rec, err := snapshotToRecord(product.Snapshot())
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	product.Changes().Clear()
	return nil
}

// Update writes the product's dirty fields.
func (r *GormProductRepo) Update(ctx context.Context, product *domain.Product) error {
	changes := product.Changes()
	if !changes.HasChanges() {
		return nil
	}

	rec, err := snapshotToRecord(product.Snapshot())
	if err != nil {
		return err
	}

	columns := append(changes.DirtyFields(), m_product.UpdatedAt)
	result := r.db.WithContext(ctx).
		Model(&productRecord{ProductID: rec.ProductID}).
		Where(m_product.Status+" <> ?", string(domain.StatusDeleted)).
		Select(columns).
		Updates(rec)
	if err := result.Error; err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}

	changes.Clear()
	return nil
}

// GetByID retrieves a product by ID inside scope.
func (r *GormProductRepo) GetByID(ctx context.Context, productID string, scope []query.Condition) (*domain.Product, error) {
	s, err := gormSnapshot(ctx, r.db, productID, scope)
	if err != nil {
		return nil, err
	}
	return domain.ReconstructProduct(*s, r.clock), nil
}

// GormReadModel implements ReadModel on any GORM dialect.
type GormReadModel struct {
	db *gorm.DB
}

var _ contracts.ReadModel = (*GormReadModel)(nil)

// NewGormReadModel creates a new GormReadModel.
func NewGormReadModel(db *gorm.DB) *GormReadModel {
	return &GormReadModel{db: db}
}

// GetProductByID retrieves a product snapshot by ID inside scope.
func (rm *GormReadModel) GetProductByID(ctx context.Context, productID string, scope []query.Condition) (*domain.Snapshot, error) {
	return gormSnapshot(ctx, rm.db, productID, scope)
}

// ListProducts retrieves one page of products in scope, newest first.
func (rm *GormReadModel) ListProducts(ctx context.Context, filter *contracts.ListFilter) (*contracts.ListResult, error) {
	base := applyScope(rm.db.WithContext(ctx).Model(&productRecord{}), filter.Scope)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	// A zero limit asks for the total only.
	if filter.Limit == 0 {
		return &contracts.ListResult{Products: []domain.Snapshot{}, Total: total, Offset: filter.Offset}, nil
	}

	var records []productRecord
	err := base.Session(&gorm.Session{}).
		Order(m_product.CreatedAt + " DESC").
		Order(m_product.ProductID).
		Offset(int(filter.Offset)).
		Limit(int(filter.Limit)).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]domain.Snapshot, 0, len(records))
	for i := range records {
		s, err := recordToSnapshot(&records[i])
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

func gormSnapshot(ctx context.Context, db *gorm.DB, productID string, scope []query.Condition) (*domain.Snapshot, error) {
	var rec productRecord
	err := applyScope(db.WithContext(ctx).Where(m_product.ProductID+" = ?", productID), scope).
		Take(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	s, err := recordToSnapshot(&rec)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// applyScope adds the rendered conditions as named expressions; GORM binds
// the same @pN parameters Spanner statements use.
func applyScope(db *gorm.DB, scope []query.Condition) *gorm.DB {
	for _, f := range query.Render(scope) {
		db = db.Where(f.SQL, f.Params)
	}
	return db
}
