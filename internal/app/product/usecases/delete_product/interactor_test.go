package delete_product

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/product-catalog/internal/app/product/domain"
	"github.com/light-bringer/product-catalog/internal/app/product/repo"
	"github.com/light-bringer/product-catalog/internal/app/product/scope"
	"github.com/light-bringer/product-catalog/internal/app/product/usecases"
	"github.com/light-bringer/product-catalog/internal/pkg/outbound"
	"github.com/light-bringer/product-catalog/internal/pkg/ownership"
	"github.com/light-bringer/product-catalog/tests/testutil"
)

func TestInteractor_SoftDelete(t *testing.T) {
	ctx := context.Background()
	owner := ownership.Owner{TenantID: "tenant-1", BusinessID: "biz-1"}
	opts := scope.Options{Axis: ownership.AxisBusiness, BusinessScope: ownership.BusinessScopeHonor}

	db := testutil.NewSQLiteDB(t)
	require.NoError(t, repo.AutoMigrate(db))
	clk := testutil.NewMockClock()
	repository := repo.NewGormProductRepo(db, clk)

	p, err := domain.NewProduct(uuid.NewString(), owner, domain.NewProductInput{Name: "Widget"}, domain.Defaults{}, clk)
	require.NoError(t, err)
	require.NoError(t, repository.Insert(ctx, p))

	notifier := usecases.NewWriteNotifier(outbound.NewClient(time.Second, nil), true, zap.NewNop())
	uc := NewInteractor(repository, notifier, clk, opts)

	s, err := uc.Execute(ctx, &Request{ProductID: p.ID(), Filter: scope.FromOwner(owner, false)})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDeleted, s.Status)

	// The row is still there, just hidden.
	_, err = repository.GetByID(ctx, p.ID(), scope.Build(scope.FromOwner(owner, false), opts))
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	stored, err := repository.GetByID(ctx, p.ID(), scope.Build(scope.FromOwner(owner, true), opts))
	require.NoError(t, err)
	assert.True(t, stored.IsDeleted())

	_, err = uc.Execute(ctx, &Request{ProductID: p.ID(), Filter: scope.FromOwner(owner, false)})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
