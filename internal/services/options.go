package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/light-bringer/product-catalog/internal/app/product/contracts"
	"github.com/light-bringer/product-catalog/internal/app/product/domain"
	"github.com/light-bringer/product-catalog/internal/app/product/queries/get_product"
	"github.com/light-bringer/product-catalog/internal/app/product/queries/list_products"
	"github.com/light-bringer/product-catalog/internal/app/product/repo"
	"github.com/light-bringer/product-catalog/internal/app/product/scope"
	"github.com/light-bringer/product-catalog/internal/app/product/usecases"
	"github.com/light-bringer/product-catalog/internal/app/product/usecases/create_product"
	"github.com/light-bringer/product-catalog/internal/app/product/usecases/delete_product"
	"github.com/light-bringer/product-catalog/internal/app/product/usecases/reserve_product"
	"github.com/light-bringer/product-catalog/internal/app/product/usecases/update_product"
	"github.com/light-bringer/product-catalog/internal/config"
	"github.com/light-bringer/product-catalog/internal/pkg/auth"
	"github.com/light-bringer/product-catalog/internal/pkg/clock"
	"github.com/light-bringer/product-catalog/internal/pkg/committer"
	"github.com/light-bringer/product-catalog/internal/pkg/outbound"
	httptransport "github.com/light-bringer/product-catalog/internal/transport/http"
	"github.com/light-bringer/product-catalog/internal/transport/http/crud"
	"github.com/light-bringer/product-catalog/internal/transport/http/product"
)

// identityTimeout bounds calls to the identity service.
const identityTimeout = 10 * time.Second

// ServiceOptions holds all dependencies for the application.
type ServiceOptions struct {
	SpannerClient *spanner.Client
	DB            *gorm.DB
	Redis         *redis.Client
	Router        *gin.Engine
}

// NewServiceOptions creates and wires up all application dependencies.
func NewServiceOptions(ctx context.Context, cfg config.Config, log *zap.Logger) (*ServiceOptions, error) {
	s := &ServiceOptions{}

	// 1. Initialize infrastructure components
	clk := clock.NewRealClock()
	productRepo, readModel, err := s.openStore(ctx, cfg, clk)
	if err != nil {
		s.Close()
		return nil, err
	}

	cache, err := s.openCache(ctx, cfg, log)
	if err != nil {
		s.Close()
		return nil, err
	}

	outboundClient := outbound.NewClient(cfg.OutboundTimeout, log)
	identityClient := outbound.NewClient(identityTimeout, log)

	// 2. Create authentication
	authenticator := auth.NewAuthenticator(
		auth.NewJWTVerifier(auth.NewJWKSProvider(cfg.JWKSURL(), identityClient, cfg.JWKSCacheTTL)),
		auth.NewAPIKeyVerifier(cfg.APIKeyVerifyURL(), identityClient, cache, cfg.APIKeyCacheTTL, log),
	)

	// 3. Create command use cases (write operations)
	opts := scope.Options{Axis: cfg.OwnershipAxis, BusinessScope: cfg.BusinessScope}
	defaults := domain.Defaults{Currency: cfg.DefaultCurrency}
	notifier := usecases.NewWriteNotifier(outboundClient, cfg.NotifyOnWrite, log)

	createProductUseCase := create_product.NewInteractor(productRepo, notifier, clk, defaults, cfg.OwnershipAxis)
	updateProductUseCase := update_product.NewInteractor(productRepo, notifier, clk, opts)
	deleteProductUseCase := delete_product.NewInteractor(productRepo, notifier, clk, opts)
	reserveProductUseCase := reserve_product.NewInteractor(productRepo, outboundClient, outboundClient, opts, log)

	// 4. Create query use cases (read operations)
	getProductQuery := get_product.NewQuery(readModel, opts)
	listProductsQuery := list_products.NewQuery(readModel, opts)

	// 5. Create HTTP router
	s.Router = httptransport.NewRouter(httptransport.RouterOptions{
		APIPrefix:        cfg.APIPrefix,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		Pagination: crud.Pagination{
			DefaultLimit: cfg.PageDefaultLimit,
			MaxLimit:     cfg.PageMaxLimit,
			Fixed:        cfg.PaginationFixed,
		},
		Authenticator: authenticator,
		Products: product.NewService(
			createProductUseCase,
			updateProductUseCase,
			deleteProductUseCase,
			reserveProductUseCase,
			getProductQuery,
			listProductsQuery,
		),
		Logger: log,
	})

	return s, nil
}

func (s *ServiceOptions) openStore(ctx context.Context, cfg config.Config, clk clock.Clock) (contracts.ProductRepository, contracts.ReadModel, error) {
	switch cfg.StoreDriver {
	case config.StoreSQLite:
		db, err := gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open SQLite database: %w", err)
		}
		s.DB = db
		if err := repo.AutoMigrate(db); err != nil {
			return nil, nil, fmt.Errorf("failed to migrate SQLite database: %w", err)
		}
		return repo.NewGormProductRepo(db, clk), repo.NewGormReadModel(db), nil

	default:
		client, err := spanner.NewClient(ctx, cfg.SpannerDatabase)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create Spanner client: %w", err)
		}
		s.SpannerClient = client
		return repo.NewProductRepo(client, committer.NewCommitter(client), clk), repo.NewReadModel(client), nil
	}
}

func (s *ServiceOptions) openCache(ctx context.Context, cfg config.Config, log *zap.Logger) (auth.Cache, error) {
	if cfg.RedisURL == "" {
		log.Info("REDIS_URL not set, API key verifications are not cached")
		return auth.NopCache{}, nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opt)
	s.Redis = client

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return auth.NewRedisCache(client), nil
}

// Close closes all resources.
func (s *ServiceOptions) Close() error {
	var errs []error
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
	if s.DB != nil {
		if sqlDB, err := s.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	if s.Redis != nil {
		errs = append(errs, s.Redis.Close())
	}
	return errors.Join(errs...)
}
