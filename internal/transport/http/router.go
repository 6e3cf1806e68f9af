package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/product-catalog/internal/transport/http/crud"
	"github.com/light-bringer/product-catalog/internal/transport/http/middleware"
	"github.com/light-bringer/product-catalog/internal/transport/http/product"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	APIPrefix        string
	CORSAllowOrigins []string
	Pagination       crud.Pagination
	Authenticator    middleware.Authenticator
	Products         *product.Service
	Logger           *zap.Logger
}

// NewRouter builds the HTTP handler: shared middleware, /healthz and the
// product routes under the API prefix.
func NewRouter(opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(opts.Logger),
		middleware.Recovery(opts.Logger),
		cors.New(corsConfig(opts.CORSAllowOrigins)),
		middleware.Authenticate(opts.Authenticator, opts.Logger),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	product.Register(r.Group(opts.APIPrefix), opts.Products, opts.Pagination, opts.Logger)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Authorization",
			"x-api-key", "X-Tenant-ID", "X-Business-ID", middleware.HeaderRequestID,
		},
		ExposeHeaders: []string{middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}

	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
