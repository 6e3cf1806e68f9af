// Package product exposes the product catalog over HTTP.
package product

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/product-catalog/internal/app/product/domain"
	"github.com/light-bringer/product-catalog/internal/pkg/auth"
	"github.com/light-bringer/product-catalog/internal/transport/http/crud"
)

// Register mounts the product routes under g:
//
//	GET    /products
//	POST   /products
//	GET    /products/:id
//	PUT    /products/:id
//	PATCH  /products/:id
//	DELETE /products/:id
//	POST   /products/:id/reserve
func Register(g gin.IRouter, svc *Service, pagination crud.Pagination, logger *zap.Logger) {
	res := crud.NewResource[domain.Snapshot, CreatePayload, UpdatePayload](svc, crud.Policy{
		Authorize:  crud.AnonymousReadOnly,
		MapError:   mapDomainErrorToHTTP,
		Pagination: pagination,
	}, logger)

	products := g.Group("/products")
	res.Register(products)
	products.POST("/:id/reserve", res.Action(func(c *gin.Context, iss auth.Issuer) (int, any, error) {
		result, err := svc.Reserve(c.Request.Context(), iss, c.Param("id"))
		if err != nil {
			return 0, nil, err
		}
		if !result.Valid {
			return http.StatusConflict, result, nil
		}
		return http.StatusOK, result, nil
	}))
}
