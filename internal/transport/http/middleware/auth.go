package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/light-bringer/product-catalog/internal/pkg/auth"
)

// Authenticator resolves the issuer from request headers.
type Authenticator interface {
	Authenticate(ctx context.Context, h http.Header) (auth.Issuer, error)
}

// Authenticate stores the request issuer in the request context. It never
// rejects: a request without valid credentials continues as anonymous, and
// handlers decide what anonymous callers may do.
func Authenticate(a Authenticator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		iss, err := a.Authenticate(ctx, c.Request.Header)
		if err != nil {
			if !errors.Is(err, auth.ErrNoCredentials) {
				logger.Info("authentication failed, continuing as anonymous",
					zap.Error(err),
					zap.String("request_id", RequestIDFromContext(ctx)),
				)
			}
			iss = auth.AnonymousFrom(c.Request.Header)
		}

		c.Request = c.Request.WithContext(auth.WithIssuer(ctx, iss))
		c.Next()
	}
}
