// Package usecases holds what the product use cases share.
package usecases

import (
	"context"

	"go.uber.org/zap"

	"github.com/light-bringer/product-catalog/internal/app/product/domain"
	"github.com/light-bringer/product-catalog/internal/pkg/outbound"
)

// WriteNotifier fires the product webhook after a committed write.
// Its outcome is logged and returned; it never fails the write.
type WriteNotifier struct {
	poster  domain.Poster
	enabled bool
	logger  *zap.Logger
}

// NewWriteNotifier creates a WriteNotifier. A disabled notifier never calls out.
func NewWriteNotifier(poster domain.Poster, enabled bool, logger *zap.Logger) *WriteNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WriteNotifier{poster: poster, enabled: enabled, logger: logger}
}

// After notifies the product's webhook about op.
func (n *WriteNotifier) After(ctx context.Context, product *domain.Product, op string) outbound.Outcome {
	if n == nil || !n.enabled {
		return outbound.Skipped()
	}

	out := product.Notify(ctx, n.poster)
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("product_id", product.ID()),
		zap.String("outcome", string(out.Kind)),
	}
	if out.Failed() {
		n.logger.Warn("product webhook failed", append(fields,
			zap.Int("status", out.StatusCode),
			zap.String("error", out.Error),
		)...)
	} else if out.Kind == outbound.KindDelivered {
		n.logger.Debug("product webhook delivered", fields...)
	}
	return out
}
