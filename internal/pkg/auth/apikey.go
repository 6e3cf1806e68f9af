package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/light-bringer/product-catalog/internal/pkg/outbound"
)

const apiKeyCachePrefix = "apikey:"

// JSONExchanger posts a JSON body and decodes the JSON answer.
type JSONExchanger interface {
	ExchangeJSON(ctx context.Context, url string, body, out any) error
}

// APIKeyVerifier checks API keys against the identity service. Successful
// verifications are cached under a hash of the key, never the key itself.
type APIKeyVerifier struct {
	url      string
	exchange JSONExchanger
	cache    Cache
	ttl      time.Duration
	logger   *zap.Logger
}

// NewAPIKeyVerifier creates an APIKeyVerifier. A nil cache disables caching.
func NewAPIKeyVerifier(url string, exchange JSONExchanger, cache Cache, ttl time.Duration, logger *zap.Logger) *APIKeyVerifier {
	if cache == nil {
		cache = NopCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIKeyVerifier{url: url, exchange: exchange, cache: cache, ttl: ttl, logger: logger}
}

// Verify returns the issuer the key belongs to.
func (v *APIKeyVerifier) Verify(ctx context.Context, apiKey string) (Issuer, error) {
	key := cacheKey(apiKey)

	if raw, ok, err := v.cache.Get(ctx, key); err != nil {
		v.logger.Warn("api key cache read failed", zap.Error(err))
	} else if ok {
		var iss Issuer
		if err := json.Unmarshal(raw, &iss); err == nil {
			return iss, nil
		}
	}

	claims := map[string]any{}
	err := v.exchange.ExchangeJSON(ctx, v.url, map[string]string{"api_key": apiKey}, &claims)
	if err != nil {
		var se *outbound.StatusError
		if errors.As(err, &se) && se.Code >= 400 && se.Code < 500 && se.Code != http.StatusTooManyRequests {
			return Issuer{}, fmt.Errorf("%w: %w", ErrInvalidAPIKey, err)
		}
		return Issuer{}, fmt.Errorf("%w: %w", ErrIdentityUnavailable, err)
	}

	iss := issuerFromClaims(claims, IssuerTypeAPIKey)
	if iss.TenantID == "" && iss.UserID == "" {
		return Issuer{}, fmt.Errorf("%w: no identity in verify response", ErrInvalidAPIKey)
	}

	if raw, err := json.Marshal(iss); err == nil && v.ttl > 0 {
		if err := v.cache.Set(ctx, key, raw, v.ttl); err != nil {
			v.logger.Warn("api key cache write failed", zap.Error(err))
		}
	}
	return iss, nil
}

func cacheKey(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return apiKeyCachePrefix + hex.EncodeToString(sum[:])
}
