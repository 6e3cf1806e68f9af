package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/light-bringer/product-catalog/internal/pkg/outbound"
)

type jwksServer struct {
	*httptest.Server
	key  *rsa.PrivateKey
	hits atomic.Int32
}

func newJWKSServer(t *testing.T, kid string) *jwksServer {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	s := &jwksServer{key: key}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.hits.Add(1)
		set := jose.JSONWebKeySet{Keys: []jose.JSONWebKey{{
			Key:       &key.PublicKey,
			KeyID:     kid,
			Algorithm: "RS256",
			Use:       "sig",
		}}}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(set)
	}))
	t.Cleanup(s.Close)
	return s
}

func (s *jwksServer) sign(t *testing.T, kid string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	tok.Header["kid"] = kid
	signed, err := tok.SignedString(s.key)
	require.NoError(t, err)
	return signed
}

func newVerifier(url string) *JWTVerifier {
	client := outbound.NewClient(5*time.Second, zap.NewNop())
	return NewJWTVerifier(NewJWKSProvider(url, client, time.Hour))
}

func TestJWTVerifier_Verify(t *testing.T) {
	srv := newJWKSServer(t, "k1")
	verifier := newVerifier(srv.URL)
	ctx := context.Background()

	t.Run("valid token", func(t *testing.T) {
		token := srv.sign(t, "k1", jwt.MapClaims{
			"sub":          "user-1",
			"tenant_id":    "tenant-1",
			"workspace_id": "biz-1",
			"exp":          time.Now().Add(time.Hour).Unix(),
		})

		iss, err := verifier.Verify(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, IssuerTypeUser, iss.Type)
		assert.Equal(t, "user-1", iss.UserID)
		assert.Equal(t, "tenant-1", iss.TenantID)
		assert.Equal(t, "biz-1", iss.BusinessID)
		assert.False(t, iss.IsAnonymous())
	})

	t.Run("business_id wins over workspace_id", func(t *testing.T) {
		token := srv.sign(t, "k1", jwt.MapClaims{
			"sub":          "user-1",
			"tenant_id":    "tenant-1",
			"business_id":  "biz-2",
			"workspace_id": "biz-1",
			"exp":          time.Now().Add(time.Hour).Unix(),
		})

		iss, err := verifier.Verify(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "biz-2", iss.BusinessID)
	})

	t.Run("expired token", func(t *testing.T) {
		token := srv.sign(t, "k1", jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})

		_, err := verifier.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("symmetric algorithm rejected", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})
		signed, err := tok.SignedString([]byte("secret"))
		require.NoError(t, err)

		_, err = verifier.Verify(ctx, signed)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown kid", func(t *testing.T) {
		token := srv.sign(t, "other", jwt.MapClaims{"sub": "user-1"})

		_, err := verifier.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		token := srv.sign(t, "k1", jwt.MapClaims{"tenant_id": "tenant-1"})

		_, err := verifier.Verify(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := verifier.Verify(ctx, "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestJWTVerifier_JWKSUnavailable(t *testing.T) {
	srv := newJWKSServer(t, "k1")
	token := srv.sign(t, "k1", jwt.MapClaims{"sub": "user-1"})

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	_, err := newVerifier(down.URL).Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrIdentityUnavailable)
}

func TestJWKSProvider_CachesKeys(t *testing.T) {
	srv := newJWKSServer(t, "k1")
	provider := NewJWKSProvider(srv.URL, outbound.NewClient(time.Second, zap.NewNop()), time.Hour)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		key, err := provider.Key(ctx, "k1")
		require.NoError(t, err)
		assert.NotNil(t, key)
	}
	assert.Equal(t, int32(1), srv.hits.Load())

	// An empty kid resolves when the set holds one key.
	_, err := provider.Key(ctx, "")
	require.NoError(t, err)

	// Unknown kids do not refetch inside the refresh interval.
	_, err = provider.Key(ctx, "nope")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, int32(1), srv.hits.Load())
}

func TestJWKSProvider_RefetchesAfterTTL(t *testing.T) {
	srv := newJWKSServer(t, "k1")
	provider := NewJWKSProvider(srv.URL, outbound.NewClient(time.Second, zap.NewNop()), time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	provider.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := provider.Key(ctx, "k1")
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = provider.Key(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), srv.hits.Load())
}
