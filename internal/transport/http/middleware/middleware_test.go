package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/light-bringer/product-catalog/internal/pkg/auth"
)

type stubAuthenticator struct {
	iss auth.Issuer
	err error
}

func (s stubAuthenticator) Authenticate(context.Context, http.Header) (auth.Issuer, error) {
	return s.iss, s.err
}

func newEngine(mw ...gin.HandlerFunc) (*gin.Engine, *auth.Issuer) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	seen := &auth.Issuer{}
	r.GET("/", func(c *gin.Context) {
		*seen = auth.IssuerFrom(c.Request.Context())
		c.String(http.StatusOK, RequestIDFromContext(c.Request.Context()))
	})
	return r, seen
}

func TestRequestID(t *testing.T) {
	r, _ := newEngine(RequestID())

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		id := w.Header().Get(HeaderRequestID)
		require.NotEmpty(t, id)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "abc")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc", w.Header().Get(HeaderRequestID))
		assert.Equal(t, "abc", w.Body.String())
	})
}

func TestAuthenticate(t *testing.T) {
	t.Run("authenticated issuer", func(t *testing.T) {
		want := auth.Issuer{Type: auth.IssuerTypeUser, UserID: "u1", TenantID: "t1"}
		r, seen := newEngine(Authenticate(stubAuthenticator{iss: want}, zap.NewNop()))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, want, *seen)
	})

	t.Run("failure degrades to anonymous and is logged", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		r, seen := newEngine(Authenticate(stubAuthenticator{err: auth.ErrInvalidToken}, zap.New(core)))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(auth.HeaderTenantID, "t9")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, seen.IsAnonymous())
		assert.Equal(t, "t9", seen.TenantID)
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("no credentials is silent", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		r, seen := newEngine(Authenticate(stubAuthenticator{err: auth.ErrNoCredentials}, zap.New(core)))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.True(t, seen.IsAnonymous())
		assert.Equal(t, 0, logs.Len())
	})
}

func TestLoggerAndRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	r := gin.New()
	r.Use(RequestID(), Logger(logger), Recovery(logger))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
	assert.Equal(t, 1, logs.FilterMessage("http_request").Len())
}
