package auth

import (
	"context"
	"net/http"
	"strings"
)

const (
	HeaderAPIKey     = "x-api-key"
	HeaderTenantID   = "X-Tenant-ID"
	HeaderBusinessID = "X-Business-ID"
)

// TokenVerifier verifies a bearer token.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (Issuer, error)
}

// KeyVerifier verifies an API key.
type KeyVerifier interface {
	Verify(ctx context.Context, apiKey string) (Issuer, error)
}

// Authenticator resolves the issuer from request headers. A bearer token
// wins over an API key when both are present.
type Authenticator struct {
	tokens TokenVerifier
	keys   KeyVerifier
}

// NewAuthenticator creates an Authenticator. Either verifier may be nil.
func NewAuthenticator(tokens TokenVerifier, keys KeyVerifier) *Authenticator {
	return &Authenticator{tokens: tokens, keys: keys}
}

// Authenticate returns ErrNoCredentials when the request carries none.
func (a *Authenticator) Authenticate(ctx context.Context, h http.Header) (Issuer, error) {
	if token, ok := bearerToken(h.Get("Authorization")); ok && a.tokens != nil {
		return a.tokens.Verify(ctx, token)
	}
	if key := strings.TrimSpace(h.Get(HeaderAPIKey)); key != "" && a.keys != nil {
		return a.keys.Verify(ctx, key)
	}
	return Issuer{}, ErrNoCredentials
}

// AnonymousFrom builds the anonymous issuer from the catalog selection headers.
func AnonymousFrom(h http.Header) Issuer {
	return Anonymous(h.Get(HeaderTenantID), h.Get(HeaderBusinessID))
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

type issuerKey struct{}

// WithIssuer stores the issuer in ctx.
func WithIssuer(ctx context.Context, iss Issuer) context.Context {
	return context.WithValue(ctx, issuerKey{}, iss)
}

// IssuerFrom returns the issuer stored in ctx, or an anonymous issuer.
func IssuerFrom(ctx context.Context) Issuer {
	if iss, ok := ctx.Value(issuerKey{}).(Issuer); ok {
		return iss
	}
	return Anonymous("", "")
}
