// Package auth resolves the issuer of a request against the identity service:
// bearer JWTs are checked with the service's JWKS, API keys with its verify
// endpoint.
package auth

import (
	"errors"
	"strings"

	"github.com/light-bringer/product-catalog/internal/pkg/ownership"
)

var (
	ErrNoCredentials       = errors.New("no credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrInvalidAPIKey       = errors.New("invalid api key")
	ErrIdentityUnavailable = errors.New("identity service unavailable")
)

const (
	IssuerTypeUser      = "user"
	IssuerTypeAPIKey    = "api_key"
	IssuerTypeAnonymous = "anonymous"
)

// Issuer is the identity behind a request.
type Issuer struct {
	Type       string `json:"type"`
	UserID     string `json:"user_id,omitempty"`
	TenantID   string `json:"tenant_id,omitempty"`
	BusinessID string `json:"business_id,omitempty"`
}

// Anonymous returns the issuer of an unauthenticated request. The tenant and
// business only select which public catalog is read.
func Anonymous(tenantID, businessID string) Issuer {
	return Issuer{
		Type:       IssuerTypeAnonymous,
		TenantID:   strings.TrimSpace(tenantID),
		BusinessID: strings.TrimSpace(businessID),
	}
}

// IsAnonymous reports whether the issuer did not authenticate.
func (i Issuer) IsAnonymous() bool {
	return i.Type == "" || i.Type == IssuerTypeAnonymous
}

// Owner returns the ownership ids the issuer acts for.
func (i Issuer) Owner() ownership.Owner {
	return ownership.Owner{
		TenantID:   i.TenantID,
		BusinessID: i.BusinessID,
		UserID:     i.UserID,
	}
}

// issuerFromClaims maps identity-service claims to an Issuer. The business
// falls back to workspace_id, and the type defaults to fallbackType.
func issuerFromClaims(claims map[string]any, fallbackType string) Issuer {
	iss := Issuer{
		Type:       claimString(claims, "type"),
		UserID:     claimString(claims, "sub", "user_id"),
		TenantID:   claimString(claims, "tenant_id"),
		BusinessID: claimString(claims, "business_id", "workspace_id"),
	}
	if iss.Type == "" || iss.Type == IssuerTypeAnonymous {
		iss.Type = fallbackType
	}
	return iss
}

func claimString(claims map[string]any, keys ...string) string {
	for _, k := range keys {
		if v, ok := claims[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
