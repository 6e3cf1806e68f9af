package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-jose/go-jose/v4"
)

// minRefreshInterval bounds how often an unknown kid can trigger a refetch.
const minRefreshInterval = 30 * time.Second

// JSONFetcher retrieves a JSON document.
type JSONFetcher interface {
	GetJSON(ctx context.Context, url string, out any) error
}

// JWKSProvider serves verification keys from a JWKS endpoint, caching the
// set for ttl and refetching early when a token names an unknown key.
type JWKSProvider struct {
	url     string
	fetcher JSONFetcher
	ttl     time.Duration
	now     func() time.Time

	mu        sync.RWMutex
	keys      jose.JSONWebKeySet
	fetchedAt time.Time
}

// NewJWKSProvider creates a JWKSProvider for url.
func NewJWKSProvider(url string, fetcher JSONFetcher, ttl time.Duration) *JWKSProvider {
	return &JWKSProvider{
		url:     url,
		fetcher: fetcher,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Key returns the public key for kid. An empty kid matches a set holding a
// single key.
func (p *JWKSProvider) Key(ctx context.Context, kid string) (any, error) {
	p.mu.RLock()
	key, found := lookup(p.keys, kid)
	age := p.now().Sub(p.fetchedAt)
	fetched := !p.fetchedAt.IsZero()
	p.mu.RUnlock()

	stale := !fetched || age > p.ttl
	if found && !stale {
		return key, nil
	}
	if !stale && age < minRefreshInterval {
		return nil, fmt.Errorf("%w: unknown key id %q", ErrInvalidToken, kid)
	}

	if err := p.refresh(ctx); err != nil {
		if found {
			// Keep serving the cached key while the endpoint is down.
			return key, nil
		}
		return nil, err
	}

	p.mu.RLock()
	key, found = lookup(p.keys, kid)
	p.mu.RUnlock()
	if !found {
		return nil, fmt.Errorf("%w: unknown key id %q", ErrInvalidToken, kid)
	}
	return key, nil
}

func (p *JWKSProvider) refresh(ctx context.Context) error {
	var set jose.JSONWebKeySet
	if err := p.fetcher.GetJSON(ctx, p.url, &set); err != nil {
		return fmt.Errorf("%w: fetch jwks: %w", ErrIdentityUnavailable, err)
	}
	if len(set.Keys) == 0 {
		return fmt.Errorf("%w: jwks has no keys", ErrIdentityUnavailable)
	}

	p.mu.Lock()
	p.keys = set
	p.fetchedAt = p.now()
	p.mu.Unlock()
	return nil
}

func lookup(set jose.JSONWebKeySet, kid string) (any, bool) {
	if kid == "" {
		if len(set.Keys) == 1 {
			return set.Keys[0].Key, true
		}
		return nil, false
	}
	for _, k := range set.Key(kid) {
		if k.Use == "" || k.Use == "sig" {
			return k.Key, true
		}
	}
	return nil, false
}
