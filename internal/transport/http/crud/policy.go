// Package crud is a generic gin resource exposing list/get/create/update/delete
// over a Service. Behaviour that differs per resource (who may call what, how
// errors map to HTTP, how pages are sized) is injected through a Policy.
package crud

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/light-bringer/product-catalog/internal/pkg/auth"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

// Policy customizes a Resource.
type Policy struct {
	// Authorize decides whether iss may issue method. Nil means AnonymousReadOnly.
	Authorize func(method string, iss auth.Issuer) error
	// MapError turns a service error into an HTTP error. Nil maps everything to 500.
	MapError   func(err error) *Error
	Pagination Pagination
}

// AnonymousReadOnly lets anyone read and requires an authenticated issuer
// for every other method.
func AnonymousReadOnly(method string, iss auth.Issuer) error {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return nil
	}
	if iss.IsAnonymous() {
		return ErrUnauthenticated
	}
	return nil
}

func (p Policy) authorize(method string, iss auth.Issuer) error {
	if p.Authorize == nil {
		return AnonymousReadOnly(method, iss)
	}
	return p.Authorize(method, iss)
}

func (p Policy) mapError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	if p.MapError == nil {
		return Internal()
	}
	return p.MapError(err)
}

// Pagination sizes list pages.
type Pagination struct {
	DefaultLimit int
	MaxLimit     int
	// Fixed ignores the caller and always serves the first default-sized page.
	Fixed bool
}

func (p Pagination) withDefaults() Pagination {
	if p.DefaultLimit <= 0 {
		p.DefaultLimit = DefaultPageLimit
	}
	if p.MaxLimit <= 0 {
		p.MaxLimit = MaxPageLimit
	}
	if p.DefaultLimit > p.MaxLimit {
		p.DefaultLimit = p.MaxLimit
	}
	return p
}

// Window parses the offset and limit query values. Limits above the maximum
// are clamped; a zero limit returns an empty page carrying the total.
func (p Pagination) Window(offset, limit string) (int, int, error) {
	p = p.withDefaults()
	if p.Fixed {
		return 0, p.DefaultLimit, nil
	}

	o := 0
	if offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil || n < 0 {
			return 0, 0, Validation("invalid pagination", Detail{Field: "offset", Reason: "must be a non-negative integer"})
		}
		o = n
	}

	l := p.DefaultLimit
	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			return 0, 0, Validation("invalid pagination", Detail{Field: "limit", Reason: "must be a non-negative integer"})
		}
		l = min(n, p.MaxLimit)
	}
	return o, l, nil
}
