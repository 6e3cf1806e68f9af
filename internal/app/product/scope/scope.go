// Package scope builds the ownership and soft-delete filter applied to every
// product read. It only builds predicates; it never touches a store.
package scope

import (
	"github.com/light-bringer/product-catalog/internal/app/product/domain"
	"github.com/light-bringer/product-catalog/internal/models/m_product"
	"github.com/light-bringer/product-catalog/internal/pkg/ownership"
	"github.com/light-bringer/product-catalog/internal/pkg/query"
)

// Filter carries the caller's ownership ids. Empty ids impose no restriction.
type Filter struct {
	TenantID       string
	BusinessID     string
	UserID         string
	IncludeDeleted bool
}

// Options are the deployment settings that shape the scope.
type Options struct {
	Axis          ownership.Axis
	BusinessScope ownership.BusinessScope
}

// FromOwner builds a Filter from an owner.
func FromOwner(o ownership.Owner, includeDeleted bool) Filter {
	return Filter{
		TenantID:       o.TenantID,
		BusinessID:     o.BusinessID,
		UserID:         o.UserID,
		IncludeDeleted: includeDeleted,
	}
}

// Build returns the conditions restricting products to the filter.
//
// With BusinessScopeTenant the business id is dropped and the read falls back
// to the whole tenant.
func Build(f Filter, opts Options) []query.Condition {
	conds := make([]query.Condition, 0, 3)

	if f.TenantID != "" {
		conds = append(conds, query.Eq(m_product.TenantID, f.TenantID))
	}

	switch opts.Axis {
	case ownership.AxisBusiness:
		if f.BusinessID != "" && opts.BusinessScope != ownership.BusinessScopeTenant {
			conds = append(conds, query.Eq(m_product.BusinessID, f.BusinessID))
		}
	case ownership.AxisUser:
		if f.UserID != "" {
			conds = append(conds, query.Eq(m_product.UserID, f.UserID))
		}
	}

	if !f.IncludeDeleted {
		conds = append(conds, query.Ne(m_product.Status, string(domain.StatusDeleted)))
	}

	return conds
}

// Visible returns the conditions for a read. Soft-deleted products are only
// shown to a filter that owns a scope; any other request for them is
// narrowed back to live products.
func Visible(f Filter, opts Options) []query.Condition {
	if f.IncludeDeleted && !owns(f, opts) {
		f.IncludeDeleted = false
	}
	return Build(f, opts)
}

// Owned returns the conditions for a write. Unlike Build it refuses a filter
// missing the tenant or the active axis id, so an identity without ownership
// never widens to every tenant. Such a caller owns nothing and gets
// ErrProductNotFound.
func Owned(f Filter, opts Options) ([]query.Condition, error) {
	if !owns(f, opts) {
		return nil, domain.ErrProductNotFound
	}
	f.IncludeDeleted = false
	return Build(f, opts), nil
}

func owns(f Filter, opts Options) bool {
	if f.TenantID == "" {
		return false
	}
	switch opts.Axis {
	case ownership.AxisBusiness:
		return f.BusinessID != "" || opts.BusinessScope == ownership.BusinessScopeTenant
	case ownership.AxisUser:
		return f.UserID != ""
	default:
		return true
	}
}

// Allows reports whether a loaded product falls inside the filter. Stores
// that read by key use it to apply the same scope as Build.
func Allows(s domain.Snapshot, f Filter, opts Options) bool {
	if f.TenantID != "" && s.TenantID != f.TenantID {
		return false
	}
	switch opts.Axis {
	case ownership.AxisBusiness:
		if f.BusinessID != "" && opts.BusinessScope != ownership.BusinessScopeTenant && s.BusinessID != f.BusinessID {
			return false
		}
	case ownership.AxisUser:
		if f.UserID != "" && s.UserID != f.UserID {
			return false
		}
	}
	if !f.IncludeDeleted && s.Status == domain.StatusDeleted {
		return false
	}
	return true
}
