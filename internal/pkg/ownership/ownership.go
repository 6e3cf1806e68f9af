// Package ownership describes which identity owns a record in a deployment.
//
// Every record belongs to a tenant. A deployment additionally picks one
// ownership axis: the tenant itself, a business inside the tenant, or a user.
package ownership

import (
	"fmt"
	"strings"
)

// Axis is the ownership axis active in a deployment.
type Axis string

const (
	AxisTenant   Axis = "tenant"
	AxisBusiness Axis = "business"
	AxisUser     Axis = "user"
)

// ParseAxis parses an axis name (case-insensitive).
func ParseAxis(s string) (Axis, error) {
	switch a := Axis(strings.ToLower(strings.TrimSpace(s))); a {
	case AxisTenant, AxisBusiness, AxisUser:
		return a, nil
	default:
		return "", fmt.Errorf("unknown ownership axis %q", s)
	}
}

// BusinessScope decides what happens to a caller-supplied business filter.
type BusinessScope string

const (
	// BusinessScopeHonor restricts reads to the caller's business.
	BusinessScopeHonor BusinessScope = "honor"
	// BusinessScopeTenant drops the business filter and reads tenant-wide.
	BusinessScopeTenant BusinessScope = "tenant"
)

// ParseBusinessScope parses a business scope mode (case-insensitive).
func ParseBusinessScope(s string) (BusinessScope, error) {
	switch m := BusinessScope(strings.ToLower(strings.TrimSpace(s))); m {
	case BusinessScopeHonor, BusinessScopeTenant:
		return m, nil
	default:
		return "", fmt.Errorf("unknown business scope mode %q", s)
	}
}

// Owner is the set of ownership ids stamped on a record.
type Owner struct {
	TenantID   string
	BusinessID string
	UserID     string
}

// Project keeps the tenant and the id of the active axis, clearing the rest.
func (o Owner) Project(axis Axis) Owner {
	out := Owner{TenantID: o.TenantID}
	switch axis {
	case AxisBusiness:
		out.BusinessID = o.BusinessID
	case AxisUser:
		out.UserID = o.UserID
	}
	return out
}

// Complete reports whether the owner carries an id for the axis.
func (o Owner) Complete(axis Axis) bool {
	if o.TenantID == "" {
		return false
	}
	switch axis {
	case AxisBusiness:
		return o.BusinessID != ""
	case AxisUser:
		return o.UserID != ""
	default:
		return true
	}
}
