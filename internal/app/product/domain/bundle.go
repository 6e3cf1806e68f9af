package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// DefaultBundleOrder is the rank a bundle gets when none is given.
	DefaultBundleOrder = 1
	// DefaultBundleUnit is the unit a bundle gets when none is given.
	DefaultBundleUnit = "unit"
)

// Bundle is one quota of one asset inside a SaaS package.
type Bundle struct {
	Asset    string          `json:"asset"`
	Quota    decimal.Decimal `json:"quota"`
	Order    int             `json:"order"`
	Unit     string          `json:"unit"`
	MetaData map[string]any  `json:"meta_data,omitempty"`
}

// NewBundle creates a Bundle, filling in the default order and unit.
func NewBundle(asset string, quota decimal.Decimal, order *int, unit string, metaData map[string]any) (Bundle, error) {
	b := Bundle{
		Asset:    strings.TrimSpace(asset),
		Quota:    quota,
		Order:    DefaultBundleOrder,
		Unit:     unit,
		MetaData: metaData,
	}
	if order != nil {
		b.Order = *order
	}
	if b.Unit == "" {
		b.Unit = DefaultBundleUnit
	}
	if err := b.Validate(); err != nil {
		return Bundle{}, err
	}
	return b, nil
}

// Validate checks the bundle invariants.
func (b Bundle) Validate() error {
	if b.Asset == "" {
		return ErrInvalidBundle
	}
	if b.Quota.IsNegative() {
		return ErrInvalidBundleQuota
	}
	if b.Order < 0 || b.Order > 2 {
		return ErrInvalidBundleOrder
	}
	return nil
}

func cloneBundles(in []Bundle) []Bundle {
	if in == nil {
		return nil
	}
	out := make([]Bundle, len(in))
	copy(out, in)
	return out
}
