package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ItemType distinguishes SaaS packages from retail goods.
type ItemType string

const (
	ItemTypeSaaSPackage   ItemType = "saas_package"
	ItemTypeRetailProduct ItemType = "retail_product"
)

// ParseItemType returns the item type named by s. Empty means retail_product.
func ParseItemType(s string) (ItemType, error) {
	if s == "" {
		return ItemTypeRetailProduct, nil
	}
	switch t := ItemType(s); t {
	case ItemTypeSaaSPackage, ItemTypeRetailProduct:
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidItemType, s)
}

// Status represents the lifecycle status of a product
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusExpired  Status = "expired"
	StatusDeleted  Status = "deleted"
	StatusTrial    Status = "trial"
)

// ParseStatus returns the status named by s.
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusActive, StatusInactive, StatusExpired, StatusDeleted, StatusTrial:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Variant holds variant attributes such as size or color.
//
// A bare JSON string is accepted for compatibility and stored under "value".
type Variant map[string]string

// VariantValueKey is the key a bare string variant is stored under.
const VariantValueKey = "value"

// UnmarshalJSON implements json.Unmarshaler.
func (v *Variant) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) == "" {
			*v = nil
			return nil
		}
		*v = Variant{VariantValueKey: s}
		return nil
	}

	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("variant must be a string or an object of strings: %w", err)
	}
	*v = m
	return nil
}

// Clone returns a copy of v.
func (v Variant) Clone() Variant {
	if v == nil {
		return nil
	}
	out := make(Variant, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}
