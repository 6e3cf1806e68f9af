package domain

import (
	"errors"
	"fmt"
)

// Domain errors as sentinel values
var (
	// Product errors
	ErrProductNotFound     = errors.New("product not found")
	ErrEmptyName           = errors.New("product name cannot be empty")
	ErrInvalidPrice        = errors.New("unit price must be zero or positive")
	ErrInvalidQuantity     = errors.New("quantity must be zero or positive")
	ErrInvalidCurrency     = errors.New("currency must be a three-letter ISO 4217 code")
	ErrInvalidItemType     = errors.New("unknown item type")
	ErrInvalidStatus       = errors.New("unknown product status")
	ErrInvalidURL          = errors.New("url must be absolute http or https")
	ErrInvalidRevenueShare = errors.New("revenue share id must be a UUID")
	ErrInvalidPlanDuration = errors.New("plan duration must be zero or positive")
	ErrOwnershipRequired   = errors.New("product owner is incomplete")

	// Bundle errors
	ErrInvalidBundle      = errors.New("bundle asset cannot be empty")
	ErrInvalidBundleQuota = errors.New("bundle quota must be zero or positive")
	ErrInvalidBundleOrder = errors.New("bundle order must be 0, 1 or 2")

	// Status errors
	ErrAlreadyDeleted      = errors.New("product is already deleted")
	ErrCannotModifyDeleted = errors.New("cannot modify deleted product")
	ErrDeleteThroughUpdate = errors.New("status deleted can only be set by delete")

	// Workflow errors
	ErrUpstreamUnavailable = errors.New("upstream dependency unavailable")
	ErrProductNotValid     = errors.New("product is no longer purchasable")
)

// FieldError ties a validation failure to the payload field that caused it.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func invalid(field string, err error) error {
	return &FieldError{Field: field, Err: err}
}
