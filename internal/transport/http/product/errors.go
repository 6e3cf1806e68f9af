package product

import (
	"errors"
	"net/http"

	"github.com/light-bringer/product-catalog/internal/app/product/domain"
	"github.com/light-bringer/product-catalog/internal/pkg/decimalx"
	"github.com/light-bringer/product-catalog/internal/transport/http/crud"
)

var validationErrors = []error{
	domain.ErrEmptyName,
	domain.ErrInvalidPrice,
	domain.ErrInvalidQuantity,
	domain.ErrInvalidCurrency,
	domain.ErrInvalidItemType,
	domain.ErrInvalidStatus,
	domain.ErrInvalidURL,
	domain.ErrInvalidRevenueShare,
	domain.ErrInvalidPlanDuration,
	domain.ErrInvalidBundle,
	domain.ErrInvalidBundleQuota,
	domain.ErrInvalidBundleOrder,
	domain.ErrDeleteThroughUpdate,
	decimalx.ErrOutOfRange,
	decimalx.ErrNotDecimal,
}

// mapDomainErrorToHTTP converts domain errors to HTTP errors.
func mapDomainErrorToHTTP(err error) *crud.Error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrCannotModifyDeleted),
		errors.Is(err, domain.ErrAlreadyDeleted):
		return crud.NotFound("product not found")

	case errors.Is(err, domain.ErrOwnershipRequired):
		return crud.NewError(http.StatusForbidden, crud.CodeForbidden, "caller has no owner for this deployment")

	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return crud.NewError(http.StatusBadGateway, crud.CodeBadGateway, "validation service unavailable")

	case errors.Is(err, domain.ErrProductNotValid):
		return crud.NewError(http.StatusConflict, crud.CodeConflict, "product is no longer purchasable")
	}

	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return crud.Validation(target.Error(), detail(err, target))
		}
	}

	// Unknown error - return Internal
	return crud.Internal()
}

func detail(err, target error) crud.Detail {
	field := "body"
	var fe *domain.FieldError
	if errors.As(err, &fe) {
		field = fe.Field
	}
	return crud.Detail{Field: field, Reason: target.Error()}
}
