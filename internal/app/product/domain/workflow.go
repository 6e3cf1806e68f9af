package domain

import (
	"context"
	"fmt"

	"github.com/light-bringer/product-catalog/internal/pkg/decimalx"
	"github.com/light-bringer/product-catalog/internal/pkg/outbound"
)

// Fetcher retrieves a JSON document from a URL.
type Fetcher interface {
	GetJSON(ctx context.Context, url string, out any) error
}

// Poster delivers a JSON document to a URL and reports what happened.
type Poster interface {
	PostJSON(ctx context.Context, url string, body any) outbound.Outcome
}

// Validate asks the validation URL whether the product is still purchasable.
//
// Without a validation URL the product is valid and no call is made. A price
// reported by the validator must equal the unit price exactly. A reported
// stock quantity must cover the product quantity. A validator that cannot be
// reached or answers garbage yields ErrUpstreamUnavailable, never a verdict.
func (p *Product) Validate(ctx context.Context, f Fetcher) (bool, error) {
	if p.validationURL == nil {
		return true, nil
	}

	var body map[string]any
	if err := f.GetJSON(ctx, *p.validationURL, &body); err != nil {
		return false, fmt.Errorf("%w: validation: %w", ErrUpstreamUnavailable, err)
	}

	if raw, ok := body["price"]; ok && raw != nil {
		price, err := decimalx.Normalize(raw)
		if err != nil {
			return false, fmt.Errorf("%w: validation price: %w", ErrUpstreamUnavailable, err)
		}
		if !price.Equal(p.unitPrice) {
			return false, nil
		}
	}

	raw, ok := body["stock_quantity"]
	if !ok || raw == nil {
		return true, nil
	}
	stock, err := decimalx.Normalize(raw)
	if err != nil {
		return false, fmt.Errorf("%w: validation stock_quantity: %w", ErrUpstreamUnavailable, err)
	}
	return stock.GreaterThanOrEqual(p.quantity), nil
}

// Reserve posts the product snapshot to the reserve URL, if one is set.
func (p *Product) Reserve(ctx context.Context, poster Poster) outbound.Outcome {
	return p.post(ctx, poster, p.reserveURL)
}

// Notify posts the product snapshot to the webhook URL, if one is set.
func (p *Product) Notify(ctx context.Context, poster Poster) outbound.Outcome {
	return p.post(ctx, poster, p.webhookURL)
}

func (p *Product) post(ctx context.Context, poster Poster, u *string) outbound.Outcome {
	if u == nil {
		return outbound.Skipped()
	}
	return poster.PostJSON(ctx, *u, p.Snapshot())
}
