package product

import (
	"github.com/shopspring/decimal"

	"github.com/light-bringer/product-catalog/internal/app/product/domain"
	"github.com/light-bringer/product-catalog/internal/app/product/usecases/update_product"
	"github.com/light-bringer/product-catalog/internal/pkg/decimalx"
)

// CreatePayload is the body of POST /products. Identity, ownership and
// status are not accepted from clients.
type CreatePayload struct {
	Name           string           `json:"name" binding:"required"`
	Description    *string          `json:"description"`
	UnitPrice      *decimalx.Amount `json:"unit_price" binding:"required"`
	Currency       string           `json:"currency" binding:"omitempty,len=3"`
	Quantity       *decimalx.Amount `json:"quantity"`
	ItemType       string           `json:"item_type" binding:"omitempty,oneof=saas_package retail_product"`
	Variant        domain.Variant   `json:"variant"`
	ProductURL     *string          `json:"product_url" binding:"omitempty,url"`
	WebhookURL     *string          `json:"webhook_url" binding:"omitempty,url"`
	ReserveURL     *string          `json:"reserve_url" binding:"omitempty,url"`
	ValidationURL  *string          `json:"validation_url" binding:"omitempty,url"`
	RevenueShareID *string          `json:"revenue_share_id" binding:"omitempty,uuid"`
	TaxID          *string          `json:"tax_id"`
	Merchant       *string          `json:"merchant"`
	PlanDuration   *int64           `json:"plan_duration" binding:"omitempty,gte=0"`
	Bundles        []BundlePayload  `json:"bundles" binding:"omitempty,dive"`
	ExtraData      map[string]any   `json:"extra_data"`
	MetaData       map[string]any   `json:"meta_data"`
}

// UpdatePayload is the body of PUT and PATCH /products/{id}. Absent fields
// are left unchanged.
type UpdatePayload struct {
	Name           *string          `json:"name" binding:"omitempty,min=1"`
	Description    *string          `json:"description"`
	UnitPrice      *decimalx.Amount `json:"unit_price"`
	Currency       *string          `json:"currency" binding:"omitempty,len=3"`
	Quantity       *decimalx.Amount `json:"quantity"`
	ItemType       *string          `json:"item_type" binding:"omitempty,oneof=saas_package retail_product"`
	Status         *string          `json:"status" binding:"omitempty,oneof=active inactive expired trial"`
	Variant        domain.Variant   `json:"variant"`
	ProductURL     *string          `json:"product_url"`
	WebhookURL     *string          `json:"webhook_url"`
	ReserveURL     *string          `json:"reserve_url"`
	ValidationURL  *string          `json:"validation_url"`
	RevenueShareID *string          `json:"revenue_share_id"`
	TaxID          *string          `json:"tax_id"`
	Merchant       *string          `json:"merchant"`
	PlanDuration   *int64           `json:"plan_duration" binding:"omitempty,gte=0"`
	Bundles        *[]BundlePayload `json:"bundles" binding:"omitempty,dive"`
	ExtraData      map[string]any   `json:"extra_data"`
	MetaData       map[string]any   `json:"meta_data"`
}

// BundlePayload is one bundle in a create or update body.
type BundlePayload struct {
	Asset    string          `json:"asset" binding:"required"`
	Quota    decimalx.Amount `json:"quota"`
	Order    *int            `json:"order" binding:"omitempty,oneof=0 1 2"`
	Unit     string          `json:"unit"`
	MetaData map[string]any  `json:"meta_data"`
}

func (p *CreatePayload) toInput() (domain.NewProductInput, error) {
	itemType, err := domain.ParseItemType(p.ItemType)
	if err != nil {
		return domain.NewProductInput{}, err
	}
	bundles, err := toBundles(p.Bundles)
	if err != nil {
		return domain.NewProductInput{}, err
	}

	in := domain.NewProductInput{
		Name:           p.Name,
		Description:    p.Description,
		UnitPrice:      p.UnitPrice.Decimal,
		Currency:       p.Currency,
		Quantity:       amountPtr(p.Quantity),
		ItemType:       itemType,
		Variant:        p.Variant,
		ProductURL:     p.ProductURL,
		WebhookURL:     p.WebhookURL,
		ReserveURL:     p.ReserveURL,
		ValidationURL:  p.ValidationURL,
		RevenueShareID: p.RevenueShareID,
		TaxID:          p.TaxID,
		Merchant:       p.Merchant,
		PlanDuration:   p.PlanDuration,
		Bundles:        bundles,
		ExtraData:      p.ExtraData,
		MetaData:       p.MetaData,
	}
	return in, nil
}

func (p *UpdatePayload) toRequest(id string) (*update_product.Request, error) {
	req := &update_product.Request{
		ProductID:      id,
		Name:           p.Name,
		Description:    p.Description,
		UnitPrice:      amountPtr(p.UnitPrice),
		Currency:       p.Currency,
		Quantity:       amountPtr(p.Quantity),
		Variant:        p.Variant,
		ProductURL:     p.ProductURL,
		WebhookURL:     p.WebhookURL,
		ReserveURL:     p.ReserveURL,
		ValidationURL:  p.ValidationURL,
		RevenueShareID: p.RevenueShareID,
		TaxID:          p.TaxID,
		Merchant:       p.Merchant,
		PlanDuration:   p.PlanDuration,
		ExtraData:      p.ExtraData,
		MetaData:       p.MetaData,
	}

	if p.ItemType != nil {
		t, err := domain.ParseItemType(*p.ItemType)
		if err != nil {
			return nil, err
		}
		req.ItemType = &t
	}
	if p.Status != nil {
		s, err := domain.ParseStatus(*p.Status)
		if err != nil {
			return nil, err
		}
		req.Status = &s
	}
	if p.Bundles != nil {
		bundles, err := toBundles(*p.Bundles)
		if err != nil {
			return nil, err
		}
		if bundles == nil {
			bundles = []domain.Bundle{}
		}
		req.Bundles = &bundles
	}
	return req, nil
}

func toBundles(in []BundlePayload) ([]domain.Bundle, error) {
	if in == nil {
		return nil, nil
	}
	out := make([]domain.Bundle, 0, len(in))
	for _, b := range in {
		bundle, err := domain.NewBundle(b.Asset, b.Quota.Decimal, b.Order, b.Unit, b.MetaData)
		if err != nil {
			return nil, err
		}
		out = append(out, bundle)
	}
	return out, nil
}

func amountPtr(a *decimalx.Amount) *decimal.Decimal {
	if a == nil {
		return nil
	}
	d := a.Decimal
	return &d
}
