package products

import "github.com/shopspring/decimal"

// CreateProductRequest is the body of POST /products.
type CreateProductRequest struct {
	Code        string           `json:"code" validate:"required,max=64"`
	Name        string           `json:"name" validate:"required,max=200"`
	UnitPrice   *decimal.Decimal `json:"unit_price" validate:"required,gte=0"`
	Price1To5   *decimal.Decimal `json:"price_1_5" validate:"omitempty,gte=0"`
	Price6To10  *decimal.Decimal `json:"price_6_10" validate:"omitempty,gte=0"`
	Price11To24 *decimal.Decimal `json:"price_11_24" validate:"omitempty,gte=0"`
	Unit        string           `json:"unit" validate:"max=32"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	PhotoBase64 *string          `json:"photo_base64"`
	Active      *bool            `json:"active"`
}

// UpdateProductRequest is the body of PUT /products/{id}. Absent fields are
// left unchanged.
type UpdateProductRequest struct {
	Code        *string          `json:"code" validate:"omitempty,min=1,max=64"`
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	UnitPrice   *decimal.Decimal `json:"unit_price" validate:"omitempty,gte=0"`
	Price1To5   *decimal.Decimal `json:"price_1_5" validate:"omitempty,gte=0"`
	Price6To10  *decimal.Decimal `json:"price_6_10" validate:"omitempty,gte=0"`
	Price11To24 *decimal.Decimal `json:"price_11_24" validate:"omitempty,gte=0"`
	Unit        *string          `json:"unit" validate:"omitempty,min=1,max=32"`
	Category    *string          `json:"category"`
	Description *string          `json:"description"`
	PhotoBase64 *string          `json:"photo_base64"`
	Active      *bool            `json:"active"`
}

// ListFilter narrows GET /products.
type ListFilter struct {
	IncludeInactive bool
	Category        string
}
