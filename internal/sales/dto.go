package sales

import (
	"github.com/shopspring/decimal"

	"github.com/pedizone/pedizone-crm/internal/shared"
)

// CreateSaleRequest is the body of POST /sales. salesperson_id is accepted
// for compatibility and always replaced by the caller.
type CreateSaleRequest struct {
	CustomerID    string           `json:"customer_id" validate:"required"`
	SalespersonID string           `json:"salesperson_id"`
	SaleDate      string           `json:"sale_date" validate:"required"`
	Items         []Item           `json:"items" validate:"required,min=1,dive"`
	TotalAmount   *decimal.Decimal `json:"total_amount" validate:"required,gte=0"`
	Notes         *string          `json:"notes"`
}

// ListFilter narrows sale listings.
type ListFilter struct {
	SalespersonID string
	CustomerID    string
	Range         shared.DateRange
}
