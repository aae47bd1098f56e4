package collections

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pedizone/pedizone-crm/internal/shared"
)

// PaymentMethod is how a customer settled a collection.
type PaymentMethod string

const (
	PaymentCash         PaymentMethod = "cash"
	PaymentCard         PaymentMethod = "card"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

// Collection is a payment received from a customer.
type Collection struct {
	ID             string          `json:"id"`
	CustomerID     string          `json:"customer_id"`
	SalespersonID  string          `json:"salesperson_id"`
	Amount         decimal.Decimal `json:"amount"`
	CollectionDate time.Time       `json:"collection_date"`
	PaymentMethod  PaymentMethod   `json:"payment_method"`
	Notes          *string         `json:"notes"`
	CreatedAt      time.Time       `json:"created_at"`
}

// CreateCollectionRequest is the body of POST /collections.
type CreateCollectionRequest struct {
	CustomerID     string           `json:"customer_id" validate:"required"`
	SalespersonID  string           `json:"salesperson_id"`
	Amount         *decimal.Decimal `json:"amount" validate:"required,gt=0"`
	CollectionDate string           `json:"collection_date" validate:"required"`
	PaymentMethod  PaymentMethod    `json:"payment_method" validate:"required,oneof=cash card bank_transfer"`
	Notes          *string          `json:"notes"`
}

// ListFilter narrows collection listings.
type ListFilter struct {
	SalespersonID string
	CustomerID    string
	Range         shared.DateRange
}
