package visits

import "github.com/pedizone/pedizone-crm/internal/shared"

// CreateVisitRequest is the body of POST /visits. salesperson_id is accepted
// for compatibility and always replaced by the caller.
type CreateVisitRequest struct {
	CustomerID    string    `json:"customer_id" validate:"required"`
	SalespersonID string    `json:"salesperson_id"`
	VisitDate     string    `json:"visit_date" validate:"required"`
	Notes         *string   `json:"notes"`
	Location      *Location `json:"location"`
	PhotoBase64   *string   `json:"photo_base64"`
	Status        string    `json:"status" validate:"omitempty,oneof=visited agreed appointment_set"`
}

// ListFilter narrows visit listings.
type ListFilter struct {
	SalespersonID string
	CustomerID    string
	Range         shared.DateRange
}
