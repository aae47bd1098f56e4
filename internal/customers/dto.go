package customers

// CreateCustomerRequest is the body of POST /customers.
type CreateCustomerRequest struct {
	Name      string  `json:"name" validate:"required,max=200"`
	Address   string  `json:"address" validate:"required"`
	Phone     string  `json:"phone" validate:"required,max=32"`
	Email     *string `json:"email" validate:"omitempty,email_or_empty"`
	RegionID  string  `json:"region_id" validate:"required"`
	TaxNumber *string `json:"tax_number" validate:"omitempty,max=32"`
	Notes     *string `json:"notes"`
}

// UpdateCustomerRequest is the body of PUT /customers/{id}. Absent fields are
// left unchanged.
type UpdateCustomerRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address   *string `json:"address" validate:"omitempty,min=1"`
	Phone     *string `json:"phone" validate:"omitempty,min=1,max=32"`
	Email     *string `json:"email" validate:"omitempty,email_or_empty"`
	RegionID  *string `json:"region_id" validate:"omitempty,min=1"`
	TaxNumber *string `json:"tax_number" validate:"omitempty,max=32"`
	Notes     *string `json:"notes"`
}

// ListFilter narrows GET /customers.
type ListFilter struct {
	RegionID string
}
