package visits

import "time"

// Visit statuses.
const (
	StatusVisited        = "visited"
	StatusAgreed         = "agreed"
	StatusAppointmentSet = "appointment_set"
)

// Location is a GPS fix captured at the customer's premises.
type Location struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// Visit is a salesperson's call on a customer.
type Visit struct {
	ID            string    `json:"id"`
	CustomerID    string    `json:"customer_id"`
	SalespersonID string    `json:"salesperson_id"`
	VisitDate     time.Time `json:"visit_date"`
	Notes         *string   `json:"notes"`
	Location      *Location `json:"location"`
	PhotoBase64   *string   `json:"photo_base64,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}
