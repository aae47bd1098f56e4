package customers

import "time"

// Customer is a pharmacy, clinic or shop the sales team serves.
type Customer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email"`
	RegionID  string    `json:"region_id"`
	TaxNumber *string   `json:"tax_number"`
	Notes     *string   `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}
