package regions

import "time"

// Region groups customers and salespersons geographically.
type Region struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	ManagerID   *string   `json:"manager_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateRegionRequest is the body of POST /regions.
type CreateRegionRequest struct {
	Name        string  `json:"name" validate:"required,max=128"`
	Description *string `json:"description"`
	ManagerID   *string `json:"manager_id"`
}

// UpdateRegionRequest is the body of PUT /regions/{id}.
type UpdateRegionRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=128"`
	Description *string `json:"description"`
	ManagerID   *string `json:"manager_id"`
}
