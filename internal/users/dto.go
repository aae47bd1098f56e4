package users

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Username string  `json:"username" validate:"required,max=64"`
	Email    string  `json:"email" validate:"required,email"`
	FullName string  `json:"full_name" validate:"required,max=128"`
	Password string  `json:"password" validate:"required,min=6"`
	Role     string  `json:"role" validate:"required,oneof=admin regional_manager salesperson"`
	RegionID *string `json:"region_id"`
}

// UpdateUserRequest is the body of PUT /users/{id}. Absent fields are left
// unchanged; an empty region_id clears the assignment.
type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1,max=64"`
	Email    *string `json:"email" validate:"omitempty,email"`
	FullName *string `json:"full_name" validate:"omitempty,min=1,max=128"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	Role     *string `json:"role" validate:"omitempty,oneof=admin regional_manager salesperson"`
	RegionID *string `json:"region_id"`
	Active   *bool   `json:"active"`
}

// ListFilter narrows GET /users.
type ListFilter struct {
	RegionID string
	Role     string
}
