package users

import (
	"time"

	"github.com/pedizone/pedizone-crm/internal/shared"
)

// User is an account in the sales organization. PasswordHash never leaves
// the process.
type User struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	FullName     string      `json:"full_name"`
	Role         shared.Role `json:"role"`
	RegionID     *string     `json:"region_id"`
	PasswordHash string      `json:"-"`
	Active       bool        `json:"active"`
	CreatedAt    time.Time   `json:"created_at"`
}

// Region returns the region id or an empty string.
func (u User) Region() string {
	if u.RegionID == nil {
		return ""
	}
	return *u.RegionID
}

// Caller projects the user into a request principal.
func (u User) Caller() shared.Caller {
	return shared.Caller{ID: u.ID, Role: u.Role, RegionID: u.Region()}
}
