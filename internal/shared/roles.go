package shared

// Role names a user's position in the sales organization.
type Role string

const (
	RoleAdmin           Role = "admin"
	RoleRegionalManager Role = "regional_manager"
	RoleSalesperson     Role = "salesperson"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleRegionalManager, RoleSalesperson:
		return true
	}
	return false
}

// AllRoles lists every role.
func AllRoles() []Role {
	return []Role{RoleAdmin, RoleRegionalManager, RoleSalesperson}
}
