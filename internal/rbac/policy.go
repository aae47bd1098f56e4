package rbac

import (
	"github.com/pedizone/pedizone-crm/internal/shared"
)

type roleSet map[shared.Role]struct{}

func roles(rs ...shared.Role) roleSet {
	set := make(roleSet, len(rs))
	for _, r := range rs {
		set[r] = struct{}{}
	}
	return set
}

var (
	everyone       = roles(shared.AllRoles()...)
	adminOnly      = roles(shared.RoleAdmin)
	managers       = roles(shared.RoleAdmin, shared.RoleRegionalManager)
	salespersonOps = roles(shared.RoleSalesperson)
)

var rules = map[Resource]map[Action]roleSet{
	Users: {
		ActionList: managers, ActionRead: managers,
		ActionCreate: adminOnly, ActionUpdate: adminOnly, ActionDelete: adminOnly,
	},
	Regions: {
		ActionList: everyone, ActionRead: everyone,
		ActionCreate: adminOnly, ActionUpdate: adminOnly, ActionDelete: adminOnly,
	},
	Customers: {
		ActionList: everyone, ActionRead: everyone,
		ActionCreate: everyone, ActionUpdate: everyone, ActionDelete: managers,
	},
	Products: {
		ActionList: everyone, ActionRead: everyone,
		ActionCreate: adminOnly, ActionUpdate: adminOnly, ActionDelete: adminOnly,
	},
	Visits: {
		ActionList: everyone, ActionRead: everyone,
		ActionCreate: everyone, ActionDelete: everyone,
	},
	Sales: {
		ActionList: everyone, ActionRead: everyone,
		ActionCreate: everyone, ActionDelete: managers,
	},
	Collections: {
		ActionList: everyone, ActionRead: everyone,
		ActionCreate: everyone, ActionDelete: everyone,
	},
	Documents: {
		ActionList: everyone, ActionRead: everyone,
		ActionCreate: adminOnly, ActionDelete: adminOnly,
	},
	Commission: {ActionRead: salespersonOps},
	Dashboard:  {ActionRead: everyone},
	Reports:    {ActionRead: everyone},
}

// Allowed reports whether role may perform action on res. Unknown
// combinations are denied.
func Allowed(role shared.Role, res Resource, action Action) bool {
	set, ok := rules[res][action]
	if !ok {
		return false
	}
	_, ok = set[role]
	return ok
}

// Authorize returns ErrForbidden unless the caller may perform action on res.
func Authorize(caller shared.Caller, res Resource, action Action) error {
	if Allowed(caller.Role, res, action) {
		return nil
	}
	return shared.Forbidden("insufficient permissions")
}
