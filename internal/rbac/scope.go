package rbac

import (
	"context"
	"fmt"
	"slices"

	"github.com/pedizone/pedizone-crm/internal/platform/db"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

// Scope is the row filter a caller is subject to for one resource.
// A restricted scope with no values matches nothing.
type Scope struct {
	Unrestricted bool
	Values       []string
}

// All is the scope of callers that see every row.
func All() Scope { return Scope{Unrestricted: true} }

// Only restricts rows to the given values.
func Only(values ...string) Scope { return Scope{Values: values} }

// Apply adds the scope predicate on column to w.
func (s Scope) Apply(w *db.Where, column string) {
	if s.Unrestricted {
		return
	}
	w.In(column, s.Values)
}

// Permits reports whether a row with the given column value is visible.
func (s Scope) Permits(value string) bool {
	if s.Unrestricted {
		return true
	}
	return value != "" && slices.Contains(s.Values, value)
}

// Narrow intersects the scope with an explicit filter value. An empty
// filter leaves the scope unchanged.
func (s Scope) Narrow(value string) Scope {
	if value == "" {
		return s
	}
	if s.Permits(value) {
		return Only(value)
	}
	return Only()
}

// TeamDirectory lists the salespersons assigned to a region.
type TeamDirectory interface {
	SalespersonIDs(ctx context.Context, regionID string) ([]string, error)
}

// Resolver turns a caller into the scope for a resource.
type Resolver struct {
	team TeamDirectory
}

// NewResolver constructs a resolver backed by team.
func NewResolver(team TeamDirectory) *Resolver {
	return &Resolver{team: team}
}

// Resolve computes the caller's scope on res.
func (r *Resolver) Resolve(ctx context.Context, caller shared.Caller, res Resource) (Scope, error) {
	desc, ok := Describe(res)
	if !ok {
		return Scope{}, fmt.Errorf("rbac: unknown resource %q", res)
	}
	if desc.Scope == ScopeNone || caller.Role == shared.RoleAdmin {
		return All(), nil
	}
	switch desc.Scope {
	case ScopeByRegion:
		if !caller.HasRegion() {
			return Only(), nil
		}
		return Only(caller.RegionID), nil
	case ScopeBySalesperson:
		switch caller.Role {
		case shared.RoleSalesperson:
			return Only(caller.ID), nil
		case shared.RoleRegionalManager:
			if !caller.HasRegion() {
				return Only(), nil
			}
			ids, err := r.team.SalespersonIDs(ctx, caller.RegionID)
			if err != nil {
				return Scope{}, fmt.Errorf("rbac: resolve team: %w", err)
			}
			return Only(ids...), nil
		}
	}
	return Only(), nil
}
