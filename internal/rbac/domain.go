package rbac

// Resource names a protected surface of the API.
type Resource string

const (
	Users       Resource = "users"
	Regions     Resource = "regions"
	Customers   Resource = "customers"
	Products    Resource = "products"
	Visits      Resource = "visits"
	Sales       Resource = "sales"
	Collections Resource = "collections"
	Documents   Resource = "documents"
	Commission  Resource = "commission"
	Dashboard   Resource = "dashboard"
	Reports     Resource = "reports"
)

// Action is an operation on a resource.
type Action string

const (
	ActionList   Action = "list"
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// ScopeKind selects how rows of a resource are filtered per caller.
type ScopeKind int

const (
	// ScopeNone shows every row to every authenticated caller.
	ScopeNone ScopeKind = iota
	// ScopeBySalesperson filters on the owning salesperson.
	ScopeBySalesperson
	// ScopeByRegion filters on the row's region.
	ScopeByRegion
)

// DeletionMode tells handlers whether delete removes the row.
type DeletionMode int

const (
	DeleteHard DeletionMode = iota
	DeleteSoft
)

// Descriptor is the catalog entry for a resource.
type Descriptor struct {
	Resource Resource
	Scope    ScopeKind
	Deletion DeletionMode
}

var catalog = map[Resource]Descriptor{
	Users:       {Resource: Users, Scope: ScopeByRegion},
	Regions:     {Resource: Regions, Scope: ScopeNone},
	Customers:   {Resource: Customers, Scope: ScopeByRegion},
	Products:    {Resource: Products, Scope: ScopeNone, Deletion: DeleteSoft},
	Visits:      {Resource: Visits, Scope: ScopeBySalesperson},
	Sales:       {Resource: Sales, Scope: ScopeBySalesperson},
	Collections: {Resource: Collections, Scope: ScopeBySalesperson},
	Documents:   {Resource: Documents, Scope: ScopeNone},
	Commission:  {Resource: Commission, Scope: ScopeBySalesperson},
	Dashboard:   {Resource: Dashboard, Scope: ScopeBySalesperson},
	Reports:     {Resource: Reports, Scope: ScopeBySalesperson},
}

// Describe returns the catalog entry for res.
func Describe(res Resource) (Descriptor, bool) {
	d, ok := catalog[res]
	return d, ok
}
