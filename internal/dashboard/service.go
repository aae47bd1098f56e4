package dashboard

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/pedizone/pedizone-crm/internal/rbac"
	"github.com/pedizone/pedizone-crm/internal/sales"
	"github.com/pedizone/pedizone-crm/internal/shared"
)

// SalesTotals sums sales in a scope created at or after since.
type SalesTotals interface {
	Totals(ctx context.Context, scope rbac.Scope, since time.Time) (sales.Totals, error)
}

// Counter counts rows of one resource in a scope.
type Counter interface {
	Count(ctx context.Context, scope rbac.Scope) (int, error)
}

// CollectionTotal sums collected amounts in a scope.
type CollectionTotal interface {
	Total(ctx context.Context, scope rbac.Scope) (decimal.Decimal, error)
}

// Stats is the body of GET /dashboard/stats. Role specific fields are
// omitted for other roles.
type Stats struct {
	TotalSales         int             `json:"total_sales"`
	TotalSalesAmount   decimal.Decimal `json:"total_sales_amount"`
	TotalVisits        int             `json:"total_visits"`
	TotalCollections   decimal.Decimal `json:"total_collections"`
	MonthlySalesAmount decimal.Decimal `json:"monthly_sales_amount"`
	CommissionEmoji    string          `json:"commission_emoji,omitempty"`
	CommissionLevel    string          `json:"commission_level,omitempty"`
	TeamSize           *int            `json:"team_size,omitempty"`
	TotalCustomers     *int            `json:"total_customers,omitempty"`
}

// Service computes dashboard figures over the same scopes the list
// endpoints use.
type Service struct {
	scopes      *rbac.Resolver
	sales       SalesTotals
	visits      Counter
	collections CollectionTotal
	customers   Counter
	now         func() time.Time
}

// NewService builds a Service. customers is only consulted for admins.
func NewService(scopes *rbac.Resolver, sales SalesTotals, visits Counter, collections CollectionTotal, customers Counter) *Service {
	return &Service{
		scopes:      scopes,
		sales:       sales,
		visits:      visits,
		collections: collections,
		customers:   customers,
		now:         time.Now,
	}
}

// Stats runs the independent aggregates concurrently.
func (s *Service) Stats(ctx context.Context, caller shared.Caller) (Stats, error) {
	scope, err := s.scopes.Resolve(ctx, caller, rbac.Dashboard)
	if err != nil {
		return Stats{}, err
	}
	monthStart := shared.MonthStart(s.now())

	var (
		stats     Stats
		all       sales.Totals
		month     sales.Totals
		customers int
	)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		all, err = s.sales.Totals(ctx, scope, time.Time{})
		return err
	})
	g.Go(func() error {
		var err error
		month, err = s.sales.Totals(ctx, scope, monthStart)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalVisits, err = s.visits.Count(ctx, scope)
		return err
	})
	g.Go(func() error {
		var err error
		stats.TotalCollections, err = s.collections.Total(ctx, scope)
		return err
	})
	if caller.Role == shared.RoleAdmin {
		g.Go(func() error {
			var err error
			customers, err = s.customers.Count(ctx, rbac.All())
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	stats.TotalSales = all.Count
	stats.TotalSalesAmount = all.Amount
	stats.MonthlySalesAmount = month.Amount

	switch caller.Role {
	case shared.RoleAdmin:
		stats.TotalCustomers = &customers
	case shared.RoleRegionalManager:
		size := len(scope.Values)
		stats.TeamSize = &size
	case shared.RoleSalesperson:
		tier := sales.TierFor(month.Amount)
		stats.CommissionEmoji = tier.Emoji
		stats.CommissionLevel = tier.Level
	}
	return stats, nil
}
