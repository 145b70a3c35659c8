package repository

import (
	"context"
	"database/sql"

	"github.com/phoenixpbx/pbxbot/internal/model"
)

// Gateway bundles the per-table repositories behind the single query surface
// the reporting facade consumes. It is the one data-access strategy in this
// deployment: direct MySQL, no HTTP proxy in between.
type Gateway struct {
	Calls     *CallRepo
	Customers *CustomerRepo
	Trunks    *TrunkRepo
}

func NewGateway(db *sql.DB) *Gateway {
	return &Gateway{
		Calls:     NewCallRepo(db),
		Customers: NewCustomerRepo(db),
		Trunks:    NewTrunkRepo(db),
	}
}

func (g *Gateway) CountCallsOn(ctx context.Context, date string) (int, error) {
	return g.Calls.CountOn(ctx, date)
}

func (g *Gateway) SumDurationOn(ctx context.Context, date string) (int, error) {
	return g.Calls.SumDurationOn(ctx, date)
}

func (g *Gateway) SumRevenueOn(ctx context.Context, date string) (float64, error) {
	return g.Calls.SumRevenueOn(ctx, date)
}

func (g *Gateway) CountActiveCustomers(ctx context.Context) (int, error) {
	return g.Customers.CountActive(ctx)
}

func (g *Gateway) CountActiveTrunks(ctx context.Context) (int, error) {
	return g.Trunks.CountActive(ctx)
}

func (g *Gateway) ListRecentCalls(ctx context.Context, limit int) ([]model.Call, error) {
	return g.Calls.ListRecent(ctx, limit)
}

func (g *Gateway) ListCustomers(ctx context.Context, limit, offset int) ([]model.Customer, error) {
	return g.Customers.List(ctx, limit, offset)
}

func (g *Gateway) SearchCalls(ctx context.Context, f model.CallFilter, limit int) ([]model.Call, error) {
	return g.Calls.Search(ctx, f, limit)
}
