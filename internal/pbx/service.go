// Package pbx is the reporting facade: the read operations the bot and the
// HTTP API expose, composed from query-gateway calls. Data-layer failures are
// deliberately degraded to empty/zero results instead of propagating — a
// transient fault must never crash a chat interaction. Failures are still
// logged so operators can see them.
package pbx

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/phoenixpbx/pbxbot/internal/model"
)

// Gateway is the query surface the facade composes over.
type Gateway interface {
	CountCallsOn(ctx context.Context, date string) (int, error)
	SumDurationOn(ctx context.Context, date string) (int, error)
	SumRevenueOn(ctx context.Context, date string) (float64, error)
	CountActiveCustomers(ctx context.Context) (int, error)
	CountActiveTrunks(ctx context.Context) (int, error)
	ListRecentCalls(ctx context.Context, limit int) ([]model.Call, error)
	ListCustomers(ctx context.Context, limit, offset int) ([]model.Customer, error)
	SearchCalls(ctx context.Context, f model.CallFilter, limit int) ([]model.Call, error)
}

type Service struct {
	gw  Gateway
	log *zap.Logger
}

func NewService(gw Gateway, log *zap.Logger) *Service {
	return &Service{gw: gw, log: log}
}

// DashboardStats recomputes the full aggregate for today on every call.
// Each failed leg degrades to zero; the fields are never null.
func (s *Service) DashboardStats(ctx context.Context) model.DashboardStats {
	today := time.Now().UTC().Format("2006-01-02")
	var stats model.DashboardStats

	if n, err := s.gw.CountCallsOn(ctx, today); err != nil {
		s.log.Warn("dashboard: call count failed", zap.Error(err))
	} else {
		stats.TotalCalls = n
	}
	if sec, err := s.gw.SumDurationOn(ctx, today); err != nil {
		s.log.Warn("dashboard: duration sum failed", zap.Error(err))
	} else {
		stats.TotalDuration = int(math.Round(float64(sec) / 60))
	}
	if n, err := s.gw.CountActiveCustomers(ctx); err != nil {
		s.log.Warn("dashboard: customer count failed", zap.Error(err))
	} else {
		stats.ActiveCustomers = n
	}
	if v, err := s.gw.SumRevenueOn(ctx, today); err != nil {
		s.log.Warn("dashboard: revenue sum failed", zap.Error(err))
	} else {
		stats.RevenueToday = v
	}
	if n, err := s.gw.CountActiveTrunks(ctx); err != nil {
		s.log.Warn("dashboard: trunk count failed", zap.Error(err))
	} else {
		stats.ActiveTrunks = n
	}
	return stats
}

// RecentCalls returns up to limit calls, newest first; empty on failure.
func (s *Service) RecentCalls(ctx context.Context, limit int) []model.Call {
	calls, err := s.gw.ListRecentCalls(ctx, limit)
	if err != nil {
		s.log.Warn("recent calls query failed", zap.Error(err))
		return []model.Call{}
	}
	return calls
}

// Customers returns a page of customers, newest id first; empty on failure.
func (s *Service) Customers(ctx context.Context, limit, offset int) []model.Customer {
	customers, err := s.gw.ListCustomers(ctx, limit, offset)
	if err != nil {
		s.log.Warn("customer list query failed", zap.Error(err))
		return []model.Customer{}
	}
	return customers
}

// SearchCalls returns calls matching the filter, newest first; empty on
// failure. With an empty filter this reduces to RecentCalls.
func (s *Service) SearchCalls(ctx context.Context, f model.CallFilter, limit int) []model.Call {
	calls, err := s.gw.SearchCalls(ctx, f, limit)
	if err != nil {
		s.log.Warn("call search query failed", zap.Error(err))
		return []model.Call{}
	}
	return calls
}
