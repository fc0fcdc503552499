package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/qlpapp/qlp-server/internal/domain"
	"github.com/qlpapp/qlp-server/internal/metrics"
	"github.com/qlpapp/qlp-server/internal/quota"
	"github.com/qlpapp/qlp-server/internal/store"
)

// DashboardStats is the quota overview shown on the dashboard.
type DashboardStats struct {
	Stats       map[string]*domain.AreaStat `json:"stats"`
	Areas       []string                    `json:"areas"`
	TotalActive int                         `json:"total_active"`
	Thresholds  quota.Thresholds            `json:"thresholds"`
	Report      quota.Report                `json:"report"`
}

// DashboardService reconciles active headcount against the area targets.
type DashboardService struct {
	store  store.Store
	opts   quota.Options
	logger *slog.Logger
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(store store.Store, opts quota.Options, logger *slog.Logger) *DashboardService {
	return &DashboardService{store: store, opts: opts, logger: orDiscard(logger)}
}

// Stats aggregates the active roster per area. A failure to read either the
// roster or the targets fails the whole call; partial stats are never returned.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	targets, err := s.store.ListTargets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list targets: %w", err)
	}
	active, err := s.store.ListEmployeesByStatus(ctx, domain.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("list active employees: %w", err)
	}

	result := quota.Aggregate(active, targets, s.opts)
	if result.Skipped > 0 {
		metrics.AggregationSkipped.Add(float64(result.Skipped))
		s.logger.Warn("active records skipped during aggregation", "count", result.Skipped)
	}
	metrics.ActiveEmployees.Set(float64(result.TotalActive))

	return &DashboardStats{
		Stats:       result.Stats,
		Areas:       result.Areas,
		TotalActive: result.TotalActive,
		Thresholds:  quota.ComputeThresholds(result.TotalActive),
		Report:      quota.BuildReport(result),
	}, nil
}
