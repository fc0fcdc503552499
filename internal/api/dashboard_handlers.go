package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/qlpapp/qlp-server/internal/service"
)

func (s *Server) registerDashboardRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getDashboardStats",
		Method:      http.MethodGet,
		Path:        "/api/dashboard-stats",
		Summary:     "Dashboard statistics",
		Description: "Aggregates active headcount per area against targets, with legal quota thresholds and chart rows",
		Tags:        []string{"Dashboard"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleDashboardStats)
}

// DashboardOutput wraps the dashboard statistics for Huma.
type DashboardOutput struct {
	CacheControl string `header:"Cache-Control"`
	Body         *service.DashboardStats
}

func (s *Server) handleDashboardStats(ctx context.Context, _ *struct{}) (*DashboardOutput, error) {
	if _, err := GetUser(ctx); err != nil {
		return nil, err
	}

	stats, err := s.services.Dashboard.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardOutput{CacheControl: CacheNoStore, Body: stats}, nil
}
