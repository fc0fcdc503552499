package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/qlpapp/qlp-server/internal/domain"
	"github.com/qlpapp/qlp-server/internal/metrics"
	"github.com/qlpapp/qlp-server/internal/normalize"
	"github.com/qlpapp/qlp-server/internal/quota"
	"github.com/qlpapp/qlp-server/internal/store"
)

// FilterService lists the values offered by the roster filter dropdowns.
type FilterService struct {
	store  store.Store
	logger *slog.Logger
}

// NewFilterService creates a filter service.
func NewFilterService(store store.Store, logger *slog.Logger) *FilterService {
	return &FilterService{store: store, logger: orDiscard(logger)}
}

// Options returns the distinct areas, leaders and classifications in the roster.
// Areas and leaders are repaired before de-duplication, so two damaged spellings
// of one name collapse into a single option. Classifications are listed as stored.
func (s *FilterService) Options(ctx context.Context) (*domain.FilterOptions, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	areas, err := s.store.DistinctEmployeeValues(ctx, store.FieldArea)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	leaders, err := s.store.DistinctEmployeeValues(ctx, store.FieldLeader)
	if err != nil {
		return nil, fmt.Errorf("list leaders: %w", err)
	}
	classifications, err := s.store.DistinctEmployeeValues(ctx, store.FieldClassification)
	if err != nil {
		return nil, fmt.Errorf("list classifications: %w", err)
	}

	repaired := 0
	opts := &domain.FilterOptions{
		Areas:           repairedSet(areas, &repaired),
		Leaders:         repairedSet(leaders, &repaired),
		Classifications: uniqueSorted(classifications),
	}
	if repaired > 0 {
		metrics.TextRepairs.WithLabelValues(repairSourceFilters).Add(float64(repaired))
	}

	return opts, nil
}

// repairedSet repairs every value, then de-duplicates and sorts for display.
func repairedSet(values []string, repaired *int) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		fixed := normalize.Text(v)
		if fixed != v {
			*repaired++
		}
		out = append(out, fixed)
	}
	return uniqueSorted(out)
}

func uniqueSorted(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	quota.SortAreas(out)
	return slices.Clip(out)
}
