package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/qlpapp/qlp-server/internal/color"
	"github.com/qlpapp/qlp-server/internal/domain"
	"github.com/qlpapp/qlp-server/internal/metrics"
	"github.com/qlpapp/qlp-server/internal/normalize"
	"github.com/qlpapp/qlp-server/internal/store"
)

// Sources for the text repair counter.
const (
	repairSourceRoster  = "roster"
	repairSourceFilters = "filters"
	repairSourceLogin   = "login"
)

// RosterService serves the paginated personnel listing.
type RosterService struct {
	store  store.Store
	logger *slog.Logger
}

// NewRosterService creates a roster service.
func NewRosterService(store store.Store, logger *slog.Logger) *RosterService {
	return &RosterService{store: store, logger: orDiscard(logger)}
}

// List returns one page of roster records matching filter, ordered by name,
// with free-text fields repaired. Total is the exact count across all pages.
func (s *RosterService) List(ctx context.Context, filter domain.RosterFilter, page store.Page) (*store.PageResult[domain.Employee], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	filter = trimFilter(filter)
	page.Validate()

	employees, total, err := s.store.ListEmployees(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}

	repaired := 0
	for i := range employees {
		var n int
		employees[i], n = normalize.Employee(employees[i])
		repaired += n
		if employees[i].Photo == "" {
			employees[i].AvatarColor = color.ForKey(employees[i].CPF)
		}
	}
	if repaired > 0 {
		metrics.TextRepairs.WithLabelValues(repairSourceRoster).Add(float64(repaired))
	}

	s.logger.Debug("roster listed",
		"page", page.Number,
		"returned", len(employees),
		"total", total,
		"repaired_fields", repaired,
	)

	result := store.NewPageResult(employees, page, total)
	return &result, nil
}

// trimFilter drops surrounding whitespace and reduces the CPF filter to digits.
func trimFilter(f domain.RosterFilter) domain.RosterFilter {
	f.CPF = DigitsOnly(f.CPF)
	f.Search = strings.TrimSpace(f.Search)
	f.Status = strings.TrimSpace(f.Status)
	f.Area = strings.TrimSpace(f.Area)
	f.Leader = strings.TrimSpace(f.Leader)
	f.Classification = strings.TrimSpace(f.Classification)
	return f
}

// DigitsOnly strips every non-digit rune, e.g. "111.222.333-44" -> "11122233344".
func DigitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

func orDiscard(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return logger
}
