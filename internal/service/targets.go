package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/qlpapp/qlp-server/internal/domain"
	"github.com/qlpapp/qlp-server/internal/normalize"
	"github.com/qlpapp/qlp-server/internal/store"
	"github.com/qlpapp/qlp-server/internal/validation"
)

// SaveTargetRequest sets the goals of one area. A nil goal clears it.
type SaveTargetRequest struct {
	Area            string `json:"area" validate:"required,max=200"`
	Headcount       *int   `json:"meta,omitempty" validate:"omitempty,gte=0"`
	ProtectedClass  *int   `json:"meta_pcd,omitempty" validate:"omitempty,gte=0"`
	YoungApprentice *int   `json:"meta_jovem,omitempty" validate:"omitempty,gte=0"`
}

// TargetService maintains the per-area goals.
type TargetService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewTargetService creates a target service.
func NewTargetService(store store.Store, validator *validation.Validator, logger *slog.Logger) *TargetService {
	return &TargetService{store: store, validator: validator, logger: orDiscard(logger), now: time.Now}
}

// Save replaces the goals of the request's area. The area name is repaired
// first so targets and roster records group under the same key.
func (s *TargetService) Save(ctx context.Context, req SaveTargetRequest) (*domain.AreaTarget, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req.Area = strings.TrimSpace(req.Area)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	target := domain.AreaTarget{
		Area:            normalize.Text(req.Area),
		Headcount:       req.Headcount,
		ProtectedClass:  req.ProtectedClass,
		YoungApprentice: req.YoungApprentice,
		UpdatedAt:       s.now().UTC(),
	}
	if err := s.store.UpsertTarget(ctx, target); err != nil {
		return nil, fmt.Errorf("save target: %w", err)
	}

	s.logger.Info("area target saved",
		"area", target.Area,
		"headcount", target.HeadcountGoal(),
		"protected_class", target.ProtectedClassGoal(),
		"young_apprentice", target.YoungApprenticeGoal(),
	)
	return &target, nil
}
