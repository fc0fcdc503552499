package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/qlpapp/qlp-server/internal/domain"
	"github.com/qlpapp/qlp-server/internal/service"
)

func (s *Server) registerTargetRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID:  "saveTarget",
		Method:       http.MethodPost,
		Path:         "/api/metas",
		Summary:      "Save area targets",
		Description:  "Creates or replaces the headcount, protected-class and apprentice goals of an area (admin only)",
		Tags:         []string{"Targets"},
		Security:     []map[string][]string{{"bearer": {}}},
		MaxBodyBytes: DefaultMaxBodyBytes,
	}, s.handleSaveTarget)
}

// SaveTargetInput wraps the target request for Huma.
type SaveTargetInput struct {
	Body service.SaveTargetRequest
}

// TargetOutput wraps the stored target for Huma.
type TargetOutput struct {
	Body *domain.AreaTarget
}

func (s *Server) handleSaveTarget(ctx context.Context, input *SaveTargetInput) (*TargetOutput, error) {
	if _, err := RequireAdmin(ctx); err != nil {
		return nil, err
	}

	target, err := s.services.Targets.Save(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &TargetOutput{Body: target}, nil
}
