package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/qlpapp/qlp-server/internal/domain"
	"github.com/qlpapp/qlp-server/internal/store"
)

func (s *Server) registerRosterRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listEmployees",
		Method:      http.MethodGet,
		Path:        "/api/colaboradores",
		Summary:     "List roster",
		Description: "Returns one page of normalized roster records, filtered and ordered by name",
		Tags:        []string{"Roster"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListEmployees)

	huma.Register(s.api, huma.Operation{
		OperationID: "getFilterOptions",
		Method:      http.MethodGet,
		Path:        "/api/filtros",
		Summary:     "Filter options",
		Description: "Returns the distinct areas, leaders and classifications offered by the roster filters",
		Tags:        []string{"Roster"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleFilterOptions)
}

// ListEmployeesInput contains the roster query parameters.
type ListEmployeesInput struct {
	Search         string `query:"search" maxLength:"200" doc:"Case-insensitive name substring"`
	Status         string `query:"status" maxLength:"100" doc:"Status; AFASTADO and DESLIGADOS match their variants"`
	Area           string `query:"area" maxLength:"200" doc:"Exact area"`
	Leader         string `query:"lider" maxLength:"200" doc:"Exact leader"`
	Classification string `query:"classificacao" maxLength:"200" doc:"Exact classification"`
	CPF            string `query:"cpf_filtro" maxLength:"20" doc:"Exact CPF; overrides every other filter"`
	Page           int    `query:"page" minimum:"0" default:"0" doc:"Zero-based page index"`
}

// ListEmployeesOutput wraps one roster page for Huma.
type ListEmployeesOutput struct {
	Body *store.PageResult[domain.Employee]
}

func (s *Server) handleListEmployees(ctx context.Context, input *ListEmployeesInput) (*ListEmployeesOutput, error) {
	if _, err := GetUser(ctx); err != nil {
		return nil, err
	}

	filter := domain.RosterFilter{
		CPF:            input.CPF,
		Search:         input.Search,
		Status:         input.Status,
		Area:           input.Area,
		Leader:         input.Leader,
		Classification: input.Classification,
	}

	result, err := s.services.Roster.List(ctx, filter, store.NewPage(input.Page+1))
	if err != nil {
		return nil, err
	}

	return &ListEmployeesOutput{Body: result}, nil
}

// FilterOptionsOutput wraps the filter options for Huma.
type FilterOptionsOutput struct {
	Body *domain.FilterOptions
}

func (s *Server) handleFilterOptions(ctx context.Context, _ *struct{}) (*FilterOptionsOutput, error) {
	if _, err := GetUser(ctx); err != nil {
		return nil, err
	}

	opts, err := s.services.Filters.Options(ctx)
	if err != nil {
		return nil, err
	}

	return &FilterOptionsOutput{Body: opts}, nil
}
