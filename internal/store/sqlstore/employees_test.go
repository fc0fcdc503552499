package sqlstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qlpapp/qlp-server/internal/domain"
	"github.com/qlpapp/qlp-server/internal/store"
)

func seedEmployees(t *testing.T, s *Store, employees ...domain.Employee) {
	t.Helper()
	require.NoError(t, s.UpsertEmployees(context.Background(), employees))
}

func TestUpsertEmployees_AndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := domain.Employee{
		CPF:            "11122233344",
		Name:           "MARIA SILVA",
		Area:           "SEGURAN?A",
		Leader:         "JOAO",
		Status:         domain.StatusActive,
		ProtectedClass: "SIM",
		TenureDays:     420,
	}
	e.Actions[0] = domain.DevelopmentAction{Competency: "COMUNICA??O", Status: "EM ANDAMENTO", Description: "Curso"}
	e.Actions[6] = domain.DevelopmentAction{Competency: "LIDERANCA"}
	seedEmployees(t, s, e)

	got, err := s.GetEmployee(ctx, "11122233344")
	require.NoError(t, err)

	assert.Equal(t, "MARIA SILVA", got.Name)
	assert.Equal(t, "SEGURAN?A", got.Area, "store returns raw values")
	assert.Equal(t, 420, got.TenureDays)
	assert.Equal(t, e.Actions, got.Actions)
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestGetEmployee_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetEmployee(context.Background(), "00000000000")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpsertEmployees_ReplacesButKeepsPhoto(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedEmployees(t, s, domain.Employee{CPF: "1", Name: "OLD", Status: domain.StatusActive})
	require.NoError(t, s.UpdateEmployeePhoto(ctx, "1", "aGVsbG8=", "LEHV6nWB2yk8"))

	seedEmployees(t, s, domain.Employee{CPF: "1", Name: "NEW", Status: "AFASTADO"})

	got, err := s.GetEmployee(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "NEW", got.Name)
	assert.Equal(t, "AFASTADO", got.Status)
	assert.Equal(t, "aGVsbG8=", got.Photo)
	assert.Equal(t, "LEHV6nWB2yk8", got.PhotoHash)
}

func TestUpsertEmployees_RejectsMissingCPF(t *testing.T) {
	s := newTestStore(t)

	err := s.UpsertEmployees(context.Background(), []domain.Employee{{CPF: "1"}, {Name: "NO KEY"}})
	assert.ErrorIs(t, err, store.ErrInvalidInput)

	// the whole batch is rolled back
	_, err = s.GetEmployee(context.Background(), "1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateEmployeePhoto_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.UpdateEmployeePhoto(context.Background(), "404", "x", "")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListEmployees_Filters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedEmployees(t, s,
		domain.Employee{CPF: "1", Name: "ANA PAULA", Area: "VENDAS", Leader: "CARLOS", Status: "ATIVO", Classification: "A"},
		domain.Employee{CPF: "2", Name: "BRUNO LIMA", Area: "VENDAS", Leader: "CARLOS", Status: "AFASTAMENTO", Classification: "B"},
		domain.Employee{CPF: "3", Name: "CARLA ANA", Area: "LOGISTICA", Leader: "DIANA", Status: "AFASTADO", Classification: "A"},
		domain.Employee{CPF: "4", Name: "DANIEL", Area: "LOGISTICA", Leader: "DIANA", Status: "DESPEDIDA", Classification: "C"},
		domain.Employee{CPF: "5", Name: "EDUARDO", Area: "VENDAS", Leader: "DIANA", Status: "DESLIGADOS", Classification: "A"},
	)

	tests := []struct {
		name   string
		filter domain.RosterFilter
		want   []string
	}{
		{"no filter", domain.RosterFilter{}, []string{"1", "2", "3", "4", "5"}},
		{"search is case-insensitive substring", domain.RosterFilter{Search: "ana"}, []string{"1", "3"}},
		{"on leave covers both spellings", domain.RosterFilter{Status: "AFASTADO"}, []string{"2", "3"}},
		{"terminated covers both spellings", domain.RosterFilter{Status: "DESLIGADOS"}, []string{"4", "5"}},
		{"other status is equality", domain.RosterFilter{Status: "ATIVO"}, []string{"1"}},
		{"area", domain.RosterFilter{Area: "VENDAS"}, []string{"1", "2", "5"}},
		{"leader", domain.RosterFilter{Leader: "DIANA"}, []string{"3", "4", "5"}},
		{"classification", domain.RosterFilter{Classification: "A"}, []string{"1", "3", "5"}},
		{"combined", domain.RosterFilter{Area: "VENDAS", Leader: "CARLOS", Status: "AFASTADO"}, []string{"2"}},
		{"cpf overrides others", domain.RosterFilter{CPF: "4", Area: "VENDAS", Search: "zzz"}, []string{"4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := s.ListEmployees(ctx, tt.filter, store.NewPage(1))
			require.NoError(t, err)

			cpfs := make([]string, 0, len(got))
			for _, e := range got {
				cpfs = append(cpfs, e.CPF)
			}
			assert.Equal(t, tt.want, cpfs)
			assert.Equal(t, len(tt.want), total)
		})
	}
}

func TestListEmployees_Pagination(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var batch []domain.Employee
	for i := range 65 {
		batch = append(batch, domain.Employee{
			CPF:    fmt.Sprintf("%011d", i),
			Name:   fmt.Sprintf("PESSOA %03d", i),
			Status: domain.StatusActive,
		})
	}
	seedEmployees(t, s, batch...)

	page1, total, err := s.ListEmployees(ctx, domain.RosterFilter{}, store.NewPage(1))
	require.NoError(t, err)
	assert.Equal(t, 65, total)
	require.Len(t, page1, store.RosterPageSize)
	assert.Equal(t, "PESSOA 000", page1[0].Name)

	page3, total, err := s.ListEmployees(ctx, domain.RosterFilter{}, store.NewPage(3))
	require.NoError(t, err)
	assert.Equal(t, 65, total)
	require.Len(t, page3, 5)
	assert.Equal(t, "PESSOA 060", page3[0].Name)

	beyond, total, err := s.ListEmployees(ctx, domain.RosterFilter{}, store.NewPage(9))
	require.NoError(t, err)
	assert.Equal(t, 65, total)
	assert.Empty(t, beyond)
}

func TestListEmployeesByStatus(t *testing.T) {
	s := newTestStore(t)

	seedEmployees(t, s,
		domain.Employee{CPF: "1", Name: "B", Status: "ATIVO"},
		domain.Employee{CPF: "2", Name: "A", Status: "ATIVO"},
		domain.Employee{CPF: "3", Name: "C", Status: "AFASTADO"},
	)

	got, err := s.ListEmployeesByStatus(context.Background(), domain.StatusActive)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Name)
	assert.Equal(t, "B", got[1].Name)
}

func TestDistinctEmployeeValues(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedEmployees(t, s,
		domain.Employee{CPF: "1", Area: "VENDAS", Leader: "X"},
		domain.Employee{CPF: "2", Area: "VENDAS"},
		domain.Employee{CPF: "3", Area: "COMPRAS", Classification: "A"},
	)

	areas, err := s.DistinctEmployeeValues(ctx, store.FieldArea)
	require.NoError(t, err)
	assert.Equal(t, []string{"COMPRAS", "VENDAS"}, areas)

	leaders, err := s.DistinctEmployeeValues(ctx, store.FieldLeader)
	require.NoError(t, err)
	assert.Equal(t, []string{"X"}, leaders)

	_, err = s.DistinctEmployeeValues(ctx, store.EmployeeField("salary"))
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}
