package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qlpapp/qlp-server/internal/domain"
	"github.com/qlpapp/qlp-server/internal/store"
)

func seedRoster(t *testing.T, ts *testServer) {
	t.Helper()
	ts.seed(t,
		domain.Employee{CPF: "00000000001", Name: "ANA LIMA", Area: "PRODUCAO", Leader: "CARLOS", Status: "ATIVO", Classification: "A"},
		domain.Employee{CPF: "00000000002", Name: "BRUNO REIS", Area: "LOGISTICA", Leader: "DENISE", Status: "AFASTAMENTO", Classification: "B"},
		domain.Employee{CPF: "00000000003", Name: "CAIO NUNES", Area: "PRODUCAO", Leader: "CARLOS", Status: "DESPEDIDA"},
	)
}

func TestListEmployees_RequiresAuth(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/colaboradores")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	env := decode[any](t, resp)
	assert.False(t, env.Success)
	assert.Equal(t, "UNAUTHORIZED", env.Code)
}

func TestListEmployees_InvalidToken(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/colaboradores", "Authorization: Bearer v4.local.garbage")
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestListEmployees_Filters(t *testing.T) {
	ts := setupTestServer(t)
	seedRoster(t, ts)
	authz := ts.userAuth(t)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"all ordered by name", "", []string{"ANA LIMA", "BRUNO REIS", "CAIO NUNES"}},
		{"area", "?area=PRODUCAO", []string{"ANA LIMA", "CAIO NUNES"}},
		{"leader", "?lider=DENISE", []string{"BRUNO REIS"}},
		{"search is case-insensitive", "?search=nunes", []string{"CAIO NUNES"}},
		{"on-leave group", "?status=AFASTADO", []string{"BRUNO REIS"}},
		{"terminated group", "?status=DESLIGADOS", []string{"CAIO NUNES"}},
		{"classification", "?classificacao=A", []string{"ANA LIMA"}},
		{"cpf overrides other filters", "?cpf_filtro=00000000002&area=PRODUCAO", []string{"BRUNO REIS"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Get("/api/colaboradores"+tt.query, authz)
			require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

			env := decode[store.PageResult[domain.Employee]](t, resp)
			names := make([]string, 0, len(env.Data.Items))
			for _, e := range env.Data.Items {
				names = append(names, e.Name)
			}
			assert.Equal(t, tt.want, names)
			assert.Equal(t, len(tt.want), env.Data.Total)
			assert.Equal(t, 1, env.Data.Page)
		})
	}
}

func TestListEmployees_Paging(t *testing.T) {
	ts := setupTestServer(t)

	var employees []domain.Employee
	for i := range 35 {
		employees = append(employees, domain.Employee{
			CPF:    fmtCPF(i),
			Name:   "PESSOA " + fmtCPF(i),
			Area:   "PRODUCAO",
			Status: "ATIVO",
		})
	}
	ts.seed(t, employees...)

	resp := ts.api.Get("/api/colaboradores?page=1", ts.userAuth(t))
	require.Equal(t, http.StatusOK, resp.Code)

	env := decode[store.PageResult[domain.Employee]](t, resp)
	assert.Len(t, env.Data.Items, 5)
	assert.Equal(t, 35, env.Data.Total)
	assert.Equal(t, 2, env.Data.Page)
	assert.Equal(t, 30, env.Data.PageSize)
	assert.Equal(t, 2, env.Data.TotalPages)
}

func TestListEmployees_NegativePage(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/colaboradores?page=-1", ts.userAuth(t))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Equal(t, "VALIDATION", decode[any](t, resp).Code)
}

func TestFilterOptions(t *testing.T) {
	ts := setupTestServer(t)
	seedRoster(t, ts)

	resp := ts.api.Get("/api/filtros", ts.userAuth(t))
	require.Equal(t, http.StatusOK, resp.Code)

	env := decode[domain.FilterOptions](t, resp)
	assert.Equal(t, []string{"LOGISTICA", "PRODUCAO"}, env.Data.Areas)
	assert.Equal(t, []string{"CARLOS", "DENISE"}, env.Data.Leaders)
	assert.Equal(t, []string{"A", "B"}, env.Data.Classifications)
}

func fmtCPF(i int) string {
	const digits = "0123456789"
	b := []byte("900000000")
	b = append(b, digits[i/10], digits[i%10])
	return string(b)
}
