package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qlpapp/qlp-server/internal/domain"
)

func TestLogin_FixedAdmin(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/login", map[string]any{
		"cpf":   "111.222.333-44",
		"senha": "123456",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decode[AuthResponse](t, resp)
	assert.True(t, env.Success)
	assert.Equal(t, 1, env.V)
	assert.Equal(t, domain.ProfileAdmin, env.Data.User.Profile)
	assert.Equal(t, adminCPF, env.Data.User.CPF)
	assert.Equal(t, "Bearer", env.Data.TokenType)
	assert.NotEmpty(t, env.Data.AccessToken)

	// The issued token opens protected routes.
	list := ts.api.Get("/api/filtros", "Authorization: Bearer "+env.Data.AccessToken)
	assert.Equal(t, http.StatusOK, list.Code)
}

func TestLogin_RosterFallback(t *testing.T) {
	ts := setupTestServer(t)
	ts.seed(t, domain.Employee{CPF: "98765432100", Name: "MARIA SOUZA", Area: "LOGISTICA", Status: "ATIVO"})

	resp := ts.api.Post("/api/login", map[string]any{"cpf": "98765432100", "senha": "123456"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decode[AuthResponse](t, resp)
	assert.Equal(t, domain.ProfileUser, env.Data.User.Profile)
	assert.Equal(t, "MARIA SOUZA", env.Data.User.Name)
}

func TestLogin_WrongPassword(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/login", map[string]any{"cpf": adminCPF, "senha": "errada"})
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	env := decode[any](t, resp)
	assert.False(t, env.Success)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Code)
	assert.Equal(t, "CPF ou senha incorretos", env.Error)
}

func TestLogin_MissingFields(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/login", map[string]any{"cpf": "", "senha": ""})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "VALIDATION", decode[any](t, resp).Code)
}

func TestLogin_RateLimited(t *testing.T) {
	ts := setupTestServer(t, func(o *Options) {
		o.LoginPerMinute = 1
		o.LoginBurst = 2
	})

	body := map[string]any{"cpf": adminCPF, "senha": "errada"}
	for range 2 {
		resp := ts.api.Post("/api/login", "X-Forwarded-For: 10.0.0.9", body)
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	}

	resp := ts.api.Post("/api/login", "X-Forwarded-For: 10.0.0.9", body)
	assert.Equal(t, http.StatusTooManyRequests, resp.Code)

	env := decode[any](t, resp)
	assert.False(t, env.Success)
	assert.Equal(t, "RATE_LIMITED", env.Code)

	// Other clients keep their own budget.
	other := ts.api.Post("/api/login", "X-Forwarded-For: 10.0.0.10", body)
	assert.Equal(t, http.StatusUnauthorized, other.Code)
}
