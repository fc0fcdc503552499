package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qlpapp/qlp-server/internal/auth"
	"github.com/qlpapp/qlp-server/internal/domain"
	"github.com/qlpapp/qlp-server/internal/logger"
	"github.com/qlpapp/qlp-server/internal/quota"
	"github.com/qlpapp/qlp-server/internal/service"
	"github.com/qlpapp/qlp-server/internal/store/sqlstore"
	"github.com/qlpapp/qlp-server/internal/validation"
)

const (
	adminCPF = "11122233344"
	userCPF  = "33344455566"
)

// testServer wraps the API server for handler tests.
type testServer struct {
	*Server
	api    humatest.TestAPI
	st     *sqlstore.Store
	tokens *auth.TokenService
}

// testEnvelope mirrors Envelope and ErrorEnvelope for decoding responses.
type testEnvelope[T any] struct {
	V       int             `json:"v"`
	Success bool            `json:"success"`
	Data    T               `json:"data"`
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Details json.RawMessage `json:"details"`
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) testEnvelope[T] {
	t.Helper()
	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env), resp.Body.String())
	return env
}

func setupTestServer(t *testing.T, opts ...func(*Options)) *testServer {
	t.Helper()

	st, err := sqlstore.Open(context.Background(), sqlstore.Config{
		Dialect: sqlstore.DialectSQLite,
		DSN:     filepath.Join(t.TempDir(), "qlp.db"),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	tokens, err := auth.NewTokenService([]byte(strings.Repeat("k", 32)), time.Hour)
	require.NoError(t, err)

	hasher, err := auth.NewHasher(auth.HashParams{MemoryKiB: 64, Iterations: 1, Parallelism: 1})
	require.NoError(t, err)
	creds, err := auth.NewCredentialTable(hasher, auth.DefaultFixedCredentials)
	require.NoError(t, err)

	log := logger.Discard().Logger
	services := &Services{
		Roster:    service.NewRosterService(st, log),
		Filters:   service.NewFilterService(st, log),
		Dashboard: service.NewDashboardService(st, quota.DefaultOptions(), log),
		Targets:   service.NewTargetService(st, validation.New(), log),
		Auth:      service.NewAuthService(st, creds, tokens, "123456", log),
		Photos:    service.NewPhotoService(st, 1<<20, log),
	}

	o := Options{
		Version:        "test",
		CORSOrigins:    []string{"*"},
		LoginPerMinute: 600,
		LoginBurst:     100,
		PhotoMaxBytes:  1 << 20,
	}
	for _, fn := range opts {
		fn(&o)
	}

	s := NewServer(st, services, o, slog.New(slog.DiscardHandler))
	t.Cleanup(s.Close)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
		st:     st,
		tokens: tokens,
	}
}

func (ts *testServer) bearer(t *testing.T, user *domain.User) string {
	t.Helper()
	token, _, err := ts.tokens.GenerateAccessToken(user)
	require.NoError(t, err)
	return "Authorization: Bearer " + token
}

func (ts *testServer) adminAuth(t *testing.T) string {
	return ts.bearer(t, &domain.User{CPF: adminCPF, Name: "Administrador Master", Profile: domain.ProfileAdmin})
}

func (ts *testServer) userAuth(t *testing.T) string {
	return ts.bearer(t, &domain.User{CPF: userCPF, Name: "Colaborador de Teste", Profile: domain.ProfileUser})
}

func (ts *testServer) seed(t *testing.T, employees ...domain.Employee) {
	t.Helper()
	require.NoError(t, ts.st.UpsertEmployees(context.Background(), employees))
}

func TestServer_MetricsEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	ts.api.Get("/health")

	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "qlp_http_request_duration_seconds")
}

func TestServer_CORSPreflight(t *testing.T) {
	ts := setupTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/login", nil)
	req.Header.Set("Origin", "http://intranet.local")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	ts.ServeHTTP(rec, req)

	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestServer_UnknownRoute(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/nope")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
