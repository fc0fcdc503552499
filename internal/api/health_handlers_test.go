package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheck_Success(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, CacheNoStore, resp.Header().Get("Cache-Control"))

	env := decode[HealthResponse](t, resp)
	assert.True(t, env.Success)
	assert.Equal(t, "healthy", env.Data.Status)
	assert.Equal(t, "healthy", env.Data.Components["database"].Status)
}

func TestHealthCheck_StoreClosed(t *testing.T) {
	ts := setupTestServer(t)
	_ = ts.st.Close()

	resp := ts.api.Get("/health")
	assert.Equal(t, http.StatusOK, resp.Code)

	env := decode[HealthResponse](t, resp)
	assert.Equal(t, "unhealthy", env.Data.Status)
	assert.Equal(t, "database unreachable", env.Data.Components["database"].Message)
}
