package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qlpapp/qlp-server/internal/domain"
)

func TestSaveTarget_Admin(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/metas", ts.adminAuth(t), map[string]any{
		"area": "  PRODUCAO ", "meta": 10, "meta_pcd": 1,
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	env := decode[domain.AreaTarget](t, resp)
	assert.True(t, env.Success)
	assert.Equal(t, "PRODUCAO", env.Data.Area)
	assert.Equal(t, 10, env.Data.HeadcountGoal())
	assert.Nil(t, env.Data.YoungApprentice)

	// Last write wins for the same area.
	resp = ts.api.Post("/api/metas", ts.adminAuth(t), map[string]any{"area": "PRODUCAO", "meta": 12})
	require.Equal(t, http.StatusOK, resp.Code)

	targets, err := ts.st.ListTargets(context.Background())
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, 12, targets[0].HeadcountGoal())
}

func TestSaveTarget_Permissions(t *testing.T) {
	ts := setupTestServer(t)
	body := map[string]any{"area": "PRODUCAO", "meta": 1}

	resp := ts.api.Post("/api/metas", body)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)

	resp = ts.api.Post("/api/metas", ts.userAuth(t), body)
	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.Equal(t, "FORBIDDEN", decode[any](t, resp).Code)
}

func TestSaveTarget_Validation(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/metas", ts.adminAuth(t), map[string]any{"area": "PRODUCAO", "meta": -1})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	env := decode[any](t, resp)
	assert.Equal(t, "VALIDATION", env.Code)
	assert.Contains(t, string(env.Details), "meta")

	resp = ts.api.Post("/api/metas", ts.adminAuth(t), map[string]any{"area": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
