package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissing = errors.New("missing")

func TestObserveStore_ExpectedErrorCountsAsOK(t *testing.T) {
	before := testutil.CollectAndCount(StoreOperationDuration)

	ObserveStore("test_get", time.Now(), errMissing, errMissing)
	ObserveStore("test_get", time.Now(), errors.New("boom"), errMissing)

	// one new series per outcome
	assert.Equal(t, before+2, testutil.CollectAndCount(StoreOperationDuration))
}

func TestMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/items/42", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	out := httptest.NewRecorder()
	Handler().ServeHTTP(out, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := out.Body.String()
	assert.True(t, strings.Contains(body, `route="/api/items/{id}"`), "route pattern label missing")
	assert.True(t, strings.Contains(body, `status="418"`), "status label missing")
}
