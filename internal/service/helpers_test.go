package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/qlpapp/qlp-server/internal/auth"
	"github.com/qlpapp/qlp-server/internal/domain"
	"github.com/qlpapp/qlp-server/internal/store"
	"github.com/qlpapp/qlp-server/internal/store/sqlstore"
)

var errStoreDown = errors.New("connection refused")

func newTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	s, err := sqlstore.Open(context.Background(), sqlstore.Config{
		Dialect: sqlstore.DialectSQLite,
		DSN:     filepath.Join(t.TempDir(), "qlp.db"),
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seed(t *testing.T, s store.Store, employees ...domain.Employee) {
	t.Helper()
	require.NoError(t, s.UpsertEmployees(context.Background(), employees))
}

func employee(cpf, name, area, status string) domain.Employee {
	return domain.Employee{CPF: cpf, Name: name, Area: area, Status: status}
}

func newTestTokenService(t *testing.T) *auth.TokenService {
	t.Helper()
	tokens, err := auth.NewTokenService([]byte(strings.Repeat("q", 32)), time.Hour)
	require.NoError(t, err)
	return tokens
}

// failingStore wraps a working store and fails the selected operations.
type failingStore struct {
	store.Store
	failTargets bool
	failActive  bool
	failLookup  bool
}

func (f *failingStore) ListTargets(ctx context.Context) ([]domain.AreaTarget, error) {
	if f.failTargets {
		return nil, errStoreDown
	}
	return f.Store.ListTargets(ctx)
}

func (f *failingStore) ListEmployeesByStatus(ctx context.Context, status string) ([]domain.Employee, error) {
	if f.failActive {
		return nil, errStoreDown
	}
	return f.Store.ListEmployeesByStatus(ctx, status)
}

func (f *failingStore) GetEmployee(ctx context.Context, cpf string) (*domain.Employee, error) {
	if f.failLookup {
		return nil, errStoreDown
	}
	return f.Store.GetEmployee(ctx, cpf)
}
