package providers

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/samber/do/v2"

	"github.com/qlpapp/qlp-server/internal/config"
	"github.com/qlpapp/qlp-server/internal/logger"
	"github.com/qlpapp/qlp-server/internal/store/sqlstore"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*sqlstore.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dialect, err := sqlstore.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}

	if dialect == sqlstore.DialectSQLite {
		if err := os.MkdirAll(cfg.App.DataDir, 0o700); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), storeOpenTimeout)
	defer cancel()

	db, err := sqlstore.Open(ctx, sqlstore.Config{
		Dialect:      dialect,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	}, log.Component("store"))
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "driver", dialect)

	return &StoreHandle{Store: db}, nil
}

// ProvideSlogLogger provides access to the underlying slog.Logger for packages that need it.
func ProvideSlogLogger(i do.Injector) (*slog.Logger, error) {
	log := do.MustInvoke[*logger.Logger](i)
	return log.Logger, nil
}
