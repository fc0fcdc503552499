package providers

import (
	"context"
	"errors"
	"net/http"

	"github.com/samber/do/v2"

	"github.com/qlpapp/qlp-server/internal/api"
	"github.com/qlpapp/qlp-server/internal/config"
	"github.com/qlpapp/qlp-server/internal/logger"
	"github.com/qlpapp/qlp-server/internal/service"
)

// HTTPServerHandle wraps http.Server with Shutdownable.
type HTTPServerHandle struct {
	*http.Server
	api *api.Server
}

// Shutdown implements do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	defer h.api.Close()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer provides the HTTP server and starts listening.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	services := &api.Services{
		Roster:    do.MustInvoke[*service.RosterService](i),
		Filters:   do.MustInvoke[*service.FilterService](i),
		Dashboard: do.MustInvoke[*service.DashboardService](i),
		Targets:   do.MustInvoke[*service.TargetService](i),
		Auth:      do.MustInvoke[*service.AuthService](i),
		Photos:    do.MustInvoke[*service.PhotoService](i),
	}

	handler := api.NewServer(storeHandle.Store, services, api.Options{
		Version:        Version,
		CORSOrigins:    cfg.Server.CORSOrigins,
		LoginPerMinute: cfg.Auth.LoginPerMinute,
		LoginBurst:     cfg.Auth.LoginBurst,
		PhotoMaxBytes:  cfg.Photo.MaxBytes,
	}, log.Component("http"))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start in background
	go func() {
		log.Info("HTTP server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server error", "error", err)
		}
	}()

	return &HTTPServerHandle{Server: srv, api: handler}, nil
}
