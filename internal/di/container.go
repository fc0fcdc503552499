// Package di provides dependency injection configuration for the QLP server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/qlpapp/qlp-server/internal/auth"
	"github.com/qlpapp/qlp-server/internal/config"
	"github.com/qlpapp/qlp-server/internal/di/providers"
	"github.com/qlpapp/qlp-server/internal/logger"
	"github.com/qlpapp/qlp-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()
	register(injector)
	return injector
}

func register(injector do.Injector) {
	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)
	do.Provide(injector, providers.ProvideValidator)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Auth layer
	do.Provide(injector, providers.ProvideAuthKey)
	do.Provide(injector, providers.ProvideTokenService)
	do.Provide(injector, providers.ProvidePasswordHasher)
	do.Provide(injector, providers.ProvideCredentialTable)

	// Business services
	do.Provide(injector, providers.ProvideRosterService)
	do.Provide(injector, providers.ProvideFilterService)
	do.Provide(injector, providers.ProvideDashboardService)
	do.Provide(injector, providers.ProvideTargetService)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvidePhotoService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)
}

// Bootstrap initializes all services and starts the HTTP server.
// This triggers lazy initialization of all core services.
func Bootstrap(injector do.Injector) error {
	if _, err := do.Invoke[*config.Config](injector); err != nil {
		return err
	}
	_ = do.MustInvoke[*logger.Logger](injector)

	if _, err := do.Invoke[*providers.StoreHandle](injector); err != nil {
		return err
	}
	if _, err := do.Invoke[*auth.TokenService](injector); err != nil {
		return err
	}

	// Business services
	_ = do.MustInvoke[*service.RosterService](injector)
	_ = do.MustInvoke[*service.FilterService](injector)
	_ = do.MustInvoke[*service.DashboardService](injector)
	_ = do.MustInvoke[*service.TargetService](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.PhotoService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
