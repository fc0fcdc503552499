package providers

import (
	"github.com/samber/do/v2"

	"github.com/qlpapp/qlp-server/internal/auth"
	"github.com/qlpapp/qlp-server/internal/config"
	"github.com/qlpapp/qlp-server/internal/logger"
	"github.com/qlpapp/qlp-server/internal/quota"
	"github.com/qlpapp/qlp-server/internal/service"
	"github.com/qlpapp/qlp-server/internal/validation"
)

// ProvideValidator provides the request validator.
func ProvideValidator(i do.Injector) (*validation.Validator, error) {
	return validation.New(), nil
}

// ProvideRosterService provides the roster listing service.
func ProvideRosterService(i do.Injector) (*service.RosterService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRosterService(storeHandle.Store, log.Component("roster")), nil
}

// ProvideFilterService provides the filter options service.
func ProvideFilterService(i do.Injector) (*service.FilterService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFilterService(storeHandle.Store, log.Component("filters")), nil
}

// ProvideDashboardService provides the quota dashboard service.
func ProvideDashboardService(i do.Injector) (*service.DashboardService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	opts := quota.Options{
		ProtectedFlag:    cfg.Quota.ProtectedFlag,
		ApprenticeMarker: cfg.Quota.ApprenticeMarker,
	}
	return service.NewDashboardService(storeHandle.Store, opts, log.Component("dashboard")), nil
}

// ProvideTargetService provides the area target service.
func ProvideTargetService(i do.Injector) (*service.TargetService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	validator := do.MustInvoke[*validation.Validator](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTargetService(storeHandle.Store, validator, log.Component("targets")), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	credentials := do.MustInvoke[*auth.CredentialTable](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(
		storeHandle.Store,
		credentials,
		tokenService,
		cfg.Auth.DefaultPassword,
		log.Component("auth"),
	), nil
}

// ProvidePhotoService provides the photo upload service.
func ProvidePhotoService(i do.Injector) (*service.PhotoService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPhotoService(storeHandle.Store, cfg.Photo.MaxBytes, log.Component("photos")), nil
}
