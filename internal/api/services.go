package api

import "github.com/qlpapp/qlp-server/internal/service"

// Services groups the business services the handlers call into.
type Services struct {
	Roster    *service.RosterService
	Filters   *service.FilterService
	Dashboard *service.DashboardService
	Targets   *service.TargetService
	Auth      *service.AuthService
	Photos    *service.PhotoService
}
