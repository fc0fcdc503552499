// Package store defines the persistence contract for the roster and the area targets.
//
// Implementations return raw stored values. Text repair and aggregation happen
// in the service layer.
package store

import (
	"context"

	"github.com/qlpapp/qlp-server/internal/domain"
)

// EmployeeField names a roster column that can be listed as distinct values.
type EmployeeField string

// Fields offered as filter options.
const (
	FieldArea           EmployeeField = "area"
	FieldLeader         EmployeeField = "leader"
	FieldClassification EmployeeField = "classification"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Roster
	ListEmployees(ctx context.Context, filter domain.RosterFilter, page Page) ([]domain.Employee, int, error)
	ListEmployeesByStatus(ctx context.Context, status string) ([]domain.Employee, error)
	GetEmployee(ctx context.Context, cpf string) (*domain.Employee, error)
	UpsertEmployees(ctx context.Context, employees []domain.Employee) error
	UpdateEmployeePhoto(ctx context.Context, cpf, photo, photoHash string) error
	DistinctEmployeeValues(ctx context.Context, field EmployeeField) ([]string, error)

	// Area targets
	ListTargets(ctx context.Context) ([]domain.AreaTarget, error)
	UpsertTarget(ctx context.Context, target domain.AreaTarget) error
}
