package domain

import "time"

// Roster status values as written by the legacy spreadsheet export.
const (
	StatusActive       = "ATIVO"
	StatusOnLeave      = "AFASTADO"
	StatusLeaveAlt     = "AFASTAMENTO"
	StatusTerminated   = "DESLIGADOS"
	StatusDismissedAlt = "DESPEDIDA"
)

// DevelopmentSlots is the number of development-plan slots carried by each roster row.
const DevelopmentSlots = 7

// DevelopmentAction is one slot of an employee's development plan.
type DevelopmentAction struct {
	Competency  string `json:"competency,omitempty"`
	Status      string `json:"status,omitempty"`
	Description string `json:"description,omitempty"`
}

// IsEmpty reports whether no field of the slot is filled.
func (a DevelopmentAction) IsEmpty() bool {
	return a.Competency == "" && a.Status == "" && a.Description == ""
}

// Employee is one row of the personnel roster (QLP).
// CPF is the natural key. Free-text fields may carry legacy encoding damage
// until they pass through normalize.Employee.
type Employee struct {
	CPF            string `json:"cpf"`
	Name           string `json:"name"`
	Area           string `json:"area"`   // ATIVIDADE; grouping key for quota reporting
	Leader         string `json:"leader"` // LIDER
	Shift          string `json:"shift,omitempty"`
	Education      string `json:"education,omitempty"`
	CurrentTitle   string `json:"current_title,omitempty"` // CARGO ATUAL
	Status         string `json:"status"`
	ProtectedClass string `json:"protected_class,omitempty"` // PCD flag as exported
	Classification string `json:"classification,omitempty"`
	Salary         string `json:"salary,omitempty"`
	AdmissionDate  string `json:"admission_date,omitempty"` // raw spreadsheet serial or date
	TenureDays     int    `json:"tenure_days,omitempty"`

	Photo     string `json:"photo,omitempty"`      // base64 payload
	PhotoHash string `json:"photo_hash,omitempty"` // blurhash placeholder

	// AvatarColor is derived at read time for records without a photo.
	AvatarColor string `json:"avatar_color,omitempty"`

	Actions [DevelopmentSlots]DevelopmentAction `json:"actions"`

	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive reports whether the employee is currently employed.
func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}

// StatusGroup expands a status filter into the stored values it stands for.
// AFASTADO and DESLIGADOS each cover two spellings used by the export.
func StatusGroup(status string) []string {
	switch status {
	case StatusOnLeave:
		return []string{StatusOnLeave, StatusLeaveAlt}
	case StatusTerminated:
		return []string{StatusTerminated, StatusDismissedAlt}
	case "":
		return nil
	default:
		return []string{status}
	}
}

// RosterFilter selects roster rows. Zero values mean "no constraint".
// When CPF is set all other constraints are ignored.
type RosterFilter struct {
	CPF            string
	Search         string
	Status         string
	Area           string
	Leader         string
	Classification string
}

// FilterOptions lists the distinct values offered by the roster filters.
type FilterOptions struct {
	Areas           []string `json:"areas"`
	Leaders         []string `json:"leaders"`
	Classifications []string `json:"classifications"`
}
