package domain

import "time"

// AreaTarget holds the administrator-set goals for one area.
// Nil goals were never set; the empty sentinel for an area without a
// stored row is AreaTarget{Area: area}.
type AreaTarget struct {
	Area            string    `json:"area"`
	Headcount       *int      `json:"headcount,omitempty"`
	ProtectedClass  *int      `json:"protected_class,omitempty"`
	YoungApprentice *int      `json:"young_apprentice,omitempty"`
	UpdatedAt       time.Time `json:"updated_at,omitzero"`
}

// IsEmpty reports whether no goal is set.
func (t AreaTarget) IsEmpty() bool {
	return t.Headcount == nil && t.ProtectedClass == nil && t.YoungApprentice == nil
}

// HeadcountGoal returns the headcount goal or zero.
func (t AreaTarget) HeadcountGoal() int { return deref(t.Headcount) }

// ProtectedClassGoal returns the protected-class goal or zero.
func (t AreaTarget) ProtectedClassGoal() int { return deref(t.ProtectedClass) }

// YoungApprenticeGoal returns the young-apprentice goal or zero.
func (t AreaTarget) YoungApprenticeGoal() int { return deref(t.YoungApprentice) }

func deref(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

// AreaStat is the per-area reconciliation of active headcount against targets.
type AreaStat struct {
	Area            string     `json:"area"`
	Headcount       int        `json:"headcount"`
	ProtectedClass  int        `json:"protected_class"`
	YoungApprentice int        `json:"young_apprentice"`
	Target          AreaTarget `json:"target"`
}
