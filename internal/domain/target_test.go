package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAreaTarget_Goals(t *testing.T) {
	five, zero := 5, 0

	empty := AreaTarget{Area: "PRODUCAO"}
	assert.True(t, empty.IsEmpty())
	assert.Zero(t, empty.HeadcountGoal())
	assert.Zero(t, empty.ProtectedClassGoal())
	assert.Zero(t, empty.YoungApprenticeGoal())

	set := AreaTarget{Area: "PRODUCAO", Headcount: &five, YoungApprentice: &zero}
	assert.False(t, set.IsEmpty())
	assert.Equal(t, 5, set.HeadcountGoal())
	assert.Zero(t, set.ProtectedClassGoal())
	assert.Zero(t, set.YoungApprenticeGoal())
}
