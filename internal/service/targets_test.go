package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/qlpapp/qlp-server/internal/errors"
	"github.com/qlpapp/qlp-server/internal/validation"
)

func TestTargetService_Save(t *testing.T) {
	s := newTestStore(t)
	svc := NewTargetService(s, validation.New(), nil)

	saved, err := svc.Save(context.Background(), SaveTargetRequest{
		Area:      "  SEGURAN?A ",
		Headcount: intPtr(10),
	})
	require.NoError(t, err)
	assert.Equal(t, "SEGURANÇA", saved.Area)

	_, err = svc.Save(context.Background(), SaveTargetRequest{
		Area:           "SEGURANÇA",
		ProtectedClass: intPtr(2),
	})
	require.NoError(t, err)

	targets, err := s.ListTargets(context.Background())
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Nil(t, targets[0].Headcount, "second save replaces every goal")
	assert.Equal(t, 2, targets[0].ProtectedClassGoal())
}

func TestTargetService_SaveValidation(t *testing.T) {
	svc := NewTargetService(newTestStore(t), validation.New(), nil)

	tests := []struct {
		name string
		req  SaveTargetRequest
	}{
		{"blank area", SaveTargetRequest{Area: "   "}},
		{"negative headcount", SaveTargetRequest{Area: "VENDAS", Headcount: intPtr(-1)}},
		{"negative apprentice", SaveTargetRequest{Area: "VENDAS", YoungApprentice: intPtr(-5)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Save(context.Background(), tt.req)
			assert.ErrorIs(t, err, domainerrors.ErrValidation)
		})
	}
}
