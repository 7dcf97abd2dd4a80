package service

import (
	"context"
	"testing"

	"github.com/Harshitk-cp/bayes/internal/bayesnet"
	"github.com/Harshitk-cp/bayes/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNetworkService_Create(t *testing.T) {
	s := NewNetworkService(newMockNetworkStore(), zap.NewNop())
	ctx := context.Background()
	tenantID := uuid.New()

	def := rainDefinition(tenantID)
	require.NoError(t, s.Create(ctx, def))
	assert.NotEqual(t, uuid.Nil, def.ID)

	// Implicit values are filled in before storing.
	row := def.Variables[0].CPT[0]
	assert.InDelta(t, 0.8, row.Probabilities["F"], 1e-12)
	assert.Len(t, def.Variables[1].CPT, 2)
}

func TestNetworkService_CreateDuplicate(t *testing.T) {
	s := NewNetworkService(newMockNetworkStore(), zap.NewNop())
	ctx := context.Background()
	tenantID := uuid.New()

	require.NoError(t, s.Create(ctx, rainDefinition(tenantID)))
	err := s.Create(ctx, rainDefinition(tenantID))
	assert.ErrorIs(t, err, ErrNetworkConflict)

	// Another tenant may reuse the name.
	require.NoError(t, s.Create(ctx, rainDefinition(uuid.New())))
}

func TestNetworkService_CreateInvalid(t *testing.T) {
	s := NewNetworkService(newMockNetworkStore(), zap.NewNop())
	ctx := context.Background()

	def := rainDefinition(uuid.New())
	def.Name = "  "
	assert.ErrorIs(t, s.Create(ctx, def), ErrInvalidNetwork)

	def = rainDefinition(uuid.New())
	def.Variables[0].Parents = []string{"Umbrella"}
	err := s.Create(ctx, def)
	assert.ErrorIs(t, err, ErrInvalidNetwork)
	assert.ErrorIs(t, err, bayesnet.ErrCycle)
}

func TestNetworkService_GetListDelete(t *testing.T) {
	s := NewNetworkService(newMockNetworkStore(), zap.NewNop())
	ctx := context.Background()
	tenantID := uuid.New()

	def := rainDefinition(tenantID)
	require.NoError(t, s.Create(ctx, def))

	got, err := s.GetByID(ctx, def.ID, tenantID)
	require.NoError(t, err)
	assert.Equal(t, "rain", got.Name)

	_, err = s.GetByID(ctx, def.ID, uuid.New())
	assert.ErrorIs(t, err, ErrNetworkNotFound)

	list, err := s.List(ctx, tenantID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	empty, err := s.List(ctx, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, []domain.NetworkSummary{}, empty)

	net, err := s.Load(ctx, def.ID, tenantID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Rain", "Umbrella"}, net.TopologicalSort())

	require.NoError(t, s.Delete(ctx, def.ID, tenantID))
	assert.ErrorIs(t, s.Delete(ctx, def.ID, tenantID), ErrNetworkNotFound)
	_, err = s.Load(ctx, def.ID, tenantID)
	assert.ErrorIs(t, err, ErrNetworkNotFound)
}
