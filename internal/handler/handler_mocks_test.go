package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/tidepool/internal/domain"
	"github.com/osse101/tidepool/internal/registry"
)

// MockRegistry mocks registry.Service
type MockRegistry struct {
	mock.Mock
}

func (m *MockRegistry) CreateNode(ctx context.Context, rt domain.ResourceType, pos domain.Position, opts ...registry.CreateOption) (uuid.UUID, error) {
	args := m.Called(ctx, rt, pos, len(opts))
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockRegistry) Harvest(ctx context.Context, id uuid.UUID, hc domain.HarvestContext) (domain.HarvestOutcome, error) {
	args := m.Called(ctx, id, hc)
	return args.Get(0).(domain.HarvestOutcome), args.Error(1)
}

func (m *MockRegistry) Query(id uuid.UUID) (domain.NodeSnapshot, bool) {
	args := m.Called(id)
	return args.Get(0).(domain.NodeSnapshot), args.Bool(1)
}

func (m *MockRegistry) QueryAll() []domain.NodeSnapshot {
	args := m.Called()
	return args.Get(0).([]domain.NodeSnapshot)
}

func (m *MockRegistry) DestroyNode(ctx context.Context, id uuid.UUID) bool {
	args := m.Called(ctx, id)
	return args.Bool(0)
}

func (m *MockRegistry) ForceRespawn(ctx context.Context, id uuid.UUID) (domain.NodeSnapshot, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.NodeSnapshot), args.Error(1)
}

func (m *MockRegistry) OnStateChanged(handler registry.StateChangeHandler) {
	m.Called(handler)
}

func (m *MockRegistry) CountByState() map[domain.NodeState]int {
	args := m.Called()
	return args.Get(0).(map[domain.NodeState]int)
}

func (m *MockRegistry) CheckHealth(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRegistry) Shutdown(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
