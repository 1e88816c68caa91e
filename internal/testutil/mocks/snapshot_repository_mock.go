package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/openingroi/internal/models"
)

// MockSnapshotRepository is a mock implementation of repository.SnapshotRepository
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) Save(ctx context.Context, label string, gameCount int, rows []models.OpeningMetrics) (*models.MetricSnapshot, error) {
	args := m.Called(ctx, label, gameCount, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MetricSnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) Latest(ctx context.Context) (*models.MetricSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MetricSnapshot), args.Error(1)
}

func (m *MockSnapshotRepository) List(ctx context.Context, limit int) ([]models.MetricSnapshot, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MetricSnapshot), args.Error(1)
}
