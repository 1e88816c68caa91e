package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/openingroi/internal/models"
	"github.com/vytor/openingroi/internal/recommend"
)

// MockMetricsService is a mock implementation of services.MetricsService
type MockMetricsService struct {
	mock.Mock
}

func (m *MockMetricsService) rows(args mock.Arguments) ([]models.OpeningMetrics, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OpeningMetrics), args.Error(1)
}

func (m *MockMetricsService) OpeningMetrics(ctx context.Context, code string, bucket models.RatingBucket) (models.OpeningMetrics, bool, error) {
	args := m.Called(ctx, code, bucket)
	return args.Get(0).(models.OpeningMetrics), args.Bool(1), args.Error(2)
}

func (m *MockMetricsService) AllOpenings(ctx context.Context, bucket models.RatingBucket) ([]models.OpeningMetrics, error) {
	return m.rows(m.Called(ctx, bucket))
}

func (m *MockMetricsService) ByAllBuckets(ctx context.Context) ([]models.OpeningMetrics, error) {
	return m.rows(m.Called(ctx))
}

func (m *MockMetricsService) TopOpenings(ctx context.Context, bucket models.RatingBucket, n int) ([]models.OpeningMetrics, error) {
	return m.rows(m.Called(ctx, bucket, n))
}

func (m *MockMetricsService) Recommend(ctx context.Context, rating int, objective recommend.Objective) (models.OpeningMetrics, bool, error) {
	args := m.Called(ctx, rating, objective)
	return args.Get(0).(models.OpeningMetrics), args.Bool(1), args.Error(2)
}

func (m *MockMetricsService) Buckets(ctx context.Context) ([]models.BucketSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.BucketSummary), args.Error(1)
}

func (m *MockMetricsService) SaveSnapshot(ctx context.Context, label string) (*models.MetricSnapshot, error) {
	args := m.Called(ctx, label)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MetricSnapshot), args.Error(1)
}

func (m *MockMetricsService) LatestSnapshot(ctx context.Context) (*models.MetricSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MetricSnapshot), args.Error(1)
}

func (m *MockMetricsService) ListSnapshots(ctx context.Context, limit int) ([]models.MetricSnapshot, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.MetricSnapshot), args.Error(1)
}
