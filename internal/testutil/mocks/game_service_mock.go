package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"github.com/vytor/openingroi/internal/models"
)

// MockGameService is a mock implementation of services.GameService
type MockGameService struct {
	mock.Mock
}

func (m *MockGameService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	args := m.Called(ctx, r)
	return args.Int(0), args.Error(1)
}

func (m *MockGameService) ListGames(ctx context.Context, filter models.GameFilter) ([]models.GameRecord, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.GameRecord), args.Int(1), args.Error(2)
}

func (m *MockGameService) QueueChessComImport(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *MockGameService) SeedSample(ctx context.Context, seed uint64) (int, error) {
	args := m.Called(ctx, seed)
	return args.Int(0), args.Error(1)
}
