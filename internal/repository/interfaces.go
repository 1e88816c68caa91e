package repository

import (
	"context"

	"github.com/vytor/openingroi/internal/models"
)

// GameRepository handles game log access
type GameRepository interface {
	InsertBatch(ctx context.Context, games []models.GameRecord) ([]int64, error)
	List(ctx context.Context, filter models.GameFilter) ([]models.GameRecord, error)
	Count(ctx context.Context, filter models.GameFilter) (int, error)
	All(ctx context.Context) ([]models.GameRecord, error)
	ExistingExternalIDs(ctx context.Context, source string) (map[string]bool, error)
	DeleteAll(ctx context.Context) error
}

// SnapshotRepository persists exported metrics tables
type SnapshotRepository interface {
	Save(ctx context.Context, label string, gameCount int, rows []models.OpeningMetrics) (*models.MetricSnapshot, error)
	Latest(ctx context.Context) (*models.MetricSnapshot, error)
	List(ctx context.Context, limit int) ([]models.MetricSnapshot, error)
}
