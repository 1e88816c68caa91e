package services

import (
	"context"
	"strings"

	"github.com/vytor/openingroi/internal/errors"
	"github.com/vytor/openingroi/internal/logger"
	"github.com/vytor/openingroi/internal/metrics"
	"github.com/vytor/openingroi/internal/models"
	"github.com/vytor/openingroi/internal/recommend"
	"github.com/vytor/openingroi/internal/repository"
)

// MetricsService computes opening metrics over the stored game log. Every call
// recomputes from the current log.
type MetricsService interface {
	OpeningMetrics(ctx context.Context, code string, bucket models.RatingBucket) (models.OpeningMetrics, bool, error)
	AllOpenings(ctx context.Context, bucket models.RatingBucket) ([]models.OpeningMetrics, error)
	ByAllBuckets(ctx context.Context) ([]models.OpeningMetrics, error)
	TopOpenings(ctx context.Context, bucket models.RatingBucket, n int) ([]models.OpeningMetrics, error)
	Recommend(ctx context.Context, rating int, objective recommend.Objective) (models.OpeningMetrics, bool, error)
	Buckets(ctx context.Context) ([]models.BucketSummary, error)
	SaveSnapshot(ctx context.Context, label string) (*models.MetricSnapshot, error)
	LatestSnapshot(ctx context.Context) (*models.MetricSnapshot, error)
	ListSnapshots(ctx context.Context, limit int) ([]models.MetricSnapshot, error)
}

type metricsService struct {
	gameRepo     repository.GameRepository
	snapshotRepo repository.SnapshotRepository
}

// NewMetricsService creates a new MetricsService
func NewMetricsService(gameRepo repository.GameRepository, snapshotRepo repository.SnapshotRepository) MetricsService {
	return &metricsService{
		gameRepo:     gameRepo,
		snapshotRepo: snapshotRepo,
	}
}

func (s *metricsService) load(ctx context.Context) ([]models.EnrichedGameRecord, error) {
	log := logger.FromContext(ctx)

	games, err := s.gameRepo.All(ctx)
	if err != nil {
		log.Error("failed to load game log: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return metrics.Enrich(games), nil
}

func validateBucket(bucket models.RatingBucket) error {
	if bucket != models.AllRatings && !metrics.ValidBucket(bucket) {
		return errors.NewValidationError("bucket", "unknown rating bucket "+string(bucket))
	}
	return nil
}

func (s *metricsService) OpeningMetrics(ctx context.Context, code string, bucket models.RatingBucket) (models.OpeningMetrics, bool, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing opening metrics: code=%s, bucket=%s", code, bucket)

	code = strings.TrimSpace(code)
	if code == "" {
		return models.OpeningMetrics{}, false, errors.NewValidationError("eco", "cannot be empty")
	}
	if err := validateBucket(bucket); err != nil {
		return models.OpeningMetrics{}, false, err
	}

	games, err := s.load(ctx)
	if err != nil {
		return models.OpeningMetrics{}, false, err
	}

	m, ok := metrics.ComputeMetrics(games, code, bucket)
	return m, ok, nil
}

func (s *metricsService) AllOpenings(ctx context.Context, bucket models.RatingBucket) ([]models.OpeningMetrics, error) {
	log := logger.FromContext(ctx)
	log.Debug("computing all openings: bucket=%s", bucket)

	if err := validateBucket(bucket); err != nil {
		return nil, err
	}

	games, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return metrics.ComputeAllOpenings(games, bucket), nil
}

func (s *metricsService) ByAllBuckets(ctx context.Context) ([]models.OpeningMetrics, error) {
	games, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return metrics.ComputeByAllBuckets(games), nil
}

// TopOpenings returns the first n rows of the Sharpe-ranked table.
func (s *metricsService) TopOpenings(ctx context.Context, bucket models.RatingBucket, n int) ([]models.OpeningMetrics, error) {
	if n <= 0 {
		return nil, errors.NewValidationError("n", "must be positive")
	}

	rows, err := s.AllOpenings(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows, nil
}

func (s *metricsService) Recommend(ctx context.Context, rating int, objective recommend.Objective) (models.OpeningMetrics, bool, error) {
	log := logger.FromContext(ctx).WithFields(map[string]any{
		"rating":    rating,
		"objective": string(objective),
	})

	if err := objective.Validate(); err != nil {
		log.Warn("rejected recommendation request: %v", err)
		return models.OpeningMetrics{}, false, err
	}
	if rating < 0 {
		return models.OpeningMetrics{}, false, errors.NewValidationError("rating", "cannot be negative")
	}

	games, err := s.load(ctx)
	if err != nil {
		return models.OpeningMetrics{}, false, err
	}

	best, ok, err := recommend.Recommend(games, rating, objective)
	if err != nil {
		return models.OpeningMetrics{}, false, err
	}
	if !ok {
		log.Info("no opening has %d games in bucket %s", recommend.MinSampleSize, metrics.BucketForRating(rating))
		return models.OpeningMetrics{}, false, nil
	}

	log.Debug("recommending %s", best.OpeningCode)
	return best, true, nil
}

// Buckets counts games per rating bucket, in ascending bucket order. Empty
// buckets are included.
func (s *metricsService) Buckets(ctx context.Context) ([]models.BucketSummary, error) {
	games, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[models.RatingBucket]int)
	for _, g := range games {
		if g.Bucketed {
			counts[g.RatingBucket]++
		}
	}

	all := metrics.Buckets()
	out := make([]models.BucketSummary, 0, len(all))
	for _, b := range all {
		out = append(out, models.BucketSummary{Bucket: b, Games: counts[b]})
	}
	return out, nil
}

// SaveSnapshot stores the all-ratings table followed by the per-bucket table.
func (s *metricsService) SaveSnapshot(ctx context.Context, label string) (*models.MetricSnapshot, error) {
	log := logger.FromContext(ctx)

	games, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	rows := metrics.ComputeAllOpenings(games, models.AllRatings)
	rows = append(rows, metrics.ComputeByAllBuckets(games)...)

	snapshot, err := s.snapshotRepo.Save(ctx, strings.TrimSpace(label), len(games), rows)
	if err != nil {
		log.Error("failed to save snapshot: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return snapshot, nil
}

func (s *metricsService) LatestSnapshot(ctx context.Context) (*models.MetricSnapshot, error) {
	log := logger.FromContext(ctx)

	snapshot, err := s.snapshotRepo.Latest(ctx)
	if err != nil {
		log.Error("failed to load latest snapshot: %v", err)
		return nil, errors.NewInternalError(err)
	}
	if snapshot == nil {
		return nil, errors.NewNotFoundError("snapshot", "latest")
	}
	return snapshot, nil
}

func (s *metricsService) ListSnapshots(ctx context.Context, limit int) ([]models.MetricSnapshot, error) {
	log := logger.FromContext(ctx)

	snapshots, err := s.snapshotRepo.List(ctx, limit)
	if err != nil {
		log.Error("failed to list snapshots: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return snapshots, nil
}
