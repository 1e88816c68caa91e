package services_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/vytor/openingroi/internal/errors"
	"github.com/vytor/openingroi/internal/models"
	"github.com/vytor/openingroi/internal/recommend"
	"github.com/vytor/openingroi/internal/services"
	"github.com/vytor/openingroi/internal/testutil"
	"github.com/vytor/openingroi/internal/testutil/mocks"
)

func repeat(n int, g models.GameRecord) []models.GameRecord {
	out := make([]models.GameRecord, n)
	for i := range out {
		out[i] = g
	}
	return out
}

// gameLog holds 12 B20 games and 10 C50 games in 1400-1600, 3 A40 games in
// 2000-2200 and one unrated C50 game.
func gameLog() []models.GameRecord {
	var games []models.GameRecord
	games = append(games, repeat(5, testutil.Game("B20", 1500, 1500, models.ResultWhite))...)
	games = append(games, repeat(7, testutil.Game("B20", 1500, 1500, models.ResultDraw))...)
	games = append(games, repeat(5, testutil.Game("C50", 1450, 1450, models.ResultWhite))...)
	games = append(games, repeat(3, testutil.Game("C50", 1450, 1450, models.ResultDraw))...)
	games = append(games, repeat(2, testutil.Game("C50", 1450, 1450, models.ResultBlack))...)
	games = append(games, repeat(3, testutil.Game("A40", 2100, 2100, models.ResultBlack))...)
	games = append(games, models.GameRecord{OpeningCode: "C50", Result: models.ResultWhite})
	return games
}

func newMetricsService(games []models.GameRecord) (services.MetricsService, *mocks.MockGameRepository, *mocks.MockSnapshotRepository) {
	gameRepo := new(mocks.MockGameRepository)
	snapshotRepo := new(mocks.MockSnapshotRepository)
	gameRepo.On("All", mock.Anything).Return(games, nil)
	return services.NewMetricsService(gameRepo, snapshotRepo), gameRepo, snapshotRepo
}

func TestMetricsService_OpeningMetrics(t *testing.T) {
	svc, _, _ := newMetricsService(gameLog())
	ctx := context.Background()

	m, ok, err := svc.OpeningMetrics(ctx, "C50", models.AllRatings)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 11, m.TotalGames)

	m, ok, err = svc.OpeningMetrics(ctx, "C50", models.Bucket1400_1600)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 10, m.TotalGames)
	assert.InDelta(t, 0.65, m.ExpectedReturn, 1e-12)

	_, ok, err = svc.OpeningMetrics(ctx, "E60", models.AllRatings)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMetricsService_OpeningMetrics_Validation(t *testing.T) {
	svc, gameRepo, _ := newMetricsService(nil)
	ctx := context.Background()

	_, _, err := svc.OpeningMetrics(ctx, " ", models.AllRatings)
	assert.Error(t, err)

	_, _, err = svc.OpeningMetrics(ctx, "B20", models.RatingBucket("1500-1700"))
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.Status)

	gameRepo.AssertNotCalled(t, "All", mock.Anything)
}

func TestMetricsService_AllOpeningsAndTop(t *testing.T) {
	svc, _, _ := newMetricsService(gameLog())
	ctx := context.Background()

	rows, err := svc.AllOpenings(ctx, models.Bucket1400_1600)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "B20", rows[0].OpeningCode)

	top, err := svc.TopOpenings(ctx, models.AllRatings, 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)

	top, err = svc.TopOpenings(ctx, models.AllRatings, 50)
	require.NoError(t, err)
	assert.Len(t, top, 3)

	_, err = svc.TopOpenings(ctx, models.AllRatings, 0)
	assert.Error(t, err)
}

func TestMetricsService_ByAllBuckets(t *testing.T) {
	svc, _, _ := newMetricsService(gameLog())

	rows, err := svc.ByAllBuckets(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, models.Bucket1400_1600, rows[0].RatingBucket)
	assert.Equal(t, models.Bucket1400_1600, rows[1].RatingBucket)
	assert.Equal(t, models.Bucket2000_2200, rows[2].RatingBucket)
}

func TestMetricsService_Recommend(t *testing.T) {
	svc, _, _ := newMetricsService(gameLog())
	ctx := context.Background()

	best, ok, err := svc.Recommend(ctx, 1500, recommend.ObjectiveWinRate)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "C50", best.OpeningCode)

	best, ok, err = svc.Recommend(ctx, 1500, recommend.ObjectiveSharpeRatio)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "B20", best.OpeningCode)

	_, ok, err = svc.Recommend(ctx, 2100, recommend.ObjectiveROI)
	require.NoError(t, err)
	assert.False(t, ok, "three games is below the sample floor")
}

func TestMetricsService_Recommend_RatingBounds(t *testing.T) {
	svc, gameRepo, _ := newMetricsService(gameLog())
	ctx := context.Background()

	_, ok, err := svc.Recommend(ctx, 0, recommend.ObjectiveSharpeRatio)
	require.NoError(t, err)
	assert.False(t, ok, "no games below 1400")

	_, _, err = svc.Recommend(ctx, -1, recommend.ObjectiveSharpeRatio)
	appErr, isApp := errors.As(err)
	require.True(t, isApp)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
	gameRepo.AssertNumberOfCalls(t, "All", 1)
}

func TestMetricsService_Recommend_InvalidObjective(t *testing.T) {
	svc, gameRepo, _ := newMetricsService(gameLog())

	_, _, err := svc.Recommend(context.Background(), 1500, recommend.Objective("elo"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidObjective))
	gameRepo.AssertNotCalled(t, "All", mock.Anything)
}

func TestMetricsService_Buckets(t *testing.T) {
	svc, _, _ := newMetricsService(gameLog())

	summaries, err := svc.Buckets(context.Background())
	require.NoError(t, err)
	require.Len(t, summaries, 6)
	assert.Equal(t, models.BucketSummary{Bucket: models.BucketUnder1400, Games: 0}, summaries[0])
	assert.Equal(t, models.BucketSummary{Bucket: models.Bucket1400_1600, Games: 22}, summaries[1])
	assert.Equal(t, models.BucketSummary{Bucket: models.Bucket2000_2200, Games: 3}, summaries[4])
}

func TestMetricsService_LoadFailure(t *testing.T) {
	gameRepo := new(mocks.MockGameRepository)
	gameRepo.On("All", mock.Anything).Return(nil, stderrors.New("disk gone"))
	svc := services.NewMetricsService(gameRepo, new(mocks.MockSnapshotRepository))

	_, err := svc.ByAllBuckets(context.Background())
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeInternal, appErr.Code)
}

func TestMetricsService_SaveSnapshot(t *testing.T) {
	svc, _, snapshotRepo := newMetricsService(gameLog())

	snapshotRepo.On("Save", mock.Anything, "nightly", 26, mock.MatchedBy(func(rows []models.OpeningMetrics) bool {
		// three all-ratings rows then three bucketed rows
		return len(rows) == 6 && rows[0].RatingBucket == models.AllRatings && rows[3].RatingBucket == models.Bucket1400_1600
	})).Return(&models.MetricSnapshot{ID: 1, Label: "nightly"}, nil)

	snapshot, err := svc.SaveSnapshot(context.Background(), " nightly ")
	require.NoError(t, err)
	assert.Equal(t, int64(1), snapshot.ID)
	snapshotRepo.AssertExpectations(t)
}

func TestMetricsService_LatestSnapshot(t *testing.T) {
	svc, _, snapshotRepo := newMetricsService(nil)
	snapshotRepo.On("Latest", mock.Anything).Return(nil, nil).Once()

	_, err := svc.LatestSnapshot(context.Background())
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, 404, appErr.Status)

	snapshotRepo.On("Latest", mock.Anything).Return(&models.MetricSnapshot{ID: 9}, nil).Once()
	snapshot, err := svc.LatestSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(9), snapshot.ID)
}
