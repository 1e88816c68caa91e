package metrics_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/openingroi/internal/metrics"
	"github.com/vytor/openingroi/internal/models"
)

func rating(v int) *int { return &v }

func game(eco string, white, black int, result models.Result) models.GameRecord {
	return models.GameRecord{
		OpeningCode: eco,
		OpeningName: eco + " name",
		WhiteRating: rating(white),
		BlackRating: rating(black),
		Result:      result,
	}
}

func repeat(n int, g models.GameRecord) []models.GameRecord {
	out := make([]models.GameRecord, n)
	for i := range out {
		out[i] = g
	}
	return out
}

func mixedLog() []models.GameRecord {
	var games []models.GameRecord
	games = append(games, repeat(5, game("B20", 1500, 1500, models.ResultWhite))...)
	games = append(games, repeat(3, game("B20", 1500, 1500, models.ResultDraw))...)
	games = append(games, repeat(2, game("B20", 1500, 1500, models.ResultBlack))...)
	games = append(games, repeat(4, game("C50", 1700, 1750, models.ResultBlack))...)
	games = append(games, repeat(2, game("C50", 1700, 1750, models.ResultWhite))...)
	games = append(games, repeat(3, game("C50", 1450, 1500, models.ResultWhite))...)
	games = append(games, game("D00", 2300, 2250, models.ResultDraw))
	games = append(games, game("D00", 1200, 1300, models.ResultWhite))
	games = append(games, game("E60", 2010, 2030, models.ResultBlack))
	return games
}

func TestComputeMetrics_AllWins(t *testing.T) {
	games := metrics.Enrich(repeat(10, game("X", 1500, 1500, models.ResultWhite)))

	m, ok := metrics.ComputeMetrics(games, "X", models.Bucket1400_1600)
	require.True(t, ok)

	assert.Equal(t, 10, m.TotalGames)
	assert.Equal(t, 10, m.Wins)
	assert.Equal(t, 1.0, m.WinRate)
	assert.Equal(t, 0.0, m.DrawRate)
	assert.Equal(t, 0.0, m.LossRate)
	assert.Equal(t, 1.0, m.ExpectedReturn)
	assert.Equal(t, 0.0, m.Volatility)
	assert.Equal(t, 0.0, m.SharpeRatio)
	assert.Equal(t, 0.0, m.InformationRatio)
	assert.Equal(t, 100.0, m.ROI)
	assert.Equal(t, models.Bucket1400_1600, m.RatingBucket)
}

func TestComputeMetrics_MixedResults(t *testing.T) {
	games := metrics.Enrich(mixedLog())

	m, ok := metrics.ComputeMetrics(games, "B20", models.AllRatings)
	require.True(t, ok)

	assert.Equal(t, 10, m.TotalGames)
	assert.Equal(t, 5, m.Wins)
	assert.Equal(t, 3, m.Draws)
	assert.Equal(t, 2, m.Losses)
	assert.InDelta(t, 0.65, m.ExpectedReturn, 1e-12)
	assert.InDelta(t, 30.0, m.ROI, 1e-12)
	assert.InDelta(t, 0.5, m.WinRate, 1e-12)

	// points: 5x1.0, 3x0.5, 2x0.0; squared deviations sum to 1.525 over 9 degrees of freedom
	wantVol := 0.4116363011742823
	assert.InDelta(t, wantVol, m.Volatility, 1e-9)
	assert.InDelta(t, 0.15/wantVol, m.SharpeRatio, 1e-9)
	assert.Equal(t, m.SharpeRatio, m.InformationRatio)
	assert.Equal(t, models.AllRatings, m.RatingBucket)
	assert.Equal(t, "B20 name", m.OpeningName)
}

func TestComputeMetrics_NoData(t *testing.T) {
	games := metrics.Enrich(mixedLog())

	_, ok := metrics.ComputeMetrics(games, "Z99", models.AllRatings)
	assert.False(t, ok)

	_, ok = metrics.ComputeMetrics(games, "B20", models.Bucket2200Plus)
	assert.False(t, ok)

	_, ok = metrics.ComputeMetrics(nil, "B20", models.AllRatings)
	assert.False(t, ok)
}

func TestComputeMetrics_SingleGameHasZeroVolatility(t *testing.T) {
	for _, result := range []models.Result{models.ResultWhite, models.ResultDraw, models.ResultBlack} {
		t.Run(string(result), func(t *testing.T) {
			games := metrics.Enrich([]models.GameRecord{game("A40", 1900, 1900, result)})

			m, ok := metrics.ComputeMetrics(games, "A40", models.AllRatings)
			require.True(t, ok)
			assert.Equal(t, 1, m.TotalGames)
			assert.Equal(t, 0.0, m.Volatility)
			assert.Equal(t, 0.0, m.SharpeRatio)
			assert.Equal(t, 0.0, m.InformationRatio)
		})
	}
}

func TestComputeMetrics_Invariants(t *testing.T) {
	games := metrics.Enrich(mixedLog())

	rows := metrics.ComputeAllOpenings(games, models.AllRatings)
	rows = append(rows, metrics.ComputeByAllBuckets(games)...)
	require.NotEmpty(t, rows)

	for _, m := range rows {
		assert.Equal(t, m.TotalGames, m.Wins+m.Draws+m.Losses, m.OpeningCode)
		assert.InDelta(t, 1.0, m.WinRate+m.DrawRate+m.LossRate, 1e-9, m.OpeningCode)
		assert.GreaterOrEqual(t, m.ExpectedReturn, 0.0)
		assert.LessOrEqual(t, m.ExpectedReturn, 1.0)
		assert.GreaterOrEqual(t, m.ROI, -100.0)
		assert.LessOrEqual(t, m.ROI, 100.0)
		assert.InDelta(t, (m.WinRate-m.LossRate)*100, m.ROI, 1e-9)
		assert.GreaterOrEqual(t, m.Volatility, 0.0)
		assert.Equal(t, m.SharpeRatio, m.InformationRatio)
	}
}

func TestComputeMetrics_UnratedGamesOnlyInAllRatings(t *testing.T) {
	unrated := models.GameRecord{OpeningCode: "B20", Result: models.ResultWhite}
	games := metrics.Enrich(append(mixedLog(), unrated))

	all, ok := metrics.ComputeMetrics(games, "B20", models.AllRatings)
	require.True(t, ok)
	assert.Equal(t, 11, all.TotalGames)

	bucketed, ok := metrics.ComputeMetrics(games, "B20", models.Bucket1400_1600)
	require.True(t, ok)
	assert.Equal(t, 10, bucketed.TotalGames)

	total := 0
	for _, row := range metrics.ComputeByAllBuckets(games) {
		total += row.TotalGames
	}
	assert.Equal(t, len(mixedLog()), total)
}

func TestComputeAllOpenings_OrderedBySharpe(t *testing.T) {
	var games []models.GameRecord
	// Encounter order: A (sharpe 0, all wins), B (negative), C (positive), D (0, all draws)
	games = append(games, repeat(3, game("A", 1500, 1500, models.ResultWhite))...)
	games = append(games, game("B", 1500, 1500, models.ResultBlack), game("B", 1500, 1500, models.ResultDraw))
	games = append(games, game("C", 1500, 1500, models.ResultWhite), game("C", 1500, 1500, models.ResultDraw))
	games = append(games, repeat(2, game("D", 1500, 1500, models.ResultDraw))...)

	rows := metrics.ComputeAllOpenings(metrics.Enrich(games), models.AllRatings)
	require.Len(t, rows, 4)

	codes := make([]string, len(rows))
	for i, r := range rows {
		codes[i] = r.OpeningCode
	}
	assert.Equal(t, []string{"C", "A", "D", "B"}, codes)
}

func TestComputeAllOpenings_BucketFilter(t *testing.T) {
	games := metrics.Enrich(mixedLog())

	rows := metrics.ComputeAllOpenings(games, models.Bucket1400_1600)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, models.Bucket1400_1600, r.RatingBucket)
		assert.Contains(t, []string{"B20", "C50"}, r.OpeningCode)
	}

	assert.Empty(t, metrics.ComputeAllOpenings(games, models.Bucket1800_2000))
}

func TestComputeByAllBuckets_SkipsEmptyBuckets(t *testing.T) {
	games := metrics.Enrich(mixedLog())

	rows := metrics.ComputeByAllBuckets(games)

	var buckets []models.RatingBucket
	for _, r := range rows {
		if len(buckets) == 0 || buckets[len(buckets)-1] != r.RatingBucket {
			buckets = append(buckets, r.RatingBucket)
		}
	}
	assert.Equal(t, []models.RatingBucket{
		models.BucketUnder1400,
		models.Bucket1400_1600,
		models.Bucket1600_1800,
		models.Bucket2000_2200,
		models.Bucket2200Plus,
	}, buckets)
	assert.Equal(t, buckets, metrics.PresentBuckets(games))
}

func TestComputeByAllBuckets_Deterministic(t *testing.T) {
	first, err := json.Marshal(metrics.ComputeByAllBuckets(metrics.Enrich(mixedLog())))
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := json.Marshal(metrics.ComputeByAllBuckets(metrics.Enrich(mixedLog())))
		require.NoError(t, err)
		assert.Equal(t, string(first), string(again))
	}
}

func TestEnrich_DoesNotMutateInput(t *testing.T) {
	games := mixedLog()
	before, err := json.Marshal(games)
	require.NoError(t, err)

	enriched := metrics.Enrich(games)
	require.Len(t, enriched, len(games))

	after, err := json.Marshal(games)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestOpeningName_FallsBackToCode(t *testing.T) {
	g := game("C00", 1500, 1500, models.ResultDraw)
	g.OpeningName = ""

	m, ok := metrics.ComputeMetrics(metrics.Enrich([]models.GameRecord{g}), "C00", models.AllRatings)
	require.True(t, ok)
	assert.Equal(t, "C00", m.OpeningName)
}
