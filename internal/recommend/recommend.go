// Package recommend selects the best opening for a player's rating band.
package recommend

import (
	"strings"

	"github.com/vytor/openingroi/internal/errors"
	"github.com/vytor/openingroi/internal/metrics"
	"github.com/vytor/openingroi/internal/models"
)

// MinSampleSize is the fewest games an opening needs in a bucket to be recommended.
const MinSampleSize = 10

// Objective names the metric a recommendation maximizes.
type Objective string

const (
	ObjectiveSharpeRatio Objective = "sharpeRatio"
	ObjectiveROI         Objective = "roi"
	ObjectiveWinRate     Objective = "winRate"
)

// Objectives lists the supported objectives.
func Objectives() []Objective {
	return []Objective{ObjectiveSharpeRatio, ObjectiveROI, ObjectiveWinRate}
}

// ParseObjective accepts the output field names and their snake_case spellings.
func ParseObjective(s string) (Objective, error) {
	switch strings.TrimSpace(s) {
	case "sharpeRatio", "sharpe_ratio":
		return ObjectiveSharpeRatio, nil
	case "roi":
		return ObjectiveROI, nil
	case "winRate", "win_rate":
		return ObjectiveWinRate, nil
	default:
		return "", errors.NewInvalidObjectiveError(s)
	}
}

// Value extracts the objective's metric from a row.
func (o Objective) Value(m models.OpeningMetrics) (float64, error) {
	switch o {
	case ObjectiveSharpeRatio:
		return m.SharpeRatio, nil
	case ObjectiveROI:
		return m.ROI, nil
	case ObjectiveWinRate:
		return m.WinRate, nil
	default:
		return 0, errors.NewInvalidObjectiveError(string(o))
	}
}

// Validate fails with errors.ErrInvalidObjective for unsupported objectives.
func (o Objective) Validate() error {
	_, err := o.Value(models.OpeningMetrics{})
	return err
}

// Recommend returns the opening in userRating's bucket with the highest objective
// value among openings with at least MinSampleSize games. The first of several
// equally good openings, in ranking order, wins. ok is false when no opening
// qualifies.
func Recommend(games []models.EnrichedGameRecord, userRating int, objective Objective) (best models.OpeningMetrics, ok bool, err error) {
	if err := objective.Validate(); err != nil {
		return models.OpeningMetrics{}, false, err
	}

	bucket := metrics.BucketForRating(userRating)
	var bestValue float64
	for _, row := range Eligible(games, bucket) {
		v, _ := objective.Value(row)
		if !ok || v > bestValue {
			best, bestValue, ok = row, v, true
		}
	}
	return best, ok, nil
}

// Eligible returns the ranked openings of bucket that meet MinSampleSize.
func Eligible(games []models.EnrichedGameRecord, bucket models.RatingBucket) []models.OpeningMetrics {
	var out []models.OpeningMetrics
	for _, row := range metrics.ComputeAllOpenings(games, bucket) {
		if row.TotalGames >= MinSampleSize {
			out = append(out, row)
		}
	}
	return out
}
