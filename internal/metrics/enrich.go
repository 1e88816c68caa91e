package metrics

import "github.com/vytor/openingroi/internal/models"

// Point values of each outcome from White's perspective.
const (
	WinPoints  = 1.0
	DrawPoints = 0.5
	LossPoints = 0.0
)

// Points scores a result.
func Points(r models.Result) float64 {
	switch r {
	case models.ResultWhite:
		return WinPoints
	case models.ResultDraw:
		return DrawPoints
	default:
		return LossPoints
	}
}

// EnrichGame derives the average rating, bucket and points of a single game. A
// game with a missing or out-of-range rating is left unbucketed.
func EnrichGame(g models.GameRecord) models.EnrichedGameRecord {
	e := models.EnrichedGameRecord{
		GameRecord: g,
		Points:     Points(g.Result),
	}
	if g.HasRatings() {
		e.AverageRating = (float64(*g.WhiteRating) + float64(*g.BlackRating)) / 2
		e.RatingBucket = BucketFor(e.AverageRating)
		e.Bucketed = true
	}
	return e
}

// Enrich returns a new enriched view of games, in the same order. The input slice
// is not modified.
func Enrich(games []models.GameRecord) []models.EnrichedGameRecord {
	out := make([]models.EnrichedGameRecord, len(games))
	for i, g := range games {
		out[i] = EnrichGame(g)
	}
	return out
}
