// Package metrics turns a game log into per-opening performance statistics
// segmented by rating bucket. Every function is pure: results depend only on the
// arguments, and the input slices are never modified.
package metrics

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/vytor/openingroi/internal/models"
)

// Benchmark is the score an opening must beat to have a positive Sharpe or
// information ratio.
const Benchmark = DrawPoints

func inBucket(g models.EnrichedGameRecord, bucket models.RatingBucket) bool {
	if bucket == models.AllRatings {
		return true
	}
	return g.Bucketed && g.RatingBucket == bucket
}

// ComputeMetrics computes the metrics of one opening, restricted to bucket unless it
// is models.AllRatings. The boolean is false when no game matches.
func ComputeMetrics(games []models.EnrichedGameRecord, openingCode string, bucket models.RatingBucket) (models.OpeningMetrics, bool) {
	var group []models.EnrichedGameRecord
	for _, g := range games {
		if g.OpeningCode == openingCode && inBucket(g, bucket) {
			group = append(group, g)
		}
	}
	if len(group) == 0 {
		return models.OpeningMetrics{}, false
	}
	return summarize(openingCode, bucket, group), true
}

// ComputeAllOpenings computes one row per opening present in bucket, ordered by
// Sharpe ratio descending. Openings with equal ratios keep the order in which
// their code first appears in games.
func ComputeAllOpenings(games []models.EnrichedGameRecord, bucket models.RatingBucket) []models.OpeningMetrics {
	var order []string
	groups := make(map[string][]models.EnrichedGameRecord)
	for _, g := range games {
		if !inBucket(g, bucket) {
			continue
		}
		if _, seen := groups[g.OpeningCode]; !seen {
			order = append(order, g.OpeningCode)
		}
		groups[g.OpeningCode] = append(groups[g.OpeningCode], g)
	}

	rows := make([]models.OpeningMetrics, 0, len(order))
	for _, code := range order {
		rows = append(rows, summarize(code, bucket, groups[code]))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].SharpeRatio > rows[j].SharpeRatio
	})
	return rows
}

// ComputeByAllBuckets concatenates ComputeAllOpenings for every bucket that holds at
// least one game, in ascending bucket order. Games without ratings are left out.
func ComputeByAllBuckets(games []models.EnrichedGameRecord) []models.OpeningMetrics {
	var rows []models.OpeningMetrics
	for _, b := range PresentBuckets(games) {
		rows = append(rows, ComputeAllOpenings(games, b)...)
	}
	return rows
}

// PresentBuckets lists the buckets holding at least one game, ascending.
func PresentBuckets(games []models.EnrichedGameRecord) []models.RatingBucket {
	present := make(map[models.RatingBucket]bool)
	for _, g := range games {
		if g.Bucketed {
			present[g.RatingBucket] = true
		}
	}
	var out []models.RatingBucket
	for _, b := range Buckets() {
		if present[b] {
			out = append(out, b)
		}
	}
	return out
}

// summarize computes the metrics of a non-empty group.
func summarize(code string, bucket models.RatingBucket, group []models.EnrichedGameRecord) models.OpeningMetrics {
	m := models.OpeningMetrics{
		OpeningCode:  code,
		OpeningName:  openingName(code, group),
		RatingBucket: bucket,
		TotalGames:   len(group),
	}

	points := make([]float64, len(group))
	for i, g := range group {
		points[i] = g.Points
		switch g.Result {
		case models.ResultWhite:
			m.Wins++
		case models.ResultDraw:
			m.Draws++
		case models.ResultBlack:
			m.Losses++
		}
	}

	n := float64(m.TotalGames)
	m.WinRate = float64(m.Wins) / n
	m.DrawRate = float64(m.Draws) / n
	m.LossRate = float64(m.Losses) / n
	m.ExpectedReturn = stat.Mean(points, nil)
	m.Volatility = volatility(points)
	m.SharpeRatio = excessOverRisk(m.ExpectedReturn, m.Volatility)
	m.InformationRatio = excessOverRisk(m.ExpectedReturn, m.Volatility)
	m.ROI = float64(100*m.Wins-100*m.Losses) / n
	return m
}

// volatility is the sample standard deviation, defined as zero for fewer than two
// observations.
func volatility(points []float64) float64 {
	if len(points) < 2 {
		return 0
	}
	return stat.StdDev(points, nil)
}

func excessOverRisk(expected, vol float64) float64 {
	if vol <= 0 {
		return 0
	}
	return (expected - Benchmark) / vol
}

func openingName(code string, group []models.EnrichedGameRecord) string {
	for _, g := range group {
		if g.OpeningName != "" {
			return g.OpeningName
		}
	}
	return code
}
