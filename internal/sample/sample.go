// Package sample generates a synthetic game log for demos and smoke tests.
package sample

import (
	"fmt"
	"math/rand/v2"

	"github.com/vytor/openingroi/internal/models"
)

// Opening is a generator profile: the probability that White wins and that the
// game is drawn. Black wins the remainder.
type Opening struct {
	Code     string
	Name     string
	WhiteWin float64
	Draw     float64
}

// RatingRange is a half-open [Min, Max) range both players are drawn from.
type RatingRange struct {
	Min int
	Max int
}

// Openings are the eight profiles the generator cycles through.
var Openings = []Opening{
	{"B20", "Sicilian Defense", 0.45, 0.25},
	{"C50", "Italian Game", 0.48, 0.27},
	{"D00", "Queen's Pawn Game", 0.46, 0.28},
	{"E60", "King's Indian Defense", 0.44, 0.26},
	{"C00", "French Defense", 0.43, 0.30},
	{"B10", "Caro-Kann Defense", 0.44, 0.29},
	{"A40", "Queen's Pawn Opening", 0.47, 0.26},
	{"C40", "King's Knight Opening", 0.48, 0.25},
}

// RatingRanges are the player strength bands.
var RatingRanges = []RatingRange{
	{1200, 1400},
	{1400, 1600},
	{1600, 1800},
	{1800, 2000},
	{2000, 2200},
}

const (
	MinGamesPerCell = 100
	MaxGamesPerCell = 199
)

// Generate returns a deterministic game log for seed. Every opening gets between
// MinGamesPerCell and MaxGamesPerCell games in every rating range.
func Generate(seed uint64) []models.GameRecord {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	var games []models.GameRecord
	for _, o := range Openings {
		for _, rr := range RatingRanges {
			n := MinGamesPerCell + rng.IntN(MaxGamesPerCell-MinGamesPerCell+1)
			for i := 0; i < n; i++ {
				white := rr.Min + rng.IntN(rr.Max-rr.Min)
				black := rr.Min + rng.IntN(rr.Max-rr.Min)

				games = append(games, models.GameRecord{
					Source:      models.SourceSample,
					ExternalID:  fmt.Sprintf("sample_%d_%d", seed, len(games)+1),
					OpeningCode: o.Code,
					OpeningName: o.Name,
					WhiteRating: &white,
					BlackRating: &black,
					Result:      o.draw(rng.Float64()),
				})
			}
		}
	}
	return games
}

func (o Opening) draw(u float64) models.Result {
	switch {
	case u < o.WhiteWin:
		return models.ResultWhite
	case u < o.WhiteWin+o.Draw:
		return models.ResultDraw
	default:
		return models.ResultBlack
	}
}
