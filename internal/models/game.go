package models

import (
	"fmt"
	"strings"
	"time"
)

// Result is the outcome of a game from White's perspective.
type Result string

const (
	ResultWhite Result = "white"
	ResultDraw  Result = "draw"
	ResultBlack Result = "black"
)

// ParseResult accepts the table tokens (white, draw, black) in any case as well as
// the PGN result tokens.
func ParseResult(s string) (Result, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "1-0":
		return ResultWhite, nil
	case "draw", "1/2-1/2", "½-½":
		return ResultDraw, nil
	case "black", "0-1":
		return ResultBlack, nil
	default:
		return "", fmt.Errorf("unknown result %q", s)
	}
}

// Valid reports whether r is one of the three outcomes.
func (r Result) Valid() bool {
	return r == ResultWhite || r == ResultDraw || r == ResultBlack
}

// GameRecord is one finished game of the input log. A nil rating means the source
// value was missing or could not be parsed.
type GameRecord struct {
	ID          int64      `json:"id,omitempty"`
	Source      string     `json:"source,omitempty"`
	ExternalID  string     `json:"external_id,omitempty"`
	OpeningCode string     `json:"opening_eco"`
	OpeningName string     `json:"opening_name"`
	WhiteRating *int       `json:"white_rating"`
	BlackRating *int       `json:"black_rating"`
	Result      Result     `json:"result"`
	PlayedAt    *time.Time `json:"played_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at,omitempty"`
}

// MaxRating is the highest rating accepted from any source.
const MaxRating = 4000

// ValidRating reports whether r lies in [0, MaxRating].
func ValidRating(r int) bool {
	return r >= 0 && r <= MaxRating
}

// HasRatings reports whether both player ratings are known and in range.
func (g GameRecord) HasRatings() bool {
	return g.WhiteRating != nil && g.BlackRating != nil &&
		ValidRating(*g.WhiteRating) && ValidRating(*g.BlackRating)
}

// EnrichedGameRecord is a GameRecord plus the fields the metrics engine derives from it.
// Bucketed is false when a rating is missing; AverageRating and RatingBucket are then zero.
type EnrichedGameRecord struct {
	GameRecord
	AverageRating float64      `json:"average_rating"`
	RatingBucket  RatingBucket `json:"rating_bucket"`
	Bucketed      bool         `json:"bucketed"`
	Points        float64      `json:"points"`
}

// GameFilter narrows game listings. Rating bounds apply to the average rating.
type GameFilter struct {
	OpeningCode string
	Result      Result
	Source      string
	MinRating   int
	MaxRating   int
	Limit       int
	Offset      int
	OrderDir    string
}

// Game sources.
const (
	SourceCSV      = "csv"
	SourceChessCom = "chesscom"
	SourceSample   = "sample"
)
