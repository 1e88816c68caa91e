package chesscom

import (
	"fmt"
	"strings"
	"time"

	"github.com/vytor/openingroi/internal/models"
	"github.com/vytor/openingroi/internal/pgn"
)

// DeriveResult determines the game outcome from White's perspective using the
// per-player result codes.
func DeriveResult(mg MonthlyGame) models.Result {
	white := NormalizeResult(mg.White.Result)
	black := NormalizeResult(mg.Black.Result)
	switch {
	case white == "win":
		return models.ResultWhite
	case black == "win":
		return models.ResultBlack
	default:
		return models.ResultDraw
	}
}

// NormalizeResult converts chess.com result strings to standardized values
func NormalizeResult(res string) string {
	res = strings.ToLower(res)
	switch res {
	case "win":
		return "win"
	case "stalemate", "agreed", "repetition", "timevsinsufficient", "insufficient", "fiftymove", "draw", "50move":
		return "draw"
	case "checkmated", "resigned", "timeout", "abandoned", "kingofthehill", "threecheck", "bughousepartnerlose":
		return "loss"
	default:
		return "loss"
	}
}

// GameRecord converts an archived game into a log row. Ratings come from the PGN
// Elo tags with the API ratings as fallback; the opening comes from the ECO tag
// or, failing that, from replaying the moves against the ECO book.
func GameRecord(mg MonthlyGame) (models.GameRecord, error) {
	headers := pgn.ParseHeaders(mg.PGN)

	result, err := headers.Result()
	if err != nil {
		result = DeriveResult(mg)
	}

	code, name := headers.Opening()
	if code == "" || name == "" {
		if detectedCode, detectedName, ok := pgn.DetectOpening(mg.PGN); ok {
			if code == "" {
				code = detectedCode
				name = detectedName
			} else if name == "" && detectedCode == code {
				name = detectedName
			}
		}
	}
	if code == "" {
		return models.GameRecord{}, fmt.Errorf("game %s: no opening code", mg.URL)
	}

	g := models.GameRecord{
		Source:      models.SourceChessCom,
		ExternalID:  pgn.ExtractGameID(mg.URL),
		OpeningCode: code,
		OpeningName: name,
		WhiteRating: rating(headers, "WhiteElo", mg.White.Rating),
		BlackRating: rating(headers, "BlackElo", mg.Black.Rating),
		Result:      result,
	}
	if mg.EndTime > 0 {
		playedAt := time.Unix(mg.EndTime, 0).UTC()
		g.PlayedAt = &playedAt
	}
	return g, nil
}

// rating prefers the PGN tag; the API reports 0 for an unknown rating.
func rating(headers pgn.Headers, tag string, fallback int) *int {
	if r := headers.Rating(tag); r != nil && *r > 0 {
		return r
	}
	if fallback > 0 && models.ValidRating(fallback) {
		return &fallback
	}
	return nil
}
