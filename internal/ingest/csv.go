// Package ingest reads game logs from tabular sources into GameRecords.
package ingest

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/vytor/openingroi/internal/errors"
	"github.com/vytor/openingroi/internal/logger"
	"github.com/vytor/openingroi/internal/models"
)

// Column names of the game table.
const (
	ColOpeningCode = "opening_eco"
	ColOpeningName = "opening_name"
	ColWhiteRating = "white_rating"
	ColBlackRating = "black_rating"
	ColResult      = "result"
	ColExternalID  = "external_id"
)

var requiredColumns = []string{ColOpeningCode, ColWhiteRating, ColBlackRating, ColResult}

// LoadCSV parses a game table with a header row. Columns are matched by name and
// unknown columns are ignored. Ratings that are empty or not numeric are kept as
// missing. A row with an unknown result or without an opening code fails the
// whole load with ErrMalformedInput.
func LoadCSV(ctx context.Context, r io.Reader) ([]models.GameRecord, error) {
	log := logger.FromContext(ctx).WithPrefix("ingest")

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if stderrors.Is(err, io.EOF) {
		return nil, errors.NewMalformedInputError("empty input: missing header row")
	}
	if err != nil {
		return nil, errors.NewMalformedInputError("read header: %v", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, errors.NewMalformedInputError("missing required column %q", col)
		}
	}

	field := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var (
		games   []models.GameRecord
		unrated int
	)
	for {
		rec, err := reader.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, errors.NewMalformedInputError("%v", err)
		}
		line, _ := reader.FieldPos(0)
		if isBlank(rec) {
			continue
		}

		code := field(rec, ColOpeningCode)
		if code == "" {
			return nil, errors.NewMalformedInputError("row %d: empty %s", line, ColOpeningCode)
		}
		result, err := models.ParseResult(field(rec, ColResult))
		if err != nil {
			return nil, errors.NewMalformedInputError("row %d: %v", line, err)
		}

		g := models.GameRecord{
			Source:      models.SourceCSV,
			ExternalID:  field(rec, ColExternalID),
			OpeningCode: code,
			OpeningName: field(rec, ColOpeningName),
			WhiteRating: ParseRating(field(rec, ColWhiteRating)),
			BlackRating: ParseRating(field(rec, ColBlackRating)),
			Result:      result,
		}
		if !g.HasRatings() {
			unrated++
		}
		games = append(games, g)
	}

	log.Info("loaded %d games from csv (%d without both ratings)", len(games), unrated)
	return games, nil
}

// ParseRating returns nil for anything that is not a number in
// [0, models.MaxRating]. Fractional ratings are rounded to the nearest integer.
func ParseRating(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return nil
	}
	f = math.Round(f)
	if f < 0 || f > models.MaxRating {
		return nil
	}
	v := int(f)
	return &v
}

func isBlank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
