package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/vytor/openingroi/internal/errors"
	"github.com/vytor/openingroi/internal/logger"
	"github.com/vytor/openingroi/internal/metrics"
	"github.com/vytor/openingroi/internal/models"
	"github.com/vytor/openingroi/internal/services"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	MetricsService services.MetricsService
	GameService    services.GameService
	DB             Pinger
	SampleSeed     uint64
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

// nonNil keeps empty tables encoded as [] rather than null.
func nonNil(rows []models.OpeningMetrics) []models.OpeningMetrics {
	if rows == nil {
		return []models.OpeningMetrics{}
	}
	return rows
}

// parseBucket reads the bucket query parameter. An unescaped "2200+" arrives as
// "2200 ", so spaces are read back as plus signs.
func parseBucket(r *http.Request) (models.RatingBucket, error) {
	raw := strings.TrimSpace(strings.ReplaceAll(r.URL.Query().Get("bucket"), " ", "+"))
	if raw == "" || strings.EqualFold(raw, "all") {
		return models.AllRatings, nil
	}
	bucket := models.RatingBucket(raw)
	if !metrics.ValidBucket(bucket) {
		return "", errors.NewValidationError("bucket", "unknown rating bucket "+raw)
	}
	return bucket, nil
}

func parseIntParam(r *http.Request, name string, def int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewValidationError(name, "must be an integer")
	}
	return v, nil
}
