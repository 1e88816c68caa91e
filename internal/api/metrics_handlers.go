package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/openingroi/internal/errors"
	"github.com/vytor/openingroi/internal/export"
	"github.com/vytor/openingroi/internal/logger"
	"github.com/vytor/openingroi/internal/metrics"
	"github.com/vytor/openingroi/internal/models"
	"github.com/vytor/openingroi/internal/recommend"
)

// objectiveLabels are the display names of the ranking objectives.
var objectiveLabels = map[recommend.Objective]string{
	recommend.ObjectiveSharpeRatio: "Risk-Adjusted Return (Sharpe)",
	recommend.ObjectiveROI:         "Maximum ROI",
	recommend.ObjectiveWinRate:     "Highest Win Rate",
}

type objectiveInfo struct {
	Name  recommend.Objective `json:"name"`
	Label string              `json:"label"`
}

type recommendationResponse struct {
	Rating         int                    `json:"rating"`
	Bucket         models.RatingBucket    `json:"bucket"`
	Objective      objectiveInfo          `json:"objective"`
	Recommendation *models.OpeningMetrics `json:"recommendation"`
	Reason         string                 `json:"reason,omitempty"`
}

func (s *Server) handleBuckets(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.MetricsService.Buckets(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"buckets": summaries})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	bucket, err := parseBucket(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	rows, err := s.MetricsService.AllOpenings(r.Context(), bucket)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"bucket": bucket, "metrics": nonNil(rows)})
}

func (s *Server) handleMetricsByBucket(w http.ResponseWriter, r *http.Request) {
	rows, err := s.MetricsService.ByAllBuckets(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"metrics": nonNil(rows)})
}

func (s *Server) handleTopOpenings(w http.ResponseWriter, r *http.Request) {
	bucket, err := parseBucket(r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	n, err := parseIntParam(r, "n", 5)
	if err != nil {
		handleError(w, r, err)
		return
	}

	rows, err := s.MetricsService.TopOpenings(r.Context(), bucket, n)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"bucket": bucket, "metrics": nonNil(rows)})
}

func (s *Server) handleOpeningMetrics(w http.ResponseWriter, r *http.Request) {
	code := strings.ToUpper(chi.URLParam(r, "eco"))
	bucket, err := parseBucket(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	m, ok, err := s.MetricsService.OpeningMetrics(r.Context(), code, bucket)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if !ok {
		handleError(w, r, errors.NewNotFoundError("games for opening", code))
		return
	}
	writeJSON(w, r, http.StatusOK, m)
}

func (s *Server) handleRecommendation(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	rawRating := strings.TrimSpace(r.URL.Query().Get("rating"))
	if rawRating == "" {
		handleError(w, r, errors.NewValidationError("rating", "is required"))
		return
	}
	rating, err := parseIntParam(r, "rating", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}

	objective := recommend.ObjectiveSharpeRatio
	if raw := r.URL.Query().Get("objective"); raw != "" {
		objective, err = recommend.ParseObjective(raw)
		if err != nil {
			handleError(w, r, err)
			return
		}
	}

	best, ok, err := s.MetricsService.Recommend(r.Context(), rating, objective)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := recommendationResponse{
		Rating:    rating,
		Bucket:    metrics.BucketForRating(rating),
		Objective: objectiveInfo{Name: objective, Label: objectiveLabels[objective]},
	}
	if ok {
		resp.Recommendation = &best
	} else {
		resp.Reason = fmt.Sprintf("insufficient data: no opening has %d games in the %s bucket", recommend.MinSampleSize, resp.Bucket)
		log.Debug("no recommendation for rating %d", rating)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleObjectives(w http.ResponseWriter, r *http.Request) {
	out := make([]objectiveInfo, 0, len(objectiveLabels))
	for _, o := range recommend.Objectives() {
		out = append(out, objectiveInfo{Name: o, Label: objectiveLabels[o]})
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"objectives": out})
}

// handleExport downloads the per-bucket table, or one bucket's table when the
// bucket parameter is set.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		handleError(w, r, errors.NewValidationError("format", err.Error()))
		return
	}

	var rows []models.OpeningMetrics
	if r.URL.Query().Get("bucket") != "" {
		bucket, err := parseBucket(r)
		if err != nil {
			handleError(w, r, err)
			return
		}
		rows, err = s.MetricsService.AllOpenings(r.Context(), bucket)
		if err != nil {
			handleError(w, r, err)
			return
		}
	} else {
		rows, err = s.MetricsService.ByAllBuckets(r.Context())
		if err != nil {
			handleError(w, r, err)
			return
		}
	}

	var buf bytes.Buffer
	exporter := export.NewExporter(export.Options{Format: format, PrettyJSON: r.URL.Query().Has("pretty")})
	if err := exporter.Export(&buf, rows); err != nil {
		handleError(w, r, err)
		return
	}

	filename := fmt.Sprintf("opening_metrics_%s.%s", time.Now().UTC().Format("20060102"), format)
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, &buf)
}

type snapshotRequest struct {
	Label string `json:"label"`
}

func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	var req snapshotRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			handleError(w, r, errors.NewBadRequestError("invalid JSON body"))
			return
		}
	}

	snapshot, err := s.MetricsService.SaveSnapshot(r.Context(), req.Label)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, snapshot)
}

func (s *Server) handleLatestSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.MetricsService.LatestSnapshot(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, snapshot)
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r, "limit", 20)
	if err != nil {
		handleError(w, r, err)
		return
	}
	snapshots, err := s.MetricsService.ListSnapshots(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if snapshots == nil {
		snapshots = []models.MetricSnapshot{}
	}
	writeJSON(w, r, http.StatusOK, map[string]any{"snapshots": snapshots})
}
