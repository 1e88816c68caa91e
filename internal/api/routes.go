package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Use(timeoutMiddleware(25 * time.Second))
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"Content-Disposition", "X-Request-ID"},
			MaxAge:         300,
		}))

		r.Get("/buckets", s.handleBuckets)
		r.Get("/objectives", s.handleObjectives)

		r.Get("/metrics", s.handleMetrics)
		r.Get("/metrics/by-bucket", s.handleMetricsByBucket)
		r.Get("/metrics/top", s.handleTopOpenings)
		r.Get("/metrics/export", s.handleExport)
		r.Get("/metrics/snapshots", s.handleListSnapshots)
		r.Post("/metrics/snapshots", s.handleSaveSnapshot)
		r.Get("/metrics/snapshots/latest", s.handleLatestSnapshot)

		r.Get("/openings/{eco}/metrics", s.handleOpeningMetrics)
		r.Get("/recommendation", s.handleRecommendation)

		r.Get("/games", s.handleGames)
		r.Post("/games/csv", s.handleUploadCSV)
		r.Post("/games/sample", s.handleSeedSample)
		r.Post("/imports/chesscom", s.handleChessComImport)
	})

	return r
}
