package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/vytor/openingroi/internal/errors"
	"github.com/vytor/openingroi/internal/models"
)

const maxUploadBytes = 32 << 20

type gamesResponse struct {
	Games  []models.GameRecord `json:"games"`
	Total  int                 `json:"total"`
	Limit  int                 `json:"limit"`
	Offset int                 `json:"offset"`
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := models.GameFilter{
		OpeningCode: strings.ToUpper(strings.TrimSpace(q.Get("opening"))),
		Result:      models.Result(strings.ToLower(strings.TrimSpace(q.Get("result")))),
		Source:      strings.TrimSpace(q.Get("source")),
		OrderDir:    strings.ToUpper(q.Get("order")),
	}

	var err error
	if filter.Limit, err = parseIntParam(r, "limit", 50); err != nil {
		handleError(w, r, err)
		return
	}
	if filter.Offset, err = parseIntParam(r, "offset", 0); err != nil {
		handleError(w, r, err)
		return
	}
	if filter.MinRating, err = parseIntParam(r, "min_rating", 0); err != nil {
		handleError(w, r, err)
		return
	}
	if filter.MaxRating, err = parseIntParam(r, "max_rating", 0); err != nil {
		handleError(w, r, err)
		return
	}
	if filter.Limit <= 0 || filter.Limit > 500 {
		filter.Limit = 50
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	games, total, err := s.GameService.ListGames(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if games == nil {
		games = []models.GameRecord{}
	}
	writeJSON(w, r, http.StatusOK, gamesResponse{Games: games, Total: total, Limit: filter.Limit, Offset: filter.Offset})
}

// handleUploadCSV takes the game table as the raw request body.
func (s *Server) handleUploadCSV(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, maxUploadBytes)
	defer body.Close()

	n, err := s.GameService.ImportCSV(r.Context(), body)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]int{"imported": n})
}

type importRequest struct {
	Username string `json:"username"`
}

func (s *Server) handleChessComImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid JSON body"))
		return
	}

	if err := s.GameService.QueueChessComImport(r.Context(), req.Username); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusAccepted, map[string]string{
		"status":   "queued",
		"username": strings.TrimSpace(req.Username),
	})
}

type sampleRequest struct {
	Seed *uint64 `json:"seed"`
}

func (s *Server) handleSeedSample(w http.ResponseWriter, r *http.Request) {
	var req sampleRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<16)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			handleError(w, r, errors.NewBadRequestError("invalid JSON body"))
			return
		}
	}

	seed := s.SampleSeed
	if req.Seed != nil {
		seed = *req.Seed
	}

	n, err := s.GameService.SeedSample(r.Context(), seed)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusCreated, map[string]any{"imported": n, "seed": seed})
}
