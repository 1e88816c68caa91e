package services

import (
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/vytor/openingroi/internal/errors"
	"github.com/vytor/openingroi/internal/ingest"
	"github.com/vytor/openingroi/internal/jobs"
	"github.com/vytor/openingroi/internal/logger"
	"github.com/vytor/openingroi/internal/models"
	"github.com/vytor/openingroi/internal/repository"
	"github.com/vytor/openingroi/internal/sample"
	"github.com/vytor/openingroi/internal/worker"
)

// GameService handles game log business logic
type GameService interface {
	ImportCSV(ctx context.Context, r io.Reader) (int, error)
	ListGames(ctx context.Context, filter models.GameFilter) ([]models.GameRecord, int, error)
	QueueChessComImport(ctx context.Context, username string) error
	SeedSample(ctx context.Context, seed uint64) (int, error)
}

type gameService struct {
	gameRepo repository.GameRepository
	jobQueue jobs.JobQueue
}

// NewGameService creates a new GameService
func NewGameService(gameRepo repository.GameRepository, jobQueue jobs.JobQueue) GameService {
	return &gameService{
		gameRepo: gameRepo,
		jobQueue: jobQueue,
	}
}

// ImportCSV appends every row of a game table and returns how many were stored.
// Nothing is stored when the table is malformed.
func (s *gameService) ImportCSV(ctx context.Context, r io.Reader) (int, error) {
	log := logger.FromContext(ctx)

	games, err := ingest.LoadCSV(ctx, r)
	if err != nil {
		log.Warn("rejected csv upload: %v", err)
		return 0, err
	}

	ids, err := s.gameRepo.InsertBatch(ctx, games)
	if err != nil {
		log.Error("failed to store csv games: %v", err)
		return 0, errors.NewInternalError(err)
	}

	log.Info("imported %d of %d csv games", len(ids), len(games))
	return len(ids), nil
}

func (s *gameService) ListGames(ctx context.Context, filter models.GameFilter) ([]models.GameRecord, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing games: opening=%s, result=%s, limit=%d, offset=%d",
		filter.OpeningCode, filter.Result, filter.Limit, filter.Offset)

	if filter.Result != "" && !filter.Result.Valid() {
		return nil, 0, errors.NewValidationError("result", "must be one of white, draw, black")
	}
	if filter.MinRating > 0 && filter.MaxRating > 0 && filter.MinRating >= filter.MaxRating {
		return nil, 0, errors.NewValidationError("max_rating", "must be greater than min_rating")
	}

	games, err := s.gameRepo.List(ctx, filter)
	if err != nil {
		log.Error("failed to list games: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	totalCount, err := s.gameRepo.Count(ctx, filter)
	if err != nil {
		log.Error("failed to count games: %v", err)
		return nil, 0, errors.NewInternalError(err)
	}

	return games, totalCount, nil
}

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_-]{3,25}$`)

func (s *gameService) QueueChessComImport(ctx context.Context, username string) error {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if !usernameRe.MatchString(username) {
		return errors.NewValidationError("username", "must be 3-25 letters, digits, '_' or '-'")
	}

	log = log.WithField("username", username)
	log.Info("queueing game import job")

	if err := s.jobQueue.EnqueueImport(username); err != nil {
		if errors.Is(err, worker.ErrQueueFull) || errors.Is(err, worker.ErrPoolClosed) {
			log.Warn("import not queued: %v", err)
			return errors.NewUnavailableError("import queue is not accepting jobs, try again later", err)
		}
		log.Error("failed to queue import: %v", err)
		return errors.NewInternalError(err)
	}
	return nil
}

// SeedSample stores the synthetic log for seed. Seeding twice with the same seed
// adds nothing.
func (s *gameService) SeedSample(ctx context.Context, seed uint64) (int, error) {
	log := logger.FromContext(ctx).WithField("seed", seed)

	games := sample.Generate(seed)
	ids, err := s.gameRepo.InsertBatch(ctx, games)
	if err != nil {
		log.Error("failed to store sample games: %v", err)
		return 0, errors.NewInternalError(err)
	}

	log.Info("seeded %d of %d sample games", len(ids), len(games))
	return len(ids), nil
}
