package worker

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/vytor/openingroi/internal/chesscom"
	"github.com/vytor/openingroi/internal/logger"
	"github.com/vytor/openingroi/internal/models"
	"github.com/vytor/openingroi/internal/repository"
)

// ImportGamesJob fetches a player's monthly archives and appends the games that
// are not in the log yet.
type ImportGamesJob struct {
	GameRepo      repository.GameRepository
	ChessClient   chesscom.ClientInterface
	Username      string
	Since         *time.Time
	ArchiveLimit  int
	MaxConcurrent int
}

func (j *ImportGamesJob) Name() string { return "import_games:" + j.Username }

func (j *ImportGamesJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("username", j.Username)
	log.Info("starting background import")

	archives, err := j.ChessClient.FetchArchives(ctx, j.Username)
	if err != nil {
		log.Error("failed to fetch archives: %v", err)
		return err
	}

	if j.Since != nil {
		archives = filterArchivesByDate(archives, *j.Since)
		log.Info("filtered archives to %d based on since", len(archives))
	}

	// ArchiveLimit of 0 means fetch all archives
	if j.ArchiveLimit > 0 && len(archives) > j.ArchiveLimit {
		archives = archives[len(archives)-j.ArchiveLimit:]
		log.Debug("limiting to last %d archives", j.ArchiveLimit)
	}
	log.Info("fetching %d archives in parallel", len(archives))

	maxConc := j.MaxConcurrent
	if maxConc <= 0 {
		maxConc = 10
	}

	type archiveResult struct {
		index int
		games []chesscom.MonthlyGame
		err   error
	}

	results := make(chan archiveResult, len(archives))
	sem := make(chan struct{}, maxConc)

	var wg sync.WaitGroup
	for i, url := range archives {
		wg.Add(1)
		go func(index int, archiveURL string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			monthly, err := j.ChessClient.FetchMonthly(ctx, archiveURL)
			results <- archiveResult{index: index, games: monthly, err: err}
		}(i, url)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	byArchive := make([][]chesscom.MonthlyGame, len(archives))
	for res := range results {
		if res.err != nil {
			log.Error("failed to fetch monthly games: %v", res.err)
			continue
		}
		byArchive[res.index] = res.games
	}
	if ctx.Err() != nil {
		log.Warn("import cancelled: %v", ctx.Err())
		return ctx.Err()
	}

	existingIDs, err := j.GameRepo.ExistingExternalIDs(ctx, models.SourceChessCom)
	if err != nil {
		log.Warn("failed to load existing game ids: %v", err)
		existingIDs = map[string]bool{}
	}

	// Archives are oldest first, so the log keeps chronological order.
	var newGames []models.GameRecord
	var skipped int
	for _, monthly := range byArchive {
		for _, mg := range monthly {
			g, err := chesscom.GameRecord(mg)
			if err != nil {
				log.Debug("skipping game: %v", err)
				skipped++
				continue
			}
			if existingIDs[g.ExternalID] {
				continue
			}
			existingIDs[g.ExternalID] = true // avoid duplicates in batch
			newGames = append(newGames, g)
		}
	}

	if len(newGames) == 0 {
		log.Info("no new games to import (skipped %d)", skipped)
		return nil
	}

	inserted, err := j.GameRepo.InsertBatch(ctx, newGames)
	if err != nil {
		log.Error("failed to batch insert games: %v", err)
		return err
	}

	log.Info("imported %d new games, skipped %d without an opening", len(inserted), skipped)
	return nil
}

// filterArchivesByDate keeps archives from the given month/year onwards.
// Archive URLs look like: https://api.chess.com/pub/player/{username}/games/YYYY/MM
func filterArchivesByDate(archives []string, since time.Time) []string {
	if since.IsZero() {
		return archives
	}
	sinceMonth := time.Date(since.Year(), since.Month(), 1, 0, 0, 0, 0, time.UTC)

	var filtered []string
	for _, url := range archives {
		parts := strings.Split(strings.TrimSuffix(url, "/"), "/")
		if len(parts) < 2 {
			continue
		}
		year, err1 := strconv.Atoi(parts[len(parts)-2])
		monthInt, err2 := strconv.Atoi(parts[len(parts)-1])
		if err1 != nil || err2 != nil {
			continue
		}
		archiveMonth := time.Date(year, time.Month(monthInt), 1, 0, 0, 0, 0, time.UTC)
		if archiveMonth.Before(sinceMonth) {
			continue
		}
		filtered = append(filtered, url)
	}
	return filtered
}
