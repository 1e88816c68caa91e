package jobs

import (
	"github.com/vytor/openingroi/internal/chesscom"
	"github.com/vytor/openingroi/internal/repository"
	"github.com/vytor/openingroi/internal/worker"
)

// WorkerQueue implements JobQueue using worker pools
type WorkerQueue struct {
	importPool    *worker.Pool
	gameRepo      repository.GameRepository
	chessClient   chesscom.ClientInterface
	archiveLimit  int
	maxConcurrent int
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(
	importPool *worker.Pool,
	gameRepo repository.GameRepository,
	chessClient chesscom.ClientInterface,
	archiveLimit int,
	maxConcurrent int,
) *WorkerQueue {
	return &WorkerQueue{
		importPool:    importPool,
		gameRepo:      gameRepo,
		chessClient:   chessClient,
		archiveLimit:  archiveLimit,
		maxConcurrent: maxConcurrent,
	}
}

func (q *WorkerQueue) EnqueueImport(username string) error {
	return q.importPool.Submit(&worker.ImportGamesJob{
		GameRepo:      q.gameRepo,
		ChessClient:   q.chessClient,
		Username:      username,
		ArchiveLimit:  q.archiveLimit,
		MaxConcurrent: q.maxConcurrent,
	})
}

// Pending returns the number of imports waiting for a worker.
func (q *WorkerQueue) Pending() int {
	return q.importPool.QueueSize()
}

var _ JobQueue = (*WorkerQueue)(nil)
