package jobs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/openingroi/internal/jobs"
	"github.com/vytor/openingroi/internal/testutil/mocks"
	"github.com/vytor/openingroi/internal/worker"
)

func TestWorkerQueue_EnqueueImport(t *testing.T) {
	// Not started, so submitted imports stay queued.
	pool := worker.NewPool(1, 1)
	queue := jobs.NewWorkerQueue(pool, new(mocks.MockGameRepository), new(mocks.MockChessClient), 0, 2)

	require.NoError(t, queue.EnqueueImport("magnus"))
	assert.Equal(t, 1, queue.Pending())

	assert.ErrorIs(t, queue.EnqueueImport("hikaru"), worker.ErrQueueFull)
	assert.Equal(t, 1, queue.Pending())
}

func TestWorkerQueue_EnqueueAfterStop(t *testing.T) {
	pool := worker.NewPool(1, 4)
	pool.Stop()
	queue := jobs.NewWorkerQueue(pool, new(mocks.MockGameRepository), new(mocks.MockChessClient), 0, 2)

	assert.ErrorIs(t, queue.EnqueueImport("magnus"), worker.ErrPoolClosed)
}
