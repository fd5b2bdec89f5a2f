package aggregate

import (
	"context"

	"go.uber.org/zap"

	"pumpScope/internal/model"
)

// Queue hands batches to a single goroutine that owns all Handle calls, so
// sessions never wait on the aggregator lock, only on channel capacity.
type Queue struct {
	agg     *Aggregator
	batches chan model.TxBatch
	logger  *zap.Logger
}

func NewQueue(agg *Aggregator, size int, logger *zap.Logger) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	if size < 1 {
		size = 1
	}
	return &Queue{
		agg:     agg,
		batches: make(chan model.TxBatch, size),
		logger:  logger,
	}
}

// HandleBatch enqueues batch, blocking while the queue is full.
func (q *Queue) HandleBatch(ctx context.Context, batch model.TxBatch) error {
	select {
	case q.batches <- batch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run processes queued batches until ctx ends. Pending batches are dropped.
func (q *Queue) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case batch := <-q.batches:
			if err := q.agg.Handle(batch.Logs, batch.Slot, batch.Signature); err != nil {
				q.logger.Warn("handle batch failed", zap.Error(err), zap.String("tx", batch.Signature))
			}
		}
	}
}
