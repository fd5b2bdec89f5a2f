package aggregate

import (
	"context"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"go.uber.org/zap"

	"pumpScope/internal/anchor"
	"pumpScope/internal/metrics"
	"pumpScope/internal/model"
)

// Aggregator groups decoded program events by transaction signature.
// Records are never evicted, so memory grows with every signature seen.
type Aggregator struct {
	codecs []anchor.Codec
	logger *zap.Logger
	feed   event.Feed

	mu     sync.Mutex
	events map[string][]model.EventRecord
}

// NewAggregator builds an Aggregator that scans for codecs in the given order.
func NewAggregator(codecs []anchor.Codec, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		codecs: codecs,
		logger: logger,
		events: make(map[string][]model.EventRecord),
	}
}

// Handle decodes at most one event per codec from logs and appends them to
// the signature's records. When anything was appended, the full record list
// for the signature is logged and published to subscribers. The lock is held
// for the whole call, so concurrent sessions are serialized here.
func (a *Aggregator) Handle(logs []string, slot uint64, signature string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	start := time.Now()
	defer func() { metrics.ObserveHandleDuration(time.Since(start)) }()

	if len(logs) == 0 {
		return nil
	}

	added := 0
	for _, codec := range a.codecs {
		ev, ok := anchor.Find(logs, codec)
		if !ok {
			continue
		}
		a.events[signature] = append(a.events[signature], model.EventRecord{
			Slot:   slot,
			Name:   codec.Name,
			Family: codec.Family,
			Event:  ev,
		})
		added++
		metrics.IncEventDecoded(codec.Name)
	}
	if added == 0 {
		return nil
	}

	stored := a.events[signature]
	snapshot := make([]model.EventRecord, len(stored))
	copy(snapshot, stored)
	notification := model.Notification{Signature: signature, Slot: slot, Records: snapshot}

	a.logger.Info("transaction events",
		zap.Uint64("slot", slot),
		zap.String("tx", signature),
		zap.Int("new", added),
		zap.Strings("events", notification.Rendered()),
	)
	metrics.SetTrackedSignatures(len(a.events))

	a.feed.Send(notification)
	return nil
}

// HandleBatch runs Handle for a batch received from a stream session.
func (a *Aggregator) HandleBatch(ctx context.Context, batch model.TxBatch) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return a.Handle(batch.Logs, batch.Slot, batch.Signature)
}

// Subscribe registers ch for notifications. Delivery is synchronous with
// Handle and happens under the aggregator lock: a subscriber that stops
// draining ch blocks every Handle call, and with it every session's receive
// loop including its ping replies, until it drains or unsubscribes.
func (a *Aggregator) Subscribe(ch chan<- model.Notification) event.Subscription {
	return a.feed.Subscribe(ch)
}

// Records returns a copy of the records stored for signature.
func (a *Aggregator) Records(signature string) []model.EventRecord {
	a.mu.Lock()
	defer a.mu.Unlock()

	stored, ok := a.events[signature]
	if !ok {
		return nil
	}
	out := make([]model.EventRecord, len(stored))
	copy(out, stored)
	return out
}

// Len returns the number of signatures with at least one record.
func (a *Aggregator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.events)
}
