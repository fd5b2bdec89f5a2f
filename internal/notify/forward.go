package notify

import (
	"context"

	"github.com/ethereum/go-ethereum/event"
	"go.uber.org/zap"

	"pumpScope/internal/model"
)

const forwardBuffer = 64

// Source publishes notifications, typically the aggregator.
type Source interface {
	Subscribe(ch chan<- model.Notification) event.Subscription
}

// Forwarder moves notifications from a source to a sink. The subscription is
// taken when the Forwarder is built, so nothing published after
// NewForwarder returns is missed, even before Run starts.
type Forwarder struct {
	ch     chan model.Notification
	sub    event.Subscription
	sink   Sink
	logger *zap.Logger
}

func NewForwarder(source Source, sink Sink, logger *zap.Logger) *Forwarder {
	if logger == nil {
		logger = zap.NewNop()
	}
	ch := make(chan model.Notification, forwardBuffer)
	return &Forwarder{
		ch:     ch,
		sub:    source.Subscribe(ch),
		sink:   sink,
		logger: logger,
	}
}

// Run delivers notifications until ctx ends, then unsubscribes. Sink errors
// are logged and do not stop delivery.
func (f *Forwarder) Run(ctx context.Context) error {
	defer f.sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-f.sub.Err():
			return err
		case n := <-f.ch:
			if err := f.sink.Notify(n); err != nil {
				f.logger.Warn("notify failed", zap.Error(err), zap.String("tx", n.Signature))
			}
		}
	}
}

// Forward subscribes and runs a Forwarder in one call.
func Forward(ctx context.Context, source Source, sink Sink, logger *zap.Logger) error {
	return NewForwarder(source, sink, logger).Run(ctx)
}
