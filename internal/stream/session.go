package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pumpScope/internal/geyser"
	"pumpScope/internal/metrics"
	"pumpScope/internal/model"
)

// PongID is sent in reply to every server ping, whatever id the ping had.
const PongID int32 = 1

// Channel opens subscriptions on the streaming service.
type Channel interface {
	Subscribe(ctx context.Context, filter geyser.Filter) (geyser.Stream, error)
}

// BatchHandler consumes the logs of one streamed transaction.
type BatchHandler interface {
	HandleBatch(ctx context.Context, batch model.TxBatch) error
}

// State is the lifecycle position of a Session.
type State int32

const (
	StateConnecting State = iota
	StateStreaming
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateStreaming:
		return "streaming"
	default:
		return "terminated"
	}
}

// Session watches one program address over a single subscription. It never
// reconnects: once Run returns the session stays terminated.
type Session struct {
	id      string
	cfg     Config
	channel Channel
	handler BatchHandler
	logger  *zap.Logger
	state   atomic.Int32
	started time.Time
}

// NewSession builds a Session in the connecting state.
func NewSession(cfg Config, channel Channel, handler BatchHandler, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := uuid.NewString()
	return &Session{
		id:      id,
		cfg:     cfg,
		channel: channel,
		handler: handler,
		logger:  logger.With(zap.String("session", id), zap.String("program", cfg.Program)),
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Program() string { return s.cfg.Program }

func (s *Session) State() State { return State(s.state.Load()) }

// StartedAt is zero until the subscription is open.
func (s *Session) StartedAt() time.Time {
	if s.State() == StateConnecting {
		return time.Time{}
	}
	return s.started
}

// Run subscribes and processes updates in arrival order until the stream
// closes, the transport fails, the handler fails or ctx ends. A clean close
// returns nil.
func (s *Session) Run(ctx context.Context) error {
	defer s.state.Store(int32(StateTerminated))

	if s.channel == nil {
		return errors.New("stream channel is nil")
	}
	if s.handler == nil {
		return errors.New("batch handler is nil")
	}

	// Cancelling streamCtx on return releases the server-side stream when the
	// loop stops before the transport reports an error.
	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.logger.Info("subscribe", zap.String("commitment", s.cfg.Commitment.String()))
	st, err := s.channel.Subscribe(streamCtx, BuildFilter(s.cfg))
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.Error("subscribe failed", zap.Error(err))
		return fmt.Errorf("subscribe %s: %w", s.cfg.Program, err)
	}
	defer st.CloseSend()

	s.started = time.Now().UTC()
	s.state.Store(int32(StateStreaming))
	metrics.SessionStarted()
	defer metrics.SessionEnded()
	s.logger.Info("streaming")

	for {
		update, err := st.Recv()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, io.EOF) {
				s.logger.Info("stream closed")
				return nil
			}
			s.logger.Error("stream error", zap.Error(err))
			return fmt.Errorf("receive %s: %w", s.cfg.Program, err)
		}
		if err := s.dispatch(ctx, st, update); err != nil {
			return err
		}
	}
}

func (s *Session) dispatch(ctx context.Context, st geyser.Stream, update *geyser.Update) error {
	if update == nil {
		return nil
	}
	metrics.IncUpdate(update.Kind.String())

	switch update.Kind {
	case geyser.UpdateTransaction:
		batch, ok := buildTxBatch(update.Transaction)
		if !ok {
			return nil
		}
		s.logger.Debug("transaction", zap.Uint64("slot", batch.Slot), zap.String("tx", batch.Signature), zap.Strings("filters", update.Filters))
		if err := s.handler.HandleBatch(ctx, batch); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Error("handle batch failed", zap.Error(err), zap.String("tx", batch.Signature))
			return fmt.Errorf("handle %s: %w", batch.Signature, err)
		}
	case geyser.UpdatePing:
		if err := st.Send(geyser.Pong(PongID)); err != nil {
			metrics.IncPong(metrics.ResultError)
			s.logger.Warn("pong failed", zap.Error(err))
			return nil
		}
		metrics.IncPong(metrics.ResultOK)
	case geyser.UpdatePong:
		if update.Pong != nil {
			s.logger.Debug("pong received", zap.Int32("id", update.Pong.ID))
		}
	default:
		s.logger.Debug("ignored update", zap.Stringer("kind", update.Kind))
	}
	return nil
}
