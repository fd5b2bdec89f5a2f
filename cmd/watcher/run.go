package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pumpScope/internal/aggregate"
	"pumpScope/internal/config"
	"pumpScope/internal/geyser"
	"pumpScope/internal/httpapi"
	"pumpScope/internal/metrics"
	"pumpScope/internal/notify"
	"pumpScope/internal/pump"
	"pumpScope/internal/stream"
)

const shutdownTimeout = 5 * time.Second

func runWatcher(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		return err
	}

	programs, err := stream.ParseProgramIDs(cfg.Programs)
	if err != nil {
		return err
	}
	if len(programs) == 0 {
		return fmt.Errorf("program list is required")
	}

	commitment, err := geyser.ParseCommitment(cfg.Commitment)
	if err != nil {
		return err
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			return fmt.Errorf("sentry init: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics.Init()

	agg := aggregate.NewAggregator(pump.Registry(), logger.Named("aggregate"))

	bgCtx, cancelBg := context.WithCancel(ctx)
	defer cancelBg()
	var bg errgroup.Group

	var handler stream.BatchHandler = agg
	if cfg.QueueSize > 0 {
		queue := aggregate.NewQueue(agg, cfg.QueueSize, logger.Named("queue"))
		handler = queue
		bg.Go(func() error {
			_ = queue.Run(bgCtx)
			return nil
		})
	}

	if cfg.Out != "" {
		// Subscribed here, before any session can publish.
		fwd := notify.NewForwarder(agg, notify.NewJsonlSink(cfg.Out), logger.Named("notify"))
		bg.Go(func() error {
			_ = fwd.Run(bgCtx)
			return nil
		})
	}

	client, err := geyser.Dial(ctx, geyser.Config{
		Endpoint:       cfg.Endpoint,
		XToken:         cfg.XToken,
		ConnectTimeout: cfg.ConnectTimeout,
		KeepAlive:      cfg.KeepAlive,
		Insecure:       cfg.Insecure,
	})
	if err != nil {
		cancelBg()
		_ = bg.Wait()
		return fmt.Errorf("connect %s: %w", cfg.Endpoint, err)
	}
	defer client.Close()

	sessions := make([]*stream.Session, 0, len(programs))
	infos := make([]httpapi.SessionInfo, 0, len(programs))
	for _, program := range programs {
		s := stream.NewSession(stream.Config{
			Program:    program.String(),
			Commitment: commitment,
			FilterName: cfg.FilterName,
		}, client, handler, logger.Named("stream"))
		sessions = append(sessions, s)
		infos = append(infos, s)
	}

	if cfg.MetricsAddr != "" {
		srv := &http.Server{
			Addr:              cfg.MetricsAddr,
			Handler:           httpapi.NewRouter(httpapi.Deps{Sessions: infos, Records: agg, Logger: logger.Named("http")}),
			ReadHeaderTimeout: 5 * time.Second,
		}
		bg.Go(func() error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server failed", zap.Error(err), zap.String("addr", cfg.MetricsAddr))
			}
			return nil
		})
		bg.Go(func() error {
			<-bgCtx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
			return nil
		})
	}

	logger.Info("watcher start",
		zap.String("endpoint", cfg.Endpoint),
		zap.Strings("programs", cfg.Programs),
		zap.Stringer("commitment", commitment),
		zap.Int("queue_size", cfg.QueueSize),
		zap.String("out", cfg.Out),
		zap.String("metrics_addr", cfg.MetricsAddr),
	)

	err = runSessions(ctx, sessions, logger)

	cancelBg()
	_ = bg.Wait()

	if errors.Is(err, context.Canceled) {
		logger.Info("watcher stopped")
		return nil
	}
	return err
}

// runSessions runs every session to completion. A failing session does not
// stop the others; the first failure is returned.
func runSessions(ctx context.Context, sessions []*stream.Session, logger *zap.Logger) error {
	var g errgroup.Group
	for _, s := range sessions {
		g.Go(func() error {
			err := s.Run(ctx)
			switch {
			case err == nil:
				logger.Info("session ended", zap.String("session", s.ID()), zap.String("program", s.Program()))
			case errors.Is(err, context.Canceled):
			default:
				sentry.CaptureException(err)
				logger.Error("session terminated", zap.Error(err), zap.String("session", s.ID()), zap.String("program", s.Program()))
			}
			return err
		})
	}
	return g.Wait()
}
