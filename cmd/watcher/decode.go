package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pumpScope/internal/aggregate"
	"pumpScope/internal/config"
	"pumpScope/internal/model"
	"pumpScope/internal/notify"
	"pumpScope/internal/pump"
)

func runDecode(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadDecode(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.In == "" {
		return fmt.Errorf("input path is required")
	}
	if cfg.Out == "" {
		return fmt.Errorf("output path is required")
	}
	if cfg.Errors == "" {
		return fmt.Errorf("errors path is required")
	}

	inputFile, err := os.Open(cfg.In)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer inputFile.Close()

	outFile, err := createOutput(cfg.Out)
	if err != nil {
		return err
	}
	defer outFile.Close()

	errFile, err := createOutput(cfg.Errors)
	if err != nil {
		return err
	}
	defer errFile.Close()

	logger.Info("decode start",
		zap.String("in", cfg.In),
		zap.String("out", cfg.Out),
		zap.String("errors", cfg.Errors),
	)

	stats, err := decodeBatches(inputFile, notify.NewJsonlWriter(outFile), notify.NewJsonlWriter(errFile), logger)
	if err != nil {
		return err
	}

	logger.Info("decode complete",
		zap.Int("total", stats.total),
		zap.Int("notified", stats.notified),
		zap.Int("skipped", stats.skipped),
		zap.Int("failed", stats.failed),
	)

	return nil
}

type decodeStats struct {
	total    int
	notified int
	skipped  int
	failed   int
}

// decodeBatches feeds each TxBatch line through a fresh aggregator and
// writes every notification it publishes. Unusable lines go to errs.
func decodeBatches(in io.Reader, out, errs *notify.JsonlSink, logger *zap.Logger) (decodeStats, error) {
	agg := aggregate.NewAggregator(pump.Registry(), logger)
	// Handle publishes at most one notification and Send returns once the
	// value is buffered, so a single slot is drained after every call.
	notifications := make(chan model.Notification, 1)
	sub := agg.Subscribe(notifications)
	defer sub.Unsubscribe()

	scanner := bufio.NewScanner(in)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var stats decodeStats
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		stats.total++

		var batch model.TxBatch
		if err := json.Unmarshal(line, &batch); err != nil {
			stats.failed++
			if err := errs.Write(model.DecodeError{Line: lineNo, Error: err.Error()}); err != nil {
				return stats, err
			}
			continue
		}
		if batch.Signature == "" {
			batch.Signature = model.UnknownSignature
		}
		if len(batch.Logs) == 0 {
			stats.failed++
			if err := errs.Write(model.DecodeError{Line: lineNo, Signature: batch.Signature, Error: errEmptyLogs.Error()}); err != nil {
				return stats, err
			}
			continue
		}

		if err := agg.Handle(batch.Logs, batch.Slot, batch.Signature); err != nil {
			return stats, fmt.Errorf("handle line %d: %w", lineNo, err)
		}

		select {
		case n := <-notifications:
			if err := out.Notify(n); err != nil {
				return stats, err
			}
			stats.notified++
		default:
			stats.skipped++
		}
	}

	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("scan input: %w", err)
	}
	return stats, nil
}

var errEmptyLogs = errors.New("batch has no log messages")

func createOutput(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create dir: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	return file, nil
}
