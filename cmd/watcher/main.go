package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

func main() {
	root := &cobra.Command{
		Use:          "watcher",
		Short:        "Pump program event watcher",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("env-file", ".env", "dotenv file loaded before reading the environment")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Stream transactions and print decoded program events",
		RunE:  runWatcher,
	}

	runCmd.Flags().String("endpoint", "", "Yellowstone gRPC endpoint (also YELLOWSTONE_GRPC_URL)")
	runCmd.Flags().String("x-token", "", "Yellowstone x-token")
	runCmd.Flags().StringSlice("program", nil, "program addresses to watch (comma-separated)")
	runCmd.Flags().String("commitment", "processed", "commitment level (processed, confirmed, finalized)")
	runCmd.Flags().String("filter-name", "client", "transaction filter name")
	runCmd.Flags().Duration("connect-timeout", 10*time.Second, "connect timeout")
	runCmd.Flags().Duration("keepalive", 60*time.Second, "gRPC keepalive interval")
	runCmd.Flags().Bool("insecure", false, "use plaintext gRPC")
	runCmd.Flags().Int("queue-size", 0, "aggregator queue capacity, 0 handles batches inline")
	runCmd.Flags().String("out", "", "notification JSONL path, - for stdout")
	runCmd.Flags().String("metrics-addr", "", "listen address for /healthz, /metrics and /sessions")
	runCmd.Flags().String("sentry-dsn", "", "Sentry DSN for session failures")
	runCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(runCmd)

	decodeCmd := &cobra.Command{
		Use:   "decode",
		Short: "Decode captured transaction logs into notifications",
		RunE:  runDecode,
	}

	decodeCmd.Flags().String("in", "", "input transaction batches JSONL")
	decodeCmd.Flags().String("out", "./data/notifications.jsonl", "output notifications JSONL")
	decodeCmd.Flags().String("errors", "./data/decode_errors.jsonl", "decode errors JSONL")
	decodeCmd.Flags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(decodeCmd)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if term.IsTerminal(int(os.Stderr.Fd())) {
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	return cfg.Build()
}
