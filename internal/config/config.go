package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "WATCHER"

// ErrMissingEndpoint is returned when no streaming endpoint is configured.
var ErrMissingEndpoint = errors.New("endpoint is required (set --endpoint, WATCHER_ENDPOINT or YELLOWSTONE_GRPC_URL)")

// DefaultPrograms are watched when no program is configured: the token
// launch program and the pool program.
var DefaultPrograms = []string{
	"6EF8rrecthR5Dkzon8Nwu78hRvfCKubJ14M5uBEwF6P",
	"pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA",
}

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	Endpoint       string
	XToken         string
	Programs       []string
	Commitment     string
	FilterName     string
	ConnectTimeout time.Duration
	KeepAlive      time.Duration
	Insecure       bool
	QueueSize      int
	Out            string
	MetricsAddr    string
	SentryDSN      string
	LogLevel       string
}

// Load merges .env, config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetDefault("commitment", "processed")
	v.SetDefault("filter-name", "client")
	v.SetDefault("connect-timeout", 10*time.Second)
	v.SetDefault("keepalive", 60*time.Second)
	v.SetDefault("insecure", false)
	v.SetDefault("queue-size", 0)
	v.SetDefault("out", "")
	v.SetDefault("metrics-addr", "")
	v.SetDefault("log-level", "info")

	if err := prepare(v, cfgFile, flags); err != nil {
		return Config{}, err
	}
	if err := v.BindEnv("endpoint", envPrefix+"_ENDPOINT", "YELLOWSTONE_GRPC_URL"); err != nil {
		return Config{}, fmt.Errorf("bind endpoint env: %w", err)
	}

	programs := getStringSlice(v, "program")
	if len(programs) == 0 {
		programs = append([]string(nil), DefaultPrograms...)
	}

	cfg := Config{
		Endpoint:       strings.TrimSpace(v.GetString("endpoint")),
		XToken:         v.GetString("x-token"),
		Programs:       programs,
		Commitment:     v.GetString("commitment"),
		FilterName:     v.GetString("filter-name"),
		ConnectTimeout: v.GetDuration("connect-timeout"),
		KeepAlive:      v.GetDuration("keepalive"),
		Insecure:       v.GetBool("insecure"),
		QueueSize:      v.GetInt("queue-size"),
		Out:            v.GetString("out"),
		MetricsAddr:    v.GetString("metrics-addr"),
		SentryDSN:      v.GetString("sentry-dsn"),
		LogLevel:       v.GetString("log-level"),
	}

	return cfg, nil
}

// Validate reports settings the watcher cannot start with.
func (c Config) Validate() error {
	if c.Endpoint == "" {
		return ErrMissingEndpoint
	}
	if c.QueueSize < 0 {
		return fmt.Errorf("queue-size must not be negative: %d", c.QueueSize)
	}
	return nil
}

// prepare wires env, flags and the optional config file into v. The .env
// file named by env-file is loaded first; variables already set win.
func prepare(v *viper.Viper, cfgFile string, flags *pflag.FlagSet) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("env-file", ".env")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return fmt.Errorf("bind flags: %w", err)
		}
	}

	if envFile := v.GetString("env-file"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env file: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("read config: %w", err)
			}
		}
	}
	return nil
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return cleanStrings(typed)
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
