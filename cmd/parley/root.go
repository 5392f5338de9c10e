package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"parley"
	"parley/internal/logging"
	"parley/pkg/adapters/redis"
)

// config carries the environment-driven settings. Flags, where present,
// take precedence over the environment.
type config struct {
	Port       int    `env:"PARLEY_PORT" envDefault:"8080"`
	RedisAddr  string `env:"PARLEY_REDIS_ADDR"`
	RedisPass  string `env:"PARLEY_REDIS_PASSWORD"`
	RedisDB    int    `env:"PARLEY_REDIS_DB" envDefault:"0"`
	LedgerPath string `env:"PARLEY_LEDGER_PATH"`
	LogLevel   string `env:"PARLEY_LOG_LEVEL" envDefault:"info"`
}

var rootCmd = &cobra.Command{
	Use:   "parley",
	Short: "Parley is an intent resolution engine for voice-driven tools",
	Long: `Parley resolves free-form utterances into deterministic state transitions.
It ships two surfaces: a game master for branching adventures and a
shopping assistant with a catalog, cart and order lifecycle.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("world", "", "YAML world file (default: embedded Brinmere world)")
	rootCmd.PersistentFlags().String("catalog", "", "YAML catalog file (default: embedded demo catalog)")
	rootCmd.PersistentFlags().String("ledger", "", "order ledger file (default: .parley/orders.json)")
	rootCmd.PersistentFlags().String("redis", "", "Redis address for session storage (default: in-memory)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
}

func loadConfig(cmd *cobra.Command) (config, error) {
	cfg, err := env.ParseAs[config]()
	if err != nil {
		return config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if v, _ := cmd.Flags().GetString("redis"); v != "" {
		cfg.RedisAddr = v
	}
	if v, _ := cmd.Flags().GetString("ledger"); v != "" {
		cfg.LedgerPath = v
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}

func newLogger(cfg config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	return logging.New(level)
}

// newApp wires the application from flags and environment.
func newApp(cmd *cobra.Command, cfg config, logger *slog.Logger) (*parley.App, error) {
	opts := []parley.Option{
		parley.WithLogger(logger),
		parley.WithLedgerFile(cfg.LedgerPath),
	}
	if v, _ := cmd.Flags().GetString("world"); v != "" {
		opts = append(opts, parley.WithWorldFile(v))
	}
	if v, _ := cmd.Flags().GetString("catalog"); v != "" {
		opts = append(opts, parley.WithCatalogFile(v))
	}
	if cfg.RedisAddr != "" {
		opts = append(opts, parley.WithStore(redis.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)))
	}
	return parley.New(opts...)
}
