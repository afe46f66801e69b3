package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sguter90/ambientweather/pkg/config"
	"github.com/sguter90/ambientweather/pkg/logging"
)

const appName = "ambientweather"

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

type contextKey string

const (
	configContextKey contextKey = "config"
	loggerContextKey contextKey = "logger"
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Ambient Weather API client",
	Long: `ambientweather talks to the Ambient Weather REST API: it lists the
devices registered to an account, prints their historical records, relays
them over a local JSON API and publishes live snapshots.`,
	SilenceUsage: true,
}

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(cfg, version, appName)
	slog.SetDefault(logger)

	ctx := context.WithValue(context.Background(), configContextKey, cfg)
	ctx = context.WithValue(ctx, loggerContextKey, logger)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func configFrom(cmd *cobra.Command) config.Config {
	cfg, _ := cmd.Context().Value(configContextKey).(config.Config)
	return cfg
}

func loggerFrom(cmd *cobra.Command) *slog.Logger {
	if logger, ok := cmd.Context().Value(loggerContextKey).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
