// Package main is the entry point for the wooldanji console CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	console "github.com/wooldanji/console"
	"github.com/wooldanji/console/internal/config"
	"github.com/wooldanji/console/internal/log"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "wooldanji",
		Short: "Wooldanji apartment intercom admin console",
		Long: `Wooldanji is the admin console for apartment intercom deployments: apartments,
buildings and their elevator line groups, devices, resident sign-ups,
inquiries and the resident app home screen.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")

	cmd.AddCommand(serveCmd(&envFile))
	cmd.AddCommand(stdioCmd(&envFile))
	cmd.AddCommand(migrateCmd(&envFile))
	cmd.AddCommand(staffCmd(&envFile))
	cmd.AddCommand(seedCmd(&envFile))
	cmd.AddCommand(linesCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openClient loads configuration, installs the configured logger and opens
// a console client. The caller closes the client.
func openClient(envFile string, overrides ...config.AppConfigOption) (*console.Client, config.AppConfig, *slog.Logger, error) {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return nil, config.AppConfig{}, nil, err
	}
	cfg = cfg.Apply(overrides...)

	if err := cfg.EnsureDataDir(); err != nil {
		return nil, config.AppConfig{}, nil, fmt.Errorf("create data directory: %w", err)
	}

	slogger := log.Configure(cfg).Slog()

	client, err := console.New(
		console.WithConfig(cfg),
		console.WithLogger(slogger),
	)
	if err != nil {
		return nil, config.AppConfig{}, nil, fmt.Errorf("create console client: %w", err)
	}
	return client, cfg, slogger, nil
}

func closeClient(client *console.Client, logger *slog.Logger) {
	if err := client.Close(); err != nil {
		logger.Error("failed to close console client", slog.Any("error", err))
	}
}

// logStartup records the version and effective settings.
func logStartup(logger *slog.Logger, cfg config.AppConfig, msg string) {
	attrs := append([]slog.Attr{slog.String("version", version)}, cfg.LogAttrs()...)
	logger.LogAttrs(context.Background(), slog.LevelInfo, msg, attrs...)
}
