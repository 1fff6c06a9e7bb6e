package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wooldanji/console/infrastructure/api"
	"github.com/wooldanji/console/internal/config"
)

const shutdownTimeout = 15 * time.Second

func serveCmd(envFile *string) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                     Server host to bind to (default: 0.0.0.0)
  PORT                     Server port to listen on (default: 8080)
  DATA_DIR                 Data directory (default: ~/.wooldanji)
  DB_URL                   Database URL (default: sqlite:///{data_dir}/wooldanji.db)
  LOG_LEVEL                Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT               Log format: pretty, json (default: pretty)
  API_KEYS                 Comma-separated API keys; each acts as the system admin
  AUTH_SECRET              Secret used to sign staff tokens
  AUTH_TOKEN_TTL_SECONDS   Staff token lifetime (default: 43200)
  CORS_ALLOWED_ORIGINS     Comma-separated browser origins (default: *)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(ctx context.Context, envFile, host string, port int) error {
	client, cfg, logger, err := openClient(envFile, serveOverrides(host, port)...)
	if err != nil {
		return err
	}
	defer closeClient(client, logger)

	logStartup(logger, cfg, "starting wooldanji")

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	apiServer := api.NewAPIServer(client, version, cfg.AllowedOrigins())
	return apiServer.Run(ctx, cfg.Addr(), shutdownTimeout)
}

// serveOverrides turns command line flags into config options. Flags take
// precedence over the environment.
func serveOverrides(host string, port int) []config.AppConfigOption {
	var opts []config.AppConfigOption
	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}
	return opts
}
