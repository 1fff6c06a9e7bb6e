package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wooldanji/console/internal/mcp"
)

func stdioCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stdio",
		Short: "Start MCP server on stdio",
		Long: `Start the MCP (Model Context Protocol) server on stdio.

AI assistants can parse and format line text and list apartments and open
inquiries. Tools act as the system administrator, so only expose this
command to trusted local clients. Logs go to stderr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStdio(*envFile)
		},
	}
}

func runStdio(envFile string) error {
	client, cfg, logger, err := openClient(envFile)
	if err != nil {
		return err
	}
	defer closeClient(client, logger)

	logger.Info("starting MCP server",
		slog.String("version", version),
		slog.String("data_dir", cfg.DataDir()),
	)

	mcpServer := mcp.NewServer(client.Lines, client.Records.Apartments, client.Records.Inquiries, version, logger)
	return mcpServer.ServeStdio()
}
