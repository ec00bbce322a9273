package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/docugen/internal/config"
	"github.com/rpggio/docugen/internal/mcp"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve MCP tools over stdio",
	Long: `Serve the project, version and rule tools over stdio for local MCP clients.
Logs go to stderr (or DOCUGEN_LOG_PATH) to keep stdout clean for JSON-RPC.
No model key or bridge token is needed.`,
	Args: cobra.NoArgs,
	RunE: runStdio,
}

func runStdio(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := cfg.ValidateStorage(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger, closeLog := newLogger(cfg.Log, os.Stderr)
	defer closeLog()

	svc, err := openServices(cfg.DB, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return err
	}
	defer svc.db.Close()

	server := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects: svc.projects,
			Versions: svc.versions,
			Rules:    svc.rules,
		},
		Version: buildVersion,
		Logger:  logger,
	})

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting stdio transport")
	// Run blocks until stdin closes or the context is canceled.
	if err := server.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Error("stdio server error", "error", err)
		return err
	}
	logger.Info("shutting down")
	return nil
}
