package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/docugen/internal/config"
	"github.com/rpggio/docugen/internal/gemini"
	"github.com/rpggio/docugen/internal/generation"
	"github.com/rpggio/docugen/internal/mcp"
	"github.com/rpggio/docugen/internal/transport"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Long: `Serve the single-page UI, the REST API, the bridge endpoint and,
unless DOCUGEN_MCP_ENABLED=false, the MCP endpoint at /mcp.

The model API key and the bridge token are required.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger, closeLog := newLogger(cfg.Log, os.Stdout)
	defer closeLog()

	svc, err := openServices(cfg.DB, logger)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return err
	}
	defer svc.db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	model, err := gemini.New(ctx, gemini.Config{
		APIKey:  cfg.Model.APIKey,
		Model:   cfg.Model.Name,
		BaseURL: cfg.Model.BaseURL,
	})
	if err != nil {
		logger.Error("failed to create model client", "error", err)
		return err
	}

	opts := generation.DefaultOptions()
	opts.Timeout = cfg.Model.Timeout
	opts.MaxAttempts = cfg.Model.MaxAttempts
	generator := generation.NewService(model, opts, logger)

	var mcpHandler http.Handler
	if cfg.MCP.Enabled {
		mcpServer := mcp.NewServer(mcp.Config{
			Services: mcp.Services{
				Projects: svc.projects,
				Versions: svc.versions,
				Rules:    svc.rules,
			},
			Version: buildVersion,
			Logger:  logger,
		})
		mcpHandler = sdkmcp.NewStreamableHTTPHandler(
			func(*http.Request) *sdkmcp.Server { return mcpServer },
			&sdkmcp.StreamableHTTPOptions{
				SessionTimeout: 30 * time.Minute,
			},
		)
	}

	router := transport.NewServer(transport.Config{
		Services: transport.Services{
			Projects:   svc.projects,
			Versions:   svc.versions,
			Generation: generator,
			Rules:      svc.rules,
		},
		BridgeToken:  cfg.Bridge.Token,
		MCP:          mcpHandler,
		MCPAuthToken: cfg.MCP.AuthToken,
		Logger:       logger,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "model", model.Name(), "mcp", cfg.MCP.Enabled, "mcp_auth", cfg.MCP.AuthToken != "")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	return waitForShutdown(logger, httpServer, serveErr)
}

func waitForShutdown(logger *slog.Logger, server *http.Server, serveErr <-chan error) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case err, ok := <-serveErr:
		if ok && err != nil {
			logger.Error("server error", "error", err)
			return err
		}
		return nil
	case <-stop:
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	return nil
}
