package mcp

import (
	"context"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/docugen/internal/domain/project"
	"github.com/rpggio/docugen/internal/domain/rule"
	"github.com/rpggio/docugen/internal/domain/version"
)

// ProjectService defines project operations needed by MCP.
type ProjectService interface {
	List(ctx context.Context) ([]project.ProjectSummary, error)
	Get(ctx context.Context, id int64) (*project.Project, error)
}

// VersionService defines script version operations needed by MCP.
type VersionService interface {
	Save(ctx context.Context, req version.SaveRequest) (*version.ScriptVersion, error)
	Fork(ctx context.Context, sourceID int64) (*version.ScriptVersion, error)
	Get(ctx context.Context, id int64) (*version.ScriptVersion, error)
	List(ctx context.Context, projectID int64) ([]version.VersionRef, error)
}

// RuleService defines memorized rule operations needed by MCP.
type RuleService interface {
	Memorize(ctx context.Context, content string) (*rule.GlobalRule, error)
	List(ctx context.Context) ([]rule.GlobalRule, error)
}

// Services contains all domain services needed by MCP.
type Services struct {
	Projects ProjectService
	Versions VersionService
	Rules    RuleService
}

// Config contains server configuration.
type Config struct {
	Services Services
	Version  string
	Logger   *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
// Authentication is left to the HTTP mount; stdio is local only.
func NewServer(cfg Config) *sdkmcp.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "docugen",
		Version: ver,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       logger,
	})

	registerDocResources(server)

	server.AddReceivingMiddleware(toolTimingMiddleware(logger))
	server.AddReceivingMiddleware(trafficLoggingMiddleware(logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(logger, "outbound"))

	registerTools(server, cfg.Services)

	return server
}
