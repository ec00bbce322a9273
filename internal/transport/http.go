package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpggio/docugen/internal/domain/project"
	"github.com/rpggio/docugen/internal/domain/rule"
	"github.com/rpggio/docugen/internal/domain/version"
	"github.com/rpggio/docugen/internal/generation"
	"github.com/rpggio/docugen/web"
)

// ProjectService is the project API used by the handlers.
type ProjectService interface {
	Import(ctx context.Context, payload []byte) (*project.Project, error)
	Get(ctx context.Context, id int64) (*project.Project, error)
	GetByShareToken(ctx context.Context, token string) (*project.Project, error)
	List(ctx context.Context) ([]project.ProjectSummary, error)
}

// VersionService is the script version API used by the handlers.
type VersionService interface {
	Save(ctx context.Context, req version.SaveRequest) (*version.ScriptVersion, error)
	Fork(ctx context.Context, sourceID int64) (*version.ScriptVersion, error)
	Get(ctx context.Context, id int64) (*version.ScriptVersion, error)
	List(ctx context.Context, projectID int64) ([]version.VersionRef, error)
}

// GenerationService drafts and rewrites scripts with the model.
type GenerationService interface {
	AnalyzeAngles(ctx context.Context, brief generation.Brief) ([]generation.Angle, error)
	GenerateScript(ctx context.Context, req generation.ScriptRequest) (string, error)
	Refine(ctx context.Context, req generation.RefineRequest) (string, error)
}

// RuleService stores memorized rules.
type RuleService interface {
	Memorize(ctx context.Context, content string) (*rule.GlobalRule, error)
	List(ctx context.Context) ([]rule.GlobalRule, error)
}

// Services groups the domain services exposed over HTTP.
type Services struct {
	Projects   ProjectService
	Versions   VersionService
	Generation GenerationService
	Rules      RuleService
}

// Config configures the HTTP surface.
type Config struct {
	Services    Services
	BridgeToken string
	// MCP is mounted at /mcp when set.
	MCP http.Handler
	// MCPAuthToken enables bearer auth on /mcp when set.
	MCPAuthToken string
	Logger       *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	services Services
	logger   *slog.Logger
}

// NewServer creates an HTTP server router with middleware.
func NewServer(cfg Config) *chi.Mux {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	srv := &Server{services: cfg.Services, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/", srv.handleIndex)
	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", srv.handleListProjects)
		r.Get("/projects/{id}", srv.handleGetProject)
		r.Get("/projects/{id}/versions", srv.handleListVersions)
		r.Post("/projects/{id}/save_version", srv.handleSaveVersion)

		r.Get("/versions/{id}", srv.handleGetVersion)
		r.Post("/versions/{id}/fork", srv.handleForkVersion)

		r.Get("/share/{token}", srv.handleGetSharedProject)

		r.With(BridgeTokenMiddleware(cfg.BridgeToken)).Post("/bridge/import", srv.handleBridgeImport)

		r.Post("/analyze_angles", srv.handleAnalyzeAngles)
		r.Post("/generate_full", srv.handleGenerateFull)
		r.Post("/refine", srv.handleRefine)

		r.Post("/memorize", srv.handleMemorize)
		r.Get("/rules", srv.handleListRules)
	})

	if cfg.MCP != nil {
		r.Group(func(r chi.Router) {
			if cfg.MCPAuthToken != "" {
				r.Use(AuthMiddleware(cfg.MCPAuthToken))
			}
			r.Handle("/mcp", cfg.MCP)
			r.Handle("/mcp/*", cfg.MCP)
		})
	}

	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(web.Index)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
