package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/rpggio/docugen/internal/config"
	"github.com/rpggio/docugen/internal/domain/project"
	"github.com/rpggio/docugen/internal/domain/rule"
	"github.com/rpggio/docugen/internal/domain/version"
	"github.com/rpggio/docugen/internal/sqlite"
	"github.com/spf13/cobra"
)

// buildVersion is set with -ldflags "-X main.buildVersion=...".
var buildVersion = "dev"

var rootCmd = &cobra.Command{
	Use:   "docugen",
	Short: "Documentary pre-production workspace",
	Long: `docugen turns scouting dossiers into documentary scripts.

Available subcommands:
  serve  - Run the web page, REST API and MCP endpoint over HTTP
  mcp    - Serve the MCP tools over stdio
  import - Send a dossier to a running server through the bridge`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, mcpCmd, importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the process logger. The returned close func releases the log file, if any.
func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, func()) {
	closeFn := func() {}
	if cfg.Path != "" {
		fileWriter, file, err := newLogFileWriter(cfg.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			closeFn = func() { _ = file.Close() }
			w = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Level),
	}))
	return logger, closeFn
}

type services struct {
	db       *sqlite.DB
	projects *project.Service
	versions *version.Service
	rules    *rule.Service
}

// openServices opens the database, applies the schema and builds the domain services.
func openServices(cfg config.DBConfig, logger *slog.Logger) (*services, error) {
	if err := ensureDBDir(cfg.Path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(cfg.Path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	projectRepo := sqlite.NewProjectRepository(db)
	return &services{
		db:       db,
		projects: project.NewService(projectRepo, logger),
		versions: version.NewService(sqlite.NewVersionRepository(db), projectRepo, logger),
		rules:    rule.NewService(sqlite.NewRuleRepository(db), logger),
	}, nil
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
