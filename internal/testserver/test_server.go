// Package testserver runs a complete docugen HTTP server for tests.
package testserver

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/docugen/internal/domain/project"
	"github.com/rpggio/docugen/internal/domain/rule"
	"github.com/rpggio/docugen/internal/domain/version"
	"github.com/rpggio/docugen/internal/generation"
	"github.com/rpggio/docugen/internal/mcp"
	"github.com/rpggio/docugen/internal/sqlite"
	"github.com/rpggio/docugen/internal/transport"
	"github.com/stretchr/testify/require"
)

const (
	DefaultBridgeToken = "bridge-secret"
	DefaultMCPToken    = "mcp-secret"
)

type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	// Model answers every generation request; set Respond to script it.
	Model       *generation.StubModel
	BridgeToken string
	MCPToken    string
}

// New starts a server backed by a per-test in-memory database and a stub model.
func New(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	projectRepo := sqlite.NewProjectRepository(db)
	projectSvc := project.NewService(projectRepo, nil)
	versionSvc := version.NewService(sqlite.NewVersionRepository(db), projectRepo, nil)
	ruleSvc := rule.NewService(sqlite.NewRuleRepository(db), nil)

	model := &generation.StubModel{}
	generator := generation.NewService(model, generation.Options{
		Timeout:         5 * time.Second,
		MaxAttempts:     1,
		InitialInterval: time.Millisecond,
	}, nil)

	mcpServer := mcp.NewServer(mcp.Config{Services: mcp.Services{
		Projects: projectSvc,
		Versions: versionSvc,
		Rules:    ruleSvc,
	}})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{Stateless: true, JSONResponse: true},
	)

	server := httptest.NewServer(transport.NewServer(transport.Config{
		Services: transport.Services{
			Projects:   projectSvc,
			Versions:   versionSvc,
			Generation: generator,
			Rules:      ruleSvc,
		},
		BridgeToken:  DefaultBridgeToken,
		MCP:          mcpHandler,
		MCPAuthToken: DefaultMCPToken,
	}))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:      server,
		DB:          db,
		Model:       model,
		BridgeToken: DefaultBridgeToken,
		MCPToken:    DefaultMCPToken,
	}
}

// URL returns the base URL of the server.
func (ts *TestServer) URL() string {
	return ts.Server.URL
}

// MCPClient returns an HTTP client that authenticates against /mcp.
func (ts *TestServer) MCPClient() *http.Client {
	return &http.Client{Transport: bearerTransport{token: ts.MCPToken, base: http.DefaultTransport}}
}

type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (b bearerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("Authorization", "Bearer "+b.token)
	return b.base.RoundTrip(r)
}
