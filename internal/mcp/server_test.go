package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/docugen/internal/domain/project"
	"github.com/rpggio/docugen/internal/domain/rule"
	"github.com/rpggio/docugen/internal/domain/version"
	"github.com/rpggio/docugen/internal/sqlite"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	session  *sdkmcp.ClientSession
	projects *project.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	projectRepo := sqlite.NewProjectRepository(db)
	projects := project.NewService(projectRepo, nil)

	server := NewServer(Config{Services: Services{
		Projects: projects,
		Versions: version.NewService(sqlite.NewVersionRepository(db), projectRepo, nil),
		Rules:    rule.NewService(sqlite.NewRuleRepository(db), nil),
	}})

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { serverSession.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { clientSession.Close() })

	return &testEnv{session: clientSession, projects: projects}
}

func (e *testEnv) importProject(t *testing.T, payload string) *project.Project {
	t.Helper()
	p, err := e.projects.Import(context.Background(), []byte(payload))
	require.NoError(t, err)
	return p
}

func callTool[T any](t *testing.T, e *testEnv, name string, args map[string]any) T {
	t.Helper()
	res, err := e.session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.False(t, res.IsError, "tool %s failed: %s", name, toolText(res))

	data, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var out T
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func callToolError(t *testing.T, e *testEnv, name string, args map[string]any) string {
	t.Helper()
	res, err := e.session.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.True(t, res.IsError, "tool %s unexpectedly succeeded", name)
	return toolText(res)
}

func toolText(res *sdkmcp.CallToolResult) string {
	for _, c := range res.Content {
		if text, ok := c.(*sdkmcp.TextContent); ok {
			return text.Text
		}
	}
	return ""
}

func TestListTools(t *testing.T) {
	env := newTestEnv(t)

	res, err := env.session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	require.ElementsMatch(t, []string{
		"list_projects", "get_project", "list_versions", "get_version",
		"save_version", "fork_version", "memorize_rule", "list_rules",
	}, names)
}

func TestProjects(t *testing.T) {
	env := newTestEnv(t)

	empty := callTool[ListProjectsResult](t, env, "list_projects", map[string]any{})
	require.NotNil(t, empty.Projects)
	require.Empty(t, empty.Projects)

	first := env.importProject(t, `{"region":"Causses","pays":"France"}`)
	second := env.importProject(t, `{"pays":"France"}`)

	list := callTool[ListProjectsResult](t, env, "list_projects", map[string]any{})
	require.Len(t, list.Projects, 2)
	require.Equal(t, second.ID, list.Projects[0].ID)
	require.Equal(t, "Repérage : Région inconnue", list.Projects[0].Title)

	detail := callTool[ProjectDetail](t, env, "get_project", map[string]any{"id": first.ID})
	require.Equal(t, "Causses", detail.Region)
	require.Equal(t, "Repérage : Causses", detail.Title)
	require.Equal(t, "France", detail.FormData["pays"])
	require.NotEmpty(t, detail.ShareToken)
	require.Len(t, detail.CreatedAt, len(project.DateLayout))
}

func TestGetProject_RawDossierVerbatim(t *testing.T) {
	env := newTestEnv(t)

	payload := `{"region":"Causses","big":12345678901234567890,"a":1}`
	p := env.importProject(t, payload)

	detail := callTool[ProjectDetail](t, env, "get_project", map[string]any{"id": p.ID})
	require.Equal(t, payload, detail.FormDataRaw)
	require.Equal(t, "Causses", detail.FormData["region"])
}

func TestGetProject_NotFound(t *testing.T) {
	env := newTestEnv(t)

	msg := callToolError(t, env, "get_project", map[string]any{"id": 404})
	require.Contains(t, msg, "PROJECT_NOT_FOUND")
}

func TestVersions(t *testing.T) {
	env := newTestEnv(t)
	p := env.importProject(t, `{"region":"Causses"}`)

	v1 := callTool[VersionDetail](t, env, "save_version", map[string]any{
		"project_id": p.ID,
		"content":    "SÉQUENCE 1",
		"note":       "premier jet",
	})
	require.Equal(t, 1, v1.Number)
	require.Equal(t, string(version.StatusUnseen), v1.Status)

	v2 := callTool[VersionDetail](t, env, "save_version", map[string]any{
		"project_id": p.ID,
		"content":    "SÉQUENCE 1 bis",
	})
	require.Equal(t, 2, v2.Number)

	fork := callTool[VersionDetail](t, env, "fork_version", map[string]any{"id": v1.ID})
	require.Equal(t, 3, fork.Number)
	require.Equal(t, "Copie de V1", fork.Note)
	require.Equal(t, "SÉQUENCE 1", fork.Content)

	got := callTool[VersionDetail](t, env, "get_version", map[string]any{"id": v2.ID})
	require.Equal(t, "SÉQUENCE 1 bis", got.Content)
	require.Equal(t, p.ID, got.ProjectID)

	history := callTool[ListVersionsResult](t, env, "list_versions", map[string]any{"project_id": p.ID})
	require.Len(t, history.Versions, 3)
	require.Equal(t, []int{3, 2, 1}, []int{
		history.Versions[0].Number, history.Versions[1].Number, history.Versions[2].Number,
	})
}

func TestVersions_Errors(t *testing.T) {
	env := newTestEnv(t)
	p := env.importProject(t, `{"region":"Causses"}`)

	require.Contains(t, callToolError(t, env, "get_version", map[string]any{"id": 99}), "VERSION_NOT_FOUND")
	require.Contains(t, callToolError(t, env, "fork_version", map[string]any{"id": 99}), "VERSION_NOT_FOUND")
	require.Contains(t, callToolError(t, env, "list_versions", map[string]any{"project_id": 99}), "PROJECT_NOT_FOUND")
	require.Contains(t, callToolError(t, env, "save_version", map[string]any{"project_id": 99, "content": "x"}), "PROJECT_NOT_FOUND")
	require.Contains(t, callToolError(t, env, "save_version", map[string]any{"project_id": p.ID, "content": "   "}), "INVALID_INPUT")
}

func TestRules(t *testing.T) {
	env := newTestEnv(t)

	first := callTool[RuleItem](t, env, "memorize_rule", map[string]any{"rule": "Pas de drone."})
	require.Equal(t, "Pas de drone.", first.Content)
	callTool[RuleItem](t, env, "memorize_rule", map[string]any{"rule": "Toujours le son direct."})

	list := callTool[ListRulesResult](t, env, "list_rules", map[string]any{})
	require.Len(t, list.Rules, 2)
	require.Equal(t, first.ID, list.Rules[0].ID)

	require.Contains(t, callToolError(t, env, "memorize_rule", map[string]any{"rule": " "}), "INVALID_INPUT")
}

func TestDocResources(t *testing.T) {
	env := newTestEnv(t)

	for _, doc := range docResources {
		res, err := env.session.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: doc.URI})
		require.NoError(t, err)
		require.Len(t, res.Contents, 1)
		require.Equal(t, doc.Content, res.Contents[0].Text)
	}
}

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))
	require.Nil(t, MapError(context.Canceled))
	require.Equal(t, "PROJECT_NOT_FOUND", MapError(project.ErrProjectNotFound).Code)
	require.Equal(t, "VERSION_NOT_FOUND", MapError(version.ErrVersionNotFound).Code)
	require.Equal(t, "INVALID_INPUT", MapError(rule.ErrInvalidInput).Code)
}

func TestPayloadString(t *testing.T) {
	require.Equal(t, "<nil>", payloadString(nil))
	require.Equal(t, `{"a":1}`, payloadString(map[string]int{"a": 1}))

	res := &sdkmcp.CallToolResult{
		Content:           []sdkmcp.Content{&sdkmcp.TextContent{Text: `{"a":1}`}},
		StructuredContent: map[string]int{"a": 1},
	}
	require.Equal(t, `{"a":1}`, payloadString(res))

	long := payloadString(strings.Repeat("x", 3*maxLoggedPayload))
	require.True(t, strings.HasSuffix(long, "…"))
	require.Len(t, long, maxLoggedPayload+len("…"))
}
