package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/docugen/internal/domain/project"
	"github.com/rpggio/docugen/internal/domain/rule"
	"github.com/rpggio/docugen/internal/domain/version"
)

type ListProjectsInput struct{}

type ProjectItem struct {
	ID        int64  `json:"id" jsonschema:"project identifier"`
	Title     string `json:"title" jsonschema:"project title"`
	Region    string `json:"region" jsonschema:"scouted region"`
	CreatedAt string `json:"created_at" jsonschema:"creation date, DD/MM/YYYY HH:MM"`
}

type ListProjectsResult struct {
	Projects []ProjectItem `json:"projects" jsonschema:"projects, newest first"`
}

type GetProjectInput struct {
	ID int64 `json:"id" jsonschema:"project identifier"`
}

// ProjectDetail is the get_project result. FormDataRaw holds the dossier bytes
// exactly as imported, matching the form_data of the HTTP project detail.
type ProjectDetail struct {
	ID          int64          `json:"id" jsonschema:"project identifier"`
	Title       string         `json:"title" jsonschema:"project title"`
	Region      string         `json:"region" jsonschema:"scouted region"`
	ShareToken  string         `json:"share_token" jsonschema:"token for the read-only share link"`
	CreatedAt   string         `json:"created_at" jsonschema:"creation date, DD/MM/YYYY HH:MM"`
	UpdatedAt   string         `json:"updated_at" jsonschema:"last activity, DD/MM/YYYY HH:MM"`
	FormData    map[string]any `json:"form_data" jsonschema:"imported scouting dossier, decoded; large numbers may lose precision"`
	FormDataRaw string         `json:"form_data_raw" jsonschema:"imported scouting dossier as the original JSON text"`
}

type ListVersionsInput struct {
	ProjectID int64 `json:"project_id" jsonschema:"project identifier"`
}

type VersionItem struct {
	ID        int64  `json:"id" jsonschema:"version identifier"`
	Number    int    `json:"number" jsonschema:"version number within the project"`
	Status    string `json:"status" jsonschema:"review status"`
	Note      string `json:"note" jsonschema:"short characterization of the version"`
	CreatedAt string `json:"created_at" jsonschema:"creation date, DD/MM/YYYY HH:MM"`
}

type ListVersionsResult struct {
	Versions []VersionItem `json:"versions" jsonschema:"versions, highest number first"`
}

type GetVersionInput struct {
	ID int64 `json:"id" jsonschema:"version identifier"`
}

type VersionDetail struct {
	ID        int64  `json:"id" jsonschema:"version identifier"`
	ProjectID int64  `json:"project_id" jsonschema:"owning project"`
	Number    int    `json:"number" jsonschema:"version number within the project"`
	Status    string `json:"status" jsonschema:"review status"`
	Note      string `json:"note" jsonschema:"short characterization of the version"`
	Content   string `json:"content" jsonschema:"script text"`
	CreatedAt string `json:"created_at" jsonschema:"creation date, DD/MM/YYYY HH:MM"`
}

type SaveVersionInput struct {
	ProjectID int64  `json:"project_id" jsonschema:"project identifier"`
	Content   string `json:"content" jsonschema:"full script text"`
	Note      string `json:"note,omitempty" jsonschema:"optional short characterization"`
}

type ForkVersionInput struct {
	ID int64 `json:"id" jsonschema:"version to copy"`
}

type MemorizeRuleInput struct {
	Rule string `json:"rule" jsonschema:"writing rule to remember"`
}

type RuleItem struct {
	ID        int64  `json:"id" jsonschema:"rule identifier"`
	Content   string `json:"content" jsonschema:"rule text"`
	CreatedAt string `json:"created_at" jsonschema:"creation date, DD/MM/YYYY HH:MM"`
}

type ListRulesInput struct{}

type ListRulesResult struct {
	Rules []RuleItem `json:"rules" jsonschema:"rules in the order they were memorized"`
}

func registerTools(server *sdkmcp.Server, svc Services) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List documentary projects imported from scouting dossiers",
	}, listProjectsHandler(svc.Projects))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a project with its full scouting dossier. form_data is the decoded dossier; form_data_raw is the JSON text exactly as imported",
	}, getProjectHandler(svc.Projects))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_versions",
		Description: "List the script version history of a project without content",
	}, listVersionsHandler(svc.Versions))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_version",
		Description: "Get a script version with its content",
	}, getVersionHandler(svc.Versions))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "save_version",
		Description: "Save script content as the next version of a project",
	}, saveVersionHandler(svc.Versions))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "fork_version",
		Description: "Copy an existing version into a new version of the same project",
	}, forkVersionHandler(svc.Versions))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "memorize_rule",
		Description: "Remember a writing rule shared by every project",
	}, memorizeRuleHandler(svc.Rules))
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_rules",
		Description: "List memorized writing rules",
	}, listRulesHandler(svc.Rules))
}

func listProjectsHandler(projects ProjectService) sdkmcp.ToolHandlerFor[ListProjectsInput, ListProjectsResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListProjectsInput) (*sdkmcp.CallToolResult, ListProjectsResult, error) {
		summaries, err := projects.List(ctx)
		if err != nil {
			return nil, ListProjectsResult{}, mapError(err)
		}
		out := ListProjectsResult{Projects: make([]ProjectItem, 0, len(summaries))}
		for _, p := range summaries {
			out.Projects = append(out.Projects, ProjectItem{
				ID:        p.ID,
				Title:     p.Title,
				Region:    p.Region,
				CreatedAt: project.FormatDate(p.CreatedAt),
			})
		}
		return nil, out, nil
	}
}

func getProjectHandler(projects ProjectService) sdkmcp.ToolHandlerFor[GetProjectInput, ProjectDetail] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input GetProjectInput) (*sdkmcp.CallToolResult, ProjectDetail, error) {
		p, err := projects.Get(ctx, input.ID)
		if err != nil {
			return nil, ProjectDetail{}, mapError(err)
		}
		return nil, ProjectDetail{
			ID:          p.ID,
			Title:       p.Title,
			Region:      p.Region,
			ShareToken:  p.ShareToken,
			CreatedAt:   project.FormatDate(p.CreatedAt),
			UpdatedAt:   project.FormatDate(p.UpdatedAt),
			FormData:    p.FormData.Fields(),
			FormDataRaw: string(p.FormData.Raw()),
		}, nil
	}
}

func listVersionsHandler(versions VersionService) sdkmcp.ToolHandlerFor[ListVersionsInput, ListVersionsResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ListVersionsInput) (*sdkmcp.CallToolResult, ListVersionsResult, error) {
		refs, err := versions.List(ctx, input.ProjectID)
		if err != nil {
			return nil, ListVersionsResult{}, mapError(err)
		}
		out := ListVersionsResult{Versions: make([]VersionItem, 0, len(refs))}
		for _, v := range refs {
			out.Versions = append(out.Versions, VersionItem{
				ID:        v.ID,
				Number:    v.Number,
				Status:    string(v.Status),
				Note:      v.Note,
				CreatedAt: project.FormatDate(v.CreatedAt),
			})
		}
		return nil, out, nil
	}
}

func getVersionHandler(versions VersionService) sdkmcp.ToolHandlerFor[GetVersionInput, VersionDetail] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input GetVersionInput) (*sdkmcp.CallToolResult, VersionDetail, error) {
		v, err := versions.Get(ctx, input.ID)
		if err != nil {
			return nil, VersionDetail{}, mapError(err)
		}
		return nil, versionDetail(v), nil
	}
}

func saveVersionHandler(versions VersionService) sdkmcp.ToolHandlerFor[SaveVersionInput, VersionDetail] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input SaveVersionInput) (*sdkmcp.CallToolResult, VersionDetail, error) {
		v, err := versions.Save(ctx, version.SaveRequest{
			ProjectID: input.ProjectID,
			Content:   input.Content,
			Note:      input.Note,
		})
		if err != nil {
			return nil, VersionDetail{}, mapError(err)
		}
		return nil, versionDetail(v), nil
	}
}

func forkVersionHandler(versions VersionService) sdkmcp.ToolHandlerFor[ForkVersionInput, VersionDetail] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input ForkVersionInput) (*sdkmcp.CallToolResult, VersionDetail, error) {
		v, err := versions.Fork(ctx, input.ID)
		if err != nil {
			return nil, VersionDetail{}, mapError(err)
		}
		return nil, versionDetail(v), nil
	}
}

func memorizeRuleHandler(rules RuleService) sdkmcp.ToolHandlerFor[MemorizeRuleInput, RuleItem] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, input MemorizeRuleInput) (*sdkmcp.CallToolResult, RuleItem, error) {
		r, err := rules.Memorize(ctx, input.Rule)
		if err != nil {
			return nil, RuleItem{}, mapError(err)
		}
		return nil, ruleItem(*r), nil
	}
}

func listRulesHandler(rules RuleService) sdkmcp.ToolHandlerFor[ListRulesInput, ListRulesResult] {
	return func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ ListRulesInput) (*sdkmcp.CallToolResult, ListRulesResult, error) {
		list, err := rules.List(ctx)
		if err != nil {
			return nil, ListRulesResult{}, mapError(err)
		}
		out := ListRulesResult{Rules: make([]RuleItem, 0, len(list))}
		for _, r := range list {
			out.Rules = append(out.Rules, ruleItem(r))
		}
		return nil, out, nil
	}
}

func versionDetail(v *version.ScriptVersion) VersionDetail {
	return VersionDetail{
		ID:        v.ID,
		ProjectID: v.ProjectID,
		Number:    v.Number,
		Status:    string(v.Status),
		Note:      v.Note,
		Content:   v.Content,
		CreatedAt: project.FormatDate(v.CreatedAt),
	}
}

func ruleItem(r rule.GlobalRule) RuleItem {
	return RuleItem{ID: r.ID, Content: r.Content, CreatedAt: project.FormatDate(r.CreatedAt)}
}
