package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `docugen stores documentary pre-production work as Projects → Script versions, plus shared writing rules.

Core concepts:
- Project: created by importing a scouting dossier (form_data). Title is "Repérage : <region>".
- Script version: an immutable numbered draft of a project's script (V1, V2, …). Numbers never repeat within a project.
- Fork: copies a version into the next number, with the note "Copie de V<n>".
- Rule: a memorized writing rule shared by every project.

Workflow:
1) Orient: list_projects, then get_project to read the dossier.
2) History: list_versions (no content), get_version for the text.
3) Write: save_version stores new content; fork_version branches from an earlier draft.
4) Rules: memorize_rule / list_rules.

Dates are formatted DD/MM/YYYY HH:MM. Script generation is only available from the web page.
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "docugen://docs/script-format",
		Name:        "script-format",
		Title:       "Script format",
		Description: "Shape of the sequenced scripts stored as versions.",
		Content: `# Script format

Scripts are sequenced ("séquencier"): a numbered list of sequences, each with

- Images: what the camera shows.
- Voix off: narration, when any.
- Son: ambient sound and music cues.

Keep one version per meaningful change and describe it in the note.
`,
	},
	{
		URI:         "docugen://docs/dossier",
		Name:        "dossier",
		Title:       "Scouting dossier",
		Description: "Fields of the imported form_data document.",
		Content: `# Scouting dossier

The dossier is a free-form JSON object sent by field tools through the bridge.
Members read by the web page:

- region, pays: scouted region and country. region also names the project.
- gardiens[]: up to three people holding the story, with nom, fonction, savoir_transmis.
- episode_data.fete: the event that triggers the film.

Unknown members are kept verbatim.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
