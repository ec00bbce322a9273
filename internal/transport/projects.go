package transport

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rpggio/docugen/internal/domain/project"
)

// maxDossierBytes bounds a bridge import body.
const maxDossierBytes = 10 << 20

type projectListItem struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Region string `json:"region"`
	Date   string `json:"date"`
}

type projectDetail struct {
	ID            int64            `json:"id"`
	Title         string           `json:"title"`
	Region        string           `json:"region"`
	ShareToken    string           `json:"share_token"`
	FormData      project.Document `json:"form_data"`
	ScriptContent *string          `json:"script_content"`
	ReportContent *string          `json:"report_content"`
	Date          string           `json:"date"`
	Updated       string           `json:"updated"`
}

type importResponse struct {
	Status    string `json:"status"`
	ProjectID int64  `json:"project_id"`
}

func newProjectDetail(p *project.Project) projectDetail {
	return projectDetail{
		ID:            p.ID,
		Title:         p.Title,
		Region:        p.Region,
		ShareToken:    p.ShareToken,
		FormData:      p.FormData,
		ScriptContent: p.ScriptContent,
		ReportContent: p.ReportContent,
		Date:          project.FormatDate(p.CreatedAt),
		Updated:       project.FormatDate(p.UpdatedAt),
	}
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	summaries, err := s.services.Projects.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	items := make([]projectListItem, 0, len(summaries))
	for _, p := range summaries {
		items = append(items, projectListItem{
			ID:     p.ID,
			Title:  p.Title,
			Region: p.Region,
			Date:   project.FormatDate(p.CreatedAt),
		})
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	proj, err := s.services.Projects.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProjectDetail(proj))
}

func (s *Server) handleGetSharedProject(w http.ResponseWriter, r *http.Request) {
	proj, err := s.services.Projects.GetByShareToken(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newProjectDetail(proj))
}

func (s *Server) handleBridgeImport(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxDossierBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, fmt.Errorf("%w: dossier exceeds %d bytes", errPayloadTooLarge, tooLarge.Limit))
			return
		}
		s.writeError(w, r, fmt.Errorf("%w: %v", project.ErrInvalidPayload, err))
		return
	}

	proj, err := s.services.Projects.Import(r.Context(), body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, importResponse{Status: "ok", ProjectID: proj.ID})
}

// pathID parses the {id} route parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidID, raw)
	}
	return id, nil
}
