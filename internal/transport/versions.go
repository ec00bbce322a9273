package transport

import (
	"net/http"

	"github.com/rpggio/docugen/internal/domain/project"
	"github.com/rpggio/docugen/internal/domain/version"
)

type versionListItem struct {
	ID     int64          `json:"id"`
	Number int            `json:"number"`
	Status version.Status `json:"status"`
	Note   string         `json:"note"`
	Date   string         `json:"date"`
}

type versionDetail struct {
	ID        int64          `json:"id"`
	ProjectID int64          `json:"project_id"`
	Number    int            `json:"number"`
	Content   string         `json:"content"`
	Status    version.Status `json:"status"`
	Note      string         `json:"note"`
	Date      string         `json:"date"`
}

type versionCreated struct {
	Status        string `json:"status"`
	ID            int64  `json:"id"`
	VersionNumber int    `json:"version_number"`
}

func (s *Server) handleListVersions(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	refs, err := s.services.Versions.List(r.Context(), projectID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	items := make([]versionListItem, 0, len(refs))
	for _, v := range refs {
		items = append(items, versionListItem{
			ID:     v.ID,
			Number: v.Number,
			Status: v.Status,
			Note:   v.Note,
			Date:   project.FormatDate(v.CreatedAt),
		})
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleSaveVersion(w http.ResponseWriter, r *http.Request) {
	projectID, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	v, err := s.services.Versions.Save(r.Context(), version.SaveRequest{
		ProjectID: projectID,
		Content:   r.FormValue("content"),
		Note:      r.FormValue("note"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, versionCreated{Status: "ok", ID: v.ID, VersionNumber: v.Number})
}

func (s *Server) handleGetVersion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	v, err := s.services.Versions.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, versionDetail{
		ID:        v.ID,
		ProjectID: v.ProjectID,
		Number:    v.Number,
		Content:   v.Content,
		Status:    v.Status,
		Note:      v.Note,
		Date:      project.FormatDate(v.CreatedAt),
	})
}

func (s *Server) handleForkVersion(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	v, err := s.services.Versions.Fork(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, versionCreated{Status: "ok", ID: v.ID, VersionNumber: v.Number})
}
