package transport

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rpggio/docugen/internal/generation"
)

type scriptResponse struct {
	Script string `json:"script"`
}

type refineRequest struct {
	CurrentScript string `json:"current_script"`
	Instruction   string `json:"instruction"`
}

func briefFromForm(r *http.Request) generation.Brief {
	return generation.Brief{
		Context:  r.FormValue("ctx"),
		Gardiens: [3]string{r.FormValue("g1"), r.FormValue("g2"), r.FormValue("g3")},
		Event:    r.FormValue("evt"),
	}
}

// handleAnalyzeAngles always answers with an array; on failure it holds the
// single ERR entry and the status is 500.
func (s *Server) handleAnalyzeAngles(w http.ResponseWriter, r *http.Request) {
	angles, err := s.services.Generation.AnalyzeAngles(r.Context(), briefFromForm(r))
	if err != nil {
		s.logger.WarnContext(r.Context(), "angle analysis failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, angles)
		return
	}
	writeJSON(w, http.StatusOK, angles)
}

func (s *Server) handleGenerateFull(w http.ResponseWriter, r *http.Request) {
	script, err := s.services.Generation.GenerateScript(r.Context(), generation.ScriptRequest{
		Brief: briefFromForm(r),
		Angle: r.FormValue("angle"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scriptResponse{Script: script})
}

func (s *Server) handleRefine(w http.ResponseWriter, r *http.Request) {
	var req refineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", generation.ErrInvalidInput, err))
		return
	}

	script, err := s.services.Generation.Refine(r.Context(), generation.RefineRequest{
		CurrentScript: req.CurrentScript,
		Instruction:   req.Instruction,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, scriptResponse{Script: script})
}
