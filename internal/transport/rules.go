package transport

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rpggio/docugen/internal/domain/project"
	"github.com/rpggio/docugen/internal/domain/rule"
)

type memorizeRequest struct {
	Rule string `json:"rule"`
}

type ruleItem struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	Date    string `json:"date"`
}

func (s *Server) handleMemorize(w http.ResponseWriter, r *http.Request) {
	var req memorizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", rule.ErrInvalidInput, err))
		return
	}

	if _, err := s.services.Rules.Memorize(r.Context(), req.Rule); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statusBody{Status: "ok"})
}

func (s *Server) handleListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := s.services.Rules.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	items := make([]ruleItem, 0, len(rules))
	for _, gr := range rules {
		items = append(items, ruleItem{
			ID:      gr.ID,
			Content: gr.Content,
			Date:    project.FormatDate(gr.CreatedAt),
		})
	}
	writeJSON(w, http.StatusOK, items)
}
