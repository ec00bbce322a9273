package rule

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Service handles memorized rule operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new rule service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Memorize appends a rule. Duplicates are kept.
func (s *Service) Memorize(ctx context.Context, content string) (*GlobalRule, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrInvalidInput
	}
	r := &GlobalRule{Content: content, CreatedAt: time.Now().UTC()}
	if err := s.repo.Append(ctx, r); err != nil {
		return nil, fmt.Errorf("memorizing rule: %w", err)
	}
	s.logger.Info("rule memorized", "rule_id", r.ID)
	return r, nil
}

// List returns memorized rules in insertion order.
func (s *Service) List(ctx context.Context) ([]GlobalRule, error) {
	return s.repo.List(ctx)
}
