package project

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/docugen/internal/repository"
)

// DefaultRegion is used when an imported dossier carries no region.
const DefaultRegion = "Région inconnue"

// Service handles project operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// TitleFor derives a project title from its region.
func TitleFor(region string) string {
	return "Repérage : " + region
}

// Import stores a scouting dossier as a new project.
func (s *Service) Import(ctx context.Context, payload []byte) (*Project, error) {
	doc, err := ParseDocument(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	region := strings.TrimSpace(doc.String("region"))
	if region == "" {
		region = DefaultRegion
	}

	now := time.Now().UTC()
	proj := &Project{
		Title:      TitleFor(region),
		Region:     region,
		ShareToken: uuid.NewString(),
		FormData:   doc,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("importing project: %w", err)
	}

	s.logger.Info("dossier imported", "project_id", proj.ID, "region", region, "bytes", len(doc.Raw()))
	return proj, nil
}

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Project, error) {
	proj, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	return proj, nil
}

// GetByShareToken fetches a project through its share link token.
func (s *Service) GetByShareToken(ctx context.Context, token string) (*Project, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrProjectNotFound
	}
	proj, err := s.repo.GetByShareToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting shared project: %w", err)
	}
	return proj, nil
}

// List returns project summaries, newest first.
func (s *Service) List(ctx context.Context) ([]ProjectSummary, error) {
	return s.repo.List(ctx)
}
