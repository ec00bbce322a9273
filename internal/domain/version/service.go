package version

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/rpggio/docugen/internal/domain/project"
	"github.com/rpggio/docugen/internal/repository"
)

// Service handles script version operations.
type Service struct {
	versions Repository
	projects ProjectRepository
	logger   *slog.Logger
}

// NewService creates a new version service.
func NewService(versions Repository, projects ProjectRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{versions: versions, projects: projects, logger: logger}
}

// SaveRequest describes a new version of a project's script.
type SaveRequest struct {
	ProjectID int64
	Content   string
	Note      string
}

// ForkNote is the characterization given to a copy of version number.
func ForkNote(number int) string {
	return fmt.Sprintf("Copie de V%d", number)
}

// Save stores content as the next version of the project.
func (s *Service) Save(ctx context.Context, req SaveRequest) (*ScriptVersion, error) {
	if req.ProjectID <= 0 || strings.TrimSpace(req.Content) == "" {
		return nil, ErrInvalidInput
	}

	v := &ScriptVersion{
		ProjectID: req.ProjectID,
		Content:   req.Content,
		Status:    StatusUnseen,
		Note:      strings.TrimSpace(req.Note),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.append(ctx, v); err != nil {
		return nil, fmt.Errorf("saving version: %w", err)
	}

	s.logger.Info("version saved", "project_id", v.ProjectID, "version", v.Number)
	return v, nil
}

// Fork duplicates an existing version into a new slot of the same project.
func (s *Service) Fork(ctx context.Context, sourceID int64) (*ScriptVersion, error) {
	src, err := s.Get(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	v := &ScriptVersion{
		ProjectID: src.ProjectID,
		Content:   src.Content,
		Status:    StatusUnseen,
		Note:      ForkNote(src.Number),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.append(ctx, v); err != nil {
		return nil, fmt.Errorf("forking version: %w", err)
	}

	s.logger.Info("version forked", "project_id", v.ProjectID, "source", src.Number, "version", v.Number)
	return v, nil
}

// Get fetches a version with its content.
func (s *Service) Get(ctx context.Context, id int64) (*ScriptVersion, error) {
	v, err := s.versions.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVersionNotFound
		}
		return nil, fmt.Errorf("getting version: %w", err)
	}
	return v, nil
}

// List returns the version history of a project, highest number first.
func (s *Service) List(ctx context.Context, projectID int64) ([]VersionRef, error) {
	if _, err := s.projects.Get(ctx, projectID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, project.ErrProjectNotFound
		}
		return nil, fmt.Errorf("getting project: %w", err)
	}
	refs, err := s.versions.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}
	return refs, nil
}

func (s *Service) append(ctx context.Context, v *ScriptVersion) error {
	if !v.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, v.Status)
	}
	err := s.versions.Append(ctx, v)
	if errors.Is(err, repository.ErrNotFound) {
		return project.ErrProjectNotFound
	}
	return err
}
