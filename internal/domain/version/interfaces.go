package version

import (
	"context"

	"github.com/rpggio/docugen/internal/domain/project"
)

// Repository provides persistence for script versions.
type Repository interface {
	// Append stores v under the next free number of its project and fills in
	// ID and Number. It returns repository.ErrNotFound if the project is missing.
	Append(ctx context.Context, v *ScriptVersion) error
	Get(ctx context.Context, id int64) (*ScriptVersion, error)
	ListByProject(ctx context.Context, projectID int64) ([]VersionRef, error)
}

// ProjectRepository is the subset of project persistence used by versions.
type ProjectRepository interface {
	Get(ctx context.Context, id int64) (*project.Project, error)
}
