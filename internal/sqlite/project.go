package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/docugen/internal/domain/project"
	"github.com/rpggio/docugen/internal/repository"
)

// ProjectRepository implements project.Repository for SQLite
type ProjectRepository struct {
	db *DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectColumns = `id, title, region, share_token, form_data, script_content, report_content, created_at, updated_at`

// Create inserts a project and sets its generated ID. The insert runs in its
// own transaction and is rolled back on any failure. A project without a
// dossier is refused.
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	if proj.FormData.IsZero() {
		return fmt.Errorf("%w: project has no dossier", project.ErrInvalidPayload)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO projects (title, region, share_token, form_data, script_content, report_content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		proj.Title,
		proj.Region,
		proj.ShareToken,
		proj.FormData,
		proj.ScriptContent,
		proj.ReportContent,
		proj.CreatedAt,
		proj.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", translate(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read project id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	proj.ID = id
	return nil
}

// Get retrieves a project by ID
func (r *ProjectRepository) Get(ctx context.Context, id int64) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = ?`
	proj, err := scanProject(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return proj, nil
}

// GetByShareToken retrieves a project by its share token
func (r *ProjectRepository) GetByShareToken(ctx context.Context, token string) (*project.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE share_token = ?`
	proj, err := scanProject(r.db.QueryRowContext(ctx, query, token))
	if err != nil {
		return nil, fmt.Errorf("failed to get project by share token: %w", err)
	}
	return proj, nil
}

// List returns all projects, most recently created first
func (r *ProjectRepository) List(ctx context.Context) ([]project.ProjectSummary, error) {
	query := `
		SELECT id, title, region, created_at
		FROM projects
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	summaries := []project.ProjectSummary{}
	for rows.Next() {
		var summary project.ProjectSummary
		if err := rows.Scan(&summary.ID, &summary.Title, &summary.Region, &summary.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan project summary: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project rows: %w", err)
	}

	return summaries, nil
}

func scanProject(row *sql.Row) (*project.Project, error) {
	var (
		proj   project.Project
		script sql.NullString
		report sql.NullString
	)
	err := row.Scan(
		&proj.ID,
		&proj.Title,
		&proj.Region,
		&proj.ShareToken,
		&proj.FormData,
		&script,
		&report,
		&proj.CreatedAt,
		&proj.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if script.Valid {
		proj.ScriptContent = &script.String
	}
	if report.Valid {
		proj.ReportContent = &report.String
	}
	return &proj, nil
}
