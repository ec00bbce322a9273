package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rpggio/docugen/internal/domain/version"
	"github.com/rpggio/docugen/internal/repository"
)

// VersionRepository implements version.Repository for SQLite
type VersionRepository struct {
	db *DB
}

// NewVersionRepository creates a new VersionRepository
func NewVersionRepository(db *DB) *VersionRepository {
	return &VersionRepository{db: db}
}

// Append allocates the next version number of the project and inserts v in a
// single transaction. Touching the project first takes the write lock, so the
// MAX read and the insert cannot interleave with another writer; the unique
// (project_id, version_number) index backs this up.
func (r *VersionRepository) Append(ctx context.Context, v *version.ScriptVersion) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE projects SET updated_at = ? WHERE id = ?`,
		v.CreatedAt, v.ProjectID,
	)
	if err != nil {
		return fmt.Errorf("failed to touch project: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	insertQuery := `
		INSERT INTO versions (project_id, version_number, content, status, note, created_at)
		SELECT ?, COALESCE(MAX(version_number), 0) + 1, ?, ?, ?, ?
		FROM versions
		WHERE project_id = ?
		RETURNING id, version_number
	`

	err = tx.QueryRowContext(ctx, insertQuery,
		v.ProjectID,
		v.Content,
		string(v.Status),
		v.Note,
		v.CreatedAt,
		v.ProjectID,
	).Scan(&v.ID, &v.Number)
	if err != nil {
		return fmt.Errorf("failed to insert version: %w", translate(err))
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Get retrieves a version with its content
func (r *VersionRepository) Get(ctx context.Context, id int64) (*version.ScriptVersion, error) {
	query := `
		SELECT id, project_id, version_number, content, status, note, created_at
		FROM versions
		WHERE id = ?
	`

	var v version.ScriptVersion
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&v.ID,
		&v.ProjectID,
		&v.Number,
		&v.Content,
		&v.Status,
		&v.Note,
		&v.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get version: %w", err)
	}

	return &v, nil
}

// ListByProject returns the versions of a project, highest number first
func (r *VersionRepository) ListByProject(ctx context.Context, projectID int64) ([]version.VersionRef, error) {
	query := `
		SELECT id, project_id, version_number, status, note, created_at
		FROM versions
		WHERE project_id = ?
		ORDER BY version_number DESC
	`

	rows, err := r.db.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list versions: %w", err)
	}
	defer rows.Close()

	refs := []version.VersionRef{}
	for rows.Next() {
		var ref version.VersionRef
		if err := rows.Scan(&ref.ID, &ref.ProjectID, &ref.Number, &ref.Status, &ref.Note, &ref.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan version: %w", err)
		}
		refs = append(refs, ref)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating version rows: %w", err)
	}

	return refs, nil
}
