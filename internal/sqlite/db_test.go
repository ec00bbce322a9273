package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpggio/docugen/internal/domain/project"
	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestProject inserts a project imported from a minimal dossier.
func createTestProject(t *testing.T, db *DB, region string) *project.Project {
	t.Helper()

	doc, err := project.ParseDocument([]byte(`{"region":"` + region + `"}`))
	require.NoError(t, err)

	now := time.Now().UTC()
	proj := &project.Project{
		Title:      project.TitleFor(region),
		Region:     region,
		ShareToken: uuid.NewString(),
		FormData:   doc,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, NewProjectRepository(db).Create(context.Background(), proj))
	return proj
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{"projects", "versions", "global_rules"}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestMigrationsIdempotent verifies the schema can be applied on every start
func TestMigrationsIdempotent(t *testing.T) {
	db := NewTestDB(t)
	createTestProject(t, db, "Causses")

	require.NoError(t, db.RunMigrations())

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM projects").Scan(&count))
	require.Equal(t, 1, count)
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestProjectDeleteCascadesVersions pins the project deletion policy
func TestProjectDeleteCascadesVersions(t *testing.T) {
	db := NewTestDB(t)
	proj := createTestProject(t, db, "Jura")
	saveTestVersion(t, db, proj.ID, "v1")
	saveTestVersion(t, db, proj.ID, "v2")

	_, err := db.Exec("DELETE FROM projects WHERE id = ?", proj.ID)
	require.NoError(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM versions WHERE project_id = ?", proj.ID).Scan(&count))
	require.Zero(t, count)
}
