package mocks

import (
	"context"

	"github.com/rpggio/docugen/internal/domain/project"
	"github.com/rpggio/docugen/internal/domain/rule"
	"github.com/rpggio/docugen/internal/domain/version"
	"github.com/stretchr/testify/mock"
)

// ProjectRepository is a mock for project.Repository.
type ProjectRepository struct {
	mock.Mock
}

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Get(ctx context.Context, id int64) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) GetByShareToken(ctx context.Context, token string) (*project.Project, error) {
	args := m.Called(ctx, token)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) List(ctx context.Context) ([]project.ProjectSummary, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.ProjectSummary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// VersionRepository is a mock for version.Repository.
type VersionRepository struct {
	mock.Mock
}

func (m *VersionRepository) Append(ctx context.Context, v *version.ScriptVersion) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *VersionRepository) Get(ctx context.Context, id int64) (*version.ScriptVersion, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*version.ScriptVersion); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VersionRepository) ListByProject(ctx context.Context, projectID int64) ([]version.VersionRef, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]version.VersionRef); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// RuleRepository is a mock for rule.Repository.
type RuleRepository struct {
	mock.Mock
}

func (m *RuleRepository) Append(ctx context.Context, r *rule.GlobalRule) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *RuleRepository) List(ctx context.Context) ([]rule.GlobalRule, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]rule.GlobalRule); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
