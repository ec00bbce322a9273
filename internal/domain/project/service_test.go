package project_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rpggio/docugen/internal/domain/project"
	"github.com/rpggio/docugen/internal/repository"
	"github.com/rpggio/docugen/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProjectService_Import(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Create", ctx, mock.AnythingOfType("*project.Project")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*project.Project).ID = 7
		}).
		Return(nil)

	svc := project.NewService(repo, nil)
	proj, err := svc.Import(ctx, []byte(`{"region":"Causses","pays":"France"}`))
	require.NoError(t, err)
	require.Equal(t, int64(7), proj.ID)
	require.Equal(t, "Causses", proj.Region)
	require.Equal(t, "Repérage : Causses", proj.Title)
	require.NotEmpty(t, proj.ShareToken)
	require.JSONEq(t, `{"region":"Causses","pays":"France"}`, string(proj.FormData.Raw()))
	repo.AssertExpectations(t)
}

func TestProjectService_ImportDefaultsRegion(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Create", ctx, mock.Anything).Return(nil)

	svc := project.NewService(repo, nil)
	proj, err := svc.Import(ctx, []byte(`{"region":"   ","gardiens":[{"nom":"Jeanne"}]}`))
	require.NoError(t, err)
	require.Equal(t, project.DefaultRegion, proj.Region)
	require.Equal(t, project.TitleFor(project.DefaultRegion), proj.Title)
}

func TestProjectService_ImportInvalidPayload(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.ProjectRepository{}
	svc := project.NewService(repo, nil)

	for _, payload := range []string{``, `[1,2]`, `"region"`, `{"region":`} {
		_, err := svc.Import(ctx, []byte(payload))
		require.ErrorIs(t, err, project.ErrInvalidPayload, "payload %q", payload)
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectService_ImportPersistenceFailure(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")

	repo := &mocks.ProjectRepository{}
	repo.On("Create", ctx, mock.Anything).Return(boom)

	svc := project.NewService(repo, nil)
	_, err := svc.Import(ctx, []byte(`{"region":"Causses"}`))
	require.ErrorIs(t, err, boom)
	require.Contains(t, err.Error(), "disk full")
}

func TestProjectService_GetNotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.ProjectRepository{}
	repo.On("Get", ctx, int64(42)).Return(nil, repository.ErrNotFound)
	repo.On("GetByShareToken", ctx, "nope").Return(nil, repository.ErrNotFound)

	svc := project.NewService(repo, nil)
	_, err := svc.Get(ctx, 42)
	require.ErrorIs(t, err, project.ErrProjectNotFound)

	_, err = svc.GetByShareToken(ctx, "nope")
	require.ErrorIs(t, err, project.ErrProjectNotFound)

	_, err = svc.GetByShareToken(ctx, " ")
	require.ErrorIs(t, err, project.ErrProjectNotFound)
}
