package project

import "context"

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	Get(ctx context.Context, id int64) (*Project, error)
	GetByShareToken(ctx context.Context, token string) (*Project, error)
	List(ctx context.Context) ([]ProjectSummary, error)
}
