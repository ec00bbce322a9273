package rule

import "context"

// Repository provides persistence operations for memorized rules.
type Repository interface {
	Append(ctx context.Context, r *GlobalRule) error
	List(ctx context.Context) ([]GlobalRule, error)
}
