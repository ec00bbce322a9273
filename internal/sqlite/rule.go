package sqlite

import (
	"context"
	"fmt"

	"github.com/rpggio/docugen/internal/domain/rule"
)

// RuleRepository implements rule.Repository for SQLite
type RuleRepository struct {
	db *DB
}

// NewRuleRepository creates a new RuleRepository
func NewRuleRepository(db *DB) *RuleRepository {
	return &RuleRepository{db: db}
}

// Append inserts a memorized rule
func (r *RuleRepository) Append(ctx context.Context, gr *rule.GlobalRule) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO global_rules (content, created_at) VALUES (?, ?)`,
		gr.Content, gr.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert rule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read rule id: %w", err)
	}
	gr.ID = id
	return nil
}

// List returns all rules in insertion order
func (r *RuleRepository) List(ctx context.Context) ([]rule.GlobalRule, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, content, created_at FROM global_rules ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list rules: %w", err)
	}
	defer rows.Close()

	rules := []rule.GlobalRule{}
	for rows.Next() {
		var gr rule.GlobalRule
		if err := rows.Scan(&gr.ID, &gr.Content, &gr.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		rules = append(rules, gr)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rule rows: %w", err)
	}

	return rules, nil
}
