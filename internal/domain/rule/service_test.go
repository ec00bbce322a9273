package rule_test

import (
	"context"
	"testing"

	"github.com/rpggio/docugen/internal/domain/rule"
	"github.com/rpggio/docugen/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRuleService_MemorizeAndList(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.RuleRepository{}
	repo.On("Append", ctx, mock.MatchedBy(func(r *rule.GlobalRule) bool {
		return r.Content == "Jamais de voix off descriptive"
	})).Return(nil)
	repo.On("List", ctx).Return([]rule.GlobalRule{{ID: 1, Content: "Jamais de voix off descriptive"}}, nil)

	svc := rule.NewService(repo, nil)
	r, err := svc.Memorize(ctx, "  Jamais de voix off descriptive ")
	require.NoError(t, err)
	require.Equal(t, "Jamais de voix off descriptive", r.Content)

	rules, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	repo.AssertExpectations(t)
}

func TestRuleService_MemorizeEmpty(t *testing.T) {
	repo := &mocks.RuleRepository{}
	svc := rule.NewService(repo, nil)

	_, err := svc.Memorize(context.Background(), "   ")
	require.ErrorIs(t, err, rule.ErrInvalidInput)
	repo.AssertNotCalled(t, "Append", mock.Anything, mock.Anything)
}
