package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/talkwave/talkwave-backend/internal/common"
	"github.com/talkwave/talkwave-backend/internal/domain"
)

func TestMatchRules_ConjunctivePredicates(t *testing.T) {
	rules := []domain.AutomodRule{
		{
			ID:   1,
			Name: "spam keyword from new low-karma accounts",
			Conditions: domain.RuleConditions{
				ContentContains: []string{"buy now"},
				UserKarmaBelow:  intPtr(10),
				AccountAgeBelow: intPtr(7),
			},
			Action: domain.ActionFilter,
		},
	}

	newAuthor := AuthorContext{Karma: 2, AccountAgeDays: 1}
	oldAuthor := AuthorContext{Karma: 2, AccountAgeDays: 30}
	trustedAuthor := AuthorContext{Karma: 50, AccountAgeDays: 1}

	assert.Len(t, MatchRules(rules, newAuthor, "BUY NOW cheap deals"), 1)
	assert.Empty(t, MatchRules(rules, newAuthor, "a normal post"))
	assert.Empty(t, MatchRules(rules, oldAuthor, "buy now"))
	assert.Empty(t, MatchRules(rules, trustedAuthor, "buy now"))
}

func TestMatchRules_AllMatchingRulesFire(t *testing.T) {
	rules := []domain.AutomodRule{
		{ID: 1, Priority: 10, Conditions: domain.RuleConditions{ContentContains: []string{"spam"}}, Action: domain.ActionRemove},
		{ID: 2, Priority: 5, Conditions: domain.RuleConditions{ContentContains: []string{"offer"}}, Action: domain.ActionReport},
		{ID: 3, Priority: 1, Conditions: domain.RuleConditions{ContentContains: []string{"unrelated"}}, Action: domain.ActionFilter},
	}

	matched := MatchRules(rules, AuthorContext{}, "spam offer inside")
	assert.Len(t, matched, 2)
	// Input order is evaluation order; the matcher never reorders
	assert.Equal(t, uint64(1), matched[0].ID)
	assert.Equal(t, uint64(2), matched[1].ID)
}

func TestMatchRules_KeywordAnySemantics(t *testing.T) {
	rules := []domain.AutomodRule{
		{ID: 1, Conditions: domain.RuleConditions{ContentContains: []string{"alpha", "beta"}}, Action: domain.ActionFilter},
	}

	assert.Len(t, MatchRules(rules, AuthorContext{}, "contains beta only"), 1)
	assert.Empty(t, MatchRules(rules, AuthorContext{}, "contains neither"))
}

func TestMatchRules_EmptyConditionsNeverMatch(t *testing.T) {
	rules := []domain.AutomodRule{
		{ID: 1, Conditions: domain.RuleConditions{}, Action: domain.ActionRemove},
	}
	assert.Empty(t, MatchRules(rules, AuthorContext{}, "anything at all"))
}

func TestCreateRule_RequiresModerator(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	member := env.seedUser(t, "member", 0)
	topic := env.seedTopic(t, "golang", owner.ID)
	env.seedMember(t, topic.ID, member.ID, domain.MemberRoleMember)

	req := &domain.CreateRuleRequest{
		TopicID:    topic.ID,
		Name:       "no spam",
		Conditions: domain.RuleConditions{ContentContains: []string{"spam"}},
		Action:     domain.ActionRemove,
	}

	_, err := env.automod.CreateRule(member.ID, req)
	assert.True(t, errors.Is(err, common.ErrForbidden))

	rule, err := env.automod.CreateRule(owner.ID, req)
	assert.NoError(t, err)
	assert.Equal(t, owner.ID, rule.CreatedBy)
	assert.True(t, rule.Enabled)
}

func TestCreateRule_RejectsMalformedConditions(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	topic := env.seedTopic(t, "golang", owner.ID)

	tests := []struct {
		name       string
		conditions domain.RuleConditions
	}{
		{"no predicates", domain.RuleConditions{}},
		{"blank keyword", domain.RuleConditions{ContentContains: []string{"  "}}},
		{"negative karma threshold", domain.RuleConditions{UserKarmaBelow: intPtr(-1)}},
		{"negative age threshold", domain.RuleConditions{AccountAgeBelow: intPtr(-5)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.automod.CreateRule(owner.ID, &domain.CreateRuleRequest{
				TopicID:    topic.ID,
				Name:       "bad rule",
				Conditions: tt.conditions,
				Action:     domain.ActionRemove,
			})
			assert.True(t, errors.Is(err, common.ErrInvalidInput))
		})
	}
}

func TestCreateRule_RejectsUnknownAction(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	topic := env.seedTopic(t, "golang", owner.ID)

	_, err := env.automod.CreateRule(owner.ID, &domain.CreateRuleRequest{
		TopicID:    topic.ID,
		Name:       "bad action",
		Conditions: domain.RuleConditions{ContentContains: []string{"x"}},
		Action:     domain.RuleAction("obliterate"),
	})
	assert.True(t, errors.Is(err, common.ErrInvalidInput))
}

func TestListTopicRules_EvaluationOrder(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	topic := env.seedTopic(t, "golang", owner.ID)

	env.seedRule(t, topic.ID, owner.ID, "low", 1, domain.RuleConditions{ContentContains: []string{"a"}}, domain.ActionFilter)
	env.seedRule(t, topic.ID, owner.ID, "high", 10, domain.RuleConditions{ContentContains: []string{"b"}}, domain.ActionRemove)
	env.seedRule(t, topic.ID, owner.ID, "high-later", 10, domain.RuleConditions{ContentContains: []string{"c"}}, domain.ActionReport)

	rules, err := env.automod.ListTopicRules(owner.ID, topic.ID)
	assert.NoError(t, err)
	assert.Len(t, rules, 3)
	assert.Equal(t, "high", rules[0].Name)
	assert.Equal(t, "high-later", rules[1].Name)
	assert.Equal(t, "low", rules[2].Name)
}

func TestUpdateRule_PartialAndDisable(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	topic := env.seedTopic(t, "golang", owner.ID)
	rule := env.seedRule(t, topic.ID, owner.ID, "no spam", 0, domain.RuleConditions{ContentContains: []string{"spam"}}, domain.ActionFilter)

	enabled := false
	updated, err := env.automod.UpdateRule(owner.ID, rule.ID, &domain.UpdateRuleRequest{Enabled: &enabled})
	assert.NoError(t, err)
	assert.False(t, updated.Enabled)
	assert.Equal(t, "no spam", updated.Name)

	// Disabled rules leave the matcher's snapshot
	enabledRules, err := env.rules.FindEnabledByTopic(topic.ID)
	assert.NoError(t, err)
	assert.Empty(t, enabledRules)
}

func TestDeleteRule_NotFound(t *testing.T) {
	env := newTestEnv(t)
	owner := env.seedUser(t, "owner", 0)
	env.seedTopic(t, "golang", owner.ID)

	err := env.automod.DeleteRule(owner.ID, 999)
	assert.True(t, errors.Is(err, common.ErrRuleNotFound))
}
