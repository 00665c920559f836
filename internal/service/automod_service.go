package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/talkwave/talkwave-backend/internal/common"
	"github.com/talkwave/talkwave-backend/internal/domain"
	"github.com/talkwave/talkwave-backend/internal/repository"
)

// AuthorContext is the snapshot of the author the matcher evaluates
// predicates against. It is fixed once per submission.
type AuthorContext struct {
	Karma          int
	AccountAgeDays int
}

// MatchRules evaluates rules in order (priority descending, creation
// ascending) and returns every rule whose predicates all hold. It is a
// pure function of its inputs: no persistence, no side effects, and the
// same inputs always yield the same matched list.
//
// Rules whose stored conditions failed to parse carry the empty predicate
// set and therefore never match.
func MatchRules(rules []domain.AutomodRule, author AuthorContext, body string) []domain.AutomodRule {
	var matched []domain.AutomodRule
	loweredBody := strings.ToLower(body)

	for _, rule := range rules {
		if ruleMatches(rule.Conditions, author, loweredBody) {
			matched = append(matched, rule)
		}
	}
	return matched
}

// ruleMatches is conjunctive: every present predicate must hold, and an
// empty predicate set matches nothing.
func ruleMatches(c domain.RuleConditions, author AuthorContext, loweredBody string) bool {
	if c.IsEmpty() {
		return false
	}
	if len(c.ContentContains) > 0 && !containsAnyKeyword(loweredBody, c.ContentContains) {
		return false
	}
	if c.UserKarmaBelow != nil && author.Karma >= *c.UserKarmaBelow {
		return false
	}
	if c.AccountAgeBelow != nil && author.AccountAgeDays >= *c.AccountAgeBelow {
		return false
	}
	return true
}

func containsAnyKeyword(loweredBody string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(loweredBody, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// AutomodService manages topic automod rules
type AutomodService struct {
	ruleRepo repository.AutomodRepository
	gate     *Gate
}

// NewAutomodService creates a new AutomodService
func NewAutomodService(ruleRepo repository.AutomodRepository, gate *Gate) *AutomodService {
	return &AutomodService{ruleRepo: ruleRepo, gate: gate}
}

// CreateRule validates and stores a new rule. Malformed conditions are
// rejected here so the matcher only ever sees the typed predicate set.
func (s *AutomodService) CreateRule(actorID uint64, req *domain.CreateRuleRequest) (*domain.AutomodRule, error) {
	access, err := s.gate.Check(actorID, req.TopicID)
	if err != nil {
		return nil, err
	}
	if !access.CanModerate() {
		return nil, common.ErrForbidden
	}

	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: rule name is required", common.ErrInvalidInput)
	}
	if !domain.ValidRuleAction(req.Action) {
		return nil, fmt.Errorf("%w: unknown action %q", common.ErrInvalidInput, req.Action)
	}
	if err := req.Conditions.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}

	rule := &domain.AutomodRule{
		TopicID:    req.TopicID,
		Name:       req.Name,
		Enabled:    true,
		Priority:   req.Priority,
		Conditions: req.Conditions,
		Action:     req.Action,
		CreatedBy:  actorID,
	}
	if req.Enabled != nil {
		rule.Enabled = *req.Enabled
	}

	if err := s.ruleRepo.Create(rule); err != nil {
		return nil, fmt.Errorf("create automod rule: %w", err)
	}
	return rule, nil
}

// GetRule returns a rule if the actor may moderate its topic
func (s *AutomodService) GetRule(actorID, ruleID uint64) (*domain.AutomodRule, error) {
	rule, err := s.ruleRepo.FindByID(ruleID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, common.ErrRuleNotFound
	}

	access, err := s.gate.Check(actorID, rule.TopicID)
	if err != nil {
		return nil, err
	}
	if !access.CanModerate() {
		return nil, common.ErrForbidden
	}
	return rule, nil
}

// ListTopicRules returns all rules of a topic in evaluation order
func (s *AutomodService) ListTopicRules(actorID, topicID uint64) ([]domain.AutomodRule, error) {
	access, err := s.gate.Check(actorID, topicID)
	if err != nil {
		return nil, err
	}
	if !access.CanModerate() {
		return nil, common.ErrForbidden
	}
	return s.ruleRepo.FindByTopic(topicID)
}

// UpdateRule applies a partial update; changed conditions are re-validated
func (s *AutomodService) UpdateRule(actorID, ruleID uint64, req *domain.UpdateRuleRequest) (*domain.AutomodRule, error) {
	rule, err := s.GetRule(actorID, ruleID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("%w: rule name is required", common.ErrInvalidInput)
		}
		rule.Name = *req.Name
	}
	if req.Priority != nil {
		rule.Priority = *req.Priority
	}
	if req.Action != nil {
		if !domain.ValidRuleAction(*req.Action) {
			return nil, fmt.Errorf("%w: unknown action %q", common.ErrInvalidInput, *req.Action)
		}
		rule.Action = *req.Action
	}
	if req.Conditions != nil {
		if err := req.Conditions.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
		}
		rule.Conditions = *req.Conditions
	}
	if req.Enabled != nil {
		rule.Enabled = *req.Enabled
	}
	rule.UpdatedAt = time.Now()

	if err := s.ruleRepo.Save(rule); err != nil {
		return nil, fmt.Errorf("update automod rule: %w", err)
	}
	return rule, nil
}

// DeleteRule removes a rule
func (s *AutomodService) DeleteRule(actorID, ruleID uint64) error {
	rule, err := s.GetRule(actorID, ruleID)
	if err != nil {
		return err
	}
	return s.ruleRepo.Delete(rule.ID)
}
