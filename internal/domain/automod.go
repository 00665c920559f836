package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// RuleAction is the enforcement action an automod rule triggers
type RuleAction string

const (
	ActionRemove  RuleAction = "remove"
	ActionFilter  RuleAction = "filter"
	ActionReport  RuleAction = "report"
	ActionLock    RuleAction = "lock"
	ActionMessage RuleAction = "message"
	ActionApprove RuleAction = "approve"
)

// ValidRuleAction reports whether the action is a known enforcement action
func ValidRuleAction(a RuleAction) bool {
	switch a {
	case ActionRemove, ActionFilter, ActionReport, ActionLock, ActionMessage, ActionApprove:
		return true
	}
	return false
}

// RuleConditions is the closed set of automod predicates. A rule matches
// only when every present predicate holds (conjunctive). Stored as a JSON
// column; validated once at rule creation, never re-parsed at match time.
type RuleConditions struct {
	ContentContains []string `json:"content_contains,omitempty"`
	UserKarmaBelow  *int     `json:"user_karma_below,omitempty"`
	AccountAgeBelow *int     `json:"account_age_below,omitempty"` // days
}

// IsEmpty reports whether no predicate is present
func (c RuleConditions) IsEmpty() bool {
	return len(c.ContentContains) == 0 && c.UserKarmaBelow == nil && c.AccountAgeBelow == nil
}

// Validate rejects malformed condition payloads at the boundary
func (c RuleConditions) Validate() error {
	if c.IsEmpty() {
		return errors.New("conditions must contain at least one predicate")
	}
	for _, kw := range c.ContentContains {
		if strings.TrimSpace(kw) == "" {
			return errors.New("content_contains keywords must be non-empty")
		}
	}
	if c.UserKarmaBelow != nil && *c.UserKarmaBelow < 0 {
		return errors.New("user_karma_below must be non-negative")
	}
	if c.AccountAgeBelow != nil && *c.AccountAgeBelow < 0 {
		return errors.New("account_age_below must be non-negative")
	}
	return nil
}

// Scan implements sql.Scanner. Unparseable stored conditions yield the
// empty set, which never matches: a bad row is inert, not catastrophic.
func (c *RuleConditions) Scan(value interface{}) error {
	if value == nil {
		*c = RuleConditions{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported conditions column type %T", value)
	}

	var parsed RuleConditions
	if err := json.Unmarshal(data, &parsed); err != nil {
		*c = RuleConditions{}
		return nil
	}
	*c = parsed
	return nil
}

// Value implements driver.Valuer
func (c RuleConditions) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// AutomodRule is a stored, topic-scoped predicate-to-action mapping
// evaluated on every new submission.
type AutomodRule struct {
	ID         uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TopicID    uint64         `gorm:"column:topic_id;index" json:"topic_id"`
	Name       string         `gorm:"column:name;type:varchar(100)" json:"name"`
	Enabled    bool           `gorm:"column:enabled;default:true" json:"enabled"`
	Priority   int            `gorm:"column:priority;default:0" json:"priority"`
	Conditions RuleConditions `gorm:"column:conditions;type:json" json:"conditions"`
	Action     RuleAction     `gorm:"column:action;type:varchar(20)" json:"action"`
	CreatedBy  uint64         `gorm:"column:created_by" json:"created_by"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (AutomodRule) TableName() string { return "automod_rules" }

// CreateRuleRequest is the payload for creating an automod rule
type CreateRuleRequest struct {
	TopicID    uint64         `json:"topic_id" binding:"required"`
	Name       string         `json:"name" binding:"required"`
	Priority   int            `json:"priority"`
	Conditions RuleConditions `json:"conditions" binding:"required"`
	Action     RuleAction     `json:"action" binding:"required"`
	Enabled    *bool          `json:"enabled,omitempty"`
}

// UpdateRuleRequest is the payload for updating an automod rule
type UpdateRuleRequest struct {
	Name       *string         `json:"name,omitempty"`
	Priority   *int            `json:"priority,omitempty"`
	Conditions *RuleConditions `json:"conditions,omitempty"`
	Action     *RuleAction     `json:"action,omitempty"`
	Enabled    *bool           `json:"enabled,omitempty"`
}
