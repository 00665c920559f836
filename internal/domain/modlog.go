package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// JSONMap is a generic JSON object column
type JSONMap map[string]interface{}

// Scan implements sql.Scanner
func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	}
	return errors.New("type assertion to []byte failed")
}

// Value implements driver.Valuer
func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Audit-only actions recorded by membership moderation. Automod rules
// cannot trigger these; ValidRuleAction excludes them.
const (
	ActionBan   RuleAction = "ban"
	ActionUnban RuleAction = "unban"
)

// ModLogEntry is an append-only moderation audit record. Entries are never
// mutated or deleted by normal operation. Automated actions are attributed
// to the rule creator; Details carries the rule reference so readers can
// tell human entries from automated ones.
type ModLogEntry struct {
	ID          uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TopicID     uint64     `gorm:"column:topic_id;index" json:"topic_id"`
	ModeratorID uint64     `gorm:"column:moderator_id;index" json:"moderator_id"`
	Action      RuleAction `gorm:"column:action;type:varchar(20);index" json:"action"`
	TargetType  TargetType `gorm:"column:target_type;type:varchar(20)" json:"target_type"`
	TargetID    uint64     `gorm:"column:target_id" json:"target_id"`
	Reason      *string    `gorm:"column:reason;type:varchar(500)" json:"reason,omitempty"`
	Details     JSONMap    `gorm:"column:details;type:json" json:"details,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
}

func (ModLogEntry) TableName() string { return "mod_log_entries" }

// IsAutomated reports whether the entry was produced by an automod rule
func (e *ModLogEntry) IsAutomated() bool {
	if e.Details == nil {
		return false
	}
	automated, ok := e.Details["automated"].(bool)
	return ok && automated
}

// ModLogFilter narrows mod log listings
type ModLogFilter struct {
	Action      RuleAction
	ModeratorID uint64
	Page        int
	Limit       int
}
