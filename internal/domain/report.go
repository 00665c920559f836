package domain

import "time"

// Report is the record created by the REPORT action (automated) or kept
// for moderator review. It does not change the content's moderation state.
type Report struct {
	ID         uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TopicID    uint64     `gorm:"column:topic_id;index" json:"topic_id"`
	ReporterID uint64     `gorm:"column:reporter_id" json:"reporter_id"`
	TargetType TargetType `gorm:"column:target_type;type:varchar(20)" json:"target_type"`
	TargetID   uint64     `gorm:"column:target_id;index" json:"target_id"`
	Reason     string     `gorm:"column:reason;type:varchar(500)" json:"reason"`
	RuleID     *uint64    `gorm:"column:rule_id" json:"rule_id,omitempty"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Report) TableName() string { return "reports" }
