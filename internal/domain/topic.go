package domain

import "time"

// Topic represents a community topic (board)
type Topic struct {
	ID             uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"column:name;type:varchar(100);uniqueIndex" json:"name"`
	Description    *string   `gorm:"column:description;type:text" json:"description,omitempty"`
	OwnerID        uint64    `gorm:"column:owner_id;index" json:"owner_id"`
	TrendingScore  float64   `gorm:"column:trending_score;default:0" json:"trending_score"`
	LastActivityAt time.Time `gorm:"column:last_activity_at" json:"last_activity_at"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Topic) TableName() string { return "topics" }

// MemberRole is the stored per-topic membership role
type MemberRole string

const (
	MemberRoleMember    MemberRole = "member"
	MemberRoleModerator MemberRole = "moderator"
)

// TopicMembership links a user to a topic with a role and ban flag.
// The owner has no membership row; ownership implies moderator authority.
type TopicMembership struct {
	ID        uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TopicID   uint64     `gorm:"column:topic_id;uniqueIndex:idx_topic_user" json:"topic_id"`
	UserID    uint64     `gorm:"column:user_id;uniqueIndex:idx_topic_user;index" json:"user_id"`
	Role      MemberRole `gorm:"column:role;type:varchar(20);default:'member'" json:"role"`
	IsBanned  bool       `gorm:"column:is_banned;default:false" json:"is_banned"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (TopicMembership) TableName() string { return "topic_memberships" }
