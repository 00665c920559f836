package domain

import "time"

// ActivityKind is the kind of event feeding the trending score
type ActivityKind string

const (
	ActivityPost    ActivityKind = "post"
	ActivityComment ActivityKind = "comment"
	ActivityJoin    ActivityKind = "join"
	ActivityVote    ActivityKind = "vote"
)

// ActivityEvent records one qualifying activity with its base weight at
// the moment it occurred. Scores are derived by applying decay at read time.
type ActivityEvent struct {
	ID        uint64       `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TopicID   uint64       `gorm:"column:topic_id;index:idx_activity_topic" json:"topic_id"`
	PostID    *uint64      `gorm:"column:post_id;index" json:"post_id,omitempty"`
	Kind      ActivityKind `gorm:"column:kind;type:varchar(20)" json:"kind"`
	Weight    float64      `gorm:"column:weight" json:"weight"`
	CreatedAt time.Time    `gorm:"column:created_at;index:idx_activity_topic" json:"created_at"`
}

func (ActivityEvent) TableName() string { return "activity_events" }

// TrendingTopicEntry is one row of the trending topics listing
type TrendingTopicEntry struct {
	TopicID        uint64  `json:"topic_id"`
	Name           string  `json:"name"`
	Score          float64 `json:"score"`
	LastActivityAt string  `json:"last_activity_at"`
}

// TrendingPostEntry is one row of the trending posts listing
type TrendingPostEntry struct {
	PostID    uint64  `json:"post_id"`
	TopicID   uint64  `json:"topic_id"`
	Title     string  `json:"title"`
	Score     float64 `json:"score"`
	CreatedAt string  `json:"created_at"`
}
