package domain

import "time"

// ModerationStatus is the moderation state of a post or comment
type ModerationStatus string

const (
	StatusActive   ModerationStatus = "active"
	StatusFiltered ModerationStatus = "filtered" // hidden from default listings, awaiting review
	StatusRemoved  ModerationStatus = "removed"  // terminal; retained for audit
)

// TargetType identifies what a moderation action or audit entry points at
type TargetType string

const (
	TargetPost    TargetType = "post"
	TargetComment TargetType = "comment"
	TargetUser    TargetType = "user"
)

// Post represents a topic post
type Post struct {
	ID           uint64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TopicID      uint64           `gorm:"column:topic_id;index" json:"topic_id"`
	AuthorID     uint64           `gorm:"column:author_id;index" json:"author_id"`
	Title        string           `gorm:"column:title;type:varchar(255)" json:"title"`
	Body         string           `gorm:"column:body;type:mediumtext" json:"body"`
	Status       ModerationStatus `gorm:"column:status;type:varchar(20);default:'active';index" json:"status"`
	IsLocked     bool             `gorm:"column:is_locked;default:false" json:"is_locked"`
	CommentCount uint             `gorm:"column:comment_count;default:0" json:"comment_count"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Post) TableName() string { return "posts" }

// Comment represents a post comment. TopicID is denormalized so the
// moderation pipeline can resolve authority without a join.
type Comment struct {
	ID        uint64           `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PostID    uint64           `gorm:"column:post_id;index" json:"post_id"`
	TopicID   uint64           `gorm:"column:topic_id;index" json:"topic_id"`
	AuthorID  uint64           `gorm:"column:author_id;index" json:"author_id"`
	Body      string           `gorm:"column:body;type:text" json:"body"`
	Status    ModerationStatus `gorm:"column:status;type:varchar(20);default:'active';index" json:"status"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Comment) TableName() string { return "comments" }
