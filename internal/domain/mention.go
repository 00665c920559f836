package domain

import "time"

// Mention links a content unit to a user referenced via @handle.
// At most one mention row exists per (content unit, mentioned user);
// self-mentions are never stored.
type Mention struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MentionerID uint64    `gorm:"column:mentioner_id;index" json:"mentioner_id"`
	MentionedID uint64    `gorm:"column:mentioned_id;index" json:"mentioned_id"`
	PostID      *uint64   `gorm:"column:post_id;index" json:"post_id,omitempty"`
	CommentID   *uint64   `gorm:"column:comment_id;index" json:"comment_id,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Mention) TableName() string { return "mentions" }

// MentionItem is a single mention in a user-facing listing
type MentionItem struct {
	ID          uint64  `json:"id"`
	MentionerID uint64  `json:"mentioner_id"`
	Mentioner   string  `json:"mentioner,omitempty"`
	PostID      *uint64 `json:"post_id,omitempty"`
	CommentID   *uint64 `json:"comment_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
