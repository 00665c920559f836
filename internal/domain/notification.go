package domain

import "time"

// NotificationStatus is the read/delete state of a notification
type NotificationStatus string

const (
	NotificationUnread  NotificationStatus = "unread"
	NotificationRead    NotificationStatus = "read"
	NotificationDeleted NotificationStatus = "deleted"
)

// Notification types produced by the pipeline
const (
	NotifyMention    = "mention"
	NotifyNewPost    = "new_post"    // to the topic owner
	NotifyModMessage = "mod_message" // MESSAGE action to the content author
	NotifyMembership = "membership"  // join events for the topic owner
)

// Notification represents a per-user notification record
type Notification struct {
	ID        uint64             `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID    uint64             `gorm:"column:user_id;index" json:"user_id"`
	Type      string             `gorm:"column:type;type:varchar(50)" json:"type"`
	RelatedID uint64             `gorm:"column:related_id" json:"related_id"`
	Message   string             `gorm:"column:message;type:varchar(500)" json:"message"`
	Status    NotificationStatus `gorm:"column:status;type:varchar(20);default:'unread';index" json:"status"`
	CreatedAt time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Notification) TableName() string { return "notifications" }

// NotificationSummaryResponse represents unread count response
type NotificationSummaryResponse struct {
	TotalUnread int `json:"total_unread"`
}

// NotificationItem represents a single notification in a list
type NotificationItem struct {
	ID        uint64 `json:"id"`
	Type      string `json:"type"`
	RelatedID uint64 `json:"related_id"`
	Message   string `json:"message"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// NotificationListResponse represents notification list response
type NotificationListResponse struct {
	Items       []NotificationItem `json:"items"`
	Total       int64              `json:"total"`
	UnreadCount int64              `json:"unread_count"`
	Page        int                `json:"page"`
	Limit       int                `json:"limit"`
}
