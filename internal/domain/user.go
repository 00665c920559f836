package domain

import "time"

// User represents a forum member
type User struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username    string    `gorm:"column:username;type:varchar(50);uniqueIndex" json:"username"`
	Email       string    `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	Password    string    `gorm:"column:password;type:varchar(255)" json:"-"`
	PostCred    int       `gorm:"column:post_cred;default:0" json:"post_cred"`
	CommentCred int       `gorm:"column:comment_cred;default:0" json:"comment_cred"`
	IsSuperuser bool      `gorm:"column:is_superuser;default:false" json:"is_superuser"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Karma is the combined voting credit used as an automod signal
func (u *User) Karma() int {
	return u.PostCred + u.CommentCred
}

// AccountAgeDays returns the whole days since the account was created
func (u *User) AccountAgeDays(now time.Time) int {
	return int(now.Sub(u.CreatedAt).Hours() / 24)
}
