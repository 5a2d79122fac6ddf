package models

import "time"

// Forum categories.
var ForumCategories = []string{
	"general", "databases", "fullstack", "cloud", "datascience",
	"mlai", "iot", "cybersecurity", "help",
}

// ForumPost is a discussion topic started by a user.
type ForumPost struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	UserID    uint         `gorm:"index;not null" json:"user_id"`
	User      User         `json:"-"`
	Title     string       `gorm:"size:200;not null" json:"title"`
	Content   string       `gorm:"type:text;not null" json:"content"`
	Category  string       `gorm:"size:100;not null" json:"category"`
	IsPinned  bool         `gorm:"index;not null;default:false" json:"is_pinned"`
	Replies   []ForumReply `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"replies,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// ForumReply is a response within a forum post.
type ForumReply struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"index;not null" json:"post_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      User      `json:"-"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
