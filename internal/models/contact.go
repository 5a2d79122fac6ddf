package models

import "time"

// Contact priorities include urgent on top of the activity levels.
var ContactPriorities = []string{"low", "medium", "high", "urgent"}

// ContactMessage stores an inbound contact form submission.
type ContactMessage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ReferenceID string    `gorm:"size:64;uniqueIndex" json:"reference_id"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	Email       string    `gorm:"size:160;not null" json:"email"`
	Subject     string    `gorm:"size:200;not null" json:"subject"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	Priority    string    `gorm:"size:10;not null;default:medium" json:"priority"`
	IsResolved  bool      `gorm:"not null;default:false" json:"is_resolved"`
	Checksum    string    `gorm:"size:128;index" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}
