package models

import "time"

// Branch values accepted on registration.
var ProfileBranches = []string{
	"cse", "it", "ece", "eee", "mech", "civil",
	"ai_ml", "cyber_security", "data_science", "other",
}

// User is a registered platform account.
type User struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Username     string      `gorm:"size:64;uniqueIndex;not null" json:"username"`
	Email        string      `gorm:"size:160;not null" json:"email"`
	PasswordHash string      `gorm:"size:128;not null" json:"-"`
	Profile      UserProfile `json:"profile"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// UserProfile holds the extended profile created alongside every user.
type UserProfile struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Bio            string     `gorm:"type:text" json:"bio"`
	AvatarURL      string     `gorm:"size:512" json:"avatar_url"`
	DateOfBirth    *time.Time `json:"date_of_birth"`
	Location       string     `gorm:"size:100" json:"location"`
	Website        string     `gorm:"size:512" json:"website"`
	Whatsapp       string     `gorm:"size:15" json:"whatsapp"`
	Branch         string     `gorm:"size:20" json:"branch"`
	Github         string     `gorm:"size:512" json:"github"`
	ResumeURL      string     `gorm:"size:512" json:"resume_url"`
	AdditionalInfo string     `gorm:"type:text" json:"additional_info"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}
