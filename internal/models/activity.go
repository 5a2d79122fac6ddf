package models

import (
	"time"

	"gorm.io/datatypes"
)

// Activity kinds recognised by the platform. The set is closed; unknown
// values fall back to the default icon when serialised.
const (
	ActivityPageView         = "page_view"
	ActivityCourseView       = "course_view"
	ActivityCourseProgress   = "course_progress"
	ActivityResourceDownload = "resource_download"
	ActivityForumPost        = "forum_post"
	ActivityForumReply       = "forum_reply"
	ActivityAchievement      = "achievement"
	ActivitySearch           = "search"
	ActivityEnroll           = "enroll"
	ActivityComplete         = "complete"
	ActivityCertificate      = "certificate"
)

// Activity priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// UserActivity is one logged user interaction. Rows are append-only; the
// only mutable field after creation is IsRead, which flips false to true
// and never back.
type UserActivity struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	UserID      uint              `gorm:"not null;index:idx_user_activity_kind" json:"user_id"`
	User        User              `json:"-"`
	Kind        string            `gorm:"size:20;not null;index:idx_user_activity_kind" json:"kind"`
	TargetURL   string            `gorm:"size:512" json:"target_url"`
	TargetTitle string            `gorm:"size:200" json:"target_title"`
	Metadata    datatypes.JSONMap `gorm:"type:json" json:"metadata"`
	Priority    string            `gorm:"size:10;not null;default:medium" json:"priority"`
	IsImportant bool              `gorm:"not null;default:false" json:"is_important"`
	IsRead      bool              `gorm:"not null;default:false" json:"is_read"`
	IPAddress   string            `gorm:"size:45" json:"ip_address"`
	UserAgent   string            `gorm:"type:text" json:"user_agent"`
	Referrer    string            `gorm:"size:512" json:"referrer"`
	Progress    *int              `json:"progress"`
	RelatedKind string            `gorm:"size:64" json:"related_kind"`
	RelatedID   *uint             `json:"related_id"`
	CreatedAt   time.Time         `gorm:"index" json:"created_at"`
}

// RelatedRef is a tagged reference to the entity an activity concerns.
type RelatedRef struct {
	Kind string
	ID   uint
}

// Related returns the tagged related-object reference, if one was recorded.
func (a UserActivity) Related() (RelatedRef, bool) {
	if a.RelatedKind == "" || a.RelatedID == nil {
		return RelatedRef{}, false
	}
	return RelatedRef{Kind: a.RelatedKind, ID: *a.RelatedID}, true
}

var activityIcons = map[string]string{
	ActivityCourseView:       "eye",
	ActivityCourseProgress:   "trending-up",
	ActivityResourceDownload: "download",
	ActivityForumPost:        "message-square",
	ActivityForumReply:       "message-circle",
	ActivityAchievement:      "award",
	ActivitySearch:           "search",
	ActivityEnroll:           "user-plus",
	ActivityComplete:         "check-circle",
	ActivityCertificate:      "file-text",
}

var priorityClasses = map[string]string{
	PriorityLow:    "bg-blue-100 text-blue-800",
	PriorityMedium: "bg-yellow-100 text-yellow-800",
	PriorityHigh:   "bg-red-100 text-red-800",
}

// Icon returns the feed icon identifier for the activity kind.
func (a UserActivity) Icon() string {
	if icon, ok := activityIcons[a.Kind]; ok {
		return icon
	}
	return "activity"
}

// PriorityClass returns the display class for the activity priority.
func (a UserActivity) PriorityClass() string {
	if class, ok := priorityClasses[a.Priority]; ok {
		return class
	}
	return "bg-gray-100 text-gray-800"
}
