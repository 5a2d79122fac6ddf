package dto

import (
	"time"

	"github.com/Ankitkushwaha90/techforge/internal/models"
)

// ActivityListRequest carries the feed filter parameters.
type ActivityListRequest struct {
	Kind string
	Days int
}

// ActivityResponse is one serialised feed entry. Field names follow the
// wire contract consumed by the activity feed widget.
type ActivityResponse struct {
	ID            uint                   `json:"id"`
	Type          string                 `json:"type"`
	Title         string                 `json:"title"`
	Timestamp     string                 `json:"timestamp"`
	IsRead        bool                   `json:"is_read"`
	IsImportant   bool                   `json:"is_important"`
	Progress      *int                   `json:"progress"`
	Metadata      map[string]interface{} `json:"metadata"`
	Priority      string                 `json:"priority"`
	PriorityClass string                 `json:"priority_class"`
	Icon          string                 `json:"icon"`
}

// ActivityListResponse wraps the feed payload.
type ActivityListResponse struct {
	Activities []ActivityResponse `json:"activities"`
}

// RecentActivity is a feed entry joined with its owner for widget display.
type RecentActivity struct {
	ActivityResponse
	Username string `json:"username"`
}

// NewActivityResponse serialises a stored activity for feed consumption.
func NewActivityResponse(activity models.UserActivity) ActivityResponse {
	return ActivityResponse{
		ID:            activity.ID,
		Type:          activity.Kind,
		Title:         activity.TargetTitle,
		Timestamp:     activity.CreatedAt.Format(time.RFC3339),
		IsRead:        activity.IsRead,
		IsImportant:   activity.IsImportant,
		Progress:      activity.Progress,
		Metadata:      map[string]interface{}(activity.Metadata),
		Priority:      activity.Priority,
		PriorityClass: activity.PriorityClass(),
		Icon:          activity.Icon(),
	}
}

// NewRecentActivity serialises a feed entry together with its owner.
func NewRecentActivity(activity models.UserActivity) RecentActivity {
	return RecentActivity{
		ActivityResponse: NewActivityResponse(activity),
		Username:         activity.User.Username,
	}
}
