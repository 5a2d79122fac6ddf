package dto

// DashboardResponse aggregates the data rendered on the user dashboard.
type DashboardResponse struct {
	Progress         []map[string]interface{} `json:"progress"`
	RecentCourses    []map[string]interface{} `json:"recent_courses"`
	RecentActivities []RecentActivity         `json:"recent_activities"`
	UnreadActivities int64                    `json:"unread_activities"`
	CacheHit         bool                     `json:"-"`
}

// SearchResponse carries proxied course search results.
type SearchResponse struct {
	Query   string                   `json:"query"`
	Results []map[string]interface{} `json:"results"`
}

// RecommendationsResponse carries recommended courses with the caller's
// enrolled course IDs filtered out.
type RecommendationsResponse struct {
	Recommended []map[string]interface{} `json:"recommended"`
	EnrolledIDs []uint                   `json:"enrolled_ids"`
}
