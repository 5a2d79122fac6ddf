package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Ankitkushwaha90/techforge/internal/dto"
	"github.com/Ankitkushwaha90/techforge/internal/models"
)

// BackendGateway is the subset of the backend API client the dashboard
// consumes. The client lives in pkg/backend.
type BackendGateway interface {
	GetCourses(ctx context.Context, search string, pageSize int) ([]map[string]interface{}, error)
	GetUserProgress(ctx context.Context) ([]map[string]interface{}, error)
	GetUserCourses(ctx context.Context, userID uint) ([]map[string]interface{}, error)
}

// DashboardService aggregates backend data and the recent activity feed
// for the pages rendered around the catalog.
type DashboardService interface {
	Dashboard(ctx context.Context, userID uint) (dto.DashboardResponse, error)
	Home(ctx context.Context) ([]map[string]interface{}, error)
	Search(ctx context.Context, userID uint, query string) (dto.SearchResponse, error)
	Recommendations(ctx context.Context, userID uint) (dto.RecommendationsResponse, error)
}

type dashboardService struct {
	backend    BackendGateway
	activities ActivityService
	cache      *redis.Client
	ttl        time.Duration
	logger     zerolog.Logger
}

// NewDashboardService builds the dashboard aggregation service.
func NewDashboardService(backend BackendGateway, activities ActivityService, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &dashboardService{
		backend:    backend,
		activities: activities,
		cache:      cache,
		ttl:        ttl,
		logger:     logger.With().Str("component", "dashboard_service").Logger(),
	}
}

// Dashboard assembles the user dashboard. Backend failures degrade to
// empty sections rather than failing the page.
func (s *dashboardService) Dashboard(ctx context.Context, userID uint) (dto.DashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:v1:%d", userID)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var response dto.DashboardResponse
			if err := json.Unmarshal([]byte(cached), &response); err == nil {
				response.CacheHit = true
				return response, nil
			}
		}
	}

	response := dto.DashboardResponse{
		Progress:      []map[string]interface{}{},
		RecentCourses: []map[string]interface{}{},
	}

	if progress, err := s.backend.GetUserProgress(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to fetch user progress from backend")
	} else {
		response.Progress = progress
	}

	if courses, err := s.backend.GetCourses(ctx, "", 5); err != nil {
		s.logger.Warn().Err(err).Msg("failed to fetch recent courses from backend")
	} else {
		response.RecentCourses = courses
	}

	recent, err := s.activities.Recent(ctx, userID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	response.RecentActivities = recent

	unread, err := s.activities.UnreadCount(ctx, userID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	response.UnreadActivities = unread

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.ttl).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to write dashboard cache")
			}
		}
	}

	return response, nil
}

// Home returns the featured courses shown on the landing page.
func (s *dashboardService) Home(ctx context.Context) ([]map[string]interface{}, error) {
	courses, err := s.backend.GetCourses(ctx, "", 6)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to fetch featured courses from backend")
		return []map[string]interface{}{}, nil
	}
	return courses, nil
}

// Search proxies the course search and logs a search activity for
// authenticated callers.
func (s *dashboardService) Search(ctx context.Context, userID uint, query string) (dto.SearchResponse, error) {
	query = strings.TrimSpace(query)
	response := dto.SearchResponse{Query: query, Results: []map[string]interface{}{}}
	if query == "" {
		return response, nil
	}

	results, err := s.backend.GetCourses(ctx, query, 20)
	if err != nil {
		return dto.SearchResponse{}, err
	}
	response.Results = results

	if _, err := s.activities.Record(ctx, RecordEntry{
		UserID:      userID,
		Kind:        models.ActivitySearch,
		TargetTitle: query,
		Metadata:    map[string]interface{}{"query": query, "result_count": len(results)},
	}); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record search activity")
	}

	return response, nil
}

// Recommendations returns backend courses minus the ones the user is
// already enrolled in.
func (s *dashboardService) Recommendations(ctx context.Context, userID uint) (dto.RecommendationsResponse, error) {
	recommended, err := s.backend.GetCourses(ctx, "", 12)
	if err != nil {
		return dto.RecommendationsResponse{}, err
	}

	enrolled := map[uint]bool{}
	enrolledIDs := []uint{}
	if courses, err := s.backend.GetUserCourses(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Msg("failed to fetch enrolled courses from backend")
	} else {
		for _, course := range courses {
			if id, ok := courseID(course); ok {
				enrolled[id] = true
				enrolledIDs = append(enrolledIDs, id)
			}
		}
	}

	filtered := make([]map[string]interface{}, 0, len(recommended))
	for _, course := range recommended {
		if id, ok := courseID(course); ok && enrolled[id] {
			continue
		}
		filtered = append(filtered, course)
	}

	return dto.RecommendationsResponse{Recommended: filtered, EnrolledIDs: enrolledIDs}, nil
}

func courseID(course map[string]interface{}) (uint, bool) {
	value, ok := course["id"]
	if !ok {
		return 0, false
	}
	switch id := value.(type) {
	case float64:
		if id < 0 {
			return 0, false
		}
		return uint(id), true
	case int:
		if id < 0 {
			return 0, false
		}
		return uint(id), true
	default:
		return 0, false
	}
}
