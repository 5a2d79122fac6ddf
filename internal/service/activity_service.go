package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Ankitkushwaha90/techforge/internal/dto"
	"github.com/Ankitkushwaha90/techforge/internal/models"
	"github.com/Ankitkushwaha90/techforge/internal/observability"
	"github.com/Ankitkushwaha90/techforge/internal/repository"
)

const (
	feedMaxItems    = 50
	recentFeedItems = 5
)

// ErrActivityNotFound indicates the activity does not exist or belongs to
// another owner. Callers must not distinguish the two cases.
var ErrActivityNotFound = errors.New("activity not found")

// RecordEntry captures one interaction to be persisted. Client context is
// snapshotted by the caller at request time, never re-fetched.
type RecordEntry struct {
	UserID      uint
	Kind        string
	TargetURL   string
	TargetTitle string
	Metadata    map[string]interface{}
	IPAddress   string
	UserAgent   string
	Referrer    string
	Priority    string
	Progress    *int
	Related     *models.RelatedRef
}

// ActivityRecorder is the narrow interface handed to request interception
// and to the domain services that log their own activity kinds.
type ActivityRecorder interface {
	Record(ctx context.Context, entry RecordEntry) (*models.UserActivity, error)
}

// ActivityService exposes the interaction log: recording plus the
// owner-scoped feed queries and read-state mutations.
type ActivityService interface {
	ActivityRecorder
	Recent(ctx context.Context, userID uint) ([]dto.RecentActivity, error)
	ListFiltered(ctx context.Context, userID uint, req dto.ActivityListRequest) (dto.ActivityListResponse, error)
	MarkRead(ctx context.Context, id, userID uint) error
	MarkAllRead(ctx context.Context, userID uint) error
	UnreadCount(ctx context.Context, userID uint) (int64, error)
}

type activityService struct {
	repo    repository.ActivityRepository
	events  *nats.Conn
	subject string
	logger  zerolog.Logger
	now     func() time.Time
}

// NewActivityService constructs the activity service. The NATS connection
// is optional; when present, recorded activities are also published for
// downstream consumers on a best-effort basis.
func NewActivityService(repo repository.ActivityRepository, events *nats.Conn, logger zerolog.Logger) ActivityService {
	return &activityService{
		repo:    repo,
		events:  events,
		subject: "techforge.activities",
		logger:  logger.With().Str("component", "activity_service").Logger(),
		now:     time.Now,
	}
}

// Record persists exactly one new activity. Calls without an authenticated
// owner are a silent no-op. Every qualifying call creates a new row; the
// feed is a raw interaction log, not a deduplicated summary.
func (s *activityService) Record(ctx context.Context, entry RecordEntry) (*models.UserActivity, error) {
	if entry.UserID == 0 {
		return nil, nil
	}

	priority := entry.Priority
	switch priority {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh:
	default:
		priority = models.PriorityMedium
	}

	activity := models.UserActivity{
		UserID:      entry.UserID,
		Kind:        entry.Kind,
		TargetURL:   entry.TargetURL,
		TargetTitle: entry.TargetTitle,
		Metadata:    toJSONMap(entry.Metadata),
		Priority:    priority,
		IPAddress:   entry.IPAddress,
		UserAgent:   entry.UserAgent,
		Referrer:    entry.Referrer,
		Progress:    entry.Progress,
		CreatedAt:   s.now(),
	}
	if entry.Related != nil {
		activity.RelatedKind = entry.Related.Kind
		relatedID := entry.Related.ID
		activity.RelatedID = &relatedID
	}

	if err := s.repo.Create(ctx, &activity); err != nil {
		return nil, err
	}

	observability.ActivitiesRecorded().WithLabelValues(activity.Kind).Inc()
	s.publish(activity)

	return &activity, nil
}

func (s *activityService) publish(activity models.UserActivity) {
	if s.events == nil {
		return
	}
	payload, err := json.Marshal(activity)
	if err != nil {
		return
	}
	if err := s.events.Publish(s.subject, payload); err != nil {
		s.logger.Warn().Err(err).Msg("failed to publish activity event")
	}
}

// Recent returns the newest feed entries for the sidebar widget, joined
// with the owner for display.
func (s *activityService) Recent(ctx context.Context, userID uint) ([]dto.RecentActivity, error) {
	activities, err := s.repo.ListRecent(ctx, userID, recentFeedItems)
	if err != nil {
		return nil, err
	}

	recent := make([]dto.RecentActivity, 0, len(activities))
	for _, activity := range activities {
		recent = append(recent, dto.NewRecentActivity(activity))
	}
	return recent, nil
}

// ListFiltered serves the feed API: optional kind filter, lookback window
// in days (7 by default, zero or negative disables it), newest first,
// capped at 50 entries.
func (s *activityService) ListFiltered(ctx context.Context, userID uint, req dto.ActivityListRequest) (dto.ActivityListResponse, error) {
	filter := repository.ActivityFilter{Limit: feedMaxItems}

	if req.Kind != "" && req.Kind != "all" {
		filter.Kind = req.Kind
	}

	if req.Days > 0 {
		since := s.now().AddDate(0, 0, -req.Days)
		filter.Since = &since
	}

	activities, err := s.repo.ListFiltered(ctx, userID, filter)
	if err != nil {
		return dto.ActivityListResponse{}, err
	}

	items := make([]dto.ActivityResponse, 0, len(activities))
	for _, activity := range activities {
		items = append(items, dto.NewActivityResponse(activity))
	}

	return dto.ActivityListResponse{Activities: items}, nil
}

func (s *activityService) MarkRead(ctx context.Context, id, userID uint) error {
	err := s.repo.MarkRead(ctx, id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrActivityNotFound
	}
	return err
}

// MarkAllRead is idempotent; a repeat call updates zero rows and succeeds.
func (s *activityService) MarkAllRead(ctx context.Context, userID uint) error {
	_, err := s.repo.MarkAllRead(ctx, userID)
	return err
}

func (s *activityService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func toJSONMap(metadata map[string]interface{}) datatypes.JSONMap {
	if metadata == nil {
		return datatypes.JSONMap{}
	}
	converted := datatypes.JSONMap{}
	for key, value := range metadata {
		converted[key] = value
	}
	return converted
}
