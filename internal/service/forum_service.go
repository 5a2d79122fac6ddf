package service

import (
	"context"
	"errors"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/Ankitkushwaha90/techforge/internal/dto"
	"github.com/Ankitkushwaha90/techforge/internal/models"
	"github.com/Ankitkushwaha90/techforge/internal/repository"
)

// ErrPostNotFound indicates the forum post does not exist.
var ErrPostNotFound = errors.New("forum post not found")

// ForumService exposes the discussion board use-cases.
type ForumService interface {
	ListPosts(ctx context.Context, category string, page, pageSize int) (dto.ForumListResponse, error)
	GetPost(ctx context.Context, id uint) (dto.ForumPostResponse, error)
	CreatePost(ctx context.Context, userID uint, payload dto.ForumPostCreateRequest) (dto.ForumPostResponse, error)
	CreateReply(ctx context.Context, userID, postID uint, payload dto.ForumReplyCreateRequest) (dto.ForumReplyResponse, error)
}

type forumService struct {
	repo      repository.ForumRepository
	recorder  ActivityRecorder
	validator *validator.Validate
	sanitizer *bluemonday.Policy
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewForumService constructs a forum service. User-generated content is
// sanitised before it is stored.
func NewForumService(repo repository.ForumRepository, recorder ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) ForumService {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("br")

	return &forumService{
		repo:      repo,
		recorder:  recorder,
		validator: validate,
		sanitizer: policy,
		logger:    logger.With().Str("component", "forum_service").Logger(),
		tracer:    otel.Tracer("github.com/Ankitkushwaha90/techforge/internal/service/forum"),
	}
}

func (s *forumService) ListPosts(ctx context.Context, category string, page, pageSize int) (dto.ForumListResponse, error) {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}

	posts, total, err := s.repo.ListPosts(ctx, repository.ForumFilter{
		Category: category,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return dto.ForumListResponse{}, err
	}

	items := make([]dto.ForumPostResponse, 0, len(posts))
	for _, post := range posts {
		items = append(items, dto.NewForumPostResponse(post))
	}

	return dto.ForumListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
		},
	}, nil
}

func (s *forumService) GetPost(ctx context.Context, id uint) (dto.ForumPostResponse, error) {
	post, err := s.repo.GetPost(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ForumPostResponse{}, ErrPostNotFound
	}
	if err != nil {
		return dto.ForumPostResponse{}, err
	}
	return dto.NewForumPostResponse(post), nil
}

func (s *forumService) CreatePost(ctx context.Context, userID uint, payload dto.ForumPostCreateRequest) (dto.ForumPostResponse, error) {
	ctx, span := s.tracer.Start(ctx, "forum.create_post")
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		return dto.ForumPostResponse{}, err
	}

	post := models.ForumPost{
		UserID:   userID,
		Title:    s.sanitizer.Sanitize(payload.Title),
		Content:  s.sanitizer.Sanitize(payload.Content),
		Category: payload.Category,
	}

	if err := s.repo.CreatePost(ctx, &post); err != nil {
		span.RecordError(err)
		return dto.ForumPostResponse{}, err
	}

	span.SetAttributes(attribute.Int("forum.post_id", int(post.ID)))

	if _, err := s.recorder.Record(ctx, RecordEntry{
		UserID:      userID,
		Kind:        models.ActivityForumPost,
		TargetTitle: post.Title,
		Metadata:    map[string]interface{}{"category": post.Category},
		Related:     &models.RelatedRef{Kind: "forum_post", ID: post.ID},
	}); err != nil {
		s.logger.Warn().Err(err).Uint("post_id", post.ID).Msg("failed to record forum post activity")
	}

	return dto.NewForumPostResponse(post), nil
}

func (s *forumService) CreateReply(ctx context.Context, userID, postID uint, payload dto.ForumReplyCreateRequest) (dto.ForumReplyResponse, error) {
	ctx, span := s.tracer.Start(ctx, "forum.create_reply")
	defer span.End()

	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		return dto.ForumReplyResponse{}, err
	}

	reply := models.ForumReply{
		PostID:  postID,
		UserID:  userID,
		Content: s.sanitizer.Sanitize(payload.Content),
	}

	err := s.repo.CreateReply(ctx, &reply)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ForumReplyResponse{}, ErrPostNotFound
	}
	if err != nil {
		span.RecordError(err)
		return dto.ForumReplyResponse{}, err
	}

	if _, err := s.recorder.Record(ctx, RecordEntry{
		UserID:  userID,
		Kind:    models.ActivityForumReply,
		Related: &models.RelatedRef{Kind: "forum_reply", ID: reply.ID},
	}); err != nil {
		s.logger.Warn().Err(err).Uint("reply_id", reply.ID).Msg("failed to record forum reply activity")
	}

	return dto.NewForumReplyResponse(reply), nil
}
