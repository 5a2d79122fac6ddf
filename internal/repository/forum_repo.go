package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Ankitkushwaha90/techforge/internal/models"
)

// ForumFilter narrows forum listings.
type ForumFilter struct {
	Category string
	Page     int
	PageSize int
}

// ForumRepository persists forum posts and replies.
type ForumRepository interface {
	ListPosts(ctx context.Context, filter ForumFilter) ([]models.ForumPost, int64, error)
	GetPost(ctx context.Context, id uint) (models.ForumPost, error)
	CreatePost(ctx context.Context, post *models.ForumPost) error
	CreateReply(ctx context.Context, reply *models.ForumReply) error
}

type forumRepository struct {
	db *gorm.DB
}

// NewForumRepository constructs the forum repository.
func NewForumRepository(db *gorm.DB) ForumRepository {
	return &forumRepository{db: db}
}

func (r *forumRepository) ListPosts(ctx context.Context, filter ForumFilter) ([]models.ForumPost, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ForumPost{})

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}

	countQuery := query.Session(&gorm.Session{})
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var posts []models.ForumPost
	err := query.Preload("User").
		Order("is_pinned DESC, created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

func (r *forumRepository) GetPost(ctx context.Context, id uint) (models.ForumPost, error) {
	var post models.ForumPost
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Replies", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Replies.User").
		First(&post, id).Error
	return post, err
}

func (r *forumRepository) CreatePost(ctx context.Context, post *models.ForumPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *forumRepository) CreateReply(ctx context.Context, reply *models.ForumReply) error {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ForumPost{}).
		Where("id = ?", reply.PostID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return r.db.WithContext(ctx).Create(reply).Error
}
