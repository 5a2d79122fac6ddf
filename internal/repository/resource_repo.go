package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Ankitkushwaha90/techforge/internal/models"
)

// ResourceRepository persists downloadable resources.
type ResourceRepository interface {
	List(ctx context.Context, category string) ([]models.Resource, error)
	Get(ctx context.Context, id uint) (models.Resource, error)
	Create(ctx context.Context, resource *models.Resource) error
}

type resourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository constructs the resource repository.
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) List(ctx context.Context, category string) ([]models.Resource, error) {
	query := r.db.WithContext(ctx).Model(&models.Resource{})
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var resources []models.Resource
	if err := query.Order("uploaded_at DESC").Find(&resources).Error; err != nil {
		return nil, err
	}
	return resources, nil
}

func (r *resourceRepository) Get(ctx context.Context, id uint) (models.Resource, error) {
	var resource models.Resource
	err := r.db.WithContext(ctx).First(&resource, id).Error
	return resource, err
}

func (r *resourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	return r.db.WithContext(ctx).Create(resource).Error
}
