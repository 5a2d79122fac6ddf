package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Ankitkushwaha90/techforge/internal/models"
)

// CourseFilter narrows catalog listings.
type CourseFilter struct {
	Search   string
	Page     int
	PageSize int
}

// CatalogRepository persists courses, modules and content items.
type CatalogRepository interface {
	ListCourses(ctx context.Context, filter CourseFilter) ([]models.Course, int64, error)
	GetCourseBySlug(ctx context.Context, slug string) (models.Course, error)
	GetCourseByID(ctx context.Context, id uint) (models.Course, error)
	CreateCourse(ctx context.Context, course *models.Course) error
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id uint) error

	ListModules(ctx context.Context, courseID uint) ([]models.CourseModule, error)
	GetModule(ctx context.Context, courseID, moduleID uint) (models.CourseModule, error)
	CreateModule(ctx context.Context, module *models.CourseModule) error
	UpdateModule(ctx context.Context, module *models.CourseModule) error
	DeleteModule(ctx context.Context, courseID, moduleID uint) error

	ListContents(ctx context.Context, moduleID uint) ([]models.ModuleContent, error)
	CreateContent(ctx context.Context, content *models.ModuleContent) error
	UpdateContent(ctx context.Context, content *models.ModuleContent) error
	DeleteContent(ctx context.Context, moduleID, contentID uint) error
}

type catalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository constructs the catalog repository.
func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

func (r *catalogRepository) ListCourses(ctx context.Context, filter CourseFilter) ([]models.Course, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Course{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", pattern, pattern)
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

	var courses []models.Course
	if err := query.Order("created_at DESC").Find(&courses).Error; err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

func (r *catalogRepository) GetCourseBySlug(ctx context.Context, slug string) (models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).
		Preload("Modules", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&course, "slug = ?", slug).Error
	return course, err
}

func (r *catalogRepository) GetCourseByID(ctx context.Context, id uint) (models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).First(&course, id).Error
	return course, err
}

func (r *catalogRepository) CreateCourse(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *catalogRepository) UpdateCourse(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *catalogRepository) DeleteCourse(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Course{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *catalogRepository) ListModules(ctx context.Context, courseID uint) ([]models.CourseModule, error) {
	var modules []models.CourseModule
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("position ASC").
		Find(&modules).Error
	return modules, err
}

func (r *catalogRepository) GetModule(ctx context.Context, courseID, moduleID uint) (models.CourseModule, error) {
	var module models.CourseModule
	err := r.db.WithContext(ctx).
		Preload("Contents", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&module, "id = ? AND course_id = ?", moduleID, courseID).Error
	return module, err
}

func (r *catalogRepository) CreateModule(ctx context.Context, module *models.CourseModule) error {
	return r.db.WithContext(ctx).Create(module).Error
}

func (r *catalogRepository) UpdateModule(ctx context.Context, module *models.CourseModule) error {
	return r.db.WithContext(ctx).Save(module).Error
}

func (r *catalogRepository) DeleteModule(ctx context.Context, courseID, moduleID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND course_id = ?", moduleID, courseID).
		Delete(&models.CourseModule{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *catalogRepository) ListContents(ctx context.Context, moduleID uint) ([]models.ModuleContent, error) {
	var contents []models.ModuleContent
	err := r.db.WithContext(ctx).
		Where("module_id = ?", moduleID).
		Order("position ASC").
		Find(&contents).Error
	return contents, err
}

func (r *catalogRepository) CreateContent(ctx context.Context, content *models.ModuleContent) error {
	return r.db.WithContext(ctx).Create(content).Error
}

func (r *catalogRepository) UpdateContent(ctx context.Context, content *models.ModuleContent) error {
	return r.db.WithContext(ctx).Save(content).Error
}

func (r *catalogRepository) DeleteContent(ctx context.Context, moduleID, contentID uint) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND module_id = ?", contentID, moduleID).
		Delete(&models.ModuleContent{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
