package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/Ankitkushwaha90/techforge/internal/dto"
	"github.com/Ankitkushwaha90/techforge/internal/models"
	"github.com/Ankitkushwaha90/techforge/internal/repository"
)

var (
	// ErrCourseNotFound indicates the requested course does not exist.
	ErrCourseNotFound = errors.New("course not found")
	// ErrModuleNotFound indicates the module does not exist in the course.
	ErrModuleNotFound = errors.New("module not found")
	// ErrContentNotFound indicates the content item does not exist in the module.
	ErrContentNotFound = errors.New("content not found")
)

// CatalogService exposes course, module and content use-cases.
type CatalogService interface {
	ListCourses(ctx context.Context, search string, page, pageSize int) (dto.CourseListResponse, error)
	GetCourse(ctx context.Context, slug string, viewerID uint) (dto.CourseResponse, error)
	CreateCourse(ctx context.Context, payload dto.CourseCreateRequest) (dto.CourseResponse, error)
	UpdateCourse(ctx context.Context, slug string, payload dto.CourseCreateRequest) (dto.CourseResponse, error)
	DeleteCourse(ctx context.Context, slug string) error

	ListModules(ctx context.Context, courseSlug string) ([]dto.ModuleResponse, error)
	GetModule(ctx context.Context, courseSlug string, moduleID, viewerID uint) (dto.ModuleResponse, error)
	CreateModule(ctx context.Context, courseID uint, payload dto.ModuleCreateRequest) (dto.ModuleResponse, error)
	UpdateModule(ctx context.Context, courseSlug string, moduleID uint, payload dto.ModuleCreateRequest) (dto.ModuleResponse, error)
	DeleteModule(ctx context.Context, courseSlug string, moduleID uint) error

	ListContents(ctx context.Context, moduleID uint) ([]dto.ContentResponse, error)
	CreateContent(ctx context.Context, moduleID uint, payload dto.ContentCreateRequest) (dto.ContentResponse, error)
	UpdateContent(ctx context.Context, moduleID, contentID uint, payload dto.ContentCreateRequest) (dto.ContentResponse, error)
	DeleteContent(ctx context.Context, moduleID, contentID uint) error
}

type catalogService struct {
	repo      repository.CatalogRepository
	recorder  ActivityRecorder
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCatalogService constructs the catalog service.
func NewCatalogService(repo repository.CatalogRepository, recorder ActivityRecorder, validate *validator.Validate, logger zerolog.Logger) CatalogService {
	return &catalogService{
		repo:      repo,
		recorder:  recorder,
		validator: validate,
		logger:    logger.With().Str("component", "catalog_service").Logger(),
	}
}

func (s *catalogService) ListCourses(ctx context.Context, search string, page, pageSize int) (dto.CourseListResponse, error) {
	if pageSize <= 0 {
		pageSize = 20
	}
	if page <= 0 {
		page = 1
	}

	courses, total, err := s.repo.ListCourses(ctx, repository.CourseFilter{
		Search:   strings.TrimSpace(search),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return dto.CourseListResponse{}, err
	}

	items := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		items = append(items, dto.NewCourseResponse(course))
	}

	return dto.CourseListResponse{
		Items: items,
		Pagination: dto.PaginationMeta{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
		},
	}, nil
}

// GetCourse returns a course with its ordered modules. When viewerID is
// set, a course_view activity is logged for the viewer.
func (s *catalogService) GetCourse(ctx context.Context, slug string, viewerID uint) (dto.CourseResponse, error) {
	course, err := s.repo.GetCourseBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.CourseResponse{}, ErrCourseNotFound
	}
	if err != nil {
		return dto.CourseResponse{}, err
	}

	if _, err := s.recorder.Record(ctx, RecordEntry{
		UserID:      viewerID,
		Kind:        models.ActivityCourseView,
		TargetTitle: course.Title,
		Metadata:    map[string]interface{}{"course_id": course.ID, "slug": course.Slug},
		Related:     &models.RelatedRef{Kind: "course", ID: course.ID},
	}); err != nil {
		s.logger.Warn().Err(err).Uint("course_id", course.ID).Msg("failed to record course view")
	}

	return dto.NewCourseResponse(course), nil
}

func (s *catalogService) GetModule(ctx context.Context, courseSlug string, moduleID, viewerID uint) (dto.ModuleResponse, error) {
	course, err := s.repo.GetCourseBySlug(ctx, courseSlug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ModuleResponse{}, ErrCourseNotFound
	}
	if err != nil {
		return dto.ModuleResponse{}, err
	}

	module, err := s.repo.GetModule(ctx, course.ID, moduleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ModuleResponse{}, ErrModuleNotFound
	}
	if err != nil {
		return dto.ModuleResponse{}, err
	}

	if _, err := s.recorder.Record(ctx, RecordEntry{
		UserID:      viewerID,
		Kind:        models.ActivityCourseView,
		TargetTitle: fmt.Sprintf("%s - %s", course.Title, module.Title),
		Metadata:    map[string]interface{}{"course_id": course.ID, "module_id": module.ID},
		Related:     &models.RelatedRef{Kind: "module", ID: module.ID},
	}); err != nil {
		s.logger.Warn().Err(err).Uint("module_id", module.ID).Msg("failed to record module view")
	}

	return dto.NewModuleResponse(module), nil
}

func (s *catalogService) CreateCourse(ctx context.Context, payload dto.CourseCreateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	course := models.Course{
		Title:       strings.TrimSpace(payload.Title),
		Slug:        slugify(payload.Title),
		Description: payload.Description,
	}

	if err := s.repo.CreateCourse(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	return dto.NewCourseResponse(course), nil
}

func (s *catalogService) UpdateCourse(ctx context.Context, slug string, payload dto.CourseCreateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	course, err := s.repo.GetCourseBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.CourseResponse{}, ErrCourseNotFound
	}
	if err != nil {
		return dto.CourseResponse{}, err
	}

	course.Title = strings.TrimSpace(payload.Title)
	course.Description = payload.Description

	if err := s.repo.UpdateCourse(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	return dto.NewCourseResponse(course), nil
}

func (s *catalogService) DeleteCourse(ctx context.Context, slug string) error {
	course, err := s.repo.GetCourseBySlug(ctx, slug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCourseNotFound
	}
	if err != nil {
		return err
	}
	return s.repo.DeleteCourse(ctx, course.ID)
}

func (s *catalogService) CreateModule(ctx context.Context, courseID uint, payload dto.ModuleCreateRequest) (dto.ModuleResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ModuleResponse{}, err
	}

	if _, err := s.repo.GetCourseByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ModuleResponse{}, ErrCourseNotFound
		}
		return dto.ModuleResponse{}, err
	}

	module := models.CourseModule{
		CourseID:    courseID,
		Title:       strings.TrimSpace(payload.Title),
		Description: payload.Description,
		Position:    payload.Position,
	}

	if err := s.repo.CreateModule(ctx, &module); err != nil {
		return dto.ModuleResponse{}, err
	}

	return dto.NewModuleResponse(module), nil
}

func (s *catalogService) ListModules(ctx context.Context, courseSlug string) ([]dto.ModuleResponse, error) {
	course, err := s.repo.GetCourseBySlug(ctx, courseSlug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	modules, err := s.repo.ListModules(ctx, course.ID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ModuleResponse, 0, len(modules))
	for _, module := range modules {
		items = append(items, dto.NewModuleResponse(module))
	}
	return items, nil
}

func (s *catalogService) UpdateModule(ctx context.Context, courseSlug string, moduleID uint, payload dto.ModuleCreateRequest) (dto.ModuleResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ModuleResponse{}, err
	}

	course, err := s.repo.GetCourseBySlug(ctx, courseSlug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ModuleResponse{}, ErrCourseNotFound
	}
	if err != nil {
		return dto.ModuleResponse{}, err
	}

	module, err := s.repo.GetModule(ctx, course.ID, moduleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ModuleResponse{}, ErrModuleNotFound
	}
	if err != nil {
		return dto.ModuleResponse{}, err
	}

	module.Title = strings.TrimSpace(payload.Title)
	module.Description = payload.Description
	module.Position = payload.Position

	if err := s.repo.UpdateModule(ctx, &module); err != nil {
		return dto.ModuleResponse{}, err
	}

	return dto.NewModuleResponse(module), nil
}

func (s *catalogService) DeleteModule(ctx context.Context, courseSlug string, moduleID uint) error {
	course, err := s.repo.GetCourseBySlug(ctx, courseSlug)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCourseNotFound
	}
	if err != nil {
		return err
	}

	err = s.repo.DeleteModule(ctx, course.ID, moduleID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrModuleNotFound
	}
	return err
}

func (s *catalogService) ListContents(ctx context.Context, moduleID uint) ([]dto.ContentResponse, error) {
	contents, err := s.repo.ListContents(ctx, moduleID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ContentResponse, 0, len(contents))
	for _, content := range contents {
		items = append(items, dto.NewContentResponse(content))
	}
	return items, nil
}

func (s *catalogService) CreateContent(ctx context.Context, moduleID uint, payload dto.ContentCreateRequest) (dto.ContentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ContentResponse{}, err
	}

	language := payload.CodeLanguage
	if language == "" {
		language = "text"
	}

	content := models.ModuleContent{
		ModuleID:     moduleID,
		Title:        strings.TrimSpace(payload.Title),
		Description:  payload.Description,
		Code:         payload.Code,
		CodeLanguage: language,
		Position:     payload.Position,
	}

	if err := s.repo.CreateContent(ctx, &content); err != nil {
		return dto.ContentResponse{}, err
	}

	return dto.NewContentResponse(content), nil
}

func (s *catalogService) UpdateContent(ctx context.Context, moduleID, contentID uint, payload dto.ContentCreateRequest) (dto.ContentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ContentResponse{}, err
	}

	contents, err := s.repo.ListContents(ctx, moduleID)
	if err != nil {
		return dto.ContentResponse{}, err
	}

	var content models.ModuleContent
	found := false
	for _, candidate := range contents {
		if candidate.ID == contentID {
			content = candidate
			found = true
			break
		}
	}
	if !found {
		return dto.ContentResponse{}, ErrContentNotFound
	}

	content.Title = strings.TrimSpace(payload.Title)
	content.Description = payload.Description
	content.Code = payload.Code
	content.Position = payload.Position
	if payload.CodeLanguage != "" {
		content.CodeLanguage = payload.CodeLanguage
	}

	if err := s.repo.UpdateContent(ctx, &content); err != nil {
		return dto.ContentResponse{}, err
	}

	return dto.NewContentResponse(content), nil
}

func (s *catalogService) DeleteContent(ctx context.Context, moduleID, contentID uint) error {
	err := s.repo.DeleteContent(ctx, moduleID, contentID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrContentNotFound
	}
	return err
}

func slugify(title string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, strings.TrimSpace(title))

	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	return strings.Trim(slug, "-")
}
