package dto

import (
	"time"

	"github.com/Ankitkushwaha90/techforge/internal/models"
)

// PaginationMeta describes paging information for list responses.
type PaginationMeta struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// CourseCreateRequest carries the payload for creating or updating a course.
type CourseCreateRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
}

// ModuleCreateRequest carries the payload for a course module.
type ModuleCreateRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Position    uint   `json:"position"`
}

// ContentCreateRequest carries the payload for a module content item.
type ContentCreateRequest struct {
	Title        string `json:"title" validate:"required,max=200"`
	Description  string `json:"description"`
	Code         string `json:"code"`
	CodeLanguage string `json:"code_language" validate:"omitempty,oneof=python javascript java c cpp csharp go ruby php swift kotlin typescript html css sql bash json yaml markdown text"`
	Position     uint   `json:"position"`
}

// CourseResponse is a serialised course, optionally with ordered modules.
type CourseResponse struct {
	ID          uint             `json:"id"`
	Title       string           `json:"title"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Modules     []ModuleResponse `json:"modules,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ModuleResponse is a serialised course module.
type ModuleResponse struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Position    uint              `json:"position"`
	Contents    []ContentResponse `json:"contents,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// ContentResponse is a serialised content item.
type ContentResponse struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Code         string    `json:"code"`
	CodeLanguage string    `json:"code_language"`
	Position     uint      `json:"position"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CourseListResponse wraps a paginated course listing.
type CourseListResponse struct {
	Items      []CourseResponse `json:"items"`
	Pagination PaginationMeta   `json:"pagination"`
}

// NewCourseResponse serialises a course with any preloaded modules.
func NewCourseResponse(course models.Course) CourseResponse {
	resp := CourseResponse{
		ID:          course.ID,
		Title:       course.Title,
		Slug:        course.Slug,
		Description: course.Description,
		CreatedAt:   course.CreatedAt,
		UpdatedAt:   course.UpdatedAt,
	}
	for _, module := range course.Modules {
		resp.Modules = append(resp.Modules, NewModuleResponse(module))
	}
	return resp
}

// NewModuleResponse serialises a module with any preloaded contents.
func NewModuleResponse(module models.CourseModule) ModuleResponse {
	resp := ModuleResponse{
		ID:          module.ID,
		Title:       module.Title,
		Description: module.Description,
		Position:    module.Position,
		CreatedAt:   module.CreatedAt,
		UpdatedAt:   module.UpdatedAt,
	}
	for _, content := range module.Contents {
		resp.Contents = append(resp.Contents, NewContentResponse(content))
	}
	return resp
}

// NewContentResponse serialises a content item.
func NewContentResponse(content models.ModuleContent) ContentResponse {
	return ContentResponse{
		ID:           content.ID,
		Title:        content.Title,
		Description:  content.Description,
		Code:         content.Code,
		CodeLanguage: content.CodeLanguage,
		Position:     content.Position,
		CreatedAt:    content.CreatedAt,
		UpdatedAt:    content.UpdatedAt,
	}
}
