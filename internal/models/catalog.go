package models

import "time"

// Course is a published catalog entry.
type Course struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"size:200;not null" json:"title"`
	Slug        string         `gorm:"size:220;uniqueIndex;not null" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	Modules     []CourseModule `gorm:"constraint:OnDelete:CASCADE" json:"modules,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// CourseModule is an ordered section within a course.
type CourseModule struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	CourseID    uint            `gorm:"index;not null" json:"course_id"`
	Title       string          `gorm:"size:200;not null" json:"title"`
	Description string          `gorm:"type:text" json:"description"`
	Position    uint            `gorm:"not null;default:0" json:"position"`
	Contents    []ModuleContent `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"contents,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Code snippet languages accepted on content items.
var ContentLanguages = []string{
	"python", "javascript", "java", "c", "cpp", "csharp", "go", "ruby",
	"php", "swift", "kotlin", "typescript", "html", "css", "sql", "bash",
	"json", "yaml", "markdown", "text",
}

// ModuleContent is one ordered lesson item inside a module.
type ModuleContent struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ModuleID     uint      `gorm:"index;not null" json:"module_id"`
	Title        string    `gorm:"size:200;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Code         string    `gorm:"type:text" json:"code"`
	CodeLanguage string    `gorm:"size:20;not null;default:text" json:"code_language"`
	Position     uint      `gorm:"not null;default:0" json:"position"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
