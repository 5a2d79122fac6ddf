package models

import "time"

// Resource categories.
var ResourceCategories = []string{"cheatsheet", "template", "guide", "external"}

// Resource is a downloadable study asset or external link.
type Resource struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	FileURL     string    `gorm:"size:512" json:"file_url"`
	DownloadURL string    `gorm:"size:512" json:"download_url"`
	MimeType    string    `gorm:"size:128" json:"mime_type"`
	Category    string    `gorm:"size:100;not null" json:"category"`
	UploadedAt  time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

// Href returns the address a download request should resolve to. External
// resources carry only a DownloadURL; uploaded files only a FileURL.
func (r Resource) Href() string {
	if r.FileURL != "" {
		return r.FileURL
	}
	return r.DownloadURL
}
