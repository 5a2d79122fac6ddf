package dto

import (
	"time"

	"github.com/Ankitkushwaha90/techforge/internal/models"
)

// ResourceResponse is a serialised downloadable resource.
type ResourceResponse struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	MimeType    string    `json:"mime_type,omitempty"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// ResourceDownloadResponse carries the resolved download address.
type ResourceDownloadResponse struct {
	ID  uint   `json:"id"`
	URL string `json:"url"`
}

// NewResourceResponse serialises a resource for listing. The download
// address is withheld here; it is only handed out by the download
// endpoint so the access can be recorded.
func NewResourceResponse(resource models.Resource) ResourceResponse {
	return ResourceResponse{
		ID:          resource.ID,
		Title:       resource.Title,
		Description: resource.Description,
		Category:    resource.Category,
		MimeType:    resource.MimeType,
		UploadedAt:  resource.UploadedAt,
	}
}
