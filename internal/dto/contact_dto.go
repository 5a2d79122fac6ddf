package dto

import (
	"time"

	"github.com/Ankitkushwaha90/techforge/internal/models"
)

// ContactRequest carries a contact form submission.
type ContactRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Subject  string `json:"subject" validate:"required,max=200"`
	Message  string `json:"message" validate:"required"`
	Priority string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	Honeypot string `json:"website" validate:"omitempty"`
}

// ContactResponse acknowledges a stored submission.
type ContactResponse struct {
	ReferenceID string `json:"reference_id"`
	Status      string `json:"status"`
}

// ContactMessageResponse is a stored message as seen by operators.
type ContactMessageResponse struct {
	ID          uint      `json:"id"`
	ReferenceID string    `json:"reference_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	Priority    string    `json:"priority"`
	IsResolved  bool      `json:"is_resolved"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewContactMessageResponse serialises a message for the management listing.
func NewContactMessageResponse(message models.ContactMessage) ContactMessageResponse {
	return ContactMessageResponse{
		ID:          message.ID,
		ReferenceID: message.ReferenceID,
		Name:        message.Name,
		Email:       message.Email,
		Subject:     message.Subject,
		Message:     message.Message,
		Priority:    message.Priority,
		IsResolved:  message.IsResolved,
		CreatedAt:   message.CreatedAt,
	}
}
