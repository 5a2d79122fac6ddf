package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Ankitkushwaha90/techforge/internal/models"
)

// LogContactDelivery is a basic provider that logs new messages for
// operators instead of sending mail.
type LogContactDelivery struct {
	logger zerolog.Logger
}

// NewLogContactDelivery constructs a logging provider.
func NewLogContactDelivery(logger zerolog.Logger) *LogContactDelivery {
	return &LogContactDelivery{logger: logger.With().Str("component", "contact_delivery").Logger()}
}

// Deliver logs the message and returns nil to indicate success.
func (l *LogContactDelivery) Deliver(ctx context.Context, message models.ContactMessage) error {
	l.logger.Info().
		Str("reference_id", message.ReferenceID).
		Str("subject", message.Subject).
		Str("priority", message.Priority).
		Msg("new contact form submission")
	return nil
}
