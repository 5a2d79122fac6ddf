package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/Ankitkushwaha90/techforge/internal/models"
	"github.com/Ankitkushwaha90/techforge/internal/service"
)

// Path prefixes never tracked: static assets, media and the admin console.
var skipPrefixes = []string{"/static/", "/media/", "/admin/"}

// ActivityTracker records a page_view for every qualifying request:
// authenticated owner, plain GET, HTML navigation (not an AJAX or JSON
// call), outside the excluded prefixes. Recording is best-effort; a
// failure is logged and the request proceeds untouched.
func ActivityTracker(recorder service.ActivityRecorder, logger zerolog.Logger) fiber.Handler {
	trackerLogger := logger.With().Str("component", "activity_tracker").Logger()

	return func(c *fiber.Ctx) error {
		userID := UserIDFromContext(c)
		if userID != 0 && !shouldSkipTracking(c) {
			entry := service.RecordEntry{
				UserID:      userID,
				Kind:        models.ActivityPageView,
				TargetURL:   c.BaseURL() + c.OriginalURL(),
				TargetTitle: pageTitle(c),
				Metadata: map[string]interface{}{
					"method":       c.Method(),
					"path":         c.Path(),
					"query_params": c.Queries(),
				},
				IPAddress: c.IP(),
				UserAgent: c.Get(fiber.HeaderUserAgent),
				Referrer:  c.Get(fiber.HeaderReferer),
			}

			if _, err := recorder.Record(c.Context(), entry); err != nil {
				trackerLogger.Error().Err(err).Str("path", c.Path()).Msg("failed to record page view")
			}
		}

		return c.Next()
	}
}

func shouldSkipTracking(c *fiber.Ctx) bool {
	if c.Method() != fiber.MethodGet {
		return true
	}

	for _, prefix := range skipPrefixes {
		if strings.HasPrefix(c.Path(), prefix) {
			return true
		}
	}

	if c.Get("X-Requested-With") == "XMLHttpRequest" {
		return true
	}

	// Only HTML navigations count as page views; API and asset fetches
	// declare other accept types.
	accept := c.Get(fiber.HeaderAccept)
	return !strings.Contains(accept, "text/html")
}

func pageTitle(c *fiber.Ctx) string {
	if referrer := c.Get(fiber.HeaderReferer); referrer != "" {
		return referrer
	}
	return c.Path()
}
