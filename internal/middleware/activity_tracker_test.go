package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/Ankitkushwaha90/techforge/internal/models"
	"github.com/Ankitkushwaha90/techforge/internal/service"
)

type trackerRecorderStub struct {
	entries []service.RecordEntry
	err     error
}

func (r *trackerRecorderStub) Record(ctx context.Context, entry service.RecordEntry) (*models.UserActivity, error) {
	r.entries = append(r.entries, entry)
	return nil, r.err
}

func newTrackedApp(recorder service.ActivityRecorder, userID uint) *fiber.App {
	app := fiber.New()
	if userID != 0 {
		app.Use(func(c *fiber.Ctx) error {
			c.Locals("user_id", userID)
			return c.Next()
		})
	}
	app.Use(ActivityTracker(recorder, zerolog.Nop()))
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }
	app.Get("/courses/", ok)
	app.Post("/courses/", ok)
	app.Get("/static/app.css", ok)
	app.Get("/admin/users/", ok)
	return app
}

func htmlRequest(method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	return req
}

func TestActivityTrackerRecordsHTMLNavigation(t *testing.T) {
	recorder := &trackerRecorderStub{}
	app := newTrackedApp(recorder, 9)

	req := htmlRequest(http.MethodGet, "/courses/?page=2")
	req.Header.Set("Referer", "http://example.com/home/")
	req.Header.Set("User-Agent", "browser/1.0")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	require.Equal(t, uint(9), entry.UserID)
	require.Equal(t, models.ActivityPageView, entry.Kind)
	require.Equal(t, "http://example.com/home/", entry.TargetTitle, "referrer doubles as the page title")
	require.Equal(t, "browser/1.0", entry.UserAgent)
	require.Equal(t, "GET", entry.Metadata["method"])
	require.Equal(t, "/courses/", entry.Metadata["path"])
	require.Equal(t, map[string]string{"page": "2"}, entry.Metadata["query_params"])
}

func TestActivityTrackerTitleFallsBackToPath(t *testing.T) {
	recorder := &trackerRecorderStub{}
	app := newTrackedApp(recorder, 9)

	_, err := app.Test(htmlRequest(http.MethodGet, "/courses/"))
	require.NoError(t, err)
	require.Len(t, recorder.entries, 1)
	require.Equal(t, "/courses/", recorder.entries[0].TargetTitle)
}

func TestActivityTrackerSkipsNonQualifyingRequests(t *testing.T) {
	cases := []struct {
		name  string
		build func() *http.Request
	}{
		{"post", func() *http.Request { return htmlRequest(http.MethodPost, "/courses/") }},
		{"static asset", func() *http.Request { return htmlRequest(http.MethodGet, "/static/app.css") }},
		{"admin console", func() *http.Request { return htmlRequest(http.MethodGet, "/admin/users/") }},
		{"ajax", func() *http.Request {
			req := htmlRequest(http.MethodGet, "/courses/")
			req.Header.Set("X-Requested-With", "XMLHttpRequest")
			return req
		}},
		{"json accept", func() *http.Request {
			req := httptest.NewRequest(http.MethodGet, "/courses/", nil)
			req.Header.Set("Accept", "application/json")
			return req
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := &trackerRecorderStub{}
			app := newTrackedApp(recorder, 9)

			resp, err := app.Test(tc.build())
			require.NoError(t, err)
			require.Equal(t, fiber.StatusOK, resp.StatusCode)
			require.Empty(t, recorder.entries)
		})
	}
}

func TestActivityTrackerSkipsAnonymous(t *testing.T) {
	recorder := &trackerRecorderStub{}
	app := newTrackedApp(recorder, 0)

	resp, err := app.Test(htmlRequest(http.MethodGet, "/courses/"))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.Empty(t, recorder.entries)
}

func TestActivityTrackerSwallowsRecorderFailure(t *testing.T) {
	recorder := &trackerRecorderStub{err: context.DeadlineExceeded}
	app := newTrackedApp(recorder, 9)

	resp, err := app.Test(htmlRequest(http.MethodGet, "/courses/"))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, "tracking failures never break the request")
}
