package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Ankitkushwaha90/techforge/internal/observability"
)

const (
	accessTokenKey  = "backend:token:access"
	refreshTokenKey = "backend:token:refresh"
	accessTokenTTL  = time.Hour
	refreshTokenTTL = 24 * time.Hour
)

// Config carries the settings for the backend API client.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks to the remote course backend. It is constructed explicitly
// and passed to its consumers; there is no package-level instance.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *redis.Client
	logger  zerolog.Logger
}

// New constructs a backend API client. The Redis cache holds the issued
// tokens across requests; without it every call runs unauthenticated.
func New(cfg Config, cache *redis.Client, logger zerolog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend base url must be provided")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		cache:   cache,
		logger:  logger.With().Str("component", "backend_client").Logger(),
	}, nil
}

// Authenticate obtains a token pair from the backend and caches it.
func (c *Client) Authenticate(ctx context.Context, username, password string) error {
	payload := map[string]string{"username": username, "password": password}

	var tokens struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := c.post(ctx, "/api/token/", payload, &tokens); err != nil {
		return fmt.Errorf("backend authentication failed: %w", err)
	}

	c.storeTokens(ctx, tokens.Access, tokens.Refresh)
	return nil
}

// GetCourses lists courses, optionally filtered by a search term.
func (c *Client) GetCourses(ctx context.Context, search string, pageSize int) ([]map[string]interface{}, error) {
	params := url.Values{}
	params.Set("expand", "blogs,blogs.subtopics")
	if search != "" {
		params.Set("search", search)
	}
	if pageSize > 0 {
		params.Set("page_size", strconv.Itoa(pageSize))
	}
	return c.getResults(ctx, "/api/courses/", params, false)
}

// GetCourseDetail fetches one course by backend ID.
func (c *Client) GetCourseDetail(ctx context.Context, courseID uint) (map[string]interface{}, error) {
	var detail map[string]interface{}
	if err := c.get(ctx, fmt.Sprintf("/api/courses/%d/", courseID), nil, false, &detail); err != nil {
		return nil, err
	}
	return detail, nil
}

// GetCourseLessons fetches the lessons of a course.
func (c *Client) GetCourseLessons(ctx context.Context, courseID uint) ([]map[string]interface{}, error) {
	return c.getResults(ctx, fmt.Sprintf("/api/courses/%d/lessons/", courseID), nil, false)
}

// GetCourseQuizzes fetches the quizzes of a course.
func (c *Client) GetCourseQuizzes(ctx context.Context, courseID uint) ([]map[string]interface{}, error) {
	return c.getResults(ctx, fmt.Sprintf("/api/courses/%d/quizzes/", courseID), nil, false)
}

// GetUserProgress fetches the authenticated user's progress.
func (c *Client) GetUserProgress(ctx context.Context) ([]map[string]interface{}, error) {
	return c.getResults(ctx, "/api/progress/", nil, true)
}

// GetUserCourses fetches the courses a user is enrolled in.
func (c *Client) GetUserCourses(ctx context.Context, userID uint) ([]map[string]interface{}, error) {
	return c.getResults(ctx, fmt.Sprintf("/api/users/%d/courses/", userID), nil, true)
}

// UpdateProgress posts a progress update for the authenticated user.
func (c *Client) UpdateProgress(ctx context.Context, progress map[string]interface{}) error {
	return c.doJSON(ctx, http.MethodPost, "/api/progress/", nil, progress, true, nil)
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, authed bool, out interface{}) error {
	return c.doJSON(ctx, http.MethodGet, endpoint, params, nil, authed, out)
}

func (c *Client) post(ctx context.Context, endpoint string, body, out interface{}) error {
	return c.doJSON(ctx, http.MethodPost, endpoint, nil, body, false, out)
}

func (c *Client) getResults(ctx context.Context, endpoint string, params url.Values, authed bool) ([]map[string]interface{}, error) {
	var page struct {
		Results []map[string]interface{} `json:"results"`
	}
	if err := c.get(ctx, endpoint, params, authed, &page); err != nil {
		return nil, err
	}
	if page.Results == nil {
		return []map[string]interface{}{}, nil
	}
	return page.Results, nil
}

// doJSON runs one request, refreshing the cached token and retrying once
// when an authenticated call comes back 401.
func (c *Client) doJSON(ctx context.Context, method, endpoint string, params url.Values, body interface{}, authed bool, out interface{}) error {
	status, data, err := c.send(ctx, method, endpoint, params, body, authed)
	if err != nil {
		observability.BackendRequests().WithLabelValues("error").Inc()
		return err
	}

	if status == http.StatusUnauthorized && authed {
		if c.refreshTokens(ctx) {
			status, data, err = c.send(ctx, method, endpoint, params, body, authed)
			if err != nil {
				observability.BackendRequests().WithLabelValues("error").Inc()
				return err
			}
		}
	}

	if status < 200 || status >= 300 {
		observability.BackendRequests().WithLabelValues("error").Inc()
		return fmt.Errorf("backend returned status %d for %s", status, endpoint)
	}

	observability.BackendRequests().WithLabelValues("ok").Inc()

	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, endpoint string, params url.Values, body interface{}, authed bool) (int, []byte, error) {
	if !strings.HasPrefix(endpoint, "/api/") {
		endpoint = "/api/" + strings.TrimLeft(endpoint, "/")
	}

	address := c.baseURL + endpoint
	if len(params) > 0 {
		address += "?" + params.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, address, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	if authed {
		if token := c.accessToken(ctx); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	return resp.StatusCode, data, nil
}

func (c *Client) accessToken(ctx context.Context) string {
	if c.cache == nil {
		return ""
	}
	token, err := c.cache.Get(ctx, accessTokenKey).Result()
	if err != nil {
		return ""
	}
	return token
}

func (c *Client) storeTokens(ctx context.Context, access, refresh string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Set(ctx, accessTokenKey, access, accessTokenTTL).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to cache backend access token")
	}
	if refresh != "" {
		if err := c.cache.Set(ctx, refreshTokenKey, refresh, refreshTokenTTL).Err(); err != nil {
			c.logger.Warn().Err(err).Msg("failed to cache backend refresh token")
		}
	}
}

func (c *Client) refreshTokens(ctx context.Context) bool {
	if c.cache == nil {
		return false
	}
	refresh, err := c.cache.Get(ctx, refreshTokenKey).Result()
	if err != nil || refresh == "" {
		return false
	}

	var tokens struct {
		Access string `json:"access"`
	}
	if err := c.post(ctx, "/api/token/refresh/", map[string]string{"refresh": refresh}, &tokens); err != nil {
		c.logger.Warn().Err(err).Msg("backend token refresh failed")
		return false
	}

	c.storeTokens(ctx, tokens.Access, "")
	return true
}
