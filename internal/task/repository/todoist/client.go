package todoist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"
)

// Client is the HTTP wrapper for the Todoist REST v2 API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a new Todoist HTTP client. Todoist allows 450
// requests per 15 minutes; we stay well under that.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = "https://api.todoist.com"
	}
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(0.5), 5),
	}
}

// ListTasks fetches active tasks via GET /rest/v2/tasks, optionally
// filtered by project.
func (c *Client) ListTasks(ctx context.Context, projectID string) ([]RawTask, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/rest/v2/tasks", c.baseURL)
	if projectID != "" {
		u += "?project_id=" + url.QueryEscape(projectID)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build list tasks request: %w", err)
	}
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.token))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call todoist list API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("todoist API list error %d: %s", resp.StatusCode, string(raw))
	}

	var tasks []RawTask
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, fmt.Errorf("failed to decode todoist list response: %w", err)
	}
	return tasks, nil
}

// ---- Response types scoped to this package ----

// RawTask is the Todoist API task object, as fetched. Fields are
// arbitrary and optional on the provider side; normalization into
// model.Task happens in the repository layer.
type RawTask struct {
	ID          string   `json:"id"`
	Content     string   `json:"content"`
	Description string   `json:"description"`
	Labels      []string `json:"labels"`
	Due         *RawDue  `json:"due"`
}

// RawDue is the Todoist due object: either a bare date or a full
// datetime.
type RawDue struct {
	Date     string `json:"date"`     // "2006-01-02"
	Datetime string `json:"datetime"` // RFC 3339, may be empty
}
