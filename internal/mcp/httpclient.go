package mcp

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

	"github.com/claude/clab/internal/models"
	"github.com/claude/clab/internal/progress"
)

// HTTPClient implements DataSource by calling the clab REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the plan lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL. apiKey
// is sent on every request when non-empty.
func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *HTTPClient) post(ctx context.Context, path string, v any) ([]byte, error) {
	var body io.Reader
	if v != nil {
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("httpclient: encode body: %w", err)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, apiError(data))
	}

	return data, nil
}

// apiError extracts the message of an {"error": ...} body.
func apiError(body []byte) string {
	var e struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &e) == nil && e.Error != "" {
		return e.Error
	}
	return strings.TrimSpace(string(body))
}

func weekPath(week int, suffix string) string {
	return "/api/v1/plan/weeks/" + strconv.Itoa(week) + suffix
}

func (c *HTTPClient) Profile(ctx context.Context) (models.UserConfig, error) {
	body, err := c.get(ctx, "/api/v1/state", nil)
	if err != nil {
		return models.UserConfig{}, err
	}

	var st models.AppState
	if err := json.Unmarshal(body, &st); err != nil {
		return models.UserConfig{}, fmt.Errorf("httpclient: decode state: %w", err)
	}
	return st.UserData, nil
}

func (c *HTTPClient) GeneratePlan(ctx context.Context, cfg models.UserConfig) ([]models.WeekBlock, error) {
	body, err := c.post(ctx, "/api/v1/plan", cfg)
	if err != nil {
		return nil, err
	}

	var weeks []models.WeekBlock
	if err := json.Unmarshal(body, &weeks); err != nil {
		return nil, fmt.Errorf("httpclient: decode plan: %w", err)
	}
	return weeks, nil
}

func (c *HTTPClient) Plan(ctx context.Context) ([]models.WeekBlock, error) {
	body, err := c.get(ctx, "/api/v1/plan", nil)
	if err != nil {
		return nil, err
	}

	var weeks []models.WeekBlock
	if err := json.Unmarshal(body, &weeks); err != nil {
		return nil, fmt.Errorf("httpclient: decode plan: %w", err)
	}
	return weeks, nil
}

func (c *HTTPClient) Week(ctx context.Context, n int) (models.WeekBlock, error) {
	body, err := c.get(ctx, weekPath(n, ""), nil)
	if err != nil {
		return models.WeekBlock{}, err
	}
	return decodeWeek(body)
}

func (c *HTTPClient) Stats(ctx context.Context) (progress.Summary, error) {
	body, err := c.get(ctx, "/api/v1/stats", nil)
	if err != nil {
		return progress.Summary{}, err
	}

	var sum progress.Summary
	if err := json.Unmarshal(body, &sum); err != nil {
		return progress.Summary{}, fmt.Errorf("httpclient: decode stats: %w", err)
	}
	return sum, nil
}

func (c *HTTPClient) ToggleSession(ctx context.Context, id string) (bool, error) {
	body, err := c.post(ctx, "/api/v1/sessions/"+url.PathEscape(id)+"/toggle", nil)
	if err != nil {
		return false, err
	}

	var resp struct {
		Done bool `json:"done"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return false, fmt.Errorf("httpclient: decode toggle: %w", err)
	}
	return resp.Done, nil
}

func (c *HTTPClient) SwapDays(ctx context.Context, week, a, b int) (models.WeekBlock, error) {
	body, err := c.post(ctx, weekPath(week, "/swap"), map[string]int{"a": a, "b": b})
	if err != nil {
		return models.WeekBlock{}, err
	}
	return decodeWeek(body)
}

func (c *HTTPClient) ResetSchedule(ctx context.Context, week int) (models.WeekBlock, error) {
	body, err := c.post(ctx, weekPath(week, "/schedule/reset"), nil)
	if err != nil {
		return models.WeekBlock{}, err
	}
	return decodeWeek(body)
}

func decodeWeek(body []byte) (models.WeekBlock, error) {
	var w models.WeekBlock
	if err := json.Unmarshal(body, &w); err != nil {
		return models.WeekBlock{}, fmt.Errorf("httpclient: decode week: %w", err)
	}
	return w, nil
}
