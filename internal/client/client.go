// Package client talks to a running SerpentAware server over its JSON API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"serpentaware/internal/catalog"
	"serpentaware/internal/models"
)

// DefaultServer is used when neither --server nor SERPENTAWARE_SERVER is set.
const DefaultServer = "http://localhost:8080"

// APIError is a non-2xx response. Detail is the server's "detail" field, or
// the raw body when the response was not JSON.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Detail)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	// Token is sent as a bearer token on administrative calls.
	Token string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.Token = token }
}

func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultServer
	}
	c := &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type messageResponse struct {
	Message string `json:"message"`
}

// InitData reseeds the server and returns its confirmation message.
func (c *Client) InitData(ctx context.Context) (string, error) {
	var resp messageResponse
	if err := c.do(ctx, http.MethodPost, "/api/init-data", nil, &resp); err != nil {
		return "", err
	}
	return resp.Message, nil
}

func (c *Client) Snakes(ctx context.Context, q catalog.Query) ([]models.Snake, error) {
	params := url.Values{}
	if q.Continent != "" {
		params.Set("continent", string(q.Continent))
	}
	if q.DangerLevel != "" {
		params.Set("danger_level", string(q.DangerLevel))
	}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	var snakes []models.Snake
	if err := c.do(ctx, http.MethodGet, "/api/snakes", params, &snakes); err != nil {
		return nil, err
	}
	return snakes, nil
}

func (c *Client) Snake(ctx context.Context, id string) (models.Snake, error) {
	var s models.Snake
	err := c.do(ctx, http.MethodGet, "/api/snakes/"+url.PathEscape(id), nil, &s)
	return s, err
}

func (c *Client) Continents(ctx context.Context) ([]models.ContinentCount, error) {
	var out []models.ContinentCount
	err := c.do(ctx, http.MethodGet, "/api/continents", nil, &out)
	return out, err
}

func (c *Client) Emergency(ctx context.Context) ([]models.EmergencyInfo, error) {
	var out []models.EmergencyInfo
	err := c.do(ctx, http.MethodGet, "/api/emergency", nil, &out)
	return out, err
}

func (c *Client) Stats(ctx context.Context) (models.Stats, error) {
	var out models.Stats
	err := c.do(ctx, http.MethodGet, "/api/stats", nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, out any) error {
	target := c.BaseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func decodeError(status int, body []byte) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return &APIError{StatusCode: status, Detail: payload.Detail}
	}
	detail := strings.TrimSpace(string(body))
	if detail == "" {
		detail = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Detail: detail}
}
