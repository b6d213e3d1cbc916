package dashapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultPageSize = 50
	maxErrorBody    = 512
	defaultMaxBody  = 32 << 20
)

// Config holds the connection settings for the dashboard API
type Config struct {
	BaseURL  string
	Token    string
	Timeout  time.Duration
	PageSize int
	// MaxBody caps the bytes read from one response (default 32MiB)
	MaxBody int64
}

// Client talks to the dashboard's search endpoints
type Client struct {
	baseURL  *url.URL
	token    string
	pageSize int
	maxBody  int64
	http     *http.Client
}

// SearchRequest is the body POSTed to every search endpoint
type SearchRequest struct {
	Query             string            `json:"query,omitempty"`
	Filter            map[string]string `json:"filter,omitempty"`
	Page              int               `json:"page"`
	Size              int               `json:"size"`
	ContinuationToken *string           `json:"continuationToken,omitempty"`
}

// Envelope is the response wrapper. Message is either a list object or an
// error string.
type Envelope struct {
	Success bool            `json:"success"`
	Message json.RawMessage `json:"message"`
}

// APIError is returned by the sources when the API reports a failure
type APIError struct {
	Message string
}

func (e *APIError) Error() string {
	return "dashboard api: " + e.Message
}

// NewClient validates the base URL and builds a client
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("dashboard api base URL is required")
	}
	u, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid dashboard api base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid dashboard api base URL %q: scheme must be http or https", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	size := cfg.PageSize
	if size <= 0 {
		size = defaultPageSize
	}
	maxBody := cfg.MaxBody
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}

	return &Client{
		baseURL:  u,
		token:    cfg.Token,
		pageSize: size,
		maxBody:  maxBody,
		http:     &http.Client{Timeout: timeout},
	}, nil
}

// PageSize is the size sent with every request
func (c *Client) PageSize() int {
	return c.pageSize
}

// Close releases idle connections
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// Search posts req to path. Transport, status and decode failures are
// folded into an unsuccessful envelope, so it never returns an error.
func (c *Client) Search(ctx context.Context, path string, req SearchRequest) Envelope {
	body, err := json.Marshal(req)
	if err != nil {
		return failure("encoding request: " + err.Error())
	}

	endpoint := c.baseURL.JoinPath(path).String()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return failure("building request: " + err.Error())
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	if c.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return failure("request failed: " + err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return failure("reading response: " + err.Error())
	}
	if int64(len(raw)) > c.maxBody {
		return failure(fmt.Sprintf("response body exceeds %d bytes", c.maxBody))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env Envelope
		if json.Unmarshal(raw, &env) == nil && len(env.Message) > 0 {
			env.Success = false
			return env
		}
		return failure(fmt.Sprintf("HTTP %d: %s", resp.StatusCode, truncate(string(raw), maxErrorBody)))
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return failure("decoding response: " + err.Error())
	}
	return env
}

// Text renders the message as text, unquoting a JSON string
func (e Envelope) Text() string {
	var s string
	if err := json.Unmarshal(e.Message, &s); err == nil {
		return s
	}
	return string(e.Message)
}

func failure(msg string) Envelope {
	b, _ := json.Marshal(msg)
	return Envelope{Success: false, Message: b}
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
