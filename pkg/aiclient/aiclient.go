// Package aiclient is a thin HTTP client for the clinic's AI assistant service.
package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/roxydental/roxydental_backend/config"
)

var (
	ErrNotConfigured = errors.New("aiclient: service url is not configured")
	ErrUpstream      = errors.New("aiclient: upstream request failed")
)

// maxBody caps upstream responses relayed to callers.
const maxBody = 4 << 20

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(cfg config.AIConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return NewWithHTTPClient(cfg.ServiceURL, &http.Client{Timeout: timeout})
}

func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: hc}
}

// ChatRequest is forwarded as-is to POST /chat.
type ChatRequest struct {
	Message  string `json:"message"`
	UserName string `json:"user_name"`
}

// Predict relays GET /predict and returns the upstream JSON untouched.
func (c *Client) Predict(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/predict", nil)
}

// Chat relays POST /chat and returns the upstream JSON untouched.
func (c *Client) Chat(ctx context.Context, in ChatRequest) (json.RawMessage, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, "/chat", b)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (json.RawMessage, error) {
	if c.baseURL == "" {
		return nil, ErrNotConfigured
	}

	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUpstream, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, res.StatusCode)
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: response is not json", ErrUpstream)
	}
	return json.RawMessage(raw), nil
}
