// Package backend implements the REST client for the paisawise API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/paisawise/pw-mobile-go/internal/errors"
	"github.com/paisawise/pw-mobile-go/internal/observability/statsd"
	"github.com/paisawise/pw-mobile-go/internal/ports"
)

const (
	headerSessionID   = "X-Session-ID"
	headerRequestID   = "X-Request-ID"
	headerContentType = "Content-Type"
	headerUserAgent   = "User-Agent"
	contentTypeJSON   = "application/json"
)

// Client talks to the backend REST API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	metrics    statsd.Sink
}

var _ ports.Backend = (*Client)(nil)

// Config holds configuration for the backend client.
type Config struct {
	// BaseURL is the API root, e.g. "https://api.paisawise.app".
	BaseURL string
	// Timeout bounds every request. Zero falls back to 15s; a request must
	// never be allowed to hang the auth state machine in loading.
	Timeout time.Duration
	// UserAgent is sent on every request.
	UserAgent string
	// HTTPClient overrides the transport (tests). Its Timeout wins when set.
	HTTPClient *http.Client
	// Metrics receives per-request round-trip timings when set.
	Metrics statsd.Sink
}

// NewClient constructs a backend client.
func NewClient(cfg Config) (*Client, error) {
	base := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errors.New("base URL is required")
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("parse base URL: %w", err)
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "pw-mobile-go/1.0"
	}

	return &Client{
		baseURL:    base,
		userAgent:  userAgent,
		httpClient: httpClient,
		metrics:    cfg.Metrics,
	}, nil
}

// apiError mirrors the backend's error envelope ({"detail": ...}).
type apiError struct {
	Detail string `json:"detail"`
}

// request describes one API call for doRequest.
type request struct {
	method string
	path   string
	query  url.Values
	header http.Header
	token  string // bearer credential, empty for unauthenticated calls
	body   any
}

// doRequest performs an HTTP request and decodes the JSON response into out.
// Non-2xx statuses are mapped to AppError codes; transport failures keep
// their context/timeout classification.
func (c *Client) doRequest(ctx context.Context, req request, out any) error {
	reqURL := c.baseURL + req.path
	if len(req.query) > 0 {
		reqURL += "?" + req.query.Encode()
	}

	var bodyReader io.Reader
	if req.body != nil {
		payload, err := json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, reqURL, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	httpReq.Header.Set(headerUserAgent, c.userAgent)
	if req.body != nil {
		httpReq.Header.Set(headerContentType, contentTypeJSON)
	}
	if req.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.token)
	}
	for k, vals := range req.header {
		for _, v := range vals {
			httpReq.Header.Set(k, v)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.timing(req, start, 0)
		return apperrors.FromTransport(err, req.method+" "+req.path)
	}
	defer resp.Body.Close() //nolint:errcheck // Best-effort close on a fully read body.
	c.timing(req, start, resp.StatusCode)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.FromTransport(err, "read response for "+req.path)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return parseError(resp.StatusCode, req.path, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return apperrors.Wrapf(err, apperrors.ErrCodeBackend, "decode response for %s", req.path)
		}
	}
	return nil
}

// timing emits the round-trip duration for one API call when a sink is
// configured. Status 0 means the request never produced a response.
func (c *Client) timing(req request, start time.Time, status int) {
	if c.metrics == nil {
		return
	}
	c.metrics.Timing("backend.request", time.Since(start), map[string]string{
		"method": req.method,
		"path":   req.path,
		"status": strconv.Itoa(status),
	})
}

func parseError(status int, path string, body []byte) error {
	var envelope apiError
	msg := fmt.Sprintf("%s returned status %d", path, status)
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Detail != "" {
		msg = envelope.Detail
	}
	return apperrors.FromStatus(status, msg)
}
