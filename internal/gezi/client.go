// Package gezi implements the server-to-server client the admin panel routes
// use to reach the sibling trip service. Every request carries the shared
// service secret and disables response caching; non-success upstream statuses
// are translated into domain.UpstreamError so handlers can re-emit them.
package gezi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/eerdem5387/gezi-basvuru-sistemi/internal/domain"
)

// ErrNotConfigured is returned when the base URL or secret is missing.
// Configuration is validated lazily on first use, matching how the service
// is deployed: the proxy surface may be mounted without the upstream being
// configured, and only actual use is a fatal operational error.
var ErrNotConfigured = errors.New("gezi service is not configured")

// ExportResult carries a binary export response through the proxy untouched.
type ExportResult struct {
	ContentType        string
	ContentDisposition string
	Body               []byte
}

// Client talks to the sibling trip service.
type Client struct {
	baseURL string
	secret  string
	http    *http.Client
}

// NewClient constructs a Client. baseURL may be empty here; each call checks
// configuration and returns ErrNotConfigured when it is missing.
func NewClient(baseURL, secret string) *Client {
	return &Client{
		baseURL: baseURL,
		secret:  secret,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchTrips forwards GET /api/trips with the caller's query string.
func (c *Client) FetchTrips(ctx context.Context, query url.Values) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodGet, "/api/trips", query, nil)
}

// CreateTrip forwards POST /api/trips.
func (c *Client) CreateTrip(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodPost, "/api/trips", nil, payload)
}

// GetTrip forwards GET /api/trips/{id}.
func (c *Client) GetTrip(ctx context.Context, tripID string) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodGet, "/api/trips/"+url.PathEscape(tripID), nil, nil)
}

// UpdateTrip forwards PATCH /api/trips/{id}.
func (c *Client) UpdateTrip(ctx context.Context, tripID string, payload json.RawMessage) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodPatch, "/api/trips/"+url.PathEscape(tripID), nil, payload)
}

// FetchApplications forwards GET /api/trips/{id}/applications.
func (c *Client) FetchApplications(ctx context.Context, tripID string, query url.Values) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodGet, "/api/trips/"+url.PathEscape(tripID)+"/applications", query, nil)
}

// FetchStats forwards GET /api/trips/stats.
func (c *Client) FetchStats(ctx context.Context) (json.RawMessage, error) {
	return c.doJSON(ctx, http.MethodGet, "/api/trips/stats", nil, nil)
}

// ExportApplications forwards GET /api/trips/{id}/applications/export and
// returns the raw spreadsheet bytes with the upstream content headers.
func (c *Client) ExportApplications(ctx context.Context, tripID string, query url.Values) (ExportResult, error) {
	resp, err := c.do(ctx, http.MethodGet, "/api/trips/"+url.PathEscape(tripID)+"/applications/export", query, nil)
	if err != nil {
		return ExportResult{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ExportResult{}, fmt.Errorf("gezi.Client.ExportApplications: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ExportResult{}, upstreamError(resp.StatusCode, body)
	}

	return ExportResult{
		ContentType:        resp.Header.Get("Content-Type"),
		ContentDisposition: resp.Header.Get("Content-Disposition"),
		Body:               body,
	}, nil
}

// doJSON performs a request and returns the raw JSON body on success, or a
// domain.UpstreamError carrying the upstream status and message.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, payload json.RawMessage) (json.RawMessage, error) {
	resp, err := c.do(ctx, method, path, query, payload)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gezi.Client: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, upstreamError(resp.StatusCode, body)
	}
	return body, nil
}

// do builds and sends one upstream request with the secret header injected.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload json.RawMessage) (*http.Response, error) {
	if c.baseURL == "" || c.secret == "" {
		return nil, fmt.Errorf("gezi.Client: %w", ErrNotConfigured)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("gezi.Client: build request: %w", err)
	}
	req.Header.Set("X-Service-Secret", c.secret)
	req.Header.Set("Cache-Control", "no-store")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gezi.Client: %s %s: %w", method, path, err)
	}
	return resp, nil
}

// upstreamError extracts the error or message field from a non-success
// upstream body, falling back to the raw text.
func upstreamError(status int, body []byte) error {
	message := "Gezi servis isteği başarısız oldu"
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		switch {
		case parsed.Error != "":
			message = parsed.Error
		case parsed.Message != "":
			message = parsed.Message
		}
	} else if len(body) > 0 {
		message = string(body)
	}
	return &domain.UpstreamError{Status: status, Message: message}
}
