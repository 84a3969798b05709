// Package lookup implements the public form's student search: the management
// system exposes GET /api/students/public on more than one deployment, and
// this client walks an ordered list of base URLs until one answers, with a
// per-attempt deadline. First success wins; there is no backoff or circuit
// breaker because the form is low-volume.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// attemptTimeout bounds each candidate URL individually, so one hanging
// deployment cannot consume the whole request budget.
const attemptTimeout = 5 * time.Second

// ErrAllCandidatesFailed is the aggregate failure reported when every base
// URL in the list has been tried without success.
var ErrAllCandidatesFailed = errors.New("student lookup failed on all candidate URLs")

// Client queries the management deployments for students by national ID.
type Client struct {
	baseURLs []string
	http     *http.Client
	log      *slog.Logger
}

// NewClient constructs a Client over the ordered candidate base URLs.
func NewClient(baseURLs []string, log *slog.Logger) *Client {
	return &Client{
		baseURLs: baseURLs,
		// Per-attempt deadlines come from the context; the client-level
		// timeout is only a backstop.
		http: &http.Client{Timeout: attemptTimeout + time.Second},
		log:  log,
	}
}

// FindStudents queries each candidate in order and returns the first
// successful response body verbatim (a {"data":[...]} JSON document).
// Failed attempts are logged and swallowed; when every candidate fails the
// error wraps ErrAllCandidatesFailed.
func (c *Client) FindStudents(ctx context.Context, tcNumber string) (json.RawMessage, error) {
	if len(c.baseURLs) == 0 {
		return nil, fmt.Errorf("lookup.Client.FindStudents: no candidate URLs configured: %w", ErrAllCandidatesFailed)
	}

	var lastErr error
	for _, base := range c.baseURLs {
		body, err := c.attempt(ctx, base, tcNumber)
		if err == nil {
			return body, nil
		}
		lastErr = err
		c.log.WarnContext(ctx, "student lookup attempt failed",
			"base_url", base,
			"error", err,
		)
		// The parent context being done means the caller is gone; stop
		// instead of burning through the remaining candidates.
		if ctx.Err() != nil {
			break
		}
	}

	return nil, fmt.Errorf("lookup.Client.FindStudents: %w: last error: %v", ErrAllCandidatesFailed, lastErr)
}

// attempt performs one GET against a single base URL with its own deadline.
func (c *Client) attempt(ctx context.Context, base, tcNumber string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()

	u := base + "/api/students/public?tcNumber=" + url.QueryEscape(tcNumber)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
