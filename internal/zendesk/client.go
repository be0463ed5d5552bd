// Package zendesk reads the help center: categories, sections, articles and
// dynamic content. Without a base URL it serves a local content tree instead.
package zendesk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"refugee.info/greece-web/internal/translations"
)

// ErrNotFound is returned when a help center resource cannot be located.
var ErrNotFound = errors.New("zendesk: not found")

// StatusError reports an unexpected upstream HTTP status.
type StatusError struct {
	Op         string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("zendesk: %s: unexpected status %d", e.Op, e.StatusCode)
}

// DynamicSource provides dynamic content when no help center is configured.
type DynamicSource interface {
	DynamicContent(lang string, placeholders []string) translations.DynamicContent
}

// Options configures a Client.
type Options struct {
	// BaseURL is the help center origin, e.g. https://signpost-greece.zendesk.com.
	BaseURL string
	// MappedURL replaces BaseURL inside article bodies.
	MappedURL string
	// AuthHeader is sent as Authorization on dynamic content requests.
	AuthHeader string
	HTTPClient *http.Client
	// ContentDir holds <locale>/helpcenter.yaml used when BaseURL is empty.
	ContentDir string
	Dynamic    DynamicSource
}

// Client provides read-only access to the help center API.
type Client struct {
	baseURL    string
	mappedURL  string
	authHeader string
	http       *http.Client
	local      *localTree
	dynamic    DynamicSource
}

const perPage = 100

// NewClient constructs a Client from opts.
func NewClient(opts Options) *Client {
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"),
		mappedURL:  strings.TrimRight(strings.TrimSpace(opts.MappedURL), "/"),
		authHeader: opts.AuthHeader,
		http:       hc,
		local:      newLocalTree(opts.ContentDir),
		dynamic:    opts.Dynamic,
	}
}

// Remote reports whether the client talks to a live help center.
func (c *Client) Remote() bool {
	return c != nil && c.baseURL != ""
}

func (c *Client) helpCenterURL(localeCode string, segments ...string) (string, error) {
	parts := append([]string{"api", "v2", "help_center", strings.ToLower(localeCode)}, segments...)
	return url.JoinPath(c.baseURL, parts...)
}

// getJSON fetches endpoint and decodes the body into out. A 404 maps to ErrNotFound.
func (c *Client) getJSON(ctx context.Context, op, endpoint string, query url.Values, auth bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("zendesk: %s: build request: %w", op, err)
	}
	if len(query) > 0 {
		q := req.URL.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		req.URL.RawQuery = q.Encode()
	}
	req.Header.Set("Accept", "application/json")
	if auth && c.authHeader != "" {
		req.Header.Set("Authorization", c.authHeader)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("zendesk: %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode >= 400 {
		return &StatusError{Op: op, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("zendesk: %s: decode: %w", op, err)
	}
	return nil
}

// listPages follows next_page links starting at endpoint. decode is called for
// every page body and returns that page's next_page value.
func (c *Client) listPages(ctx context.Context, op, endpoint string, query url.Values, auth bool, decode func(json.RawMessage) (string, error)) error {
	next := endpoint
	q := query
	for next != "" {
		var raw json.RawMessage
		if err := c.getJSON(ctx, op, next, q, auth, &raw); err != nil {
			return err
		}
		n, err := decode(raw)
		if err != nil {
			return fmt.Errorf("zendesk: %s: decode page: %w", op, err)
		}
		if n == next {
			break
		}
		// next_page already carries the query
		next, q = n, nil
	}
	return nil
}
