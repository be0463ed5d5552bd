// Package directus reads the service directory from a Directus instance.
package directus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StatusError reports an unexpected upstream HTTP status.
type StatusError struct {
	Collection string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("directus: %s: unexpected status %d", e.Collection, e.StatusCode)
}

// Client queries collections with a static token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient constructs a Client. An empty baseURL yields a client that
// returns empty lists.
func NewClient(baseURL, token string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   token,
		http:    hc,
	}
}

// Configured reports whether an instance URL was supplied.
func (c *Client) Configured() bool {
	return c != nil && c.baseURL != ""
}

// Services lists the published services of a country, with names and
// descriptions in lang where a translation exists.
func (c *Client) Services(ctx context.Context, countryID int, lang string) ([]Service, error) {
	if !c.Configured() {
		return []Service{}, nil
	}
	q := url.Values{}
	q.Set("filter", mustJSON(map[string]any{
		"country": map[string]any{"_eq": countryID},
		"status":  map[string]any{"_eq": "published"},
	}))
	q.Set("fields", "*,translations.*,categories.service_categories_id,populations_served.populations_served_id,accessibility.accessibility_id")
	q.Set("limit", "-1")
	var raw []rawService
	if err := c.items(ctx, "services", q, &raw); err != nil {
		return nil, err
	}
	out := make([]Service, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.toService(lang))
	}
	return out, nil
}

// ServiceCategories lists every service type.
func (c *Client) ServiceCategories(ctx context.Context) ([]Term, error) {
	return c.terms(ctx, "service_categories", nil)
}

// Providers lists the service providers of a country.
func (c *Client) Providers(ctx context.Context, countryID int) ([]Term, error) {
	q := url.Values{}
	q.Set("filter", mustJSON(map[string]any{
		"country": map[string]any{"_eq": countryID},
	}))
	return c.terms(ctx, "providers", q)
}

// PopulationsServed lists the population tags.
func (c *Client) PopulationsServed(ctx context.Context) ([]Term, error) {
	return c.terms(ctx, "populations_served", nil)
}

// Accessibility lists the accessibility tags.
func (c *Client) Accessibility(ctx context.Context) ([]Term, error) {
	return c.terms(ctx, "accessibility", nil)
}

func (c *Client) terms(ctx context.Context, collection string, q url.Values) ([]Term, error) {
	if !c.Configured() {
		return []Term{}, nil
	}
	if q == nil {
		q = url.Values{}
	}
	q.Set("limit", "-1")
	var raw []rawTerm
	if err := c.items(ctx, collection, q, &raw); err != nil {
		return nil, err
	}
	out := make([]Term, 0, len(raw))
	for _, r := range raw {
		out = append(out, Term{ID: int(r.ID), Name: r.label()})
	}
	return out, nil
}

func (c *Client) items(ctx context.Context, collection string, q url.Values, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, "items", collection)
	if err != nil {
		return fmt.Errorf("directus: %s: %w", collection, err)
	}
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("directus: %s: build request: %w", collection, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("directus: %s: %w", collection, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 400 {
		return &StatusError{Collection: collection, StatusCode: resp.StatusCode}
	}
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("directus: %s: decode: %w", collection, err)
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("directus: %s: decode data: %w", collection, err)
	}
	return nil
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

// flexID accepts numeric or string ids.
type flexID int

func (f *flexID) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("directus: id %q: %w", s, err)
	}
	*f = flexID(n)
	return nil
}
