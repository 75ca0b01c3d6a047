package zendesk

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Credentials identify the Zendesk account and API token.
type Credentials struct {
	Subdomain string
	Email     string
	APIToken  string
}

func (c Credentials) missing() []string {
	var out []string
	if c.Subdomain == "" {
		out = append(out, "ZENDESK_SUBDOMAIN")
	}
	if c.Email == "" {
		out = append(out, "ZENDESK_EMAIL")
	}
	if c.APIToken == "" {
		out = append(out, "ZENDESK_API_TOKEN")
	}
	return out
}

// Client issues authenticated requests against one Zendesk account. It is
// safe for concurrent use.
type Client struct {
	creds   Credentials
	http    *http.Client
	baseURL string
	log     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithBaseURL overrides the API base URL derived from the subdomain.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New returns a Client for creds. Construction never fails; missing
// credentials surface on each call.
func New(creds Credentials, opts ...Option) *Client {
	c := &Client{
		creds: creds,
		http:  http.DefaultClient,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root requests are made against.
func (c *Client) BaseURL() string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return fmt.Sprintf("https://%s.zendesk.com/api/v2", c.creds.Subdomain)
}

// Configured reports whether all credentials are present.
func (c *Client) Configured() bool {
	return len(c.creds.missing()) == 0
}

func (c *Client) authorization() string {
	raw := c.creds.Email + "/token:" + c.creds.APIToken
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(raw))
}

// Do performs one API call. path is relative to the API root and must be
// pre-formatted; body, when non-nil, is sent as JSON. An empty response body
// is returned as JSON null.
func (c *Client) Do(ctx context.Context, method, path string, body any, query url.Values) (json.RawMessage, error) {
	if missing := c.creds.missing(); len(missing) > 0 {
		return nil, &ConfigError{Missing: missing}
	}
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return nil, fmt.Errorf("unsupported method %q", method)
	}

	u := c.BaseURL() + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", c.authorization())
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	log := c.log.With(slog.String("http_method", method), slog.String("path", path))

	resp, err := c.http.Do(req)
	if err != nil {
		log.ErrorContext(ctx, "zendesk.request.fail", slog.String("err", err.Error()))
		return nil, fmt.Errorf("zendesk request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.ErrorContext(ctx, "zendesk.request.fail", slog.String("err", err.Error()))
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.WarnContext(ctx, "zendesk.request.upstream_error", slog.Int("status", resp.StatusCode), slog.Int64("dur_ms", time.Since(start).Milliseconds()))
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Status: resp.Status, Body: string(data)}
	}

	log.DebugContext(ctx, "zendesk.request.ok", slog.Int("status", resp.StatusCode), slog.Int64("dur_ms", time.Since(start).Milliseconds()))

	if len(bytes.TrimSpace(data)) == 0 {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(data), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodGet, path, nil, query)
}

func (c *Client) post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPost, path, body, nil)
}

func (c *Client) put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodPut, path, body, nil)
}

func (c *Client) delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, nil)
}

// ListOptions are the pagination and sorting parameters shared by list
// endpoints. Zero values are omitted from the query.
type ListOptions struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string
}

// Values encodes the set options.
func (o ListOptions) Values() url.Values {
	v := url.Values{}
	if o.Page > 0 {
		v.Set("page", fmt.Sprint(o.Page))
	}
	if o.PerPage > 0 {
		v.Set("per_page", fmt.Sprint(o.PerPage))
	}
	if o.SortBy != "" {
		v.Set("sort_by", o.SortBy)
	}
	if o.SortOrder != "" {
		v.Set("sort_order", o.SortOrder)
	}
	return v
}

// envelope wraps v under key, the shape every write endpoint expects.
func envelope(key string, v any) map[string]any {
	return map[string]any{key: v}
}
