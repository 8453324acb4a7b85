package sdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is used when no API URL is configured.
const DefaultBaseURL = "http://localhost:4000"

// APIClient issues authenticated JSON requests against the CRM REST API.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
	logger     *pterm.Logger
	userAgent  string
}

// ClientOptions configures SDK client construction.
type ClientOptions struct {
	HTTPClient *http.Client
	Session    *Session
	Logger     *pterm.Logger
	UserAgent  string
}

// ClientOption mutates ClientOptions.
type ClientOption func(*ClientOptions)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(opts *ClientOptions) {
		opts.HTTPClient = client
	}
}

// WithSession sets the session the bearer credential is read from.
func WithSession(session *Session) ClientOption {
	return func(opts *ClientOptions) {
		opts.Session = session
	}
}

// WithLogger enables debug logging of requests.
func WithLogger(logger *pterm.Logger) ClientOption {
	return func(opts *ClientOptions) {
		opts.Logger = logger
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(opts *ClientOptions) {
		opts.UserAgent = ua
	}
}

// NewClient creates a client for the API at baseURL. Without a session option the
// client starts unauthenticated with an in-memory session.
func NewClient(baseURL string, optFns ...ClientOption) *APIClient {
	opts := ClientOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Session == nil {
		opts.Session = NewSession(nil)
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: opts.HTTPClient,
		session:    opts.Session,
		logger:     opts.Logger,
		userAgent:  opts.UserAgent,
	}
}

// BaseURL returns the API root the client talks to.
func (c *APIClient) BaseURL() string { return c.baseURL }

// Session returns the session backing the client.
func (c *APIClient) Session() *Session { return c.session }

// Request performs one call. body, when non-nil, is sent as JSON. A 2xx response body is
// decoded into out when out is non-nil and the body is not empty. Non-2xx responses
// yield *APIError. There is no retry.
func (c *APIClient) Request(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	if token, ok := c.session.Credential(); ok {
		(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
	}

	c.debug("api request", "method", method, "path", path, "request_id", requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	c.debug("api response", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newAPIError(resp.StatusCode, data)
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *APIClient) get(ctx context.Context, path string, out any) error {
	return c.Request(ctx, http.MethodGet, path, nil, out)
}

func (c *APIClient) post(ctx context.Context, path string, body, out any) error {
	return c.Request(ctx, http.MethodPost, path, body, out)
}

func (c *APIClient) patch(ctx context.Context, path string, body, out any) error {
	return c.Request(ctx, http.MethodPatch, path, body, out)
}

func (c *APIClient) remove(ctx context.Context, path string) error {
	return c.Request(ctx, http.MethodDelete, path, nil, nil)
}

func (c *APIClient) debug(msg string, kv ...any) {
	if c.logger == nil {
		return
	}
	c.logger.Debug(msg, c.logger.Args(kv...))
}

// resourcePath joins a collection with an escaped identifier.
func resourcePath(collection, id string, rest ...string) string {
	parts := append([]string{collection, url.PathEscape(id)}, rest...)
	return strings.Join(parts, "/")
}
