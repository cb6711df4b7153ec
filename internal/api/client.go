// Package api contains the HTTP client for the activities service:
// a transport pipeline that attaches credentials, injects an artificial
// response delay, and classifies failures, plus typed request builders
// for every endpoint.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rohitkumarofficial/reactivities/internal/session"
)

// DefaultDelay is the artificial delay applied to successful responses
// when no other value is configured.
const DefaultDelay = 1000 * time.Millisecond

// Client is the single chokepoint for every outbound call. All request
// builders delegate to do, which handles auth, the injected delay, and
// failure classification.
type Client struct {
	baseURL    string
	session    *session.Session
	httpClient *http.Client
	delay      time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithDelay overrides the artificial response delay. Zero disables it.
func WithDelay(d time.Duration) Option {
	return func(c *Client) {
		c.delay = d
	}
}

// WithHTTPClient substitutes the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a client for the service rooted at baseURL. The
// session provides the bearer token and receives the 404/500 side
// effects; it must not be nil.
func NewClient(baseURL string, sess *session.Session, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		session: sess,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		delay: DefaultDelay,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get performs an HTTP GET request and unmarshals the JSON response.
func (c *Client) Get(
	ctx context.Context,
	path string,
	result interface{},
) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// Post performs an HTTP POST request with an optional JSON body and
// unmarshals the JSON response.
func (c *Client) Post(
	ctx context.Context,
	path string,
	body interface{},
	result interface{},
) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

// Put performs an HTTP PUT request with a JSON body.
func (c *Client) Put(
	ctx context.Context,
	path string,
	body interface{},
	result interface{},
) error {
	return c.do(ctx, http.MethodPut, path, body, result)
}

// Delete performs an HTTP DELETE request.
func (c *Client) Delete(
	ctx context.Context,
	path string,
) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do is the core HTTP method. It attaches the bearer token when the
// session holds one, delays every successful response by the configured
// interval, and converts non-2xx responses into classified errors,
// firing the 404/500 session side effects before returning.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	// An absent token is not an error; the request goes out
	// unauthenticated.
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("reading response body: %w", readErr)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.fail(resp.StatusCode, respBody)
	}

	if err := c.sleep(ctx); err != nil {
		return err
	}

	// No content to parse (e.g. 204).
	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf(
			"unmarshaling response from %s %s: %w",
			method, path, err,
		)
	}

	return nil
}

// fail classifies a non-2xx response, performs the session side effects
// for 404 and 500, and returns the classified error unchanged.
func (c *Client) fail(status int, body []byte) error {
	apiErr := Classify(status, body)

	switch apiErr.Kind {
	case KindNotFound:
		c.session.NavigateNotFound()
	case KindServer:
		c.session.SetServerError(apiErr.Body)
		c.session.NavigateServerError()
	}

	return apiErr
}

// sleep applies the injected response delay, honoring cancellation.
func (c *Client) sleep(ctx context.Context) error {
	if c.delay <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(c.delay):
		return nil
	}
}
