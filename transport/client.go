package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const maxResponseBytes = 8 << 20

// Request describes a single logical call to the backend API. A Request is a
// value: the pipeline builds a fresh *http.Request from it for every network
// attempt, so a retried call never aliases the original one.
type Request struct {
	Method string
	Path   string     // relative to the client's base URL, e.g. "/businesses/42"
	Query  url.Values // optional query parameters
	Body   any        // JSON-encoded when non-nil
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Client is the low-level REST client for the PetPlace backend. It owns the
// base URL, the response envelope decoding and per-request correlation IDs.
// It attaches no credentials on its own; authenticated traffic goes through
// an AuthClient.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

// Option defines a function type to modify the Client instance.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client (primarily for testing
// and for callers that need custom transports or timeouts).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// New creates a Client for the given API base URL (including the /api prefix).
func New(baseURL string, options ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("[transport.New] baseURL is required")
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "[transport.New] parsing baseURL")
	}

	client := &Client{
		baseURL:   u,
		http:      &http.Client{Timeout: 30 * time.Second},
		userAgent: "petplace-go-client",
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Do issues a single request without credentials and decodes the envelope's
// data field into out (which may be nil when the caller only cares about the
// status).
func (c *Client) Do(ctx context.Context, req Request, out any) error {
	return c.do(ctx, req, "", out)
}

// DoWithToken issues a single request carrying the given bearer credential.
func (c *Client) DoWithToken(ctx context.Context, req Request, bearer string, out any) error {
	return c.do(ctx, req, bearer, out)
}

func (c *Client) do(ctx context.Context, req Request, bearer string, out any) error {
	httpReq, requestID, err := c.newHTTPRequest(ctx, req, bearer)
	if err != nil {
		return err
	}

	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		// No response received: a transport-level failure, never an APIError.
		return errors.Wrapf(err, "[Client.do] %s %s", req.Method, req.Path)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return errors.Wrapf(err, "[Client.do] reading response for %s %s", req.Method, req.Path)
	}

	log.Debug().
		Str("method", req.Method).
		Str("path", req.Path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("elapsed", time.Since(started)).
		Msg("api request")

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return newAPIError(resp.StatusCode, requestID, body)
	}

	if out == nil || len(body) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return errors.Wrapf(err, "[Client.do] decoding envelope for %s %s", req.Method, req.Path)
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return errors.Wrapf(err, "[Client.do] decoding data for %s %s", req.Method, req.Path)
	}
	return nil
}

func (c *Client) newHTTPRequest(ctx context.Context, req Request, bearer string) (*http.Request, string, error) {
	u := c.baseURL.JoinPath(req.Path)
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, "", errors.Wrapf(err, "[Client.newHTTPRequest] encoding body for %s %s", req.Method, req.Path)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return nil, "", errors.Wrapf(err, "[Client.newHTTPRequest] %s %s", req.Method, req.Path)
	}

	requestID := uuid.NewString()
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set("X-Request-ID", requestID)
	if req.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		httpReq.Header.Set("Authorization", "Bearer "+bearer)
	}
	return httpReq, requestID, nil
}
