// Package api wraps the helpdesk backend's REST surface. Every call
// attaches the bearer token from the session, returns parsed JSON on
// success, and maps failures to APIError or NetworkError. The client
// holds no ticket state; callers re-fetch after every mutation.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// TokenSource supplies the current bearer token. An empty token means
// the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-value TokenSource, used in tests and for
// one-off calls outside a stored session.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Client represents the helpdesk API client.
type Client struct {
	httpClient *resty.Client
	baseURL    string
	tokens     TokenSource
	logger     *log.Logger

	// Service clients
	Auth    *AuthService
	Tickets *TicketsService
}

// Config represents client configuration.
type Config struct {
	BaseURL    string
	Tokens     TokenSource
	UserAgent  string
	Timeout    time.Duration
	RetryCount int
	Debug      bool
	Logger     *log.Logger
}

// NewClient creates a new helpdesk API client.
func NewClient(config *Config) *Client {
	if config.UserAgent == "" {
		config.UserAgent = "helpdesk-cli/1.0.0"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard, "", 0)
	}

	httpClient := resty.New().
		SetBaseURL(config.BaseURL).
		SetTimeout(config.Timeout).
		SetRetryCount(config.RetryCount).
		SetHeader("User-Agent", config.UserAgent).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if config.Debug {
		httpClient.SetDebug(true)
	}

	client := &Client{
		httpClient: httpClient,
		baseURL:    config.BaseURL,
		tokens:     config.Tokens,
		logger:     config.Logger,
	}

	client.Auth = &AuthService{client: client}
	client.Tickets = &TicketsService{client: client}

	httpClient.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		client.setAuth(req)
		return nil
	})

	httpClient.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		return client.handleError(resp)
	})

	return client
}

// setAuth attaches the bearer token when one is available.
func (c *Client) setAuth(req *resty.Request) {
	if c.tokens == nil {
		return
	}
	if token := c.tokens.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
}

// detailBody is the error body shape the backend emits.
type detailBody struct {
	Detail string `json:"detail"`
}

// handleError maps non-success responses to APIError, preserving the
// server's detail message when the body is parseable.
func (c *Client) handleError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}

	var body detailBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Detail != "" {
		c.logger.Printf("%s %s -> %d: %s", resp.Request.Method, resp.Request.URL, resp.StatusCode(), body.Detail)
		return NewAPIError(resp.StatusCode(), body.Detail)
	}

	c.logger.Printf("%s %s -> %d", resp.Request.Method, resp.Request.URL, resp.StatusCode())
	return NewAPIError(resp.StatusCode(), "")
}

// wrapTransport classifies an error coming out of a resty call:
// backend errors from the response middleware pass through, anything
// else is a transport failure.
func (c *Client) wrapTransport(operation, path string, err error) error {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &NetworkError{
		Operation: operation,
		URL:       c.baseURL + path,
		Err:       err,
	}
}

// Get performs a GET request, decoding the response into result.
func (c *Client) Get(ctx context.Context, path string, result interface{}) error {
	if _, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		Get(path); err != nil {
		return c.wrapTransport("GET", path, err)
	}
	return nil
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body, result interface{}) error {
	req := c.httpClient.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	if _, err := req.Post(path); err != nil {
		return c.wrapTransport("POST", path, err)
	}
	return nil
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body, result interface{}) error {
	req := c.httpClient.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	if _, err := req.Put(path); err != nil {
		return c.wrapTransport("PUT", path, err)
	}
	return nil
}
