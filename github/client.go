// Package github talks to the GitHub OAuth and REST endpoints. The token
// exchange and user calls are pure passthrough: the proxy returns whatever
// GitHub sent, byte for byte, and leaves interpretation to the caller.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultOAuthBaseURL = "https://github.com"
	defaultAPIBaseURL   = "https://api.github.com"

	// The original left hung upstream requests unresolved forever; every
	// call here is bounded instead.
	defaultTimeout = 15 * time.Second

	acceptJSON       = "application/json"
	acceptGithubJSON = "application/vnd.github+json"
)

// RawResponse is an upstream reply carried verbatim: status plus body, no
// interpretation applied.
type RawResponse struct {
	Status int
	Body   []byte
}

type Client struct {
	httpClient   *http.Client
	oauthBaseURL string
	apiBaseURL   string
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client (primarily for testing).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithOAuthBaseURL points the OAuth endpoints somewhere other than github.com.
func WithOAuthBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.oauthBaseURL = baseURL
	}
}

// WithAPIBaseURL points the REST endpoints somewhere other than api.github.com.
func WithAPIBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.apiBaseURL = baseURL
	}
}

func NewClient(options ...Option) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: defaultTimeout},
		oauthBaseURL: defaultOAuthBaseURL,
		apiBaseURL:   defaultAPIBaseURL,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// ExchangeCode swaps a single-use authorization code for an access token,
// injecting the server-held client credentials. The code must never be
// retried after this call; GitHub rejects reused codes.
func (c *Client) ExchangeCode(ctx context.Context, clientID, clientSecret, redirectURI, code string) (RawResponse, error) {
	params := url.Values{}
	params.Set("client_id", clientID)
	params.Set("client_secret", clientSecret)
	params.Set("code", code)
	params.Set("redirect_uri", redirectURI)

	endpoint := c.oauthBaseURL + "/login/oauth/access_token?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return RawResponse{}, fmt.Errorf("[Client ExchangeCode] build request: %w", err)
	}
	req.Header.Set("Accept", acceptJSON)

	resp, err := c.do(req)
	if err != nil {
		return RawResponse{}, fmt.Errorf("[Client ExchangeCode] %w", err)
	}
	return resp, nil
}

// FetchUser forwards the Authorization header as-is to the user endpoint.
func (c *Client) FetchUser(ctx context.Context, authorization string) (RawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+"/user", nil)
	if err != nil {
		return RawResponse{}, fmt.Errorf("[Client FetchUser] build request: %w", err)
	}
	req.Header.Set("Authorization", authorization)

	resp, err := c.do(req)
	if err != nil {
		return RawResponse{}, fmt.Errorf("[Client FetchUser] %w", err)
	}
	return resp, nil
}

// NewRepository is the request body for repository creation.
type NewRepository struct {
	Name        string `json:"name"`
	Homepage    string `json:"homepage"`
	Description string `json:"description"`
	Private     bool   `json:"private"`
}

// CreateRepository creates a repository for the token's owner and returns the
// raw reply so the caller can run it through the status table.
func (c *Client) CreateRepository(ctx context.Context, token string, repo NewRepository) (RawResponse, error) {
	body, err := json.Marshal(repo)
	if err != nil {
		return RawResponse{}, fmt.Errorf("[Client CreateRepository] encode body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBaseURL+"/user/repos", bytes.NewReader(body))
	if err != nil {
		return RawResponse{}, fmt.Errorf("[Client CreateRepository] build request: %w", err)
	}
	c.setAPIHeaders(req, token)

	resp, err := c.do(req)
	if err != nil {
		return RawResponse{}, fmt.Errorf("[Client CreateRepository] %w", err)
	}
	return resp, nil
}

func (c *Client) setAPIHeaders(req *http.Request, token string) {
	req.Header.Set("Accept", acceptGithubJSON)
	req.Header.Set("Authorization", "Bearer "+token)
}

func (c *Client) do(req *http.Request) (RawResponse, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return RawResponse{}, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return RawResponse{}, fmt.Errorf("read response body: %w", err)
	}
	return RawResponse{Status: resp.StatusCode, Body: body}, nil
}
