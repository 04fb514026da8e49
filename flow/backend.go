package flow

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/mbautistas/github-oauth-login/github"
)

// Backend is the token exchange proxy as seen from the client side.
type Backend interface {
	ExchangeCode(ctx context.Context, code string) (github.RawResponse, error)
	FetchUser(ctx context.Context, authorization string) (github.RawResponse, error)
}

// ProxyClient calls the proxy's /getaccesstoken and /getuserdata routes.
type ProxyClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ Backend = (*ProxyClient)(nil)

type ProxyClientOption func(*ProxyClient)

func WithProxyHTTPClient(httpClient *http.Client) ProxyClientOption {
	return func(p *ProxyClient) {
		p.httpClient = httpClient
	}
}

func NewProxyClient(baseURL string, options ...ProxyClientOption) *ProxyClient {
	p := &ProxyClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *ProxyClient) ExchangeCode(ctx context.Context, code string) (github.RawResponse, error) {
	endpoint := p.baseURL + "/getaccesstoken?code=" + url.QueryEscape(code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return github.RawResponse{}, fmt.Errorf("[ProxyClient ExchangeCode] build request: %w", err)
	}
	return p.do(req)
}

func (p *ProxyClient) FetchUser(ctx context.Context, authorization string) (github.RawResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/getuserdata", nil)
	if err != nil {
		return github.RawResponse{}, fmt.Errorf("[ProxyClient FetchUser] build request: %w", err)
	}
	req.Header.Set("Authorization", authorization)
	return p.do(req)
}

func (p *ProxyClient) do(req *http.Request) (github.RawResponse, error) {
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return github.RawResponse{}, fmt.Errorf("[ProxyClient] request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return github.RawResponse{}, fmt.Errorf("[ProxyClient] read response body: %w", err)
	}
	return github.RawResponse{Status: resp.StatusCode, Body: body}, nil
}
