package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mbautistas/github-oauth-login/github"
	"github.com/mbautistas/github-oauth-login/internal/config"
	"github.com/mbautistas/github-oauth-login/server"
)

type stubConfig struct {
	providerURL    string
	providerAPIURL string
	origins        config.AllowedOrigins
}

func (c stubConfig) GetPort() string           { return ":0" }
func (c stubConfig) GetAppName() string        { return "Github Login Test" }
func (c stubConfig) GetClientID() string       { return "client-1" }
func (c stubConfig) GetClientSecret() string   { return "secret-1" }
func (c stubConfig) GetRedirectURI() string    { return "http://localhost:3000/callback" }
func (c stubConfig) GetProviderURL() string    { return c.providerURL }
func (c stubConfig) GetProviderAPIURL() string { return c.providerAPIURL }
func (c stubConfig) GetEnv() string            { return "TEST" }

func (c stubConfig) GetAllowedOrigins() config.AllowedOrigins {
	if c.origins != nil {
		return c.origins
	}
	return config.AllowedOrigins{"*": {}}
}
func (c stubConfig) GetAllowedMethods() string { return "GET, POST, PUT, PATCH, DELETE" }
func (c stubConfig) GetAllowedHeaders() string { return "Content-Type, Authorization" }

func newTestServer(cfg stubConfig) *server.Server {
	provider := github.NewClient(
		github.WithOAuthBaseURL(cfg.providerURL),
		github.WithAPIBaseURL(cfg.providerAPIURL),
	)
	return server.New(cfg, provider)
}

func TestAccessTokenInjectsCredentialsAndPassesThrough(t *testing.T) {
	body := `{"access_token":"gho_token","scope":"read:user repo","token_type":"bearer"}`
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/login/oauth/access_token", r.URL.Path)
		query := r.URL.Query()
		require.Equal(t, "client-1", query.Get("client_id"))
		require.Equal(t, "secret-1", query.Get("client_secret"))
		require.Equal(t, "abc123", query.Get("code"))
		require.Equal(t, "http://localhost:3000/callback", query.Get("redirect_uri"))
		_, _ = w.Write([]byte(body))
	}))
	defer upstream.Close()

	s := newTestServer(stubConfig{providerURL: upstream.URL, providerAPIURL: upstream.URL})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/getaccesstoken?code=abc123", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, body, rec.Body.String())
}

func TestAccessTokenErrorEnvelopePassesThroughVerbatim(t *testing.T) {
	body := `{"error":"bad_verification_code","error_description":"The code passed is incorrect or expired."}`
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	defer upstream.Close()

	s := newTestServer(stubConfig{providerURL: upstream.URL, providerAPIURL: upstream.URL})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/getaccesstoken?code=stale", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, body, rec.Body.String())
}

func TestAccessTokenUpstreamFailureGetsErrorResponse(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close() // Provider unreachable.

	s := newTestServer(stubConfig{providerURL: upstream.URL, providerAPIURL: upstream.URL})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/getaccesstoken?code=abc123", nil))

	// The original sent nothing at all here; the proxy now answers with an
	// explicit error envelope.
	require.Equal(t, http.StatusBadGateway, rec.Code)
	require.JSONEq(t, `{"error":"connection_error","error_description":"could not reach the identity provider"}`, rec.Body.String())
}

func TestUserDataForwardsAuthorizationHeader(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/user", r.URL.Path)
		require.Equal(t, "Bearer gho_token", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"login":"octocat"}`))
	}))
	defer upstream.Close()

	s := newTestServer(stubConfig{providerURL: upstream.URL, providerAPIURL: upstream.URL})

	req := httptest.NewRequest(http.MethodGet, "/getuserdata", nil)
	req.Header.Set("Authorization", "Bearer gho_token")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `{"login":"octocat"}`, rec.Body.String())
}

func TestUserDataErrorBodyPassesThrough(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Credential failures can arrive as 200 OK with an error body;
		// the proxy must not interpret them.
		_, _ = w.Write([]byte(`{"message":"Bad credentials"}`))
	}))
	defer upstream.Close()

	s := newTestServer(stubConfig{providerURL: upstream.URL, providerAPIURL: upstream.URL})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/getuserdata", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `{"message":"Bad credentials"}`, rec.Body.String())
}

func TestCorsWildcardOrigin(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	s := newTestServer(stubConfig{providerURL: upstream.URL, providerAPIURL: upstream.URL})

	req := httptest.NewRequest(http.MethodGet, "/getuserdata", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCorsAllowedOriginEchoedBack(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	s := newTestServer(stubConfig{
		providerURL:    upstream.URL,
		providerAPIURL: upstream.URL,
		origins:        config.AllowedOrigins{"http://localhost:3000": {}},
	})

	req := httptest.NewRequest(http.MethodGet, "/getuserdata", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCorsPreflight(t *testing.T) {
	s := newTestServer(stubConfig{providerURL: "http://unused", providerAPIURL: "http://unused"})

	req := httptest.NewRequest(http.MethodOptions, "/getaccesstoken", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "GET, POST, PUT, PATCH, DELETE", rec.Header().Get("Access-Control-Allow-Methods"))
	require.Equal(t, "Content-Type, Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
}

func TestRequestIDAttached(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	s := newTestServer(stubConfig{providerURL: upstream.URL, providerAPIURL: upstream.URL})

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/getuserdata", nil))
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	req := httptest.NewRequest(http.MethodGet, "/getuserdata", nil)
	req.Header.Set("X-Request-Id", "fixed-id")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	require.Equal(t, "fixed-id", rec.Header().Get("X-Request-Id"))
}
