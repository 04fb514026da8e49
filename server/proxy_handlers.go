package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json; charset=utf-8"

// AccessTokenHandler exchanges the browser-supplied authorization code for
// an access token, injecting the server-held client credentials. The
// provider's JSON reply is passed through verbatim, success or error shaped;
// interpretation belongs to the caller. At most one upstream attempt per
// request, never a retry: codes are single-use.
func (s *Server) AccessTokenHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")

		resp, err := s.provider.ExchangeCode(
			r.Context(),
			s.config.GetClientID(),
			s.config.GetClientSecret(),
			s.config.GetRedirectURI(),
			code,
		)
		if err != nil {
			log.Err(err).Msg("Upstream token exchange failed")
			writeUpstreamError(w)
			return
		}

		writeVerbatim(w, resp.Status, resp.Body)
	}
}

// UserDataHandler forwards the Authorization header to the provider's user
// endpoint and passes the JSON body back untouched, whatever its shape.
func (s *Server) UserDataHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := s.provider.FetchUser(r.Context(), r.Header.Get("Authorization"))
		if err != nil {
			log.Err(err).Msg("Upstream user fetch failed")
			writeUpstreamError(w)
			return
		}

		writeVerbatim(w, resp.Status, resp.Body)
	}
}

// PreflightHandler terminates CORS preflight requests; the cors middleware
// has already attached the response headers.
func (s *Server) PreflightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}

func writeVerbatim(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// writeUpstreamError replaces the original implementation's silent hang on
// upstream failure with an explicit error envelope.
func writeUpstreamError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(http.StatusBadGateway)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             "connection_error",
		"error_description": "could not reach the identity provider",
	})
}
