package flow

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/mbautistas/github-oauth-login/github"
	"github.com/mbautistas/github-oauth-login/session"
)

// Scopes requested on the authorization redirect.
var Scopes = []string{"read:user", "repo"}

// ErrBusy is returned when a trigger arrives while an exchange or profile
// fetch is already in flight. The controller serializes its network
// operations through its own state rather than a lock.
var ErrBusy = errors.New("operation already in flight")

// Controller drives the OAuth flow: it owns the session record, talks to
// the token exchange proxy, and reports outcomes as tagged events.
type Controller struct {
	backend   Backend
	store     session.Store
	authorize *oauth2.Config
	state     State
}

func New(backend Backend, store session.Store, clientID, redirectURI string) *Controller {
	c := &Controller{
		backend: backend,
		store:   store,
		authorize: &oauth2.Config{
			ClientID:    clientID,
			RedirectURL: redirectURI,
			Scopes:      Scopes,
			Endpoint:    endpoints.GitHub,
		},
	}
	c.restoreState()
	return c
}

func (c *Controller) State() State {
	return c.state
}

// restoreState rebuilds the transient flow state from the persisted record.
func (c *Controller) restoreState() {
	record, err := c.store.Load()
	if err != nil {
		log.Err(err).Msg("Failed to load session record, starting unauthenticated")
		c.state = AwaitingLogin
		return
	}
	if record.Authenticated() {
		c.state = Authenticated
		return
	}
	c.state = AwaitingLogin
}

// AuthorizationURL builds the provider authorization URL. Navigating to it
// is a terminal transition for the current page instance.
func (c *Controller) AuthorizationURL() string {
	c.state = Redirecting
	return c.authorize.AuthCodeURL("")
}

// HandleReturn processes the URL the provider redirected back to. When a
// code parameter is present it is exchanged exactly once; the returned URL
// has the query stripped so a reload cannot re-submit the code (the caller
// must replace, not push, its history entry). Without a code parameter the
// call is a no-op, which is exactly what a reload of the cleaned URL hits.
func (c *Controller) HandleReturn(ctx context.Context, returnURL string) (string, Event, error) {
	if c.busy() {
		return returnURL, Event{}, ErrBusy
	}

	parsed, err := url.Parse(returnURL)
	if err != nil {
		return returnURL, Event{}, fmt.Errorf("[Controller HandleReturn] parse return url: %w", err)
	}
	code := parsed.Query().Get("code")
	if code == "" {
		return returnURL, Event{}, nil
	}

	c.state = ExchangingCode
	resp, err := c.backend.ExchangeCode(ctx, code)
	if err != nil {
		// Transport failure: the code may still be live, so the URL is
		// left alone for a manual retry. No automatic retry.
		c.state = AwaitingLogin
		log.Err(err).Msg("Access token exchange failed")
		return returnURL, Event{Kind: LoginFailed, Message: MsgConnectionError}, nil
	}
	if resp.Status != http.StatusOK {
		c.state = AwaitingLogin
		log.Warn().Int("status", resp.Status).Msg("Token exchange returned unexpected status")
		return returnURL, Event{Kind: LoginFailed, Message: MsgLoginFailedExchange}, nil
	}

	cleaned := stripQuery(parsed)
	result := github.ClassifyTokenBody(resp.Body)
	switch result.Outcome {
	case github.TokenGranted:
		// A fresh login overwrites any prior token; the profile snapshot
		// starts unset and is filled on the first fetch.
		if err := c.store.Save(session.Record{AccessToken: result.AccessToken}); err != nil {
			c.state = AwaitingLogin
			log.Err(err).Msg("Failed to persist access token")
			// The code was consumed upstream, so the URL is cleaned even
			// though the login did not stick.
			return cleaned, Event{Kind: LoginFailed, Message: MsgRequestError}, nil
		}
		c.state = Authenticated
		return cleaned, Event{Kind: LoginSucceeded, Message: MsgLoginSuccessful}, nil

	case github.TokenDenied:
		c.state = AwaitingLogin
		if !IsKnownOAuthError(result.ErrorCode) {
			log.Warn().Str("error_code", result.ErrorCode).Msg("Unrecognized OAuth error code")
		}
		return cleaned, Event{Kind: LoginFailed, Message: LoginFailureMessage(result.ErrorCode, result.ErrorDescription)}, nil

	default:
		c.state = AwaitingLogin
		log.Warn().Msg("Token exchange response matched no known shape")
		return cleaned, Event{Kind: LoginFailed, Message: MsgLoginFailedExchange}, nil
	}
}

// ShowProfile fetches the profile through the proxy and reconciles it with
// the cached snapshot. A rejected credential clears the whole session and
// drops back to the login prompt.
func (c *Controller) ShowProfile(ctx context.Context) (Event, error) {
	if c.busy() {
		return Event{}, ErrBusy
	}

	record, err := c.store.Load()
	if err != nil {
		return Event{}, fmt.Errorf("[Controller ShowProfile] load session: %w", err)
	}
	if !record.Authenticated() {
		return c.invalidateSession(), nil
	}

	prior := c.state
	c.state = FetchingProfile
	resp, err := c.backend.FetchUser(ctx, "Bearer "+record.AccessToken)
	if err != nil {
		c.state = prior
		log.Err(err).Msg("Profile fetch failed")
		return Event{Kind: ProfileFailed, Message: MsgProfileConnectionError}, nil
	}

	result := github.ClassifyUserBody(resp.Body)
	switch result.Outcome {
	case github.UserOK:
		display, outcome := Reconcile(record.Profile, result.User)
		if outcome != ProfileUpToDate {
			if err := c.store.Save(session.Record{AccessToken: record.AccessToken, Profile: display}); err != nil {
				c.state = prior
				log.Err(err).Msg("Failed to persist profile snapshot")
				return Event{Kind: ProfileFailed, Message: MsgRequestError}, nil
			}
		}
		c.state = Authenticated
		return Event{Kind: ProfileReady, Message: reconcileMessage(outcome), Profile: display}, nil

	case github.UserUnauthorized:
		return c.invalidateSession(), nil

	default:
		c.state = prior
		log.Warn().Int("status", resp.Status).Msg("User response matched no known shape")
		return Event{Kind: ProfileFailed, Message: MsgRequestError}, nil
	}
}

// Logout clears the session and confirms the clearance by re-reading the
// store. An unconfirmed clear keeps the session authenticated.
func (c *Controller) Logout() (Event, error) {
	if c.busy() {
		return Event{}, ErrBusy
	}

	if err := c.store.Clear(); err != nil {
		log.Err(err).Msg("Logout failed")
		return Event{Kind: LogoutFailed, Message: MsgLogoutFailed}, nil
	}
	record, err := c.store.Load()
	if err != nil || record.Authenticated() {
		log.Warn().Msg("Logout clearance could not be confirmed")
		return Event{Kind: LogoutFailed, Message: MsgLogoutFailed}, nil
	}
	c.state = AwaitingLogin
	return Event{Kind: SessionCleared}, nil
}

// invalidateSession force-clears local state after a use-time credential
// rejection. The flow passes through SessionInvalid and immediately
// recovers to the login prompt; there is no terminal error state.
func (c *Controller) invalidateSession() Event {
	c.state = SessionInvalid
	if err := c.store.Clear(); err != nil {
		log.Err(err).Msg("Failed to clear invalidated session")
	}
	c.state = AwaitingLogin
	return Event{Kind: SessionCleared, Message: MsgSessionExpired}
}

func (c *Controller) busy() bool {
	return c.state == ExchangingCode || c.state == FetchingProfile
}

func stripQuery(u *url.URL) string {
	stripped := *u
	stripped.RawQuery = ""
	stripped.Fragment = ""
	return stripped.String()
}

func reconcileMessage(outcome ReconcileResult) string {
	switch outcome {
	case ProfileUpdated:
		return MsgProfileUpdated
	case ProfileUpToDate:
		return MsgProfileUpToDate
	default:
		return ""
	}
}
