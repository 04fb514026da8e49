package flow

import "github.com/mbautistas/github-oauth-login/github"

// EventKind tags the outcome of a controller operation. The view layer
// interprets events; the controller never reaches into UI state.
type EventKind int

const (
	// NoEvent is the zero value: the operation had nothing to report
	// (e.g. a page load without a code parameter).
	NoEvent EventKind = iota
	LoginSucceeded
	LoginFailed
	SessionCleared
	ProfileReady
	ProfileFailed
	LogoutFailed
)

// Event is the tagged result handed to the front end. Message is the
// user-facing notification text, empty when nothing should be shown.
type Event struct {
	Kind    EventKind
	Message string
	Profile *github.User
}

// None reports whether the event carries nothing to act on.
func (e Event) None() bool {
	return e.Kind == NoEvent
}

// User-facing notification texts, kept identical to the web build.
const (
	MsgLoginSuccessful        = "Login successful!"
	MsgLoginFailedExchange    = "Login fail, error trying to get access token."
	MsgConnectionError        = "Connection error, could not access the server."
	MsgProfileConnectionError = "Connection error, fail to get the user data from the server."
	MsgRequestError           = "Error making request to server."
	MsgSessionExpired         = "Session token has expired or is invalid, please log in again."
	MsgProfileUpdated         = "User data updated!"
	MsgProfileUpToDate        = "The user data is up to date."
	MsgLogoutFailed           = "Logout fail :("
	MsgRepoCreated            = "Repository created successfully."
	MsgUnknownError           = "Unknown error."
	MsgUnexpectedStatus       = "Unexpected status code."
)
