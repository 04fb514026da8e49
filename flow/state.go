// Package flow orchestrates the OAuth login lifecycle: redirect to the
// provider, authorization-code exchange through the token proxy, session
// persistence, profile reconciliation, and error classification.
package flow

// State is the transient flow position. It is never persisted; it gets
// reconstructed from the session record on startup.
type State int

const (
	AwaitingLogin State = iota
	Redirecting
	ExchangingCode
	FetchingProfile
	Authenticated
	SessionInvalid
)

func (s State) String() string {
	switch s {
	case AwaitingLogin:
		return "awaiting_login"
	case Redirecting:
		return "redirecting"
	case ExchangingCode:
		return "exchanging_code"
	case FetchingProfile:
		return "fetching_profile"
	case Authenticated:
		return "authenticated"
	case SessionInvalid:
		return "session_invalid"
	default:
		return "unknown"
	}
}
