package flow

import (
	"net/http"

	"github.com/tidwall/gjson"
)

// Known OAuth error codes on the token endpoint. All of them are terminal
// for the attempt and surface the provider's own description; the table
// exists so unrecognized codes can be flagged in the logs.
var knownOAuthErrorCodes = map[string]struct{}{
	"incorrect_client_credentials": {},
	"redirect_uri_mismatch":        {},
	"bad_verification_code":        {},
	"unverified_user_email":        {},
}

// IsKnownOAuthError reports whether the error code is in the classifier
// table.
func IsKnownOAuthError(code string) bool {
	_, ok := knownOAuthErrorCodes[code]
	return ok
}

// LoginFailureMessage maps a provider rejection to its user-facing text.
// Unrecognized codes are never dropped silently: the raw description is
// shown when present, the code itself otherwise.
func LoginFailureMessage(code, description string) string {
	if description != "" {
		return "Login fail. " + description
	}
	if code != "" {
		return "Login fail. " + code
	}
	return MsgLoginFailedExchange
}

// RepoCreationMessage maps a repository-creation status to a notification.
// 401 always means the session token died, whatever the body says.
func RepoCreationMessage(status int, body []byte) string {
	switch status {
	case http.StatusCreated:
		return MsgRepoCreated
	case http.StatusNotModified,
		http.StatusBadRequest,
		http.StatusForbidden,
		http.StatusNotFound,
		http.StatusUnprocessableEntity:
		return errorEnvelopeMessage(body)
	case http.StatusUnauthorized:
		return MsgSessionExpired
	default:
		return MsgUnexpectedStatus
	}
}

// errorEnvelopeMessage extracts the first available message from a GitHub
// error envelope: the direct message field, else the first entry of the
// errors array that exposes one.
func errorEnvelopeMessage(body []byte) string {
	if message := gjson.GetBytes(body, "message"); message.Type == gjson.String && message.String() != "" {
		return message.String()
	}
	found := ""
	gjson.GetBytes(body, "errors").ForEach(func(_, entry gjson.Result) bool {
		if message := entry.Get("message"); message.String() != "" {
			found = message.String()
			return false
		}
		return true
	})
	if found != "" {
		return found
	}
	return MsgUnknownError
}
