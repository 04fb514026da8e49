package github

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// GitHub answers the token and user endpoints with success-shaped or
// error-shaped JSON under the same status (credential failures on /user can
// arrive as 200 OK). The helpers below turn those duck-typed bodies into
// tagged results discriminated by the presence of a known success field.

// TokenOutcome discriminates the token endpoint's reply shape.
type TokenOutcome int

const (
	// TokenGranted means the body carried an access_token.
	TokenGranted TokenOutcome = iota
	// TokenDenied means the body carried an OAuth error envelope.
	TokenDenied
	// TokenUnrecognized means the body matched neither shape.
	TokenUnrecognized
)

type TokenResult struct {
	Outcome          TokenOutcome
	AccessToken      string
	Scope            string
	TokenType        string
	ErrorCode        string
	ErrorDescription string
}

func ClassifyTokenBody(body []byte) TokenResult {
	if token := gjson.GetBytes(body, "access_token"); token.Exists() && token.String() != "" {
		return TokenResult{
			Outcome:     TokenGranted,
			AccessToken: token.String(),
			Scope:       gjson.GetBytes(body, "scope").String(),
			TokenType:   gjson.GetBytes(body, "token_type").String(),
		}
	}
	if code := gjson.GetBytes(body, "error"); code.Exists() && code.String() != "" {
		return TokenResult{
			Outcome:          TokenDenied,
			ErrorCode:        code.String(),
			ErrorDescription: gjson.GetBytes(body, "error_description").String(),
		}
	}
	return TokenResult{Outcome: TokenUnrecognized}
}

// User mirrors the profile fields the application displays and compares.
// It is only ever replaced wholesale, never partially updated.
type User struct {
	Login             string `json:"login"`
	Name              string `json:"name"`
	AvatarURL         string `json:"avatar_url"`
	HTMLURL           string `json:"html_url"`
	PublicRepos       int    `json:"public_repos"`
	TotalPrivateRepos int    `json:"total_private_repos"`
}

// UserOutcome discriminates the user endpoint's reply shape.
type UserOutcome int

const (
	// UserOK means the body carried a profile (login present).
	UserOK UserOutcome = iota
	// UserUnauthorized means the token was rejected at use-time.
	UserUnauthorized
	// UserUnrecognized means the body matched neither shape.
	UserUnrecognized
)

type UserResult struct {
	Outcome UserOutcome
	User    *User
	Message string
}

// ClassifyUserBody inspects the body, not the status: GitHub's quirk is that
// bad credentials here may come back as 200 OK with an error-shaped body.
func ClassifyUserBody(body []byte) UserResult {
	if gjson.GetBytes(body, "login").String() != "" {
		var user User
		if err := json.Unmarshal(body, &user); err != nil {
			return UserResult{Outcome: UserUnrecognized}
		}
		return UserResult{Outcome: UserOK, User: &user}
	}
	message := gjson.GetBytes(body, "message").String()
	if message == "Bad credentials" || message == "Requires authentication" {
		return UserResult{Outcome: UserUnauthorized, Message: message}
	}
	return UserResult{Outcome: UserUnrecognized, Message: message}
}
