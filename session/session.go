// Package session holds the browser-session state of the application: the
// current access token and the last profile snapshot shown to the user.
package session

import "github.com/mbautistas/github-oauth-login/github"

// Record is the persisted session. Profile is only meaningful while
// AccessToken is set; invalidating the token clears both fields.
type Record struct {
	AccessToken string
	Profile     *github.User
}

// Authenticated reports whether the record carries a current token.
func (r Record) Authenticated() bool {
	return r.AccessToken != ""
}

func (r Record) Empty() bool {
	return r.AccessToken == "" && r.Profile == nil
}

// Store persists a single Record. At most one token is current per store;
// saving a record overwrites whatever was there before.
type Store interface {
	Load() (Record, error)
	Save(record Record) error
	Clear() error
}
