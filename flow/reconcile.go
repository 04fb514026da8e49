package flow

import "github.com/mbautistas/github-oauth-login/github"

// ReconcileResult says what happened to the cached profile snapshot.
type ReconcileResult int

const (
	// ProfileStored means there was no cached snapshot; the fetched one
	// is stored as-is.
	ProfileStored ReconcileResult = iota
	// ProfileUpdated means the cached snapshot was stale and has been
	// replaced wholesale by the fetched one.
	ProfileUpdated
	// ProfileUpToDate means the cached snapshot is current and stays the
	// one on display.
	ProfileUpToDate
)

// Stale reports whether the cached snapshot differs from the fetched one.
// The repository counts are the cheap freshness proxy for the whole
// profile; nothing else is compared.
func Stale(cached, fetched *github.User) bool {
	return cached.PublicRepos != fetched.PublicRepos ||
		cached.TotalPrivateRepos != fetched.TotalPrivateRepos
}

// Reconcile decides which snapshot to display and whether the store needs
// the fetched one. When the cached snapshot is current it stays on display
// even though a fresh one is available, avoiding pointless re-renders.
func Reconcile(cached, fetched *github.User) (*github.User, ReconcileResult) {
	if cached == nil {
		return fetched, ProfileStored
	}
	if Stale(cached, fetched) {
		return fetched, ProfileUpdated
	}
	return cached, ProfileUpToDate
}
