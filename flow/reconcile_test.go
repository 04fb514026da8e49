package flow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mbautistas/github-oauth-login/flow"
	"github.com/mbautistas/github-oauth-login/github"
)

func TestReconcileNoCachedSnapshot(t *testing.T) {
	fetched := &github.User{Login: "octocat", PublicRepos: 5, TotalPrivateRepos: 2}

	display, outcome := flow.Reconcile(nil, fetched)
	require.Equal(t, flow.ProfileStored, outcome)
	require.Same(t, fetched, display)
}

func TestReconcileUpToDate(t *testing.T) {
	cached := &github.User{Login: "octocat", PublicRepos: 5, TotalPrivateRepos: 2}
	fetched := &github.User{Login: "octocat", PublicRepos: 5, TotalPrivateRepos: 2}

	display, outcome := flow.Reconcile(cached, fetched)
	require.Equal(t, flow.ProfileUpToDate, outcome)
	require.Same(t, cached, display)
}

func TestReconcileStaleReplacedWholesale(t *testing.T) {
	cached := &github.User{Login: "octocat", PublicRepos: 5, TotalPrivateRepos: 2}
	fetched := &github.User{Login: "octocat", PublicRepos: 6, TotalPrivateRepos: 2}

	display, outcome := flow.Reconcile(cached, fetched)
	require.Equal(t, flow.ProfileUpdated, outcome)
	require.Same(t, fetched, display)
}

func TestStaleComparesOnlyRepoCounts(t *testing.T) {
	tests := []struct {
		name    string
		cached  github.User
		fetched github.User
		want    bool
	}{
		{
			name:    "identical counts",
			cached:  github.User{PublicRepos: 5, TotalPrivateRepos: 2},
			fetched: github.User{PublicRepos: 5, TotalPrivateRepos: 2},
			want:    false,
		},
		{
			name:    "public repos changed",
			cached:  github.User{PublicRepos: 5, TotalPrivateRepos: 2},
			fetched: github.User{PublicRepos: 6, TotalPrivateRepos: 2},
			want:    true,
		},
		{
			name:    "private repos changed",
			cached:  github.User{PublicRepos: 5, TotalPrivateRepos: 2},
			fetched: github.User{PublicRepos: 5, TotalPrivateRepos: 3},
			want:    true,
		},
		{
			name:    "other fields ignored",
			cached:  github.User{Name: "Old Name", AvatarURL: "old.png", PublicRepos: 5},
			fetched: github.User{Name: "New Name", AvatarURL: "new.png", PublicRepos: 5},
			want:    false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, flow.Stale(&tc.cached, &tc.fetched))
		})
	}
}
