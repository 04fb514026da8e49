package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mbautistas/github-oauth-login/github"
	"github.com/mbautistas/github-oauth-login/session"
)

func TestFileStoreRoundTrip(t *testing.T) {
	store := session.NewFileStore(t.TempDir())

	record := session.Record{
		AccessToken: "gho_token",
		Profile: &github.User{
			Login:             "octocat",
			Name:              "The Octocat",
			PublicRepos:       5,
			TotalPrivateRepos: 2,
		},
	}
	require.NoError(t, store.Save(record))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, record.AccessToken, loaded.AccessToken)
	require.Equal(t, record.Profile, loaded.Profile)
}

func TestFileStoreLoadEmpty(t *testing.T) {
	store := session.NewFileStore(t.TempDir())

	record, err := store.Load()
	require.NoError(t, err)
	require.True(t, record.Empty())
	require.False(t, record.Authenticated())
}

func TestFileStoreSaveTokenOnlyRemovesProfile(t *testing.T) {
	store := session.NewFileStore(t.TempDir())

	require.NoError(t, store.Save(session.Record{
		AccessToken: "old-token",
		Profile:     &github.User{Login: "octocat"},
	}))

	// A fresh login stores only the token; the stale snapshot must go.
	require.NoError(t, store.Save(session.Record{AccessToken: "new-token"}))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "new-token", loaded.AccessToken)
	require.Nil(t, loaded.Profile)
}

func TestFileStoreClearIsIdempotent(t *testing.T) {
	store := session.NewFileStore(t.TempDir())

	require.NoError(t, store.Save(session.Record{
		AccessToken: "gho_token",
		Profile:     &github.User{Login: "octocat"},
	}))

	require.NoError(t, store.Clear())
	first, err := store.Load()
	require.NoError(t, err)

	require.NoError(t, store.Clear())
	second, err := store.Load()
	require.NoError(t, err)

	require.True(t, first.Empty())
	require.Equal(t, first, second)
}

func TestFileStoreClearOnMissingFolder(t *testing.T) {
	store := session.NewFileStore(filepath.Join(t.TempDir(), "never-created"))
	require.NoError(t, store.Clear())
}

func TestFileStoreProfileWithoutTokenIsStale(t *testing.T) {
	dir := t.TempDir()
	// A leftover profile entry with no token must not resurface.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "userData"), []byte(`{"login":"octocat"}`), 0o600))

	store := session.NewFileStore(dir)
	record, err := store.Load()
	require.NoError(t, err)
	require.True(t, record.Empty())
}

func TestFileStoreCorruptProfileIsDropped(t *testing.T) {
	dir := t.TempDir()
	store := session.NewFileStore(dir)
	require.NoError(t, store.Save(session.Record{AccessToken: "gho_token"}))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "userData"), []byte(`{not json`), 0o600))

	record, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "gho_token", record.AccessToken)
	require.Nil(t, record.Profile)
}
