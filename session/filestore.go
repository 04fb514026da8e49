package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/mbautistas/github-oauth-login/github"
)

// Storage entry names, kept identical to the web build's localStorage keys.
const (
	accessTokenKey = "accessToken"
	userDataKey    = "userData"
)

// FileStore persists the session record as two files in a folder: the raw
// token string and the JSON-serialized profile snapshot.
type FileStore struct {
	dir string
}

var _ Store = (*FileStore)(nil)

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (s *FileStore) Load() (Record, error) {
	token, err := s.readEntry(accessTokenKey)
	if err != nil {
		return Record{}, fmt.Errorf("[FileStore Load] read token: %w", err)
	}
	if token == "" {
		// No token means no session; a leftover profile entry is stale.
		return Record{}, nil
	}

	record := Record{AccessToken: token}
	data, err := s.readEntry(userDataKey)
	if err != nil {
		return Record{}, fmt.Errorf("[FileStore Load] read profile: %w", err)
	}
	if data != "" {
		var user github.User
		if err := json.Unmarshal([]byte(data), &user); err == nil && user.Login != "" {
			record.Profile = &user
		}
	}
	return record, nil
}

func (s *FileStore) Save(record Record) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("[FileStore Save] create folder: %w", err)
	}
	if err := os.WriteFile(s.entryPath(accessTokenKey), []byte(record.AccessToken), 0o600); err != nil {
		return fmt.Errorf("[FileStore Save] write token: %w", err)
	}
	if record.Profile == nil {
		return s.removeEntry(userDataKey)
	}
	data, err := json.Marshal(record.Profile)
	if err != nil {
		return fmt.Errorf("[FileStore Save] encode profile: %w", err)
	}
	if err := os.WriteFile(s.entryPath(userDataKey), data, 0o600); err != nil {
		return fmt.Errorf("[FileStore Save] write profile: %w", err)
	}
	return nil
}

// Clear removes both entries. Clearing an already-empty store is a no-op.
func (s *FileStore) Clear() error {
	if err := s.removeEntry(accessTokenKey); err != nil {
		return fmt.Errorf("[FileStore Clear] remove token: %w", err)
	}
	if err := s.removeEntry(userDataKey); err != nil {
		return fmt.Errorf("[FileStore Clear] remove profile: %w", err)
	}
	return nil
}

func (s *FileStore) readEntry(key string) (string, error) {
	data, err := os.ReadFile(s.entryPath(key))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) removeEntry(key string) error {
	err := os.Remove(s.entryPath(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (s *FileStore) entryPath(key string) string {
	return filepath.Join(s.dir, key)
}
