package repofakes

import (
	"sync"

	"github.com/mbautistas/github-oauth-login/session"
)

// FakeSessionStore is an in-memory session.Store for tests.
type FakeSessionStore struct {
	mu     sync.Mutex
	record session.Record

	LoadErr  error
	SaveErr  error
	ClearErr error
	// ClearKeepsRecord simulates a store whose clear does not take effect,
	// so logout confirmation can be exercised.
	ClearKeepsRecord bool

	Loads  int
	Saves  int
	Clears int
}

var _ session.Store = (*FakeSessionStore)(nil)

func NewFakeSessionStore() *FakeSessionStore {
	return &FakeSessionStore{}
}

func (f *FakeSessionStore) Load() (session.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Loads++
	if f.LoadErr != nil {
		return session.Record{}, f.LoadErr
	}
	return f.record, nil
}

func (f *FakeSessionStore) Save(record session.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Saves++
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.record = record
	return nil
}

func (f *FakeSessionStore) Clear() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Clears++
	if f.ClearErr != nil {
		return f.ClearErr
	}
	if !f.ClearKeepsRecord {
		f.record = session.Record{}
	}
	return nil
}

// Seed sets the stored record directly.
func (f *FakeSessionStore) Seed(record session.Record) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record = record
}

// Record returns the stored record directly.
func (f *FakeSessionStore) Record() session.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.record
}
