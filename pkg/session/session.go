// Package session persists the active user and store between runs.
// The session replaces the original's process-global state with an
// explicit value whose lifecycle is documented: load at process start,
// save on every user or store change, clear on logout.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
)

// Session is the process-wide selection state.
type Session struct {
	UserID  uint `json:"user_id"`
	StoreID uint `json:"store_id"`
}

// Store reads and writes the session file.
type Store struct {
	path string
}

// NewStore creates a session store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the saved session, or nil when there is none. An absent
// file is "no session"; an unparsable file is discarded, not repaired.
func (s *Store) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		_ = os.Remove(s.path)
		return nil, nil
	}
	if sess.UserID == 0 {
		return nil, nil
	}
	return &sess, nil
}

// Save writes the session to disk.
func (s *Store) Save(sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Clear removes the session file. A missing file is not an error.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
