package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
)

// SessionState is what survives a restart: the identity and the refresh
// token. The short-lived access token is never persisted; it is re-minted
// on demand.
type SessionState struct {
	Username     string `json:"username"`
	RefreshToken string `json:"refresh_token"`
}

// Store is the durable-storage boundary for session state.
type Store interface {
	Load() (*SessionState, error)
	Save(state *SessionState) error
	Clear() error
}

// FileStore keeps the session state in a JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load returns nil state (not an error) when no session was persisted.
func (s *FileStore) Load() (*SessionState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var state SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	if state.RefreshToken == "" {
		return nil, nil
	}
	return &state, nil
}

func (s *FileStore) Save(state *SessionState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
