package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// User is the locally persisted account record. Its presence on disk is the
// sole session indicator; there is no token or server-tracked session. The
// password travels in the record because profile updates PUT the full body
// back to the backend (a documented defect inherited from the design).
type User struct {
	ID               string `json:"id"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	BirthDate        string `json:"birthDate"`
	Address          string `json:"address"`
	RegistrationDate string `json:"registrationDate"`
	Password         string `json:"password"`
}

// FullName renders "FirstName LastName" for the navbar and profile header.
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

var (
	// ErrNoSession means no user is signed in.
	ErrNoSession = errors.New("session: no current user")
	// ErrCorrupt means the stored record was unparsable; the store clears it
	// before returning this (forced logout).
	ErrCorrupt = errors.New("session: stored user unreadable")
)

const fileName = "currentUser.json"

// Store persists the current user under dir.
type Store struct {
	dir string
}

// NewStore roots the session at dir. An empty dir falls back to the
// platform user config directory.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("session: config dir: %w", err)
		}
		dir = filepath.Join(base, "bylocation")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("session: mkdir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path() string { return filepath.Join(s.dir, fileName) }

// Load reads the current user. A missing file is ErrNoSession; an
// unparsable file is removed and reported as ErrCorrupt.
func (s *Store) Load() (User, error) {
	data, err := os.ReadFile(s.path())
	if err != nil {
		if os.IsNotExist(err) {
			return User{}, ErrNoSession
		}
		return User{}, fmt.Errorf("session: read: %w", err)
	}
	var u User
	if err := json.Unmarshal(data, &u); err != nil || u.ID == "" {
		_ = os.Remove(s.path())
		return User{}, ErrCorrupt
	}
	return u, nil
}

// Save writes the user record atomically (tmp + rename).
func (s *Store) Save(u User) error {
	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return fmt.Errorf("session: marshal: %w", err)
	}
	tmp := s.path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("session: write: %w", err)
	}
	if err := os.Rename(tmp, s.path()); err != nil {
		return fmt.Errorf("session: rename: %w", err)
	}
	return nil
}

// Clear signs the user out. Clearing an absent session is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path()); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}
