// Package session holds the authenticated identity and bearer credential for
// the lifetime of the client process, persisted to disk so a restart behaves
// like a browser page reload.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/jobport/jobport-client/internal/access"
)

// Profile is the user half of the login/register response.
type Profile struct {
	ID       string      `json:"id"`
	FullName string      `json:"fullName"`
	UserName string      `json:"userName,omitempty"`
	Email    string      `json:"email"`
	Role     access.Role `json:"role"`
	Contact  string      `json:"contact,omitempty"`
}

// Session pairs the bearer token with the profile it was issued for.
type Session struct {
	Token string  `json:"token"`
	User  Profile `json:"user"`
}

// Store is the single owner of the session. It is safe for concurrent reads
// but the client is effectively single-writer: login, logout and the 401
// handler.
type Store struct {
	mu      sync.RWMutex
	path    string
	current *Session
}

// NewStore loads any persisted session from path. A missing or unreadable
// file simply means starting unauthenticated.
func NewStore(path string) *Store {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil || sess.Token == "" {
		return s
	}
	s.current = &sess
	return s
}

// Set persists the credential and profile, replacing any previous session.
func (s *Store) Set(token string, user Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &Session{Token: token, User: user}
	return s.persist()
}

// Get returns the current session, false when unauthenticated.
func (s *Store) Get() (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Session{}, false
	}
	return *s.current, true
}

// Role returns the current role, RoleAnonymous when unauthenticated.
func (s *Store) Role() access.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return access.RoleAnonymous
	}
	return s.current.User.Role
}

// Token implements apiclient.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

// UpdateProfile replaces the stored profile, keeping the credential. Used
// after a successful profile edit so the next screen sees fresh data.
func (s *Store) UpdateProfile(user Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return errors.New("no active session")
	}
	s.current.User = user
	return s.persist()
}

// Clear removes credential and profile. The next Get returns unauthenticated
// and any access decision made afterwards sees RoleAnonymous.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "unable to remove session file")
	}
	return nil
}

func (s *Store) persist() error {
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.Wrap(err, "unable to create session directory")
	}
	data, err := json.Marshal(s.current)
	if err != nil {
		return errors.Wrap(err, "unable to encode session")
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return errors.Wrap(err, "unable to write session file")
	}
	return nil
}

// ExpiresAt reports the token's exp claim when it carries one. The claim is
// read without signature verification: the client never trusts the token for
// authorisation, the backend does, so this is only a hint for display. No
// client-side expiry timer runs; an expired credential is discovered through
// a 401 and the store is cleared then.
func (s Session) ExpiresAt() (time.Time, bool) {
	var claims jwt.StandardClaims
	parser := jwt.Parser{SkipClaimsValidation: true}
	if _, _, err := parser.ParseUnverified(s.Token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == 0 {
		return time.Time{}, false
	}
	return time.Unix(claims.ExpiresAt, 0), true
}
