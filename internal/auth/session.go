// Package auth implements the single-user session over the credential store.
//
// The session moves through three states: no account on disk, account present
// but not logged in, and authenticated. There is no logout and no expiry; an
// authenticated session lives for the rest of the run.
package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ashwin/ledgerpad/internal/vault"
)

var (
	// ErrInvalidCredentials mirrors vault.ErrInvalidCredentials for callers
	// that only import this package.
	ErrInvalidCredentials = vault.ErrInvalidCredentials

	ErrPassphraseMismatch = errors.New("auth: passphrases do not match")
	ErrNoActiveSession    = errors.New("auth: no active session")
	ErrAccountExists      = errors.New("auth: an account already exists")
)

// Session gates access to the active user's passphrase. It replaces the
// ambient global the original tool kept; services receive the session
// explicitly.
type Session struct {
	creds *vault.CredentialStore
	user  *vault.User
}

func NewSession(creds *vault.CredentialStore) *Session {
	return &Session{creds: creds}
}

// FirstRun reports whether setup is required (no credential file yet).
func (s *Session) FirstRun() bool {
	return !s.creds.Exists()
}

// Authenticated reports whether a user is active.
func (s *Session) Authenticated() bool {
	return s.user != nil
}

// Setup creates the single account on first run and authenticates it.
func (s *Session) Setup(username, passphrase, confirm string) (vault.User, error) {
	if !s.FirstRun() {
		return vault.User{}, ErrAccountExists
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return vault.User{}, fmt.Errorf("%w: username must not be empty", ErrInvalidCredentials)
	}
	if passphrase == "" {
		return vault.User{}, fmt.Errorf("%w: passphrase must not be empty", ErrInvalidCredentials)
	}
	if passphrase != confirm {
		return vault.User{}, ErrPassphraseMismatch
	}
	u := vault.User{Username: username, Passphrase: passphrase}
	if err := s.creds.Save(u, passphrase); err != nil {
		return vault.User{}, err
	}
	s.user = &u
	return u, nil
}

// Login authenticates against the stored credential record. On failure the
// session stays unauthenticated; retry policy belongs to the caller.
func (s *Session) Login(passphrase string) (vault.User, error) {
	u, err := s.creds.Load(passphrase)
	if err != nil {
		return vault.User{}, err
	}
	s.user = &u
	return u, nil
}

// Current returns the active user, or ErrNoActiveSession before setup/login.
func (s *Session) Current() (vault.User, error) {
	if s.user == nil {
		return vault.User{}, ErrNoActiveSession
	}
	return *s.user, nil
}

// Passphrase returns the active encryption key. Stores are keyed on it for
// every read and write; nothing decrypted is cached across calls.
func (s *Session) Passphrase() (string, error) {
	u, err := s.Current()
	if err != nil {
		return "", err
	}
	return u.Passphrase, nil
}
