// Package session holds the per-run client session: the bearer token
// attached to outgoing requests, the last server error payload, and the
// navigation hooks the transport layer fires on 404/500 responses.
//
// The session is constructed once in main and injected everywhere it is
// needed; there is no package-level shared state.
package session

import (
	"errors"
	"sync"

	"github.com/rohitkumarofficial/reactivities/internal/credential"
)

// Navigator receives navigation signals produced by the transport layer.
// The UI implements it; a nil navigator drops the signals.
type Navigator interface {
	// NotFound is fired when the service answered 404.
	NotFound()

	// ServerError is fired when the service answered 500. The payload
	// is available from Session.ServerError.
	ServerError()
}

// Session is the injected session context shared by the transport
// pipeline and the UI. Safe for concurrent use.
type Session struct {
	mu          sync.Mutex
	token       string
	serverError string
	nav         Navigator
}

// New creates an empty session.
func New() *Session {
	return &Session{}
}

// SetNavigator installs the navigation hook. Called by the UI once it
// is ready to receive signals.
func (s *Session) SetNavigator(nav Navigator) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav = nav
}

// Token returns the current bearer token, or "" when unauthenticated.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SetToken stores the bearer token for subsequent requests.
func (s *Session) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// SetServerError records the payload of the most recent 500 response.
func (s *Session) SetServerError(payload string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.serverError = payload
}

// ServerError returns the most recent 500 payload, or "".
func (s *Session) ServerError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.serverError
}

// NavigateNotFound forwards a not-found signal to the navigator, if any.
func (s *Session) NavigateNotFound() {
	s.mu.Lock()
	nav := s.nav
	s.mu.Unlock()

	if nav != nil {
		nav.NotFound()
	}
}

// NavigateServerError forwards a server-error signal to the navigator,
// if any.
func (s *Session) NavigateServerError() {
	s.mu.Lock()
	nav := s.nav
	s.mu.Unlock()

	if nav != nil {
		nav.ServerError()
	}
}

// LoadToken restores a previously persisted token from the system
// keyring. A missing entry leaves the session unauthenticated.
func (s *Session) LoadToken() error {
	token, err := credential.Get(credential.TokenKey)
	if err != nil {
		if errors.Is(err, credential.ErrNotFound) {
			return nil
		}
		return err
	}

	s.SetToken(token)
	return nil
}

// PersistToken stores the current token in the system keyring, or
// removes the entry when the session is unauthenticated.
func (s *Session) PersistToken() error {
	token := s.Token()
	if token == "" {
		return credential.Delete(credential.TokenKey)
	}
	return credential.Set(credential.TokenKey, token)
}
