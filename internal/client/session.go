package client

import "sync"

// Session holds the bearer token of one logged-in user. The zero value is
// a logged-out session.
type Session struct {
	mu    sync.RWMutex
	token string
}

func NewSession() *Session { return &Session{} }

func (s *Session) Login(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *Session) Logout() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Authenticated() bool { return s.Token() != "" }
