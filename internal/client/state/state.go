// Package state holds the in-process view of who is logged in.
package state

import (
	"sync"

	"github.com/dmitrijs2005/bujo/internal/client/models"
)

// LoginState is the current user plus a list of listeners notified on
// every change. A nil user means logged out.
type LoginState struct {
	mu        sync.RWMutex
	user      *models.User
	listeners map[int]func(*models.User)
	nextID    int
}

func New(initial *models.User) *LoginState {
	return &LoginState{user: initial, listeners: make(map[int]func(*models.User))}
}

func (s *LoginState) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

func (s *LoginState) LoggedIn() bool {
	return s.User() != nil
}

// SetUser stores u and notifies listeners outside the lock.
func (s *LoginState) SetUser(u *models.User) {
	s.mu.Lock()
	s.user = u
	fns := make([]func(*models.User), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(u)
	}
}

// Subscribe registers fn and returns a function that removes it.
func (s *LoginState) Subscribe(fn func(*models.User)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}
