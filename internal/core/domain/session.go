// internal/core/domain/session.go
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is one continuous run from login to logout. It owns the
// inventory for its whole lifetime; nothing else mutates it.
type Session struct {
	ID        uuid.UUID
	Username  string
	Inventory Inventory
	StartedAt time.Time
	closed    bool
}

// NewSession opens a session for username with an empty inventory
func NewSession(username string) *Session {
	return &Session{
		ID:        uuid.New(),
		Username:  username,
		Inventory: NewInventory(),
		StartedAt: time.Now(),
	}
}

// Active reports whether the session is still open
func (s *Session) Active() bool {
	return s != nil && !s.closed
}

// Close ends the session
func (s *Session) Close() {
	s.closed = true
}
