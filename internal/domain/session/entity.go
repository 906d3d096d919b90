package session

import (
	"time"

	"github.com/inf25dw2g02/MindPool/internal/domain/identity"
)

// Session is the server-side state behind the browser cookie. The ID is an
// opaque, unguessable value; the identity is carried inline so lookups need
// a single read. Expiry is absolute: 24 hours from issuance, no sliding.
type Session struct {
	ID        string
	Identity  identity.Identity
	CreatedAt time.Time
	ExpiresAt time.Time
}

// New creates a session for an authenticated identity. The caller supplies
// the opaque ID.
func New(id string, ident identity.Identity, ttl time.Duration) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:        id,
		Identity:  ident,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsValid reports whether the session has not yet expired.
func (s *Session) IsValid() bool {
	return time.Now().UTC().Before(s.ExpiresAt)
}
