package session

import (
	"context"
)

// Store handles session storage. Implementations exist for Redis and for an
// in-process map; the server selects one at startup and injects it, there is
// no ambient store.
type Store interface {
	// Create persists a session until its expiry.
	Create(ctx context.Context, session *Session) error

	// Get retrieves a session by ID. Returns ErrSessionAbsent when the
	// session does not exist or has expired.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session. Deleting an absent session is not an error:
	// logout must be idempotent.
	Delete(ctx context.Context, id string) error
}
