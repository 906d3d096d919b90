package identity

import (
	"context"
)

// Repository defines the interface for identity persistence operations.
// This interface is implemented by the infrastructure layer.
type Repository interface {
	// GetByExternalID retrieves an identity by its provider-assigned ID.
	// Returns ErrIdentityNotFound when no row exists.
	GetByExternalID(ctx context.Context, externalID string) (*Identity, error)

	// Create persists a new identity. Returns ErrIdentityAlreadyExists on a
	// unique-constraint violation so callers can resolve concurrent first
	// logins by re-reading.
	Create(ctx context.Context, identity *Identity) error

	// List returns all identities, oldest first.
	List(ctx context.Context) ([]*Identity, error)

	// Delete removes an identity. It must fail with ErrHasDependents when
	// the identity still owns ideas.
	Delete(ctx context.Context, externalID string) error
}
