package postgres

import (
	"context"

	"github.com/inf25dw2g02/MindPool/internal/domain/identity"
	apperrors "github.com/inf25dw2g02/MindPool/pkg/errors"
)

// IdentityRepository implements identity.Repository using PostgreSQL.
type IdentityRepository struct {
	db *DB
}

// NewIdentityRepository creates a new PostgreSQL identity repository.
func NewIdentityRepository(db *DB) *IdentityRepository {
	return &IdentityRepository{db: db}
}

// GetByExternalID retrieves an identity by its provider-assigned ID.
func (r *IdentityRepository) GetByExternalID(ctx context.Context, externalID string) (*identity.Identity, error) {
	query := `
		SELECT external_id, username, display_name, email, avatar_url, created_at
		FROM identities
		WHERE external_id = $1
	`

	ident := &identity.Identity{}
	err := r.db.Pool.QueryRow(ctx, query, externalID).Scan(
		&ident.ExternalID,
		&ident.Username,
		&ident.DisplayName,
		&ident.Email,
		&ident.AvatarURL,
		&ident.CreatedAt,
	)

	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrIdentityNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get identity")
	}

	return ident, nil
}

// Create persists a new identity. A unique violation maps to
// ErrIdentityAlreadyExists so the service layer can resolve two concurrent
// first logins by re-reading the winner's row.
func (r *IdentityRepository) Create(ctx context.Context, ident *identity.Identity) error {
	query := `
		INSERT INTO identities (external_id, username, display_name, email, avatar_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Pool.Exec(ctx, query,
		ident.ExternalID,
		ident.Username,
		ident.DisplayName,
		ident.Email,
		ident.AvatarURL,
		ident.CreatedAt,
	)

	if err != nil {
		if isPgUniqueViolation(err) {
			return apperrors.ErrIdentityAlreadyExists
		}
		return apperrors.Wrap(err, "failed to create identity")
	}

	return nil
}

// List returns all identities, oldest first.
func (r *IdentityRepository) List(ctx context.Context) ([]*identity.Identity, error) {
	query := `
		SELECT external_id, username, display_name, email, avatar_url, created_at
		FROM identities
		ORDER BY created_at ASC
	`

	rows, err := r.db.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to query identities")
	}
	defer rows.Close()

	var identities []*identity.Identity
	for rows.Next() {
		ident := &identity.Identity{}
		err := rows.Scan(
			&ident.ExternalID,
			&ident.Username,
			&ident.DisplayName,
			&ident.Email,
			&ident.AvatarURL,
			&ident.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan identity")
		}
		identities = append(identities, ident)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "error iterating identities")
	}

	return identities, nil
}

// Delete removes an identity. The ideas table references identities, so a
// foreign key violation means the identity still owns records.
func (r *IdentityRepository) Delete(ctx context.Context, externalID string) error {
	query := `DELETE FROM identities WHERE external_id = $1`

	result, err := r.db.Pool.Exec(ctx, query, externalID)
	if err != nil {
		if isPgForeignKeyViolation(err) {
			return apperrors.ErrHasDependents
		}
		return apperrors.Wrap(err, "failed to delete identity")
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrIdentityNotFound
	}

	return nil
}
