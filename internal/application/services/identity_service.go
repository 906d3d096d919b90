package services

import (
	"context"

	"github.com/inf25dw2g02/MindPool/internal/domain/idea"
	"github.com/inf25dw2g02/MindPool/internal/domain/identity"
	"github.com/inf25dw2g02/MindPool/pkg/errors"
	"github.com/inf25dw2g02/MindPool/pkg/logger"
)

// IdentityService resolves provider profiles to local identities.
type IdentityService struct {
	identityRepo identity.Repository
	ideaRepo     idea.Repository
	log          logger.Logger
}

// NewIdentityService creates a new identity service.
func NewIdentityService(identityRepo identity.Repository, ideaRepo idea.Repository, log logger.Logger) *IdentityService {
	return &IdentityService{
		identityRepo: identityRepo,
		ideaRepo:     ideaRepo,
		log:          log,
	}
}

// FindOrCreate returns the identity for a provider profile, creating it on
// first login. When two logins for the same new profile race, the loser of
// the insert re-reads the row the winner created; both callers observe the
// same identity.
func (s *IdentityService) FindOrCreate(ctx context.Context, profile identity.Profile) (*identity.Identity, error) {
	ident, err := s.identityRepo.GetByExternalID(ctx, profile.ExternalID)
	if err == nil {
		return ident, nil
	}
	if !errors.Is(err, errors.ErrIdentityNotFound) {
		return nil, errors.Wrap(err, "failed to look up identity")
	}

	ident = identity.NewIdentity(profile)
	err = s.identityRepo.Create(ctx, ident)
	if err == nil {
		s.log.Info("identity created",
			logger.IdentityID(ident.ExternalID),
			logger.String("username", ident.Username),
		)
		return ident, nil
	}
	if !errors.Is(err, errors.ErrIdentityAlreadyExists) {
		return nil, errors.Wrap(err, "failed to create identity")
	}

	// Lost a concurrent first-login race; the row now exists.
	ident, err = s.identityRepo.GetByExternalID(ctx, profile.ExternalID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to re-read identity after conflict")
	}
	return ident, nil
}

// Get returns a single identity by its provider ID.
func (s *IdentityService) Get(ctx context.Context, externalID string) (*identity.Identity, error) {
	return s.identityRepo.GetByExternalID(ctx, externalID)
}

// List returns all known identities.
func (s *IdentityService) List(ctx context.Context) ([]*identity.Identity, error) {
	return s.identityRepo.List(ctx)
}

// Delete removes an identity. Identities that still own ideas cannot be
// deleted.
func (s *IdentityService) Delete(ctx context.Context, externalID string) error {
	n, err := s.ideaRepo.CountByOwner(ctx, externalID)
	if err != nil {
		return errors.Wrap(err, "failed to count owned ideas")
	}
	if n > 0 {
		return errors.ErrHasDependents
	}

	return s.identityRepo.Delete(ctx, externalID)
}
