package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inf25dw2g02/MindPool/internal/domain/idea"
	"github.com/inf25dw2g02/MindPool/internal/domain/identity"
	"github.com/inf25dw2g02/MindPool/pkg/errors"
)

func newIdentityService(identRepo *fakeIdentityRepo, ideaRepo *fakeIdeaRepo) *IdentityService {
	return NewIdentityService(identRepo, ideaRepo, testLogger())
}

func TestFindOrCreateFirstLogin(t *testing.T) {
	repo := newFakeIdentityRepo()
	svc := newIdentityService(repo, newFakeIdeaRepo())

	ident, err := svc.FindOrCreate(context.Background(), identity.Profile{
		ExternalID:  "42",
		Username:    "octocat",
		DisplayName: "The Octocat",
		Email:       "octo@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "42", ident.ExternalID)
	assert.Equal(t, "octocat", ident.Username)
	assert.Equal(t, "octo@example.com", ident.Email)
}

func TestFindOrCreateReturningUser(t *testing.T) {
	repo := newFakeIdentityRepo()
	svc := newIdentityService(repo, newFakeIdeaRepo())
	ctx := context.Background()

	first, err := svc.FindOrCreate(ctx, identity.Profile{ExternalID: "42", Username: "octocat"})
	require.NoError(t, err)

	// Profile changed upstream; we still resolve to the stored identity.
	second, err := svc.FindOrCreate(ctx, identity.Profile{ExternalID: "42", Username: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, first.ExternalID, second.ExternalID)
	assert.Equal(t, "octocat", second.Username)
}

func TestFindOrCreateEmailSynthesis(t *testing.T) {
	repo := newFakeIdentityRepo()
	svc := newIdentityService(repo, newFakeIdeaRepo())

	ident, err := svc.FindOrCreate(context.Background(), identity.Profile{
		ExternalID: "7",
		Username:   "ghost",
	})
	require.NoError(t, err)
	assert.Equal(t, "ghost@github.com", ident.Email)
	assert.Equal(t, "ghost", ident.DisplayName)
}

func TestFindOrCreateConcurrentRace(t *testing.T) {
	repo := newFakeIdentityRepo()
	svc := newIdentityService(repo, newFakeIdeaRepo())
	ctx := context.Background()
	profile := identity.Profile{ExternalID: "42", Username: "octocat"}

	// A competing login inserts the row between our lookup and our insert.
	repo.beforeCreate = func() {
		repo.beforeCreate = nil
		winner := identity.NewIdentity(profile)
		repo.mu.Lock()
		repo.identities[winner.ExternalID] = winner
		repo.mu.Unlock()
	}

	ident, err := svc.FindOrCreate(ctx, profile)
	require.NoError(t, err)
	assert.Equal(t, "42", ident.ExternalID)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1, "race must not produce duplicate identities")
}

func TestDeleteIdentityWithIdeasRefused(t *testing.T) {
	identRepo := newFakeIdentityRepo()
	ideaRepo := newFakeIdeaRepo()
	svc := newIdentityService(identRepo, ideaRepo)
	ctx := context.Background()

	_, err := svc.FindOrCreate(ctx, identity.Profile{ExternalID: "42", Username: "octocat"})
	require.NoError(t, err)
	require.NoError(t, ideaRepo.Create(ctx, idea.NewIdea("42", "keep me", "", "c1", "s1", nil)))

	err = svc.Delete(ctx, "42")
	assert.ErrorIs(t, err, errors.ErrHasDependents)

	require.NoError(t, ideaRepo.Delete(ctx, mustOnlyIdeaID(t, ideaRepo)))
	assert.NoError(t, svc.Delete(ctx, "42"))
}

func mustOnlyIdeaID(t *testing.T, repo *fakeIdeaRepo) string {
	t.Helper()
	repo.mu.Lock()
	defer repo.mu.Unlock()
	require.Len(t, repo.ideas, 1)
	for id := range repo.ideas {
		return id
	}
	return ""
}
