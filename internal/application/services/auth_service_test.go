package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inf25dw2g02/MindPool/config"
	"github.com/inf25dw2g02/MindPool/internal/domain/identity"
	"github.com/inf25dw2g02/MindPool/internal/infrastructure/crypto"
	"github.com/inf25dw2g02/MindPool/pkg/errors"
)

func newAuthFixture(provider Provider) (*AuthService, *fakeSessionStore, *fakeIdentityRepo) {
	identRepo := newFakeIdentityRepo()
	store := newFakeSessionStore()
	cfg := &config.Config{}
	cfg.Session.TTL = 24 * time.Hour
	cfg.Session.Secret = "test-session-secret"

	svc := NewAuthService(
		provider,
		newIdentityService(identRepo, newFakeIdeaRepo()),
		store,
		crypto.NewTokenGenerator(cfg.Session.Secret),
		cfg,
		testLogger(),
	)
	return svc, store, identRepo
}

func TestBeginLoginProducesState(t *testing.T) {
	svc, _, _ := newAuthFixture(&fakeProvider{})

	url1, state1, err := svc.BeginLogin()
	require.NoError(t, err)
	url2, state2, err := svc.BeginLogin()
	require.NoError(t, err)

	assert.NotEqual(t, state1, state2)
	assert.Contains(t, url1, state1)
	assert.Contains(t, url2, state2)
}

func TestCompleteLoginCreatesSession(t *testing.T) {
	provider := &fakeProvider{profile: &identity.Profile{
		ExternalID:  "42",
		Username:    "octocat",
		DisplayName: "The Octocat",
		Email:       "octo@example.com",
	}}
	svc, store, _ := newAuthFixture(provider)
	ctx := context.Background()

	sess, cookie, err := svc.CompleteLogin(ctx, "good-code")
	require.NoError(t, err)
	assert.Equal(t, "42", sess.Identity.ExternalID)
	assert.NotEmpty(t, cookie)

	stored, err := store.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "octocat", stored.Identity.Username)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), sess.ExpiresAt, time.Minute)
}

func TestCompleteLoginProviderFailure(t *testing.T) {
	svc, store, _ := newAuthFixture(&fakeProvider{err: errors.ErrProviderExchange})

	_, _, err := svc.CompleteLogin(context.Background(), "bad-code")
	assert.ErrorIs(t, err, errors.ErrProviderExchange)

	store.mu.Lock()
	defer store.mu.Unlock()
	assert.Empty(t, store.sessions, "no session may exist after a failed exchange")
}

func TestResolveSessionRoundTrip(t *testing.T) {
	provider := &fakeProvider{profile: &identity.Profile{ExternalID: "42", Username: "octocat"}}
	svc, _, _ := newAuthFixture(provider)
	ctx := context.Background()

	sess, cookie, err := svc.CompleteLogin(ctx, "code")
	require.NoError(t, err)

	got, err := svc.ResolveSession(ctx, cookie)
	require.NoError(t, err)
	assert.Equal(t, sess.ID, got.ID)
}

func TestResolveSessionForgedCookie(t *testing.T) {
	svc, _, _ := newAuthFixture(&fakeProvider{})

	for _, cookie := range []string{"", "garbage", "id.", "id.AAAA", "id-without-dot"} {
		_, err := svc.ResolveSession(context.Background(), cookie)
		assert.ErrorIs(t, err, errors.ErrSessionAbsent, "cookie %q", cookie)
	}
}

func TestResolveSessionExpired(t *testing.T) {
	provider := &fakeProvider{profile: &identity.Profile{ExternalID: "42", Username: "octocat"}}
	svc, store, _ := newAuthFixture(provider)
	ctx := context.Background()

	sess, cookie, err := svc.CompleteLogin(ctx, "code")
	require.NoError(t, err)

	store.mu.Lock()
	store.sessions[sess.ID].ExpiresAt = time.Now().UTC().Add(-time.Second)
	store.mu.Unlock()

	_, err = svc.ResolveSession(ctx, cookie)
	assert.ErrorIs(t, err, errors.ErrSessionAbsent)

	// The expired session is gone from the store as well.
	store.mu.Lock()
	defer store.mu.Unlock()
	assert.NotContains(t, store.sessions, sess.ID)
}

func TestLogoutIdempotent(t *testing.T) {
	provider := &fakeProvider{profile: &identity.Profile{ExternalID: "42", Username: "octocat"}}
	svc, _, _ := newAuthFixture(provider)
	ctx := context.Background()

	_, cookie, err := svc.CompleteLogin(ctx, "code")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, cookie))
	require.NoError(t, svc.Logout(ctx, cookie), "second logout must succeed")
	require.NoError(t, svc.Logout(ctx, ""), "logout without a session must succeed")
	require.NoError(t, svc.Logout(ctx, "forged.cookie"), "logout with a forged cookie must succeed")

	_, err = svc.ResolveSession(ctx, cookie)
	assert.ErrorIs(t, err, errors.ErrSessionAbsent)
}
