package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inf25dw2g02/MindPool/config"
	apperrors "github.com/inf25dw2g02/MindPool/pkg/errors"
)

// fakeProvider stands in for GitHub's token and API endpoints.
type fakeProvider struct {
	mux *http.ServeMux
	srv *httptest.Server

	tokenStatus int
	tokenBody   map[string]any
	user        map[string]any
	emails      []map[string]any
}

func newFakeProvider(t *testing.T) *fakeProvider {
	t.Helper()

	p := &fakeProvider{
		tokenStatus: http.StatusOK,
		tokenBody:   map[string]any{"access_token": "gho_testtoken", "token_type": "bearer"},
		user: map[string]any{
			"id":         int64(583231),
			"login":      "octocat",
			"name":       "The Octocat",
			"email":      "",
			"avatar_url": "https://avatars.example/583231",
		},
	}

	p.mux = http.NewServeMux()
	p.mux.HandleFunc("/login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		w.WriteHeader(p.tokenStatus)
		json.NewEncoder(w).Encode(p.tokenBody)
	})
	p.mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer gho_testtoken", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(p.user)
	})
	p.mux.HandleFunc("/user/emails", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(p.emails)
	})

	p.srv = httptest.NewServer(p.mux)
	t.Cleanup(p.srv.Close)
	return p
}

func (p *fakeProvider) client() *Client {
	cfg := &config.GitHubConfig{
		ClientID:        "client-id",
		ClientSecret:    "client-secret",
		CallbackURL:     "http://localhost:3001/auth/github/callback",
		ExchangeTimeout: 5 * time.Second,
	}
	return NewClient(cfg, WithEndpoints(
		p.srv.URL+"/login/oauth/authorize",
		p.srv.URL+"/login/oauth/access_token",
		p.srv.URL+"/user",
		p.srv.URL+"/user/emails",
	))
}

func TestAuthURL(t *testing.T) {
	t.Parallel()

	cfg := &config.GitHubConfig{
		ClientID:        "client-id",
		ClientSecret:    "client-secret",
		CallbackURL:     "http://localhost:3001/auth/github/callback",
		Scopes:          []string{"user:email"},
		ExchangeTimeout: 5 * time.Second,
	}
	c := NewClient(cfg)

	u := c.AuthURL("state123")
	assert.Contains(t, u, "https://github.com/login/oauth/authorize")
	assert.Contains(t, u, "client_id=client-id")
	assert.Contains(t, u, "state=state123")
	assert.Contains(t, u, "user%3Aemail")
	assert.NotContains(t, u, "client-secret")
}

func TestExchangeCode_EmailFromEmailsEndpoint(t *testing.T) {
	t.Parallel()

	p := newFakeProvider(t)
	p.emails = []map[string]any{
		{"email": "old@example.com", "primary": false, "verified": true},
		{"email": "octocat@github.com", "primary": true, "verified": true},
	}

	profile, err := p.client().ExchangeCode(context.Background(), "abc123")
	require.NoError(t, err)

	assert.Equal(t, "583231", profile.ExternalID)
	assert.Equal(t, "octocat", profile.Username)
	assert.Equal(t, "The Octocat", profile.DisplayName)
	assert.Equal(t, "octocat@github.com", profile.Email, "primary verified email wins")
	assert.Equal(t, "https://avatars.example/583231", profile.AvatarURL)
}

func TestExchangeCode_PublicEmailSkipsEmailsEndpoint(t *testing.T) {
	t.Parallel()

	p := newFakeProvider(t)
	p.user["email"] = "public@example.com"

	profile, err := p.client().ExchangeCode(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Equal(t, "public@example.com", profile.Email)
}

func TestExchangeCode_NoEmailAnywhere(t *testing.T) {
	t.Parallel()

	p := newFakeProvider(t)
	p.emails = nil

	profile, err := p.client().ExchangeCode(context.Background(), "abc123")
	require.NoError(t, err)
	assert.Empty(t, profile.Email, "missing email is the identity layer's problem, not an exchange error")
}

func TestExchangeCode_ProviderError(t *testing.T) {
	t.Parallel()

	p := newFakeProvider(t)
	p.tokenBody = map[string]any{
		"error":             "bad_verification_code",
		"error_description": "The code passed is incorrect or expired.",
	}

	_, err := p.client().ExchangeCode(context.Background(), "expired")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrProviderExchange))
}

func TestExchangeCode_EmptyToken(t *testing.T) {
	t.Parallel()

	p := newFakeProvider(t)
	p.tokenBody = map[string]any{"token_type": "bearer"}

	_, err := p.client().ExchangeCode(context.Background(), "abc123")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrProviderExchange))
}

func TestExchangeCode_ProviderDown(t *testing.T) {
	t.Parallel()

	p := newFakeProvider(t)
	c := p.client()
	p.srv.Close()

	_, err := c.ExchangeCode(context.Background(), "abc123")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrProviderExchange))
}
