// Package github implements the OAuth 2.0 authorization-code flow against
// GitHub. GitHub issues no ID token, so the user profile comes from separate
// API calls after the code exchange.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/inf25dw2g02/MindPool/config"
	"github.com/inf25dw2g02/MindPool/internal/domain/identity"
	apperrors "github.com/inf25dw2g02/MindPool/pkg/errors"
)

const (
	defaultAuthEndpoint  = "https://github.com/login/oauth/authorize"
	defaultTokenEndpoint = "https://github.com/login/oauth/access_token"
	defaultUserEndpoint  = "https://api.github.com/user"
	defaultEmailEndpoint = "https://api.github.com/user/emails"
)

// Client is the GitHub OAuth 2.0 client.
type Client struct {
	clientID     string
	clientSecret string
	callbackURL  string
	scopes       []string

	authEndpoint  string
	tokenEndpoint string
	userEndpoint  string
	emailEndpoint string

	http *http.Client
}

// Option overrides a Client default, used by tests to point the client at a
// fake provider.
type Option func(*Client)

// WithEndpoints overrides the GitHub endpoints.
func WithEndpoints(auth, token, user, email string) Option {
	return func(c *Client) {
		c.authEndpoint = auth
		c.tokenEndpoint = token
		c.userEndpoint = user
		c.emailEndpoint = email
	}
}

// NewClient creates a GitHub OAuth client with a bounded HTTP client so a
// hung provider fails the login instead of hanging the request.
func NewClient(cfg *config.GitHubConfig, opts ...Option) *Client {
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{"user:email"}
	}

	c := &Client{
		clientID:      cfg.ClientID,
		clientSecret:  cfg.ClientSecret,
		callbackURL:   cfg.CallbackURL,
		scopes:        scopes,
		authEndpoint:  defaultAuthEndpoint,
		tokenEndpoint: defaultTokenEndpoint,
		userEndpoint:  defaultUserEndpoint,
		emailEndpoint: defaultEmailEndpoint,
		http:          &http.Client{Timeout: cfg.ExchangeTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// AuthURL builds the authorization URL the browser is redirected to.
func (c *Client) AuthURL(state string) string {
	u, _ := url.Parse(c.authEndpoint)
	q := u.Query()
	q.Set("client_id", c.clientID)
	q.Set("redirect_uri", c.callbackURL)
	q.Set("scope", strings.Join(c.scopes, " "))
	q.Set("state", state)
	u.RawQuery = q.Encode()
	return u.String()
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
	Error       string `json:"error,omitempty"`
	ErrorDesc   string `json:"error_description,omitempty"`
}

type userResponse struct {
	ID        int64  `json:"id"`
	Login     string `json:"login"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
}

type emailResponse struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// ExchangeCode exchanges an authorization code for the user's profile. The
// whole sequence - token exchange, user fetch, email fallback - fails closed
// with ErrProviderExchange; callers never see provider internals.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*identity.Profile, error) {
	token, err := c.exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	user, err := c.fetchUser(ctx, token)
	if err != nil {
		return nil, err
	}

	email := user.Email
	if email == "" {
		// Users with private emails return an empty field from /user; the
		// /user/emails endpoint still lists them.
		email, err = c.fetchPrimaryEmail(ctx, token)
		if err != nil {
			return nil, err
		}
	}

	return &identity.Profile{
		ExternalID:  strconv.FormatInt(user.ID, 10),
		Username:    user.Login,
		DisplayName: user.Name,
		Email:       email,
		AvatarURL:   user.AvatarURL,
	}, nil
}

func (c *Client) exchange(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", c.callbackURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to build token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrProviderExchange, err.Error())
	}
	defer resp.Body.Close()

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", apperrors.Wrap(apperrors.ErrProviderExchange, "failed to decode token response")
	}

	if tr.Error != "" {
		return "", apperrors.Wrap(apperrors.ErrProviderExchange,
			fmt.Sprintf("%s: %s", tr.Error, tr.ErrorDesc))
	}
	if tr.AccessToken == "" {
		return "", apperrors.Wrap(apperrors.ErrProviderExchange, "no access_token in response")
	}

	return tr.AccessToken, nil
}

func (c *Client) fetchUser(ctx context.Context, accessToken string) (*userResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userEndpoint, nil)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build user request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrProviderExchange, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Wrap(apperrors.ErrProviderExchange,
			fmt.Sprintf("user endpoint returned status %d", resp.StatusCode))
	}

	var user userResponse
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrProviderExchange, "failed to decode user response")
	}

	return &user, nil
}

// fetchPrimaryEmail picks primary-verified first, then any verified, then
// any listed address. An empty result is fine: the identity layer
// synthesizes a fallback.
func (c *Client) fetchPrimaryEmail(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.emailEndpoint, nil)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to build email request")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", apperrors.Wrap(apperrors.ErrProviderExchange, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Token may lack the user:email scope; treat as "no email".
		return "", nil
	}

	var emails []emailResponse
	if err := json.NewDecoder(resp.Body).Decode(&emails); err != nil {
		return "", apperrors.Wrap(apperrors.ErrProviderExchange, "failed to decode emails")
	}

	for _, e := range emails {
		if e.Primary && e.Verified {
			return e.Email, nil
		}
	}
	for _, e := range emails {
		if e.Verified {
			return e.Email, nil
		}
	}
	if len(emails) > 0 {
		return emails[0].Email, nil
	}

	return "", nil
}
