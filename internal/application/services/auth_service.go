package services

import (
	"context"

	"github.com/inf25dw2g02/MindPool/config"
	"github.com/inf25dw2g02/MindPool/internal/domain/identity"
	"github.com/inf25dw2g02/MindPool/internal/domain/session"
	"github.com/inf25dw2g02/MindPool/internal/infrastructure/crypto"
	"github.com/inf25dw2g02/MindPool/pkg/errors"
	"github.com/inf25dw2g02/MindPool/pkg/logger"
)

// Provider is the OAuth provider the login flow delegates to.
type Provider interface {
	AuthURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*identity.Profile, error)
}

// AuthService drives the OAuth login flow and session lifecycle.
type AuthService struct {
	provider     Provider
	identities   *IdentityService
	sessionStore session.Store
	tokenGen     *crypto.TokenGenerator
	cfg          *config.Config
	log          logger.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	provider Provider,
	identities *IdentityService,
	sessionStore session.Store,
	tokenGen *crypto.TokenGenerator,
	cfg *config.Config,
	log logger.Logger,
) *AuthService {
	return &AuthService{
		provider:     provider,
		identities:   identities,
		sessionStore: sessionStore,
		tokenGen:     tokenGen,
		cfg:          cfg,
		log:          log,
	}
}

// BeginLogin returns the provider authorization URL and the CSRF state the
// caller must carry through the redirect.
func (s *AuthService) BeginLogin() (authURL, state string, err error) {
	state, err = s.tokenGen.GenerateState()
	if err != nil {
		return "", "", errors.Wrap(err, "failed to generate state")
	}
	return s.provider.AuthURL(state), state, nil
}

// CompleteLogin exchanges the authorization code, resolves the identity and
// creates a server-side session. It returns the session and the signed
// cookie value the client must present on subsequent requests.
func (s *AuthService) CompleteLogin(ctx context.Context, code string) (*session.Session, string, error) {
	profile, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		s.log.Warn("provider exchange failed", logger.Error(err), logger.Provider("github"))
		return nil, "", err
	}

	ident, err := s.identities.FindOrCreate(ctx, *profile)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrIdentityResolution, err.Error())
	}

	id, err := s.tokenGen.GenerateSessionID()
	if err != nil {
		return nil, "", errors.Wrap(err, "failed to generate session id")
	}

	sess := session.New(id, *ident, s.cfg.Session.TTL)
	if err := s.sessionStore.Create(ctx, sess); err != nil {
		return nil, "", errors.Wrap(err, "failed to store session")
	}

	s.log.Info("login completed",
		logger.IdentityID(ident.ExternalID),
		logger.String("username", ident.Username),
	)

	return sess, s.tokenGen.SignValue(sess.ID), nil
}

// ResolveSession validates a signed cookie value and loads the session it
// names. A forged signature, an unknown ID and an expired session all come
// back as ErrSessionAbsent.
func (s *AuthService) ResolveSession(ctx context.Context, cookieValue string) (*session.Session, error) {
	id, ok := s.tokenGen.VerifyValue(cookieValue)
	if !ok {
		return nil, errors.ErrSessionAbsent
	}

	sess, err := s.sessionStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sess.IsValid() {
		_ = s.sessionStore.Delete(ctx, id)
		return nil, errors.ErrSessionAbsent
	}
	return sess, nil
}

// Logout destroys the session named by the cookie value. Logging out with
// no session, or with one that is already gone, succeeds.
func (s *AuthService) Logout(ctx context.Context, cookieValue string) error {
	if cookieValue == "" {
		return nil
	}

	id, ok := s.tokenGen.VerifyValue(cookieValue)
	if !ok {
		return nil
	}

	if err := s.sessionStore.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}
	return nil
}
