package services

import (
	"github.com/inf25dw2g02/MindPool/internal/application/dto"
	"github.com/inf25dw2g02/MindPool/internal/domain/session"
	"github.com/inf25dw2g02/MindPool/pkg/errors"
	"github.com/inf25dw2g02/MindPool/pkg/jwt"
)

// TokenService mints bearer tokens for session holders.
type TokenService struct {
	jwtManager *jwt.Manager
}

// NewTokenService creates a new token service.
func NewTokenService(jwtManager *jwt.Manager) *TokenService {
	return &TokenService{jwtManager: jwtManager}
}

// Issue mints a signed token carrying the session identity's claims. The
// token stands on its own after this point: destroying the session does not
// invalidate tokens already issued from it.
func (s *TokenService) Issue(sess *session.Session) (*dto.TokenResponse, error) {
	token, err := s.jwtManager.Issue(
		sess.Identity.ExternalID,
		sess.Identity.Username,
		sess.Identity.DisplayName,
		sess.Identity.Email,
		sess.Identity.AvatarURL,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign token")
	}
	return &dto.TokenResponse{Token: token}, nil
}

// Verify checks a bearer token's signature and expiry.
func (s *TokenService) Verify(token string) (*jwt.Claims, error) {
	return s.jwtManager.Verify(token)
}
