package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/inf25dw2g02/MindPool/internal/application/services"
	"github.com/inf25dw2g02/MindPool/internal/domain/session"
	"github.com/inf25dw2g02/MindPool/pkg/errors"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// ContextKeyPrincipal is the context key for the authenticated principal.
	ContextKeyPrincipal ContextKey = "principal"
	// ContextKeySession is the context key for the resolved session, set only
	// when the caller authenticated with a cookie.
	ContextKeySession ContextKey = "auth_session"
)

// Principal is the authenticated caller. It is built once per request and
// never mutated afterwards; handlers read it, they do not write it.
type Principal struct {
	ID          string
	Username    string
	DisplayName string
	Email       string
	AvatarURL   string
}

// AuthMiddleware authenticates requests from either a bearer token or a
// session cookie.
type AuthMiddleware struct {
	authService  *services.AuthService
	tokenService *services.TokenService
	cookieName   string
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(authService *services.AuthService, tokenService *services.TokenService, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{
		authService:  authService,
		tokenService: tokenService,
		cookieName:   cookieName,
	}
}

// RequireAuth returns a middleware that rejects requests without a valid
// bearer token or session cookie. A bearer token, when present, is decided
// on its own: an invalid token is a 401 even if a good cookie rides along.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				abortUnauthorized(c, "invalid Authorization header format")
				return
			}

			claims, err := m.tokenService.Verify(parts[1])
			if err != nil {
				abortUnauthorized(c, errors.ErrTokenInvalid.Error())
				return
			}

			setPrincipal(c, Principal{
				ID:          claims.Subject,
				Username:    claims.Username,
				DisplayName: claims.DisplayName,
				Email:       claims.Email,
				AvatarURL:   claims.AvatarURL,
			})
			c.Next()
			return
		}

		sess, ok := m.resolveCookie(c)
		if !ok {
			abortUnauthorized(c, errors.ErrSessionAbsent.Error())
			return
		}

		c.Set(string(ContextKeySession), sess)
		setPrincipal(c, principalFromSession(sess))
		c.Next()
	}
}

// OptionalAuth resolves the caller's identity when credentials are present
// but never rejects the request. Handlers that report auth status use this.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess, ok := m.resolveCookie(c); ok {
			c.Set(string(ContextKeySession), sess)
			setPrincipal(c, principalFromSession(sess))
		}
		c.Next()
	}
}

func (m *AuthMiddleware) resolveCookie(c *gin.Context) (*session.Session, bool) {
	cookie, err := c.Cookie(m.cookieName)
	if err != nil || cookie == "" {
		return nil, false
	}

	sess, err := m.authService.ResolveSession(c.Request.Context(), cookie)
	if err != nil {
		return nil, false
	}
	return sess, true
}

func principalFromSession(sess *session.Session) Principal {
	return Principal{
		ID:          sess.Identity.ExternalID,
		Username:    sess.Identity.Username,
		DisplayName: sess.Identity.DisplayName,
		Email:       sess.Identity.Email,
		AvatarURL:   sess.Identity.AvatarURL,
	}
}

func setPrincipal(c *gin.Context, p Principal) {
	c.Set(string(ContextKeyPrincipal), p)
}

// GetPrincipal extracts the authenticated principal from the request.
func GetPrincipal(c *gin.Context) (Principal, bool) {
	v, exists := c.Get(string(ContextKeyPrincipal))
	if !exists {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// GetSession extracts the resolved session, if the caller used a cookie.
func GetSession(c *gin.Context) (*session.Session, bool) {
	v, exists := c.Get(string(ContextKeySession))
	if !exists {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}

func abortUnauthorized(c *gin.Context, description string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":             "unauthorized",
		"error_description": description,
	})
}

// GetClientIP returns the client IP, honoring proxy headers gin trusts.
func GetClientIP(c *gin.Context) string {
	return c.ClientIP()
}
