package handlers

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/inf25dw2g02/MindPool/config"
	"github.com/inf25dw2g02/MindPool/internal/application/dto"
	"github.com/inf25dw2g02/MindPool/internal/application/services"
	"github.com/inf25dw2g02/MindPool/internal/interfaces/http/middleware"
	"github.com/inf25dw2g02/MindPool/pkg/logger"
)

const stateCookieName = "oauth_state"
const stateCookieMaxAge = 600 // seconds

// AuthHandler handles the OAuth login flow and session endpoints.
type AuthHandler struct {
	authService  *services.AuthService
	tokenService *services.TokenService
	cfg          *config.Config
	log          logger.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService *services.AuthService, tokenService *services.TokenService, cfg *config.Config, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenService: tokenService,
		cfg:          cfg,
		log:          log,
	}
}

// BeginLogin redirects the browser to the provider's consent page.
// GET /auth/github
func (h *AuthHandler) BeginLogin(c *gin.Context) {
	authURL, state, err := h.authService.BeginLogin()
	if err != nil {
		handleError(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(stateCookieName, state, stateCookieMaxAge, "/", "", h.cfg.Security.SecureCookies, true)
	c.Redirect(http.StatusFound, authURL)
}

// Callback completes the OAuth flow. On success the browser lands on the
// frontend with a session cookie set; on failure it lands on the frontend
// login page with an error marker, never on a bare error body.
// GET /auth/github/callback
func (h *AuthHandler) Callback(c *gin.Context) {
	// The state cookie is single-use either way.
	storedState, _ := c.Cookie(stateCookieName)
	c.SetCookie(stateCookieName, "", -1, "/", "", h.cfg.Security.SecureCookies, true)

	code := c.Query("code")
	state := c.Query("state")

	if code == "" || state == "" || storedState == "" || state != storedState {
		h.log.Warn("oauth callback rejected",
			logger.Bool("state_present", state != ""),
			logger.Bool("code_present", code != ""),
		)
		h.redirectLoginError(c, "invalid_state")
		return
	}

	sess, cookie, err := h.authService.CompleteLogin(c.Request.Context(), code)
	if err != nil {
		h.redirectLoginError(c, "auth_failed")
		return
	}

	maxAge := int(h.cfg.Session.TTL.Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.Session.CookieName, cookie, maxAge, "/", "", h.cfg.Security.SecureCookies, true)

	h.log.Info("session established", logger.IdentityID(sess.Identity.ExternalID))
	c.Redirect(http.StatusFound, h.cfg.Security.FrontendOrigin)
}

// Token mints a bearer token for the session holder.
// GET /auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	sess, ok := middleware.GetSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":             "unauthorized",
			"error_description": "authentication required",
		})
		return
	}

	resp, err := h.tokenService.Issue(sess)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// User reports the caller's authentication status. Always 200: an anonymous
// caller is a valid answer, not an error.
// GET /auth/user
func (h *AuthHandler) User(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusOK, dto.AuthStatusResponse{Authenticated: false})
		return
	}

	c.JSON(http.StatusOK, dto.AuthStatusResponse{
		Authenticated: true,
		User: &dto.UserInfo{
			ID:          p.ID,
			Username:    p.Username,
			DisplayName: p.DisplayName,
			Email:       p.Email,
			Avatar:      p.AvatarURL,
		},
	})
}

// Logout destroys the caller's session. The cookie is cleared even when the
// store delete fails; logging out without a session succeeds.
// GET /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie, _ := c.Cookie(h.cfg.Session.CookieName)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.Session.CookieName, "", -1, "/", "", h.cfg.Security.SecureCookies, true)

	if err := h.authService.Logout(c.Request.Context(), cookie); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":             "server_error",
			"error_description": "logout failed",
		})
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "logged out successfully"})
}

func (h *AuthHandler) redirectLoginError(c *gin.Context, code string) {
	u := h.cfg.Security.FrontendOrigin + "/login?error=" + url.QueryEscape(code)
	c.Redirect(http.StatusFound, u)
}
