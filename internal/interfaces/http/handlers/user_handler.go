package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inf25dw2g02/MindPool/internal/application/dto"
	"github.com/inf25dw2g02/MindPool/internal/application/services"
)

// UserHandler handles the identity admin endpoints.
type UserHandler struct {
	identityService *services.IdentityService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(identityService *services.IdentityService) *UserHandler {
	return &UserHandler{identityService: identityService}
}

// List returns all known identities.
// GET /users
func (h *UserHandler) List(c *gin.Context) {
	idents, err := h.identityService.List(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	out := make([]*dto.UserInfo, 0, len(idents))
	for _, ident := range idents {
		out = append(out, &dto.UserInfo{
			ID:          ident.ExternalID,
			Username:    ident.Username,
			DisplayName: ident.DisplayName,
			Email:       ident.Email,
			Avatar:      ident.AvatarURL,
		})
	}
	c.JSON(http.StatusOK, out)
}

// Get returns a single identity.
// GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	ident, err := h.identityService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, &dto.UserInfo{
		ID:          ident.ExternalID,
		Username:    ident.Username,
		DisplayName: ident.DisplayName,
		Email:       ident.Email,
		Avatar:      ident.AvatarURL,
	})
}

// Delete removes an identity that owns no ideas.
// DELETE /users/:id
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.identityService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "user deleted"})
}
