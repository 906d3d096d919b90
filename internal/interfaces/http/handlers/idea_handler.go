package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inf25dw2g02/MindPool/internal/application/dto"
	"github.com/inf25dw2g02/MindPool/internal/application/services"
	"github.com/inf25dw2g02/MindPool/internal/interfaces/http/middleware"
)

// IdeaHandler handles the idea CRUD endpoints.
type IdeaHandler struct {
	ideaService *services.IdeaService
}

// NewIdeaHandler creates a new idea handler.
func NewIdeaHandler(ideaService *services.IdeaService) *IdeaHandler {
	return &IdeaHandler{ideaService: ideaService}
}

// Create stores a new idea owned by the caller.
// POST /ideas
func (h *IdeaHandler) Create(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	var req dto.CreateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "invalid_request",
			"error_description": err.Error(),
		})
		return
	}

	resp, err := h.ideaService.Create(c.Request.Context(), p.ID, &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Get returns an idea the caller owns.
// GET /ideas/:id
func (h *IdeaHandler) Get(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	resp, err := h.ideaService.Get(c.Request.Context(), p.ID, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListMine returns the caller's ideas with category and status names.
// GET /ideas
func (h *IdeaHandler) ListMine(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	items, err := h.ideaService.ListMine(c.Request.Context(), p.ID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, items)
}

// Update modifies an idea the caller owns.
// PUT /ideas/:id
func (h *IdeaHandler) Update(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	var req dto.UpdateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "invalid_request",
			"error_description": err.Error(),
		})
		return
	}

	resp, err := h.ideaService.Update(c.Request.Context(), p.ID, c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Delete removes an idea the caller owns.
// DELETE /ideas/:id
func (h *IdeaHandler) Delete(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		abortUnauthenticated(c)
		return
	}

	if err := h.ideaService.Delete(c.Request.Context(), p.ID, c.Param("id")); err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MessageResponse{Message: "idea deleted"})
}

func abortUnauthenticated(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":             "unauthorized",
		"error_description": "authentication required",
	})
}
