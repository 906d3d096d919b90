package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inf25dw2g02/MindPool/internal/application/dto"
	"github.com/inf25dw2g02/MindPool/internal/application/services"
)

// CatalogHandler handles the shared category and status endpoints. Reads
// are public; writes require authentication (enforced at the router).
type CatalogHandler struct {
	catalogService *services.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// ListCategories returns all categories.
// GET /categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	out, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// CreateCategory creates a category.
// POST /categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "invalid_request",
			"error_description": err.Error(),
		})
		return
	}

	resp, err := h.catalogService.CreateCategory(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateCategory renames a category.
// PUT /categories/:id
func (h *CatalogHandler) UpdateCategory(c *gin.Context) {
	var req dto.CatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "invalid_request",
			"error_description": err.Error(),
		})
		return
	}

	resp, err := h.catalogService.UpdateCategory(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteCategory removes a category with no referencing ideas.
// DELETE /categories/:id
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if err := h.catalogService.DeleteCategory(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "category deleted"})
}

// ListStatuses returns all statuses.
// GET /statuses
func (h *CatalogHandler) ListStatuses(c *gin.Context) {
	out, err := h.catalogService.ListStatuses(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// CreateStatus creates a status.
// POST /statuses
func (h *CatalogHandler) CreateStatus(c *gin.Context) {
	var req dto.CatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "invalid_request",
			"error_description": err.Error(),
		})
		return
	}

	resp, err := h.catalogService.CreateStatus(c.Request.Context(), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateStatus renames a status.
// PUT /statuses/:id
func (h *CatalogHandler) UpdateStatus(c *gin.Context) {
	var req dto.CatalogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "invalid_request",
			"error_description": err.Error(),
		})
		return
	}

	resp, err := h.catalogService.UpdateStatus(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteStatus removes a status with no referencing ideas.
// DELETE /statuses/:id
func (h *CatalogHandler) DeleteStatus(c *gin.Context) {
	if err := h.catalogService.DeleteStatus(c.Request.Context(), c.Param("id")); err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "status deleted"})
}
