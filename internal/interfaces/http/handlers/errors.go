package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inf25dw2g02/MindPool/pkg/errors"
)

// handleError converts domain errors to HTTP responses.
func handleError(c *gin.Context, err error) {
	var ve *errors.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "invalid_request",
			"error_description": ve.Error(),
		})
		return
	}

	switch {
	case errors.Is(err, errors.ErrSessionAbsent), errors.Is(err, errors.ErrSessionExpired):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":             "unauthorized",
			"error_description": "authentication required",
		})
	case errors.Is(err, errors.ErrTokenInvalid):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":             "unauthorized",
			"error_description": "invalid or expired token",
		})
	case errors.Is(err, errors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"error":             "forbidden",
			"error_description": "access denied",
		})
	case errors.Is(err, errors.ErrIdentityNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":             "not_found",
			"error_description": "user not found",
		})
	case errors.Is(err, errors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":             "not_found",
			"error_description": "resource not found",
		})
	case errors.Is(err, errors.ErrHasDependents):
		c.JSON(http.StatusConflict, gin.H{
			"error":             "conflict",
			"error_description": "resource is still referenced by other records",
		})
	case errors.Is(err, errors.ErrProviderExchange), errors.Is(err, errors.ErrStateMismatch):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":             "provider_error",
			"error_description": "authentication with the provider failed",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":             "server_error",
			"error_description": "internal server error",
		})
	}
}
