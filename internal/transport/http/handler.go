package handlers

import (
	"errors"
	"net/http"

	"userdirectory/internal/domain"

	"github.com/gin-gonic/gin"
)

// writeError maps domain errors to HTTP statuses. Anything unknown is a 500
// with an opaque message; the use case has already logged the cause.
func writeError(c *gin.Context, err error, internalMsg string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email, and phone are required"})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email already exists"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": internalMsg})
	}
}
