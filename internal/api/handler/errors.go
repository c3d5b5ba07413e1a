package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"titlehub/internal/api/service"
)

// respondError maps service errors onto the HTTP taxonomy: validation 400,
// authentication 401, permission 403, missing resource 404, the rest 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAlreadyReviewed),
		errors.Is(err, service.ErrScoreOutOfRange),
		errors.Is(err, service.ErrYearOutOfRange),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrUnknownCategory),
		errors.Is(err, service.ErrUnknownGenre),
		errors.Is(err, service.ErrSlugInUse),
		errors.Is(err, service.ErrNameInUse),
		errors.Is(err, service.ErrEmailInUse):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
