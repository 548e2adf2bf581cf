package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/aifolio/backend/internal/service"
	"github.com/aifolio/backend/internal/types"
)

// currentClaims pulls the identity resolved by the auth middleware.
func currentClaims(c *gin.Context) (*types.TokenClaims, bool) {
	val, exists := c.Get("claims")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	claims, ok := val.(*types.TokenClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return nil, false
	}
	return claims, true
}

// respondError maps service failures onto the HTTP error taxonomy.
// Store errors never reach the caller raw; in development the 500 body
// carries the underlying message.
func respondError(c *gin.Context, err error, dev bool) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
	case errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrInvalidAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrProfileNotFound),
		errors.Is(err, service.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("[api] internal error: %v", err)
		msg := "Internal Server Error"
		if dev {
			msg = err.Error()
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
