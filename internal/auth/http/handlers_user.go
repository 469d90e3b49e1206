package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onemeal-app/onemeal-backend/internal/auth/domain"
	"github.com/onemeal-app/onemeal-backend/internal/auth/service"
)

type syncRequest struct {
	// Role selected in the sign-in UI; only honored on first sign-in.
	Role string `json:"role"`
}

// Sync upserts the caller's user document from the verified token identity.
func (h *Handler) Sync(c *gin.Context) {
	uid := c.GetString("firebase_uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req syncRequest
	// Body is optional on returning sign-ins.
	_ = c.ShouldBindJSON(&req)

	user, err := h.authService.Sync(c.Request.Context(), service.SyncRequest{
		UID:   uid,
		Name:  c.GetString("display_name"),
		Email: c.GetString("email"),
		Role:  req.Role,
	})
	switch err {
	case nil:
	case domain.ErrRoleRequired, domain.ErrInvalidRole:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sync user: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Me returns the current user's profile.
func (h *Handler) Me(c *gin.Context) {
	uid := c.GetString("firebase_uid")
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), uid)
	if err == domain.ErrUserNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get user: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
