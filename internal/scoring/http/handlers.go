package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onemeal-app/onemeal-backend/internal/auth"
	"github.com/onemeal-app/onemeal-backend/internal/scoring/service"
)

type Handler struct {
	scoring *service.ScoringService
}

func NewHandler(scoring *service.ScoringService) *Handler {
	return &Handler{scoring: scoring}
}

// RegisterPublic mounts the unauthenticated leaderboard route.
func (h *Handler) RegisterPublic(rg *gin.RouterGroup) {
	rg.GET("/leaderboard", h.Leaderboard)
}

// RegisterProtected mounts the self-karma route; requires WithUser.
func (h *Handler) RegisterProtected(rg *gin.RouterGroup) {
	rg.GET("/karma", h.SelfKarma)
}

// Leaderboard returns the public top-donor board.
func (h *Handler) Leaderboard(c *gin.Context) {
	entries, err := h.scoring.Leaderboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "compute leaderboard: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaderboard": entries})
}

// SelfKarma returns the caller's own karma total.
func (h *Handler) SelfKarma(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	karma, err := h.scoring.SelfKarma(c.Request.Context(), user.UID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "compute karma: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"karma": karma})
}
