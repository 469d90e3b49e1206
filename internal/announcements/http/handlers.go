package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onemeal-app/onemeal-backend/internal/announcements/repository"
)

type Handler struct {
	repo *repository.AnnouncementRepository
}

func NewHandler(repo *repository.AnnouncementRepository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/announcement", h.Get)
}

// Get returns the active banner. An inactive announcement renders nothing.
func (h *Handler) Get(c *gin.Context) {
	a, err := h.repo.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get announcement: " + err.Error()})
		return
	}

	if !a.Active {
		c.JSON(http.StatusOK, gin.H{"active": false, "message": ""})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": true, "message": a.Message})
}
