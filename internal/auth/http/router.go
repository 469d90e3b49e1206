package http

import (
	"github.com/gin-gonic/gin"

	"github.com/onemeal-app/onemeal-backend/internal/auth/service"
)

type Handler struct {
	authService *service.AuthService
}

func NewHandler(authService *service.AuthService) *Handler {
	return &Handler{authService: authService}
}

// Register mounts the auth routes. The group is expected to already carry
// the Firebase token middleware; sync happens before a user document exists,
// so WithUser is not required here.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/sync", h.Sync)
	rg.GET("/me", h.Me)
}
