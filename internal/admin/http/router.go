package http

import (
	"github.com/gin-gonic/gin"

	"github.com/onemeal-app/onemeal-backend/internal/announcements/repository"
	"github.com/onemeal-app/onemeal-backend/internal/auth"
	authdomain "github.com/onemeal-app/onemeal-backend/internal/auth/domain"
	authrepo "github.com/onemeal-app/onemeal-backend/internal/auth/repository"
	donrepo "github.com/onemeal-app/onemeal-backend/internal/donations/repository"
)

// Handler is the admin console surface. Every route is gated on the
// server-held admin role claim; there is no client-asserted admin state.
type Handler struct {
	users         *authrepo.UserRepository
	donations     *donrepo.DonationRepository
	announcements *repository.AnnouncementRepository
}

func NewHandler(users *authrepo.UserRepository, donations *donrepo.DonationRepository, announcements *repository.AnnouncementRepository) *Handler {
	return &Handler{
		users:         users,
		donations:     donations,
		announcements: announcements,
	}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.Use(auth.RequireRole(authdomain.RoleAdmin))

	rg.GET("/users", h.ListUsers)
	rg.POST("/users/:id/ban", h.ToggleBan)
	rg.POST("/users/:id/role", h.SetRole)
	rg.GET("/donations", h.ListDonations)
	rg.PUT("/announcement", h.SetAnnouncement)
}
