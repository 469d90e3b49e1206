package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/onemeal-app/onemeal-backend/internal/donations/domain"
	"github.com/onemeal-app/onemeal-backend/internal/listings/service"
)

type Handler struct {
	listings *service.ListingService
}

func NewHandler(listings *service.ListingService) *Handler {
	return &Handler{listings: listings}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.Open)
}

// Open returns the open-listing set. lat/lng are optional; leaving them off
// degrades to the non-distance-aware mode.
func (h *Handler) Open(c *gin.Context) {
	var from *domain.Coordinate
	latStr, lngStr := c.Query("lat"), c.Query("lng")
	if latStr != "" && lngStr != "" {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		if errLat != nil || errLng != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lat and lng must be numbers"})
			return
		}
		from = &domain.Coordinate{Lat: lat, Lng: lng}
	}

	listings, err := h.listings.Open(c.Request.Context(), from)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list donations: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"listings": listings, "count": len(listings)})
}
