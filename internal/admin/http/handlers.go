package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authdomain "github.com/onemeal-app/onemeal-backend/internal/auth/domain"
	dondomain "github.com/onemeal-app/onemeal-backend/internal/donations/domain"
)

// ListUsers returns every registered user for the admin console.
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list users: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// ToggleBan flips the banned flag on a user.
func (h *Handler) ToggleBan(c *gin.Context) {
	uid := c.Param("id")

	user, err := h.users.GetByUID(c.Request.Context(), uid)
	if err == authdomain.ErrUserNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get user: " + err.Error()})
		return
	}

	if err := h.users.SetBanned(c.Request.Context(), uid, !user.Banned); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "set banned: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"uid": uid, "banned": !user.Banned})
}

type roleRequest struct {
	Role string `json:"role"`
}

// SetRole applies an administrative role override, the only path that can
// change a role after first assignment.
func (h *Handler) SetRole(c *gin.Context) {
	var req roleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.users.SetRole(c.Request.Context(), c.Param("id"), req.Role)
	switch err {
	case nil:
	case authdomain.ErrInvalidRole:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case authdomain.ErrUserNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "set role: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"uid": c.Param("id"), "role": req.Role})
}

// ListDonations is the audit view over every donation record. Records with
// a malformed status render with the UNKNOWN label instead of failing.
func (h *Handler) ListDonations(c *gin.Context) {
	donations, err := h.donations.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list donations: " + err.Error()})
		return
	}

	type entry struct {
		*dondomain.Donation
		StatusLabel string `json:"status_label"`
	}
	out := make([]entry, 0, len(donations))
	for _, d := range donations {
		out = append(out, entry{Donation: d, StatusLabel: dondomain.StatusLabel(d.Status)})
	}

	c.JSON(http.StatusOK, gin.H{"donations": out})
}

type announcementRequest struct {
	Message string `json:"message"`
	Active  bool   `json:"active"`
}

// SetAnnouncement overwrites the global banner wholesale.
func (h *Handler) SetAnnouncement(c *gin.Context) {
	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	a, err := h.announcements.Set(c.Request.Context(), req.Message, req.Active)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "set announcement: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"announcement": a})
}
