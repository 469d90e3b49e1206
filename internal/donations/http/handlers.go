package http

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/onemeal-app/onemeal-backend/internal/auth"
	authdomain "github.com/onemeal-app/onemeal-backend/internal/auth/domain"
	"github.com/onemeal-app/onemeal-backend/internal/donations/domain"
	"github.com/onemeal-app/onemeal-backend/internal/donations/service"
)

type Handler struct {
	lifecycle *service.LifecycleService
}

func NewHandler(lifecycle *service.LifecycleService) *Handler {
	return &Handler{lifecycle: lifecycle}
}

// Register mounts donor and recipient routes. The group must carry the
// Firebase token middleware plus auth.WithUser.
func (h *Handler) Register(rg *gin.RouterGroup) {
	donor := rg.Group("", auth.RequireRole(authdomain.RoleDonor))
	donor.POST("", h.Create)
	donor.GET("/mine", h.History)
	donor.POST("/:id/verify", h.VerifyPickup)

	receiver := rg.Group("", auth.RequireRole(authdomain.RoleReceiver))
	receiver.POST("/:id/claim", h.Claim)
	receiver.POST("/:id/report", h.Report)
}

// Create lists a new donation after the photo passes the AI food check.
func (h *Handler) Create(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	image, err := base64.StdEncoding.DecodeString(req.ImageBase64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image_base64 is not valid base64"})
		return
	}

	d, err := h.lifecycle.Create(c.Request.Context(), actorFrom(user), service.CreateRequest{
		FoodItem:  req.FoodItem,
		Quantity:  req.Quantity,
		Address:   req.Address,
		Phone:     req.Phone,
		Location:  req.Location,
		ImageMIME: req.ImageMIME,
		Image:     image,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"donation": d})
}

// Claim reserves an available donation; the pickup code comes back to the
// claimer in this response and nowhere else.
func (h *Handler) Claim(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	d, otp, err := h.lifecycle.Claim(c.Request.Context(), actorFrom(user), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"donation": d, "otp": otp})
}

// VerifyPickup completes the donation when the donor confirms the code.
func (h *Handler) VerifyPickup(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	d, err := h.lifecycle.VerifyPickup(c.Request.Context(), actorFrom(user), c.Param("id"), req.Code)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"donation": d})
}

// Report flags a claimed donation as fake/missing.
func (h *Handler) Report(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req reportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	d, err := h.lifecycle.Report(c.Request.Context(), actorFrom(user), c.Param("id"), req.Confirm)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"donation": d})
}

// History returns the donor's own donation records with display labels.
func (h *Handler) History(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	donations, err := h.lifecycle.History(c.Request.Context(), actorFrom(user))
	if err != nil {
		fail(c, err)
		return
	}

	type entry struct {
		*domain.Donation
		StatusLabel string `json:"status_label"`
	}
	out := make([]entry, 0, len(donations))
	for _, d := range donations {
		out = append(out, entry{Donation: d, StatusLabel: domain.StatusLabel(d.Status)})
	}

	c.JSON(http.StatusOK, gin.H{"donations": out})
}

func actorFrom(user *authdomain.User) service.Actor {
	return service.Actor{
		ID:     user.UID,
		Name:   user.Name,
		Banned: user.Banned,
	}
}

// fail translates lifecycle errors to HTTP responses. Every failure is
// handled here at the boundary; nothing propagates as an uncaught fault.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingField):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrUserBanned),
		errors.Is(err, domain.ErrNotOwner),
		errors.Is(err, domain.ErrNotClaimer):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotAvailable),
		errors.Is(err, domain.ErrNotClaimed),
		errors.Is(err, domain.ErrInvalidStatus):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrWrongCode),
		errors.Is(err, domain.ErrNotVerified):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrCheckFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
